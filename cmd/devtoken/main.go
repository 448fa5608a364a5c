package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/config"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/identity"
)

// Выпускает HS256 токен для локальной разработки с auth.provider = "hmac"
func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	uid := flag.String("uid", "dev-user", "token subject (user id)")
	email := flag.String("email", "", "email claim")
	admin := flag.Bool("admin", false, "set the admin claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.Provider != config.ProviderHMAC {
		fmt.Fprintf(os.Stderr, "auth.provider is %q, dev tokens require %q\n", cfg.Auth.Provider, config.ProviderHMAC)
		os.Exit(1)
	}

	issuer := identity.NewHMACVerifier(identity.HMACOptions{
		Secret:   cfg.Auth.HMAC.Secret,
		Issuer:   cfg.Auth.HMAC.Issuer,
		Audience: cfg.Auth.HMAC.Audience,
	})

	token, err := issuer.Issue(*uid, *email, *admin, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
