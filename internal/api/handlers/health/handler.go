package health

import (
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle GET /api/health
// Проверка живости без обращения к хранилищу.
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
