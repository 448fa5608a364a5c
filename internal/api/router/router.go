package router

import (
	"fmt"
	"net/http"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	adminUpdateBookingStatusHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/admin_update_booking_status"
	cancelBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_booking"
	createCompanyHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_company"
	createOrderHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_order"
	createServiceHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/create_service"
	getBookingHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_booking_stats"
	getCompanyHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_company"
	getOrderHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_order"
	getServiceHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_service"
	getServiceStatsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_service_stats"
	getUserBookingsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/health"
	listAdminServicesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_admin_services"
	listAllBookingsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_all_bookings"
	listAllCompaniesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_all_companies"
	listCompaniesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_companies"
	listOrdersHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_orders"
	listServicesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/list_services"
	searchCompaniesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/search_companies"
	setServicePopularHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/set_service_popular"
	updateBookingStatusHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/update_booking_status"
	updateOrderStatusHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/update_order_status"
	updateServiceHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/update_service"
	verifyCompanyHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/verify_company"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	bookingsService "github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	companiesService "github.com/m04kA/SMC-CarWashService/internal/service/companies"
	ordersService "github.com/m04kA/SMC-CarWashService/internal/service/orders"
	servicesService "github.com/m04kA/SMC-CarWashService/internal/service/services"
	createBookingUC "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
)

const (
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dependencies сервисы и use cases, за которыми стоят обработчики
type Dependencies struct {
	Services      *servicesService.Service
	Companies     *companiesService.Service
	Bookings      *bookingsService.Service
	Orders        *ordersService.Service
	CreateBooking *createBookingUC.UseCase
}

// Options настройки HTTP слоя
type Options struct {
	Verifier       middleware.TokenVerifier
	AuthTimeout    time.Duration
	AllowedOrigins []string

	// Metrics nil, если метрики выключены
	Metrics     *metrics.Metrics
	MetricsPath string
}

// New собирает роутер со всеми маршрутами API.
// Снаружи: X-Request-ID, CORS, восстановление после panic.
func New(deps Dependencies, opts Options, log Logger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondNotFound(w, msgRouteNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	r.Use(middleware.AccessLog(log, opts.Metrics))

	// Metrics endpoint (публичный, без аутентификации)
	if opts.Metrics != nil {
		r.Handle(opts.MetricsPath, opts.Metrics.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", opts.MetricsPath)
	}

	auth := middleware.Auth(opts.Verifier, opts.AuthTimeout, log)
	requireAdmin := middleware.RequireAdmin(log)

	user := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return auth(requireAdmin(h))
	}

	// Инициализируем handlers
	health := healthHandler.NewHandler()

	listServices := listServicesHandler.NewHandler(deps.Services, log)
	listAdminServices := listAdminServicesHandler.NewHandler(deps.Services, log)
	getService := getServiceHandler.NewHandler(deps.Services, log)
	createService := createServiceHandler.NewHandler(deps.Services, log)
	updateService := updateServiceHandler.NewHandler(deps.Services, log)
	setServicePopular := setServicePopularHandler.NewHandler(deps.Services, log)
	getServiceStats := getServiceStatsHandler.NewHandler(deps.Services, log)

	listCompanies := listCompaniesHandler.NewHandler(deps.Companies, log)
	searchCompanies := searchCompaniesHandler.NewHandler(deps.Companies, log)
	getCompany := getCompanyHandler.NewHandler(deps.Companies, log)
	createCompany := createCompanyHandler.NewHandler(deps.Companies, false, log)
	adminCreateCompany := createCompanyHandler.NewHandler(deps.Companies, true, log)
	listAllCompanies := listAllCompaniesHandler.NewHandler(deps.Companies, log)
	verifyCompany := verifyCompanyHandler.NewHandler(deps.Companies, log)

	createBooking := createBookingHandler.NewHandler(deps.CreateBooking, log)
	getBooking := getBookingHandler.NewHandler(deps.Bookings, log)
	getUserBookings := getUserBookingsHandler.NewHandler(deps.Bookings, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(deps.Bookings, log)
	cancelBooking := cancelBookingHandler.NewHandler(deps.Bookings, log)
	listAllBookings := listAllBookingsHandler.NewHandler(deps.Bookings, log)
	getBookingStats := getBookingStatsHandler.NewHandler(deps.Bookings, log)
	adminUpdateBookingStatus := adminUpdateBookingStatusHandler.NewHandler(deps.Bookings, log)

	createOrder := createOrderHandler.NewHandler(deps.Orders, log)
	listOrders := listOrdersHandler.NewHandler(deps.Orders, log)
	getOrder := getOrderHandler.NewHandler(deps.Orders, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(deps.Orders, log)

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", getService.Handle).Methods(http.MethodGet)

	// ============================================================
	// USER ROUTES (Bearer токен)
	// ============================================================

	// --- Компании ---
	// search регистрируется раньше {id}
	api.Handle("/companies", user(listCompanies.Handle)).Methods(http.MethodGet)
	api.Handle("/companies/search", user(searchCompanies.Handle)).Methods(http.MethodGet)
	api.Handle("/companies/{id}", user(getCompany.Handle)).Methods(http.MethodGet)
	api.Handle("/companies", user(createCompany.Handle)).Methods(http.MethodPost)

	// --- Бронирования ---
	api.Handle("/bookings", user(createBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings/user/{userId}", user(getUserBookings.Handle)).Methods(http.MethodGet)
	api.Handle("/bookings/{id}", user(getBooking.Handle)).Methods(http.MethodGet)
	api.Handle("/bookings/{id}/status", user(updateBookingStatus.Handle)).Methods(http.MethodPatch)
	api.Handle("/bookings/{id}", user(cancelBooking.Handle)).Methods(http.MethodDelete)

	// --- Заказы ---
	api.Handle("/orders", user(createOrder.Handle)).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (claim admin=true)
	// ============================================================

	api.Handle("/services", admin(createService.Handle)).Methods(http.MethodPost)

	api.Handle("/admin/bookings", admin(listAllBookings.Handle)).Methods(http.MethodGet)
	api.Handle("/admin/bookings/stats", admin(getBookingStats.Handle)).Methods(http.MethodGet)
	api.Handle("/admin/bookings/{id}/status", admin(adminUpdateBookingStatus.Handle)).Methods(http.MethodPatch)

	api.Handle("/admin/companies", admin(listAllCompanies.Handle)).Methods(http.MethodGet)
	api.Handle("/admin/companies", admin(adminCreateCompany.Handle)).Methods(http.MethodPost)
	api.Handle("/admin/companies/{id}/verify", admin(verifyCompany.Handle)).Methods(http.MethodPatch)

	api.Handle("/admin/services", admin(listAdminServices.Handle)).Methods(http.MethodGet)
	api.Handle("/admin/services/stats", admin(getServiceStats.Handle)).Methods(http.MethodGet)
	api.Handle("/admin/services", admin(createService.Handle)).Methods(http.MethodPost)
	api.Handle("/admin/services/{id}", admin(updateService.Handle)).Methods(http.MethodPut)
	api.Handle("/admin/services/{id}/popular", admin(setServicePopular.Handle)).Methods(http.MethodPatch)

	api.Handle("/admin/orders", admin(listOrders.Handle)).Methods(http.MethodGet)
	api.Handle("/admin/orders/{id}", admin(getOrder.Handle)).Methods(http.MethodGet)
	api.Handle("/admin/orders/{id}/status", admin(updateOrderStatus.Handle)).Methods(http.MethodPatch)

	var h http.Handler = r
	h = gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}),
		gorillaHandlers.PrintRecoveryStack(true),
	)(h)
	h = gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(opts.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-ID"}),
		gorillaHandlers.ExposedHeaders([]string{"X-Request-ID"}),
		gorillaHandlers.AllowCredentials(),
	)(h)
	h = middleware.RequestID(h)

	return h
}

// recoveryLogger направляет сообщения RecoveryHandler в общий логгер
type recoveryLogger struct {
	log Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic: %s", fmt.Sprint(v...))
}
