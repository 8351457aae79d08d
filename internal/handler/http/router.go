package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions are the router's non-handler dependencies.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func NewRouter(opts RouterOptions, payrollHandler PayrollHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/salary-types", payrollHandler.ListSalaryTypes)
			r.Get("/statements/{employeeId}", payrollHandler.GetStatement)

			r.Route("/roster", func(r chi.Router) {
				r.Get("/", payrollHandler.GetRoster)
				r.Post("/", payrollHandler.GenerateRoster)
			})

			r.Route("/annual/{employeeId}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetAnnualReport)
				r.Post("/", payrollHandler.GenerateAnnualReport)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.SearchEmployees)
			r.Get("/number/{employeeNumber}", employeeHandler.GetEmployeeByNumber)
			r.Get("/{id}", employeeHandler.GetEmployee)
		})
	})

	return r
}
