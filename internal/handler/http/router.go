package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/TemperedKirin/fullstack-proyecto/internal/handler/http/middleware"
	"github.com/TemperedKirin/fullstack-proyecto/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	env string,
	employeeHandler EmployeeHandler,
	catalogHandler CatalogHandler,
	healthHandler HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fullstack-proyecto"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)

			r.Route("/{empNo}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetEmployee)
				r.Put("/", employeeHandler.UpdateEmployee)
				r.Delete("/", employeeHandler.DeleteEmployee)
			})
		})

		r.Get("/departments", catalogHandler.ListDepartments)
		r.Get("/titles", catalogHandler.ListTitles)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			response.NotFound(w, "Not found")
		})
	})

	return r
}
