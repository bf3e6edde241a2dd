package http

import (
	"log/slog"
	"os"

	"github.com/Mobiman12/stundenliste-backend-go/internal/handler/http/middleware"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	timesheetHandler TimesheetHandler,
	shiftPlanHandler ShiftPlanHandler,
	overtimeHandler OvertimeHandler,
	bonusHandler BonusHandler,
	closingHandler ClosingHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "stundenliste"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

	r.Route("/api/v1", func(r chi.Router) {
		// All routes require a verified portal token.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.AdminOnly).Get("/", employeeHandler.List)
				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.With(middleware.AdminOnly).Put("/settings", employeeHandler.UpdateSettings)

					r.Get("/entries", timesheetHandler.ListMonth)
					r.Get("/plan", shiftPlanHandler.GetWindow)
					r.Get("/overtime", overtimeHandler.GetLedger)
					r.Get("/bonus", bonusHandler.GetMonth)
					r.With(middleware.AdminOnly).Get("/closings", closingHandler.List)
				})
			})

			r.Route("/entries", func(r chi.Router) {
				r.Post("/", timesheetHandler.SaveEntry)
				r.Delete("/{employeeID}/{date}", timesheetHandler.DeleteEntry)
			})

			r.Route("/plan", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", shiftPlanHandler.SaveDay)
				r.Delete("/{employeeID}/{date}", shiftPlanHandler.DeleteDay)
				r.Post("/absence-range", shiftPlanHandler.ApplyAbsenceRange)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/payouts", overtimeHandler.RecordPayout)
				r.Delete("/{employeeID}/payouts/{payoutID}", overtimeHandler.DeletePayout)
			})

			r.Route("/bonus", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/payouts", bonusHandler.RecordPayout)
				r.Put("/scheme", bonusHandler.SaveScheme)
			})

			r.Route("/closings", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/close", closingHandler.Close)
				r.Post("/reopen", closingHandler.Reopen)
			})
		})
	})
	return r
}
