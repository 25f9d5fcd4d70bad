package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/edulab-vn/center-backend-go/internal/domain/user"
	"github.com/edulab-vn/center-backend-go/internal/handler/http/middleware"
	"github.com/edulab-vn/center-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Staff      StaffHandler
	Master     MasterHandler
	Attendance AttendanceHandler
	Schedule   ScheduleHandler
	Overtime   OvertimeHandler
	Payroll    PayrollHandler
}

func NewRouter(jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "center-backend"),
		slog.String("version", "v1.0.0"),
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/staffs", func(r chi.Router) {
				r.Get("/", h.Staff.List)
				r.Get("/{id}", h.Staff.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Staff.Create)
					r.Put("/{id}", h.Staff.Update)
					r.Delete("/{id}", h.Staff.Delete)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Master.ListShifts)
				r.Get("/{id}", h.Master.GetShift)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Master.CreateShift)
					r.Put("/{id}", h.Master.UpdateShift)
					r.Delete("/{id}", h.Master.DeleteShift)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.Master.ListRoles)
				r.Get("/{id}", h.Master.GetRole)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Master.CreateRole)
					r.Put("/{id}", h.Master.UpdateRole)
					r.Delete("/{id}", h.Master.DeleteRole)
				})
			})

			r.Route("/staff-attendances", func(r chi.Router) {
				r.Post("/scan", h.Attendance.Scan)
				r.Get("/", h.Attendance.ListEvents)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Attendance.CreateEvent)
					r.Put("/{id}", h.Attendance.UpdateEvent)
					r.Delete("/{id}", h.Attendance.DeleteEvent)
				})
			})

			r.Route("/staff-schedules", func(r chi.Router) {
				r.Get("/", h.Schedule.List)
				r.Get("/{id}", h.Schedule.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Schedule.Create)
					r.Post("/assign-shift", h.Schedule.AssignShiftRange)
					r.Put("/{id}", h.Schedule.Update)
					r.Delete("/{id}", h.Schedule.Delete)
				})
			})

			r.Route("/ot-requests", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOvertimeView))
				r.Get("/", h.Overtime.List)
				r.Get("/{id}", h.Overtime.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOvertimeResolve))
					r.Post("/{id}/approve", h.Overtime.Approve)
					r.Post("/{id}/reject", h.Overtime.Reject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollGenerate))
				r.Get("/report", h.Payroll.GenerateReport)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
