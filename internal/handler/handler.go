package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/crewdesk-dev/back-office/backend/internal/config"
	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/crewdesk-dev/back-office/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	adminOnly := h.RequiredRole([]domain.Role{domain.RoleAdmin})

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(adminOnly).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(adminOnly).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(adminOnly).Delete("/", h.DeleteUser)
				r.With(adminOnly).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.With(adminOnly).Post("/", h.CreateClient)
			r.Get("/", h.GetAllClients)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.client)
				r.Get("/", h.GetClient)
				r.With(adminOnly).Patch("/", h.UpdateClient)
				r.With(adminOnly).Delete("/", h.DeleteClient)
			})
		})

		r.Route("/jobseekers", func(r chi.Router) {
			r.Post("/", h.CreateJobseeker)
			r.Get("/", h.GetAllJobseekers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.jobseeker)
				r.Get("/", h.GetJobseeker)
				r.Patch("/", h.UpdateJobseeker)
				r.With(adminOnly).Delete("/", h.DeleteJobseeker)
			})
		})

		r.Route("/positions", func(r chi.Router) {
			r.Post("/", h.CreatePosition)
			r.Get("/", h.GetAllPositions)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.position)
				r.Get("/", h.GetPosition)
				r.Patch("/", h.UpdatePosition)
				r.With(adminOnly).Delete("/", h.DeletePosition)
				r.Get("/matches", h.GetPositionMatches)
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Post("/", h.CreateAssignment)
			r.Get("/", h.GetAllAssignments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.assignment)
				r.Get("/", h.GetAssignment)
				r.Patch("/status", h.UpdateAssignmentStatus)
			})
		})

		r.Route("/timesheets", func(r chi.Router) {
			r.Post("/", h.CreateTimesheet)
			r.Get("/", h.GetAllTimesheets)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timesheet)
				r.Get("/", h.GetTimesheet)
				r.With(adminOnly).Patch("/status", h.UpdateTimesheetStatus)
				r.Delete("/", h.DeleteTimesheet)
			})
		})

		r.Route("/bulk-timesheets", func(r chi.Router) {
			r.Post("/", h.CreateBulkTimesheet)
			r.Get("/", h.GetAllBulkTimesheets)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.bulkTimesheet)
				r.Get("/", h.GetBulkTimesheet)
				r.With(adminOnly).Patch("/status", h.UpdateBulkTimesheetStatus)
				r.Delete("/", h.DeleteBulkTimesheet)
			})
		})

		r.Route("/drafts/{form}", func(r chi.Router) {
			r.Put("/", h.SaveDraft)
			r.Get("/", h.GetDraft)
			r.Delete("/", h.DeleteDraft)
		})

		r.With(adminOnly).Get("/activities", h.GetActivities)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/payroll-summary", h.GetPayrollSummary)
			r.Get("/billing-summary", h.GetBillingSummary)
			r.Get("/payroll-register.xlsx", h.GetPayrollRegister)
		})
	})
}
