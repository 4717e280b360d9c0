package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/repository"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	auditChannel *amqp.Channel
	redisClient  *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, auditCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		auditChannel: auditCh,
		redisClient:  rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// every route requires an authenticated caller; tokens are minted by the
	// external auth service and only verified here
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.currentUser)

		r.Route("/shops", func(r chi.Router) {
			r.Post("/", h.CreateShop)
			r.Get("/", h.GetMyShops)

			r.Route("/{shopID}", func(r chi.Router) {
				r.Use(h.shop)
				r.With(h.requireShopMember).Get("/", h.GetShop)

				r.Route("/labels", func(r chi.Router) {
					r.With(h.requireShopMember).Get("/", h.GetShiftLabels)
					r.With(h.requireShopManager).Post("/", h.CreateShiftLabel)
					r.With(h.requireShopManager).Patch("/{labelID}", h.UpdateShiftLabel)
					r.With(h.requireShopManager).Delete("/{labelID}", h.DeleteShiftLabel)
				})

				r.Route("/rules", func(r chi.Router) {
					r.Use(h.requireShopManager)
					r.Get("/", h.GetRules)
					r.Post("/", h.CreateRule)
					r.Delete("/{ruleID}", h.DeleteRule)
				})

				r.Route("/off-days", func(r chi.Router) {
					r.With(h.requireShopMember).Post("/", h.RequestOffDay)
					r.With(h.requireShopManager).Get("/", h.GetOffDays)
					r.With(h.requireShopManager).Post("/{offDayID}/approve", h.ApproveOffDay)
					r.With(h.requireShopManager).Post("/{offDayID}/reject", h.RejectOffDay)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.With(h.requireShopMember).Get("/", h.GetShifts)
					r.With(h.requireShopManager).Post("/", h.StoreShift)
					r.With(h.requireShopManager).Post("/remove", h.RemoveShift)
				})

				r.With(h.requireShopManager).Post("/auto-assign", h.AutoAssignShifts)

				r.Route("/swap-requests", func(r chi.Router) {
					r.Use(h.requireShopMember)
					r.Post("/", h.CreateSwapRequest)
					r.Get("/", h.GetSwapRequests)
				})

				r.With(h.requireShopManager).Get("/history", h.GetShopHistory)
			})
		})

		r.Route("/shifts/{shiftID}", func(r chi.Router) {
			r.Use(h.shiftRecord)
			r.Patch("/", h.UpdateShift)
			r.Delete("/", h.DeleteShift)
		})

		r.Route("/swap-requests/{requestID}", func(r chi.Router) {
			r.Use(h.swapRequest)
			r.Post("/approve", h.ApproveSwapRequest)
			r.Post("/reject", h.RejectSwapRequest)
		})
	})
}
