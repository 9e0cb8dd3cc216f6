// internal/wire/wire.go
package wire

import (
	"net/http"

	"interview-booking/internal/adaptor"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/usecase"
	"interview-booking/pkg/database"
	"interview-booking/pkg/mailer"
	"interview-booking/pkg/middleware"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.EmailService,
	gateway usecase.PaymentGateway,
	logger *zap.Logger,
) *App {
	// Initialize services dan handlers
	service := usecase.NewService(db, repo, config, mail, gateway, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireAvailability(r, handler.Availability, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireWallet(r, handler.Wallet, repo, config, logger)
	wirePayment(r, handler.Payment, repo, config, logger)
	wireRating(r, handler.Rating, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
