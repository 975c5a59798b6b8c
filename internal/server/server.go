package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/RochKDev/warranty-manager/config"
	authdomain "github.com/RochKDev/warranty-manager/internal/auth/domain"
	authhandler "github.com/RochKDev/warranty-manager/internal/auth/handler"
	authservice "github.com/RochKDev/warranty-manager/internal/auth/service"
	"github.com/RochKDev/warranty-manager/internal/httpx"
	imagedomain "github.com/RochKDev/warranty-manager/internal/image/domain"
	imagehandler "github.com/RochKDev/warranty-manager/internal/image/handler"
	imageservice "github.com/RochKDev/warranty-manager/internal/image/service"
	"github.com/RochKDev/warranty-manager/internal/logging"
	"github.com/RochKDev/warranty-manager/internal/metrics"
	purchasedomain "github.com/RochKDev/warranty-manager/internal/purchase/domain"
	purchasehandler "github.com/RochKDev/warranty-manager/internal/purchase/handler"
	purchaseservice "github.com/RochKDev/warranty-manager/internal/purchase/service"
	"github.com/RochKDev/warranty-manager/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// multipartOverhead is added on top of the upload limit for the form
// boundaries and headers.
const multipartOverhead = 64 << 10

// Deps are the storage backends the HTTP surface runs on. Attempts and Ready
// may be nil.
type Deps struct {
	Config    *config.Config
	Logger    *slog.Logger
	Users     authdomain.UserRepository
	Attempts  authdomain.LoginAttemptStore
	Purchases purchasedomain.PurchaseRepository
	Products  purchasedomain.ProductRepository
	Blobs     imagedomain.BlobStore
	Ready     func(ctx context.Context) error
}

type Server struct {
	app     *fiber.App
	metrics *metrics.HTTP
	ready   func(ctx context.Context) error
}

func New(d Deps) *Server {
	cfg := d.Config
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryMin)
	userService := authservice.NewUserService(d.Users, d.Attempts, tokenService, cfg)
	authorizer := purchaseservice.NewAuthorizer(d.Users, d.Purchases, d.Products)
	imageService := imageservice.NewImageService(d.Blobs, cfg)

	authH := authhandler.NewAuthHandler(userService, tokenService)
	purchaseH := purchasehandler.NewPurchaseHandler(purchaseservice.NewPurchaseService(authorizer, d.Purchases, cfg))
	productH := purchasehandler.NewProductHandler(purchaseservice.NewProductService(authorizer, d.Products))
	imageH := imagehandler.NewImageHandler(imageService)

	s := &Server{
		app: fiber.New(fiber.Config{
			ErrorHandler:          httpx.ErrorHandler,
			BodyLimit:             int(imageService.MaxBytes()) + multipartOverhead,
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          30 * time.Second,
			IdleTimeout:           120 * time.Second,
			DisableStartupMessage: true,
		}),
		metrics: metrics.NewHTTP(),
		ready:   d.Ready,
	}

	s.app.Use(s.metrics.Middleware())
	s.app.Use(logging.RequestLogger(logger.With("component", "http")))

	s.app.Get("/healthz", s.health)
	s.app.Get("/metrics", s.metrics.Handler())

	api := s.app.Group(constant.APIPrefix)
	authhandler.RegisterRoutes(api, authH)
	purchasehandler.RegisterRoutes(api, purchaseH, productH, authH.RequireAuth)
	imagehandler.RegisterRoutes(api, imageH, authH.RequireAuth)

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			slog.WarnContext(ctx, "health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
