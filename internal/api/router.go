package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/membersys/account-service/internal/api/handler"
	"github.com/membersys/account-service/internal/api/middleware"
	"github.com/membersys/account-service/internal/core/ports"
	"github.com/membersys/account-service/internal/core/service"
	mongodb "github.com/membersys/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/membersys/account-service/internal/infrastructure/db/redis"
)

// Deps carries the external collaborators the router wires together.
type Deps struct {
	DB            *mongo.Database
	Redis         *redis.Client
	Mail          ports.MailQueue
	HashSecret    string
	SessionSecret string
	SessionTTL    time.Duration
	BaseURL       string
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(d.DB)
	tokenRepo := mongodb.NewTokenRepository(d.DB)
	hasher := service.NewHasher(d.HashSecret)
	accountService := service.NewAccountService(accountRepo, tokenRepo, hasher, d.Mail, d.BaseURL, d.Log)
	sessionService := service.NewSessionService(d.SessionSecret, d.SessionTTL, redisdb.NewRevocationStore(d.Redis))

	accountHandler := handler.NewAccountHandler(accountService)
	sessionHandler := handler.NewSessionHandler(accountService, sessionService)
	requireSession := middleware.Session(sessionService, "/signup")

	// --- Account lifecycle routes ---
	e.GET("/", sessionHandler.Home, requireSession)
	e.GET("/signup", accountHandler.SignupForm)
	e.POST("/signup", accountHandler.Signup)
	e.GET("/resend-verification-link", accountHandler.ResendForm)
	e.POST("/resend-verification-link", accountHandler.Resend)
	e.GET("/confirmation/:token", accountHandler.Confirm)
	e.GET("/verification_code", accountHandler.VerificationCodeForm)
	e.POST("/verification_code", accountHandler.VerificationCode)
	e.GET("/password-reset", accountHandler.PasswordResetForm)
	e.POST("/password-reset", accountHandler.PasswordReset)
	e.GET("/form_login", sessionHandler.LoginForm)
	e.POST("/form_login", sessionHandler.Login)
	e.GET("/logout", sessionHandler.Logout)

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
