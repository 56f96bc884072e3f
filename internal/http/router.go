// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, rate limiting, and admin gating.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tarumenyan/studio-backend/docs"
	"github.com/tarumenyan/studio-backend/internal/auth"
	"github.com/tarumenyan/studio-backend/internal/config"
	"github.com/tarumenyan/studio-backend/internal/http/handlers"
	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/services"
	"github.com/tarumenyan/studio-backend/internal/storage"
)

// Deps are the runtime dependencies the routes are built from.
type Deps struct {
	DB     *gorm.DB
	Store  storage.Store
	Tokens *auth.Issuer
	// Chatbot is the conversational upstream; nil leaves /rasa unregistered.
	Chatbot services.ChatbotClient
}

var corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey}
var corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (larger cap for multipart)
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per IP, bypass on replay; health checks and static files exempt)
//  9. CORS, security headers, gzip
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	serviceName := cfg.OTEL.ServiceName
	if serviceName == "" {
		serviceName = "tarumenyan-backend"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(cfg.Upload.MaxBodyBytes, cfg.Upload.MaxUploadBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Dependency injection: services ← db/store/tokens/upstream
	onFileError := func(op, path string, err error) {
		log.Warn().Err(err).Str("op", op).Str("path", path).Msg("file cleanup failed")
	}
	authSvc := services.NewAuthService(deps.DB, deps.Tokens)
	faqSvc := services.NewFAQService(deps.DB)
	historySvc := services.NewChatHistoryService(deps.DB, cfg.IdempotencyTTL)
	historySvc.OnPurgeError = func(err error) {
		log.Warn().Err(err).Msg("idempotency purge failed")
	}
	svcs := handlers.Services{
		Auth:     authSvc,
		FAQ:      faqSvc,
		Gallery:  services.NewGalleryService(deps.DB, deps.Store, onFileError),
		Packages: services.NewPackageService(deps.DB, cfg.Upload.DocumentsDir, cfg.Upload.PricelistFilename, cfg.Upload.PricelistPublicCopy),
		Reviews:  services.NewReviewService(deps.DB, deps.Store, onFileError),
		History:  historySvc,
	}
	if deps.Chatbot != nil {
		bot := &services.ChatbotService{
			Client:    deps.Chatbot,
			FAQ:       faqSvc,
			Threshold: cfg.Threshold,
			OnRecordError: func(err error) {
				log.Warn().Err(err).Msg("chat history record failed")
			},
		}
		if cfg.Chatbot.RecordHistory {
			bot.History = historySvc
		}
		svcs.Chatbot = bot
	}
	h := handlers.New(svcs)

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		middleware.IdempotencyScopes{joinPath(cfg.APIBasePath, "/chat-history"): services.ChatHistoryScope},
		func(ctx context.Context, _ string, key string, now time.Time) (bool, error) {
			return historySvc.HasReplay(ctx, key, now)
		},
	))

	if cfg.RateRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClient(),
			"/health", "/metrics", "/swagger", prefixOr(cfg.Upload.PublicPrefix, "/uploads"), "/documents")
		r.Use(rl.Handler())
	}

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStorePaths: []string{joinPath(cfg.APIBasePath, "/login"), joinPath(cfg.APIBasePath, "/register")},
		EnablePolicy: true,
		Expose:       []string{handlers.HeaderChatbotFallback},
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", prefixOr(cfg.Upload.PublicPrefix, "/uploads"), "/documents"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Static files
	if strings.EqualFold(cfg.Upload.Backend, "local") || cfg.Upload.Backend == "" {
		if cfg.Upload.Dir != "" {
			r.Static(prefixOr(cfg.Upload.PublicPrefix, "/uploads"), cfg.Upload.Dir)
		}
	}
	if cfg.Upload.DocumentsDir != "" {
		r.Static("/documents", cfg.Upload.DocumentsDir)
	}

	authn := middleware.Authenticate(deps.Tokens)
	adminOnly := func(hs ...gin.HandlerFunc) []gin.HandlerFunc {
		return append([]gin.HandlerFunc{authn, middleware.RequireAdmin()}, hs...)
	}
	image := middleware.FileUpload(middleware.UploadOptions{
		Field:    "image",
		Allowed:  middleware.ImageTypes,
		MaxBytes: cfg.Upload.MaxUploadBytes,
		Message:  "Hanya file PNG, JPG, atau JPEG yang diperbolehkan",
	})
	pricelist := middleware.FileUpload(middleware.UploadOptions{
		Field:    "pricelist",
		Allowed:  middleware.PDFTypes,
		MaxBytes: cfg.Upload.MaxUploadBytes,
		Message:  "Hanya file PDF yang diperbolehkan",
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Accounts
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		// FAQ
		api.GET("/faq", h.ListFAQ)
		api.GET("/faq/search", h.SearchFAQ)
		api.POST("/faq", adminOnly(h.CreateFAQ)...)
		api.PUT("/faq/:id", adminOnly(h.UpdateFAQ)...)
		api.DELETE("/faq/:id", adminOnly(h.DeleteFAQ)...)

		// Gallery
		api.GET("/gallery", h.ListGallery)
		api.POST("/gallery", adminOnly(image, h.CreateGallery)...)
		api.PUT("/gallery/:id", adminOnly(image, h.UpdateGallery)...)
		api.DELETE("/gallery/:id", adminOnly(h.DeleteGallery)...)

		// Packages
		api.GET("/packages", h.ListPackages)
		api.POST("/packages", adminOnly(h.CreatePackage)...)
		api.POST("/packages/upload-pdf", adminOnly(pricelist, h.UploadPricelist)...)
		api.PUT("/packages/:id", adminOnly(h.UpdatePackage)...)
		api.DELETE("/packages/:id", adminOnly(h.DeletePackage)...)

		// Reviews
		api.GET("/reviews", h.ListReviews)
		api.POST("/reviews", adminOnly(image, h.CreateReview)...)
		api.PUT("/reviews/:id", adminOnly(image, h.UpdateReview)...)
		api.DELETE("/reviews/:id", adminOnly(h.DeleteReview)...)

		// Chat history
		api.POST("/chat-history", h.CreateChatHistory)
		api.GET("/chat-history/session/:session_id", h.ChatHistoryBySession)
		api.GET("/chat-history/all", adminOnly(h.AllChatHistory)...)
		api.GET("/chat-history/analytics", adminOnly(h.ChatAnalytics)...)
		api.DELETE("/chat-history/cleanup/:days", adminOnly(h.CleanupChatHistory)...)

		// Chatbot
		if svcs.Chatbot != nil {
			api.POST("/rasa", h.Rasa)
			api.GET("/rasa/status", h.RasaStatus)
		}
	}
}

// corsMiddleware allows every origin when none is configured, otherwise only
// the allowlist.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "ETag", middleware.HeaderIdempotencyReplayed, handlers.HeaderChatbotFallback},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// ACAO: * even without an Origin header (health checks, curl)
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cc),
		}
	}
	cc.AllowOrigins = origins
	return []gin.HandlerFunc{cors.New(cc)}
}

// limitBody caps request bodies with http.MaxBytesReader: multipart requests
// get uploadMax, everything else bodyMax. Non-positive caps disable the limit.
func limitBody(bodyMax, uploadMax int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := bodyMax
		if strings.HasPrefix(strings.ToLower(c.ContentType()), "multipart/") {
			limit = 0
			if uploadMax > 0 {
				// headroom for the form fields around the file
				limit = uploadMax + 1<<20
			}
		}
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	return strings.TrimRight(base, "/") + p
}

func prefixOr(p, def string) string {
	if p = strings.TrimRight(p, "/"); p == "" {
		return def
	}
	return p
}
