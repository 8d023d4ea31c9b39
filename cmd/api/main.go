package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/middleware"
	"vidtube/internal/modules/auth"
	"vidtube/internal/modules/channel"
	"vidtube/internal/modules/comment"
	"vidtube/internal/modules/healthcheck"
	"vidtube/internal/modules/subscription"
	"vidtube/internal/modules/video"
	"vidtube/internal/pkg/password"
	"vidtube/internal/pkg/storage"
	"vidtube/internal/pkg/token"
	"vidtube/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "vidtube.db"
	}
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)

	issuer := token.NewIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	hasher := password.NewHasher(cfg.BcryptCost)

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.StaticBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	authService := auth.NewService(userRepo, issuer, hasher, store)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:        cfg.CookieSecure,
		SameSite:      parseSameSite(cfg.CookieSameSite),
		Path:          cfg.CookiePath,
		AccessMaxAge:  int(cfg.AccessTokenTTL.Seconds()),
		RefreshMaxAge: int(cfg.RefreshTokenTTL.Seconds()),
	})

	videoService := video.NewService(videoRepo, historyRepo, store)
	videoHandler := video.NewHandler(videoService)

	commentService := comment.NewService(commentRepo, videoRepo)
	commentHandler := comment.NewHandler(commentService)

	subscriptionService := subscription.NewService(subscriptionRepo, userRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	channelService := channel.NewService(userRepo, subscriptionRepo, historyRepo, videoRepo)
	channelHandler := channel.NewHandler(channelService)

	healthHandler := healthcheck.NewHandler()

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Static(cfg.StaticBaseURL, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		healthHandler.RegisterRoutes(v1)
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Authenticate(issuer, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			videoHandler.RegisterRoutes(protected)
			commentHandler.RegisterRoutes(protected)
			subscriptionHandler.RegisterRoutes(protected)
			channelHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
