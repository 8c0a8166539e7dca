package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kw-muji/team-match-api/internal/auth"
	"github.com/kw-muji/team-match-api/internal/config"
	"github.com/kw-muji/team-match-api/internal/constants"
	"github.com/kw-muji/team-match-api/internal/database"
	"github.com/kw-muji/team-match-api/internal/handlers"
	"github.com/kw-muji/team-match-api/internal/logger"
	"github.com/kw-muji/team-match-api/internal/mail"
	"github.com/kw-muji/team-match-api/internal/middleware"
	"github.com/kw-muji/team-match-api/internal/otp"
	"github.com/kw-muji/team-match-api/internal/repository"
	"github.com/kw-muji/team-match-api/internal/services"
	"github.com/kw-muji/team-match-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zapLog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis backs the verification-code store
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLog.Fatal("failed to connect to redis", zap.Error(err))
	}

	// Object storage for project images and resume files
	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3BucketURL)
		if err != nil {
			zapLog.Fatal("failed to initialize S3 uploader", zap.Error(err))
		}
		uploader = s3Uploader
	} else {
		zapLog.Warn("S3_BUCKET not set, file uploads are disabled")
		uploader = storage.NoopUploader{}
	}

	// Mail provider for verification codes
	var sender mail.Sender
	if cfg.ResendAPIKey != "" {
		sender = mail.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailReplyTo)
	} else {
		sender = mail.NewLogSender(zapLog)
	}

	tokens := auth.NewManager(cfg.JWTIssuer, cfg.JWTSecretKey, constants.AccessTokenTTL)
	codes := otp.NewStore(rdb, constants.AuthCodeTTL)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)

	// Services
	teamService := services.NewTeamService(projectRepo, resumeRepo, uploader, zapLog)
	surveyService := services.NewSurveyService(surveyRepo, userRepo)
	mypageService := services.NewMypageService(userRepo, resumeRepo, uploader, zapLog)
	authService := services.NewAuthService(userRepo, codes, sender, tokens, zapLog)

	// Handlers
	teamHandler := handlers.NewTeamHandler(teamService)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	mypageHandler := handlers.NewMypageHandler(mypageService)
	authHandler := handlers.NewAuthHandler(authService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zapLog))
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/mailSend", authHandler.MailSend)
		authGroup.POST("/authCheck", authHandler.AuthCheck)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/resetPW", authHandler.ResetPW)
	}

	// Team routes (protected)
	team := r.Group("/team")
	team.Use(middleware.RequireAuth(tokens))
	{
		team.GET("", teamHandler.List)
		team.POST("/register", teamHandler.Register)
		team.GET("/my", teamHandler.MyProjects)
		team.GET("/apply", teamHandler.ResumeList)
		team.POST("/apply", teamHandler.Apply)
		team.PATCH("", teamHandler.Update)
		team.GET("/:projectId", teamHandler.Detail)
		team.DELETE("/:projectId", teamHandler.Delete)
	}

	// Survey routes
	survey := r.Group("/survey")
	{
		survey.GET("", surveyHandler.List)
		survey.GET("/:surveyId", surveyHandler.Detail)
		survey.POST("/create/:userId", surveyHandler.Create)
		survey.POST("/submit/:surveyId", middleware.RequireAuth(tokens), surveyHandler.Submit)
	}

	// Mypage routes (protected)
	mypage := r.Group("/mypage")
	mypage.Use(middleware.RequireAuth(tokens))
	{
		mypage.GET("", mypageHandler.Profile)
		mypage.PATCH("", mypageHandler.Update)
		mypage.POST("/checkPW", mypageHandler.CheckPW)
		mypage.POST("/resume", mypageHandler.CreateResume)
		mypage.DELETE("/resume/:resumeId", mypageHandler.DeleteResume)
	}

	// Start server
	zapLog.Info("server starting", zap.String("addr", ":8080"))
	if err := r.Run(":8080"); err != nil {
		zapLog.Fatal("failed to start server", zap.Error(err))
	}
}
