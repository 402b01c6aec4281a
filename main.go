package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interview-service/config"
	"interview-service/internal/client"
	"interview-service/internal/handlers"
	"interview-service/internal/interview"
	"interview-service/internal/oracle"
	"interview-service/internal/proctoring"
	"interview-service/internal/repository"
	"interview-service/pkg/cache"
	"interview-service/pkg/database"
	"interview-service/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded")

	pgClient, err := database.NewPostgresClient(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pgClient.InitSchema(ctx); err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL schema: %v", err)
	} else {
		log.Println("PostgreSQL schema initialized")
	}
	cancel()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisClient = nil
	} else {
		log.Println("Connected to Redis")
		defer redisClient.Close()
	}

	rabbitClient, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
	if err != nil {
		log.Printf("Warning: Failed to connect to RabbitMQ: %v", err)
		rabbitClient = nil
	} else {
		log.Println("Connected to RabbitMQ")
		defer rabbitClient.Close()
	}

	geminiClient, err := oracle.NewGeminiClient(context.Background(), cfg.Oracle)
	if err != nil {
		log.Fatalf("Failed to initialize question oracle: %v", err)
	}
	log.Println("Question oracle initialized")

	directoryClient := client.NewDirectoryClient(&cfg.Directory)
	sessionRepo := repository.NewSessionRepository(pgClient.GetDB())
	proctorService := proctoring.NewService(proctoring.NewDetectorClient(&cfg.Proctor))

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "interview-service",
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		if pgClient == nil || geminiClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
		})
	})

	// Optional collaborators stay nil when their backend is down; typed
	// nils would dodge the sessions' nil checks.
	var reportCache interview.ReportCache
	if redisClient != nil {
		reportCache = redisClient
	}
	var events interview.EventPublisher
	if rabbitClient != nil {
		events = rabbitClient
	}

	wsHandler := handlers.NewWebSocketHandler(cfg, geminiClient, directoryClient, sessionRepo, reportCache, events)
	router.GET("/ws", wsHandler.HandleWebSocket)

	proctorHandler := handlers.NewProctoringHandler(proctorService, directoryClient)
	router.POST("/proctor/frame", proctorHandler.HandleFrame)
	router.POST("/proctor/end", proctorHandler.HandleEnd)

	sessionHandler := handlers.NewSessionHandler(sessionRepo)
	router.GET("/sessions/:id", sessionHandler.GetSession)
	router.GET("/candidates/:candidate_id/sessions", sessionHandler.ListCandidateSessions)

	httpAddr := ":" + cfg.Server.HTTPPort
	log.Printf("Interview Service HTTP server starting on port %s...", cfg.Server.HTTPPort)

	go func() {
		if err := router.Run(httpAddr); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Interview service stopped")
}
