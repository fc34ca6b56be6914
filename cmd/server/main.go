package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/api/handlers"
	"github.com/socialops/content-api/internal/api/middleware"
	job "github.com/socialops/content-api/internal/jobs"
	"github.com/socialops/content-api/internal/queue"
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, x-impersonate-user, x-webhook-secret",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	contentRepo := repository.NewContentRepository(db)
	brandKBRepo := repository.NewBrandKBRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	postingHistoryRepo := repository.NewPostingHistoryRepository(db)

	platformService := service.NewPlatformService(*cfg, companyRepo, socialAccountRepo)
	linkedinService := service.NewLinkedinService(*cfg, socialAccountRepo)
	facebookService := service.NewFacebookService(*cfg, socialAccountRepo)
	publishService := service.NewPublishService(*cfg, companyRepo, socialAccountRepo, contentRepo, postingHistoryRepo, linkedinService, facebookService)
	generationClient := service.NewGenerationClient(*cfg)
	pipelineService := service.NewPipelineService(contentRepo, brandKBRepo, generationClient)
	assetsService := service.NewAssetsService(*cfg, companyRepo, mediaAssetRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, userRepo)

	platform := handlers.NewPlatformHandler(platformService, linkedinService, facebookService, *cfg)
	app.Get("/auth/:provider/connect", authMiddleware.Handler(), platform.Connect)
	app.Get("/auth/:provider/callback", platform.Callback)

	social := app.Group("/social")
	social.Use(authMiddleware.Handler())

	socialHandler := handlers.NewSocialHandler(publishService)
	social.Get("/facebook/insights/:contentCalendarId", socialHandler.Insights)
	social.Post("/:companyId/publish", socialHandler.Publish)
	social.Get("/:companyId/accounts", platform.ListAccounts)

	assets := handlers.NewAssetsHandler(assetsService)
	social.Post("/:companyId/assets", assets.Upload)

	webhook := handlers.NewWebhookHandler(*cfg, pipelineService)
	app.Post("/webhooks/content-review", webhook.ReviewContent)
	app.Post("/webhooks/content-generate", webhook.GenerateCaption)
	app.Post("/webhooks/brand-rules-generate", webhook.GenerateBrandRules)

	// cron jobs
	scheduledPublishJob := job.NewScheduledPublishJob(contentRepo, client)

	// queue
	queueW := queue.NewQueue(contentRepo, publishService)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", scheduledPublishJob.EnqueueDue)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishContent, queueW.HandlePublishContentTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
