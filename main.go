package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"task-gamification-system/handlers"
	"task-gamification-system/middleware"
	"task-gamification-system/models"
	"task-gamification-system/services"
	"task-gamification-system/utils"
	"task-gamification-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // icon uploads only
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Session-Token, X-Service-Token, X-User-ID, X-User-Roles, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	iconStore, err := utils.NewIconStoreFromEnv()
	if err != nil {
		log.Fatal("failed to initialize R2 icon store:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserProgress{},
		&models.PointTransaction{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Reward{},
		&models.UserReward{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.ChallengeProgress{},
		&models.Task{},
		&models.FocusSession{},
		&models.Family{},
		&models.FamilyMember{},
		&models.DirectoryUser{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.SeedCatalogs(db); err != nil {
		log.Fatal("failed to seed catalogs:", err)
	}

	// Redis is optional: without it the global leaderboard just skips its
	// cache and hits Postgres every time.
	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL:", err)
		}
		rdb = redis.NewClient(opts)
	} else {
		log.Println("⚠️  REDIS_URL not set, leaderboard caching disabled")
	}

	identityServiceURL := os.Getenv("IDENTITY_SERVICE_URL")
	if identityServiceURL == "" {
		log.Fatal("IDENTITY_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("GAMIFICATION_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("GAMIFICATION_SERVICE_TOKEN environment variable not set")
	}

	hub := services.NewEventHub()
	tierService := services.NewTierService(db, hub)
	ledgerService := services.NewLedgerService(db, tierService, hub)
	achievementService := services.NewAchievementService(db, ledgerService, hub)
	streakService := services.NewStreakService(db, hub, achievementService)
	badgeService := services.NewBadgeService(db, ledgerService, hub)
	challengeService := services.NewChallengeService(db, ledgerService, badgeService, achievementService)
	rewardService := services.NewRewardService(db, hub)
	leaderboardService := services.NewLeaderboardService(db, rdb)
	characterService := services.NewCharacterService(db, ledgerService, hub)
	authClient := services.NewAuthServiceClient(identityServiceURL, serviceToken)

	// Level milestones fire off every level-up without coupling the ledger to
	// the achievement engine.
	ledgerService.OnLevelUp = func(userID string, oldLevel, newLevel int) {
		achievementService.CheckLevelMilestones(userID)
	}

	directoryWorker := workers.NewUserDirectoryWorker(db, identityServiceURL, "/api/v1/public/profiles", serviceToken)
	familySyncClient := workers.NewFamilySyncClient(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	directoryWorker.Start(ctx)
	go workers.PollFamilyMemberships(ctx, familySyncClient, 30*time.Second)

	services.StartGamificationScheduler(challengeService, achievementService)

	deps := handlers.GamificationDeps{
		Ledger:       ledgerService,
		Tier:         tierService,
		Streak:       streakService,
		Achievements: achievementService,
		Challenges:   challengeService,
		Badges:       badgeService,
		Rewards:      rewardService,
		Leaderboard:  leaderboardService,
		Character:    characterService,
		Hub:          hub,
		AuthClient:   authClient,
	}
	handlers.SetupGamificationRoutes(app, deps)
	handlers.SetupAdminRoutes(app, db, iconStore, deps)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ User Directory Worker running")
	log.Println("✅ Family membership polling running (every 30s)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
