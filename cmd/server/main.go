package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"ecotrack-backend/internal/cache"
	"ecotrack-backend/internal/database"
	"ecotrack-backend/internal/events"
	"ecotrack-backend/internal/handlers"
	"ecotrack-backend/internal/middleware"
	"ecotrack-backend/internal/services"
	"ecotrack-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 ECOTRACK BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("❌ FATAL ERROR: DATABASE_URL environment variable is required")
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Connect to database
	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	log.Println("🌱 Seeding database with initial data...")
	if err := database.SeedUsers(db); err != nil {
		log.Fatal(err)
	}
	if err := database.SeedBins(db); err != nil {
		log.Fatal(err)
	}
	if err := database.SeedEcoFacts(db); err != nil {
		log.Fatal(err)
	}
	log.Println("✅ Database seeded successfully")

	// Initialize Firebase Cloud Messaging
	// Supports both file path and base64-encoded credentials (for cloud deployments)
	var fcmService *services.FCMService
	if fcmCredsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64"); fcmCredsBase64 != "" {
		fcmService, err = services.NewFCMServiceFromBase64(fcmCredsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from base64: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from base64 credentials")
		}
	} else {
		fcmCredentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
		if fcmCredentialsFile == "" {
			fcmCredentialsFile = "./firebase-service-account.json"
		}
		fcmService, err = services.NewFCMService(fcmCredentialsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from file: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from file")
		}
	}

	// Initialize Kafka alert producer
	var producer *events.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_ALERT_TOPIC")
		if topic == "" {
			topic = "bin-alerts"
		}
		producer = events.NewProducer(strings.Split(brokers, ","), topic)
		defer producer.Close()
		log.Printf("✅ Kafka alert producer started (topic: %s)", topic)
	} else {
		log.Println("⚠️  KAFKA_BROKERS not set, bin alert events disabled")
	}

	// Initialize Redis leaderboard cache
	var leaderboardCache *cache.Cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		leaderboardCache, err = cache.New(redisURL)
		if err != nil {
			log.Printf("⚠️  Failed to connect to Redis: %v (leaderboard cache disabled)", err)
			leaderboardCache = nil
		} else {
			defer leaderboardCache.Close()
			log.Println("✅ Redis leaderboard cache connected")
		}
	} else {
		log.Println("⚠️  REDIS_URL not set, leaderboard cache disabled")
	}

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	classifier := services.RandomClassifier{}

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))
	r.Post("/api/auth/register", handlers.Register(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Get("/auth/status", handlers.GetAuthStatus(db))

			// Waste logging
			r.Post("/waste", handlers.LogWaste(db, wsHub, fcmService))
			r.Get("/waste", handlers.GetWasteEntries(db))

			// Analytics
			r.Get("/analytics", handlers.GetAnalytics(db))
			r.Get("/analytics/predictions", handlers.GetPredictions(db))
			r.Get("/analytics/insights", handlers.GetInsights(db))
			r.Get("/leaderboard", handlers.GetLeaderboard(db, leaderboardCache))

			// Rewards
			r.Get("/rewards", handlers.GetRewards(db))
			r.Post("/rewards/check", handlers.CheckAchievements(db))
			r.Post("/rewards/{id}/claim", handlers.ClaimReward(db))

			// Notifications
			r.Get("/notifications", handlers.GetNotifications(db))
			r.Post("/notifications/{id}/read", handlers.MarkNotificationRead(db))
			r.Post("/fcm-token", handlers.RegisterFCMToken(db))

			// Bins
			r.Get("/bins", handlers.GetBins(db))
			r.Patch("/bins/{id}/level", handlers.UpdateBinLevel(db, wsHub, producer, fcmService))

			// Eco facts
			r.Get("/eco-facts/random", handlers.GetRandomEcoFact(db))

			// Classifier
			r.Post("/ai/classify", handlers.ClassifyWaste(classifier))
			r.Post("/ai/train", handlers.TrainClassifier(db))

			// Profile
			r.Get("/profile", handlers.GetProfile(db))
			r.Patch("/profile", handlers.UpdateProfile(db))
		})

		// Admin endpoints (require authentication + admin role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			r.Post("/admin/bins", handlers.CreateBin(db))
			r.Delete("/admin/bins/{id}", handlers.DeleteBin(db))
			r.Post("/admin/bins/initialize", handlers.InitializeBins(db))
			r.Post("/admin/bins/{id}/collect", handlers.MarkBinCollected(db))
			r.Post("/admin/bins/{id}/maintenance", handlers.SetBinMaintenance(db))
			r.Delete("/admin/bins/{id}/maintenance", handlers.ClearBinMaintenance(db))

			r.Post("/admin/eco-facts/initialize", handlers.InitializeEcoFacts(db))
			r.Get("/admin/stats", handlers.GetAdminStats(db))
			r.Get("/admin/ai/stats", handlers.GetClassifierStats(db))
			r.Post("/admin/reminders", handlers.SendDailyReminders(db))
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Printf("🌐 Server listening on port %s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
