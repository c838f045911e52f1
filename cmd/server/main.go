package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/swachhdev/waste-collect/internal/auth"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/handlers"
	"github.com/swachhdev/waste-collect/internal/ingest"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
)

func setupLogging() {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// newRedisClient builds the rate limiter backend. No REDIS_ADDR means no
// limiting; the limiter passes everything through with a nil client.
func newRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func submissionLimit() int64 {
	if v := os.Getenv("SUBMISSION_RATE_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return 30
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}
	setupLogging()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "waste_collect"
	}
	store := db.NewStore(client.Database(dbName))
	log.WithField("database", dbName).Info("Connected to MongoDB")

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize auth service")
	}

	if brokerURL := os.Getenv("MQTT_BROKER_URL"); brokerURL != "" {
		subscriber, err := ingest.NewSubscriber(brokerURL, "waste-collect-server", store.Tracking)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MQTT broker")
		}
		if err := subscriber.Start(); err != nil {
			log.WithError(err).Fatal("Failed to subscribe to tracking topic")
		}
		defer subscriber.Stop()
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	limiter := middleware.NewSubmissionLimiter(newRedisClient(), "waste:submissions", submissionLimit(), time.Hour)

	authHandler := handlers.NewAuthHandler(authService, store)
	profileHandler := handlers.NewProfileHandler(store)
	submissionHandler := handlers.NewSubmissionHandler(store)
	trackingHandler := handlers.NewTrackingHandler(store)
	colonyHandler := handlers.NewColonyHandler(store)
	categoryHandler := handlers.NewCategoryHandler(store)
	notificationHandler := handlers.NewNotificationHandler(store)
	statsHandler := handlers.NewStatsHandler(store)
	exportHandler := handlers.NewExportHandler(store)

	requireCollector := authMiddleware.RequireRole(models.RoleCollector)
	requireManager := authMiddleware.RequireRole(models.RoleManager)
	requireAuthority := authMiddleware.RequireRole(models.RoleAuthority)
	requireReviewer := authMiddleware.RequireAnyRole(models.RoleManager, models.RoleAuthority)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/me", authHandler.Me)

	mux.Handle("/api/profile", profileHandler)
	mux.HandleFunc("/api/profile/options", profileHandler.Options)

	mux.Handle("/api/submissions", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			requireCollector(limiter.Limit(http.HandlerFunc(submissionHandler.Create))).ServeHTTP(w, r)
			return
		}
		submissionHandler.List(w, r)
	}))
	mux.Handle("/api/submissions/status", requireReviewer(http.HandlerFunc(submissionHandler.UpdateStatus)))

	mux.Handle("/api/tracking", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			requireCollector(http.HandlerFunc(trackingHandler.Report)).ServeHTTP(w, r)
			return
		}
		requireReviewer(http.HandlerFunc(trackingHandler.List)).ServeHTTP(w, r)
	}))
	mux.Handle("/api/tracking/latest", requireReviewer(http.HandlerFunc(trackingHandler.Latest)))

	mux.HandleFunc("/api/colonies", colonyHandler.List)
	mux.HandleFunc("/api/categories", categoryHandler.List)

	mux.HandleFunc("/api/notifications", notificationHandler.List)
	mux.HandleFunc("/api/notifications/read", notificationHandler.MarkRead)

	mux.Handle("/api/stats/system", requireAuthority(http.HandlerFunc(statsHandler.System)))
	mux.Handle("/api/stats/colony", requireManager(http.HandlerFunc(statsHandler.Colony)))

	mux.Handle("/api/export", requireReviewer(http.HandlerFunc(exportHandler.Download)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("HTTP server listening")
	if err := http.ListenAndServe(":"+port, authMiddleware.Authenticate(mux)); err != nil {
		log.WithError(err).Fatal("HTTP server failed")
	}
}
