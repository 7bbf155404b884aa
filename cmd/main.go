package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ApriadiS/merchantportal-client-sub000/internal/auth"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/cache"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/calculator"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/middleware"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/notification"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/promo"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/promotenor"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/store"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/user"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("tidak menemukan file .env, memakai environment proses")
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatal("gagal terhubung ke database:", err)
	}

	if err := database.AutoMigrate(
		&user.User{},
		&store.Store{},
		&promo.Promo{},
		&promotenor.PromoTenor{},
	); err != nil {
		log.Fatal("gagal menjalankan migrasi:", err)
	}

	// Cache: Redis in production, in-memory when unset.
	var snapshotCache cache.Repository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		snapshotCache = cache.NewRedisCache(addr)
	} else {
		snapshotCache = cache.NewMemoryCache()
	}

	webhook := notification.NewWebhook(os.Getenv("ALERT_WEBHOOK_URL"))

	// Handlers
	loader := calculator.NewSnapshotLoader(database, snapshotCache)
	promoRepo := promo.NewRepository(database)
	tenorRepo := promotenor.NewRepository(database)

	userHandler := user.NewHandler(database)
	storeHandler := store.NewHandler(database)
	promoHandler := promo.NewHandler(promoRepo, loader)
	tenorHandler := promotenor.NewHandler(tenorRepo, promoRepo, loader, webhook)
	calcHandler := calculator.NewHandler(loader)

	rateLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer rateLimiter.Stop()

	// Router
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/login", userHandler.Login).Methods("POST")
	r.Handle("/calculate/{store}",
		middleware.RateLimit(rateLimiter, http.HandlerFunc(calcHandler.Calculate)),
	).Methods("GET")

	// Authenticated portal routes
	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/users", userHandler.List).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.Get).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.Update).Methods("PUT")

	api.HandleFunc("/stores", storeHandler.List).Methods("GET")
	api.HandleFunc("/stores/{id}", storeHandler.Get).Methods("GET")
	api.HandleFunc("/stores/{id}/promos", promoHandler.ListByStore).Methods("GET")

	api.HandleFunc("/promos", promoHandler.List).Methods("GET")
	api.HandleFunc("/promos/{id}", promoHandler.Get).Methods("GET")
	api.HandleFunc("/promos/{id}/tenors", tenorHandler.ListByPromo).Methods("GET")

	// Admin-only routes
	admin := r.NewRoute().Subrouter()
	admin.Use(auth.Middleware, auth.RequireAdmin)

	admin.HandleFunc("/users", userHandler.Create).Methods("POST")
	admin.HandleFunc("/users/{id}", userHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/users/{id}/reset-password", userHandler.ResetPassword).Methods("POST")

	admin.HandleFunc("/stores", storeHandler.Create).Methods("POST")
	admin.HandleFunc("/stores/{id}", storeHandler.Update).Methods("PUT")
	admin.HandleFunc("/stores/{id}", storeHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/promos", promoHandler.Create).Methods("POST")
	admin.HandleFunc("/promos/{id}", promoHandler.Update).Methods("PUT")
	admin.HandleFunc("/promos/{id}", promoHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/promos/{id}/tenors", tenorHandler.Create).Methods("POST")
	admin.HandleFunc("/promos/{id}/tenors/batch", tenorHandler.CreateBatch).Methods("POST")
	admin.HandleFunc("/promos/{id}/tenors/import", tenorHandler.ImportCSV).Methods("POST")
	admin.HandleFunc("/tenors/{id}", tenorHandler.Update).Methods("PUT")
	admin.HandleFunc("/tenors/{id}", tenorHandler.Delete).Methods("DELETE")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("server berjalan di http://localhost:%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
