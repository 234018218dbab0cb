package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carx-store/config"
	"carx-store/controllers"
	"carx-store/routes"
	"carx-store/services"
	"carx-store/store"
	"carx-store/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Set the JWT secret key
	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set, using the built-in development key")
	} else {
		utils.JwtKey = []byte(cfg.JWTSecret)
	}

	ctx := context.Background()
	db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	if err := bootstrap(ctx, cfg, db); err != nil {
		log.Fatal(err)
	}

	emailService := utils.NewEmailService(utils.NewMailer(cfg), cfg.ShopName)
	payment := services.PaymentConfig{
		KeyID:    cfg.PaymentKeyID,
		Currency: cfg.PaymentCurrency,
		ShopName: cfg.ShopName,
	}

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		User:     controllers.NewUserController(db, emailService),
		Product:  controllers.NewProductController(db),
		Cart:     controllers.NewCartController(db),
		Wishlist: controllers.NewWishlistController(db),
		Order:    controllers.NewOrderController(db, emailService, payment),
		Admin:    controllers.NewAdminController(db, emailService),
	})

	handler := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(router)
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		fmt.Printf("Server is running on port %s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

// openStore connects the backend named by STORE_DRIVER
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("POSTGRES_DSN is not set")
		}
		return store.NewPostgresStore(ctx, cfg.PostgresDSN)
	case config.DriverJSON:
		return store.NewJSONStore(cfg.DataFile)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// bootstrap seeds the catalog and creates the admin account when configured
func bootstrap(ctx context.Context, cfg config.Config, db store.Store) error {
	if cfg.SeedFile != "" {
		products, err := store.LoadProductsFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		added, err := store.SeedProducts(ctx, db, products)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if added > 0 {
			log.Printf("Seeded %d products from %s", added, cfg.SeedFile)
		}
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if err := store.EnsureAdmin(ctx, db, "Admin", cfg.AdminEmail, hash); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
	}
	return nil
}
