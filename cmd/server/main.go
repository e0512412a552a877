package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luxestore.com/storefront/internal/api"
	"luxestore.com/storefront/internal/config"
	"luxestore.com/storefront/internal/core"
	"luxestore.com/storefront/internal/session"
	"luxestore.com/storefront/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Initialize database store and seed the catalog
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	catalog, err := dbStore.ListProducts("", store.SortFeatured)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded with %d products", len(catalog))

	// Initialize the remote completion client. Without an API key this is a
	// disabled client and every turn resolves through the local fallback.
	completionClient, err := core.NewCompletionClient(context.Background(), config.AppConfig.GeminiAPIKey, catalog, config.AppConfig.StoreBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize completion client: %v", err)
	}
	defer completionClient.Close()

	// Build the local fallback path and the resolution engine
	replyTable := core.NewReplyTable(catalog, config.AppConfig.StoreBaseURL)
	fallback := core.NewFallbackResolver(replyTable)
	resolver := core.NewResolver(completionClient, fallback)

	// Initialize the session manager
	sessionManager := session.NewManager(config.AppConfig.SessionTTL)
	defer sessionManager.Stop()

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(dbStore, resolver, sessionManager)
	router := api.NewRouter(apiHandler, config.AppConfig.AllowedOrigins)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // completion calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
