package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	grpcadapter "github.com/simaogato/assetboard-backend/internal/adapter/grpc"
	"github.com/simaogato/assetboard-backend/internal/adapter/httpapi"
	"github.com/simaogato/assetboard-backend/internal/app"
	"github.com/simaogato/assetboard-backend/internal/cache"
	"github.com/simaogato/assetboard-backend/internal/config"
	"github.com/simaogato/assetboard-backend/internal/usecase/asset"
	"github.com/simaogato/assetboard-backend/internal/usecase/comment"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	flag.Parse()

	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 2. Open the record store
	store, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()
	log.Printf("Using %s record store", cfg.StoreBackend)

	// 3. Initialize Services (Use Cases)
	readCache := cache.New(cfg.CacheTTL)
	assetService := asset.NewAssetService(store, readCache, cfg.RecomputeDerived)
	commentService := comment.NewCommentService(store, readCache)

	// 4. Start HTTP server
	sessions, err := httpapi.NewSessionManager(cfg.AccessPIN, cfg.SessionSecret, cfg.SessionMaxAge, cfg.SecureCookies)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	staticDir := cfg.StaticDir
	if _, err := os.Stat(staticDir); err != nil {
		log.Printf("Static dir %q not found, serving API only", staticDir)
		staticDir = ""
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(assetService, commentService, sessions, staticDir).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// 5. Start gRPC health server (optional)
	var grpcServer *grpcadapter.Server
	if cfg.GRPCAddr != "" {
		grpcServer = grpcadapter.NewServer(cfg.AccessPIN)

		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
		}

		go grpcadapter.RunHealthProbe(ctx, grpcServer.Health, grpcadapter.StoreProbe(store), cfg.HealthInterval)

		go func() {
			log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				log.Fatalf("Failed to serve gRPC server: %v", err)
			}
		}()
	}

	// Graceful shutdown
	waitForShutdown(ctx, httpServer, grpcServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(ctx context.Context, httpServer *http.Server, grpcServer *grpcadapter.Server) {
	<-ctx.Done()
	log.Println("Received shutdown signal. Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")

	if grpcServer != nil {
		grpcServer.GracefulStop()
		log.Println("gRPC server stopped")
	}
}
