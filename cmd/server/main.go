package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tipofmy/portal/internal/api"
	"github.com/tipofmy/portal/internal/config"
	"github.com/tipofmy/portal/internal/notify"
	"github.com/tipofmy/portal/internal/repository/postgres"
	"github.com/tipofmy/portal/internal/waitlist"
	"github.com/tipofmy/portal/internal/web"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	slash := strings.Index(rest, "/")
	if slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

// openDatabase connects with conservative timeouts so a slow or
// unreachable Postgres cannot hang request handlers.
func openDatabase(dbURL string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(dbURL, "?") {
		sep = "&"
	}
	if !strings.Contains(dbURL, "connect_timeout") {
		dbURL += sep + "connect_timeout=5"
		sep = "&"
	}
	dbURL += sep + "options=-c%20statement_timeout%3D15000"
	log.Printf("DB URL host portion: ...@%s/...", extractHost(dbURL))

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(3)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)
	return db, nil
}

func buildNotifier(ctx context.Context, cfg *config.Config) (waitlist.Notifier, error) {
	if cfg.Notify.Mode == "live" {
		return notify.NewSESNotifier(ctx, cfg.SES, cfg.Notify)
	}
	return notify.NewSimulatedNotifier(cfg.Notify.OperatorEmail, cfg.Notify.SimulatedDelay())
}

func main() {
	log.Println("TipOfMy portal server starting")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		log.Printf("Warning: database ping failed: %v (signups will fail until it recovers)", err)
	} else {
		log.Println("Database connected")
	}
	pingCancel()

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize notifier: %v", err)
	}
	log.Printf("Operator notifications: mode=%s", notifier.Mode())

	svc := waitlist.NewService(postgres.NewSignupRepo(db), notifier, cfg.Waitlist.Source)

	page, err := web.NewPage(cfg.Waitlist.RedirectBaseURL)
	if err != nil {
		log.Fatalf("Failed to build landing page: %v", err)
	}

	router := api.SetupRoutes(
		api.NewWaitlistHandler(svc),
		api.NewHealthChecker(db, notifier.Mode()),
		page,
		web.StaticHandler(),
	)
	server := api.NewServer(router)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized — server is ready")

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
