package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sawantaditi24/RoomSync/internal/api"
	"github.com/sawantaditi24/RoomSync/internal/db"
	"github.com/sawantaditi24/RoomSync/internal/store"
)

func main() {
	// Optional .env file; real environment variables win.
	_ = godotenv.Load()

	logger, err := newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_DEV") == "1")
	if err != nil {
		os.Stderr.WriteString("failed to set up logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	dbPath := flag.String("db", envOr("DATABASE_PATH", "roomsync.sqlite3"), "path to SQLite database file")
	addr := flag.String("addr", ":"+envOr("PORT", "5001"), "listen address")
	origins := flag.String("origins", envOr("ALLOWED_ORIGINS", "*"), "comma-separated CORS origins")
	flag.Parse()

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalw("failed to open database", "path", *dbPath, "error", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}

	// Startup hygiene pass; the same sweep also runs before every list read.
	posts, items, err := store.DeleteOrphans(context.Background(), database)
	if err != nil {
		log.Fatalw("startup orphan sweep failed", "error", err)
	}
	if posts > 0 || items > 0 {
		log.Infow("removed orphaned records", "availabilities", posts, "marketplace_items", items)
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.NewRouter(database, log, *origins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server listening", "addr", *addr, "db", *dbPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

// newLogger builds the process logger: development config when dev is set,
// JSON to stdout otherwise.
func newLogger(level string, dev bool) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}

	if dev {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		return cfg.Build()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), lvl)
	return zap.New(core), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
