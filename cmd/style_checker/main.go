package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-style-checker/api"
	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/analytics"
	"github.com/gcbaptista/go-style-checker/internal/cli"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/engine"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "TOML configuration file")
		port       = flag.String("port", "", "Port to run the server on (default 8080)")
		dataDir    = flag.String("data-dir", "", "Directory to store sessions and analytics (default ./checker_data)")
		dictPath   = flag.String("dict", "", "Dictionary to load at startup into the session named after it")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Style Checker - Dictionary-driven style checking service\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                    # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config checker.toml          # Read settings from a TOML file\n", os.Args[0])
		fmt.Printf("  %s --dict corrections.json        # Preload a session with a dictionary\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Style Checker v%s\n", cli.Version)
		return
	}

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Flags override the configuration file
	if *port != "" {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	log.Printf("Using data directory: %s", cfg.DataDir)
	checker := engine.NewEngine(cfg.DataDir, cfg.Check, cfg.MaxWorkers)
	defer checker.Close()

	if *dictPath != "" {
		if _, err := preloadSession(checker, *dictPath); err != nil {
			log.Fatalf("Failed to preload dictionary: %v", err)
		}
	}

	analyticsService := analytics.NewService(checker, cfg.DataDir)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(api.RequestIDMiddleware())
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	// Setup API routes
	api.SetupRoutes(router, checker, analyticsService)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Info: Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: Server shutdown did not complete: %v", err)
	}
}

// preloadSession loads the dictionary at path into the session named after
// it. The session is created on first use and reused on later starts, so a
// persisted data directory keeps a single preloaded session per dictionary.
func preloadSession(checker *engine.Engine, path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return "", err
	}
	defer file.Close()

	sessionID, created := "", false
	for _, info := range checker.ListSessions() {
		if info.Name == path {
			sessionID = info.ID
			break
		}
	}
	if sessionID == "" {
		info, err := checker.CreateSession(path, checker.Defaults())
		if err != nil {
			return "", err
		}
		sessionID, created = info.ID, true
	}

	if _, err := checker.LoadDictionary(sessionID, file, dictionary.FormatFromPath(path)); err != nil {
		if created {
			_ = checker.DeleteSession(sessionID)
		}
		return "", err
	}
	log.Printf("Info: Loaded dictionary %s into session %s", path, sessionID)
	return sessionID, nil
}
