package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modlingo/modlingo/internal/api"
	"github.com/modlingo/modlingo/internal/auth"
	"github.com/modlingo/modlingo/internal/core"
	"github.com/modlingo/modlingo/internal/jobs"
	"github.com/modlingo/modlingo/internal/library"
	"github.com/modlingo/modlingo/internal/translator/providers"
	"github.com/modlingo/modlingo/internal/translator/providers/gemini"
	"github.com/modlingo/modlingo/internal/translator/providers/openai"
	"github.com/modlingo/modlingo/internal/update"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize the core application components
	app, err := core.New(Version)
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// --- First User Provisioning ---
	userCount, err := app.Store().CountUsers()
	if err != nil {
		log.Fatalf("Could not check user count: %v", err)
	}
	if userCount == 0 {
		log.Println("No users found. Creating default admin account.")
		password := generateRandomPassword(12)
		passwordHash, _ := auth.HashPassword(password)
		if _, err := app.Store().CreateUser("admin", passwordHash, "admin"); err != nil {
			log.Fatalf("Could not create default admin user: %v", err)
		}
		log.Println("==================================================")
		log.Println("Default admin user created.")
		log.Printf("Username: admin")
		log.Printf("Password: %s", password)
		log.Println("Please change this password immediately.")
		log.Println("==================================================")
	}

	// Register the remote translation providers from config.
	registerProviders(app)

	// Progress hub for the web UI.
	go app.WsHub().Run()

	// Initial mod scan, then scheduled rescans and the directory watcher.
	go app.JobManager().RunJob(jobs.JobModScan, app)
	jobs.StartJobs(app)

	watcher := library.NewWatcherService(app)
	if err := watcher.Start(); err != nil {
		log.Printf("Warning: mod directory watcher could not start: %v", err)
	} else {
		defer watcher.Stop()
	}

	// Log a notice when a newer release exists; never block startup on it.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		rel, newer, err := update.NewChecker().CheckForUpdate(ctx, Version)
		if err != nil {
			log.Printf("Update check failed: %v", err)
			return
		}
		if newer {
			log.Printf("A newer release is available: %s (%s)", rel.Version, rel.URL)
		}
	}()

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config().Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// --- Graceful Shutdown ---
	go func() {
		log.Printf("Starting web server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// registerProviders wires up every remote backend from its own config
// section. The config selects which one jobs use; all of them are listable
// and validatable via the API.
func registerProviders(app *core.App) {
	oa := app.Config().OpenAI()
	providers.Register(openai.New(openai.Config{
		APIKey:      oa.APIKey,
		BaseURL:     oa.BaseURL,
		Model:       oa.Model,
		Temperature: oa.Temperature,
	}))
	gm := app.Config().Gemini()
	providers.Register(gemini.New(gemini.Config{
		APIKey:      gm.APIKey,
		BaseURL:     gm.BaseURL,
		Model:       gm.Model,
		Temperature: gm.Temperature,
	}))
}

func generateRandomPassword(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}
