package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/modlingo/modlingo/internal/api"
	"github.com/modlingo/modlingo/internal/core"
	"github.com/modlingo/modlingo/internal/jobs"
	"github.com/modlingo/modlingo/internal/translator/providers"
	"github.com/modlingo/modlingo/internal/translator/providers/gemini"
	"github.com/modlingo/modlingo/internal/translator/providers/openai"
)

// A minimal server entrypoint without the watcher, update check or
// graceful shutdown of the root binary. Useful for containers where the
// orchestrator handles lifecycle.
func main() {
	// Initialize the core application components
	app, err := core.New("dev")
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

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

	go app.WsHub().Run()

	// Initial mod scan on startup, then the scheduled jobs.
	log.Println("Performing initial mod scan...")
	if err := app.Library().Refresh(); err != nil {
		log.Printf("Warning: initial mod scan failed: %v", err)
	}
	log.Println("Initial scan complete.")
	jobs.StartJobs(app)

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config().Port)
	log.Printf("Starting web server on %s", addr)

	// Start the HTTP server
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
