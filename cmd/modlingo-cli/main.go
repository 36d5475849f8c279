package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/modlingo/modlingo/internal/assets"
	"github.com/modlingo/modlingo/internal/backup"
	"github.com/modlingo/modlingo/internal/config"
	"github.com/modlingo/modlingo/internal/db"
	"github.com/modlingo/modlingo/internal/library"
	"github.com/modlingo/modlingo/internal/models"
	"github.com/modlingo/modlingo/internal/quests"
	"github.com/modlingo/modlingo/internal/store"
	"github.com/modlingo/modlingo/internal/translator"
	"github.com/modlingo/modlingo/internal/translator/providers"
	"github.com/modlingo/modlingo/internal/translator/providers/gemini"
	"github.com/modlingo/modlingo/internal/translator/providers/openai"
)

// Translates a single language or quest file from the command line, without
// the web server. Ctrl-C interrupts the run between chunks; completed chunks
// keep their results.
func main() {
	filePath := flag.String("file", "", "path to a .json/.lang language file or a quest file (.snbt, DefaultQuests.json)")
	lang := flag.String("lang", "", "target language, e.g. \"German\"")
	outDir := flag.String("out", "", "output directory (defaults to output.path from config)")
	flag.Parse()

	if *filePath == "" || *lang == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration from config.yml
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the database connection
	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := db.RunMigrations(database, assets.MigrationsFS); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	st := store.New(database)

	oa := cfg.OpenAI()
	providers.Register(openai.New(openai.Config{
		APIKey:      oa.APIKey,
		BaseURL:     oa.BaseURL,
		Model:       oa.Model,
		Temperature: oa.Temperature,
	}))
	gm := cfg.Gemini()
	providers.Register(gemini.New(gemini.Config{
		APIKey:      gm.APIKey,
		BaseURL:     gm.BaseURL,
		Model:       gm.Model,
		Temperature: gm.Temperature,
	}))

	ext := strings.ToLower(filepath.Ext(*filePath))
	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *filePath, err)
	}

	// Quest files carry their text inside a larger structure; the encode
	// step writes translations back into the original document. Plain
	// language files are re-encoded from the translated dataset alone.
	var dataset *models.Dataset
	var encode func(map[string]string) ([]byte, error)
	switch quests.DetectFormat(*filePath) {
	case quests.FormatFTBQuests:
		dataset = quests.ExtractSNBT(string(data))
		encode = func(translations map[string]string) ([]byte, error) {
			return []byte(quests.ApplySNBT(string(data), translations)), nil
		}
	case quests.FormatBetterQuesting:
		dataset, err = quests.ExtractBQ(data)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", *filePath, err)
		}
		encode = func(translations map[string]string) ([]byte, error) {
			return quests.ApplyBQ(data, translations)
		}
	default:
		dataset, err = library.DecodeLang(data, ext)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", *filePath, err)
		}
		encode = func(translations map[string]string) ([]byte, error) {
			out := models.NewDataset()
			for _, key := range dataset.Keys() {
				if v, ok := translations[key]; ok {
					out.Set(key, v)
				}
			}
			return library.EncodeLang(out, ext)
		}
	}
	if dataset.Len() == 0 {
		log.Fatalf("%s contains no translatable entries", *filePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := translator.NewService(cfg, nil, store.NewTelemetrySink(st))
	displayName := filepath.Base(*filePath)
	job, err := svc.CreateJob(dataset, *lang, displayName)
	if err != nil {
		log.Fatalf("Failed to create translation job: %v", err)
	}
	log.Printf("Translating %s (%d entries, %d chunks) to %s",
		displayName, dataset.Len(), len(job.Chunks), *lang)

	// Snapshot the source file before writing anything.
	if _, err := backup.CreateSnapshot(ctx, st, cfg.Backup.Path, displayName, job.SessionID, *lang, []string{*filePath}); err != nil {
		log.Printf("Warning: could not snapshot source file: %v", err)
	}

	err = svc.RunJob(ctx, job.ID)
	switch {
	case errors.Is(err, translator.ErrInterrupted), errors.Is(err, context.Canceled):
		log.Println("Interrupted; writing the chunks that finished.")
	case err != nil:
		log.Fatalf("Translation failed: %v", err)
	}

	combined, err := svc.CombinedContent(job.ID)
	if err != nil {
		log.Fatalf("Failed to assemble results: %v", err)
	}

	encoded, err := encode(combined)
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Output.Path
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	base := strings.TrimSuffix(displayName, ext)
	outPath := filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, sanitizeLang(*lang), ext))
	if err := os.WriteFile(outPath, encoded, 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}

	fmt.Printf("Translation finished: %d of %d entries written to %s\n",
		len(combined), dataset.Len(), outPath)
}

// sanitizeLang turns a display language into a file name fragment.
func sanitizeLang(lang string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), " ", "_"))
}
