package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"codeberg.org/snonux/wortkarten/internal"
	"codeberg.org/snonux/wortkarten/internal/anki"
	"codeberg.org/snonux/wortkarten/internal/audio"
	"codeberg.org/snonux/wortkarten/internal/batch"
	"codeberg.org/snonux/wortkarten/internal/card"
	"codeberg.org/snonux/wortkarten/internal/cli"
	"codeberg.org/snonux/wortkarten/internal/domain"
	"codeberg.org/snonux/wortkarten/internal/enricher"
	"codeberg.org/snonux/wortkarten/internal/image"
	"codeberg.org/snonux/wortkarten/internal/record"
	"codeberg.org/snonux/wortkarten/internal/translation"
)

// Status classifies the outcome of one item.
type Status int

const (
	StatusOK Status = iota
	StatusPartialMedia
	StatusFailed
	StatusSkipped // not processed because fail-fast aborted the batch
)

// ItemResult is the per-row outcome of a batch run.
type ItemResult struct {
	Row    batch.Row
	Status Status
	Err    error
}

// Enricher is what the processor needs from the media enrichment stage.
type Enricher interface {
	Enrich(ctx context.Context, m domain.Model) (map[string]string, error)
}

// Processor drives the record -> model -> enrich -> build sequence over a
// batch of rows and hands the built cards to the deck generator.
type Processor struct {
	flags    *cli.Flags
	enricher Enricher
	builder  *card.Builder
}

// NewProcessor wires up the pipeline from the command-line flags. All
// configuration problems (missing keys, unknown providers) surface here,
// before any row is touched.
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	provider, err := buildAudioProvider(flags)
	if err != nil {
		return nil, err
	}

	downloader, err := buildImageDownloader(flags)
	if err != nil {
		return nil, err
	}

	apiKey := cli.GetOpenAIKey()
	translator, err := translation.NewTranslator(apiKey)
	if err != nil && !flags.SkipImages {
		return nil, fmt.Errorf("image search needs translation: %w", err)
	}

	// AI query refinement is optional; without a key the enricher searches
	// with the plain translation.
	var refiner enricher.QueryRefiner
	if gen, err := translation.NewQueryGenerator(apiKey); err == nil {
		refiner = gen
	}

	cfg := enricher.DefaultConfig(flags.MediaDir)
	cfg.AudioFormat = flags.AudioFormat
	cfg.SkipAudio = flags.SkipAudio
	cfg.SkipImages = flags.SkipImages
	if flags.ImageAPI == "openai" {
		cfg.ImageFormat = "png"
	}

	var tr enricher.Translator
	if translator != nil {
		tr = translation.NewCachedTranslator(translator)
	}

	enr, err := enricher.New(cfg, provider, downloader, tr, refiner)
	if err != nil {
		return nil, err
	}

	return &Processor{
		flags:    flags,
		enricher: enr,
		builder:  card.NewBuilder(),
	}, nil
}

func buildAudioProvider(flags *cli.Flags) (audio.Provider, error) {
	if flags.SkipAudio {
		return nil, nil
	}

	switch flags.AudioProvider {
	case "openai":
		config := audio.DefaultProviderConfig()
		config.OpenAIKey = cli.GetOpenAIKey()
		config.OutputFormat = flags.AudioFormat
		config.OpenAIModel = flags.OpenAIModel
		config.OpenAIVoice = flags.OpenAIVoice
		config.OpenAISpeed = flags.OpenAISpeed
		if flags.OpenAIInstruction != "" {
			config.OpenAIInstruction = flags.OpenAIInstruction
		} else if viper.IsSet("audio.openai_instruction") {
			config.OpenAIInstruction = viper.GetString("audio.openai_instruction")
		}

		provider, err := audio.NewProvider(config)
		if err != nil {
			return nil, err
		}
		return audio.NewBreakerProvider(provider), nil

	case "espeak":
		provider, err := audio.NewESpeakProvider(audio.DefaultESpeakConfig())
		if err != nil {
			return nil, err
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", flags.AudioProvider)
	}
}

func buildImageDownloader(flags *cli.Flags) (*image.Downloader, error) {
	if flags.SkipImages {
		return nil, nil
	}

	var searcher image.Searcher
	switch flags.ImageAPI {
	case "pixabay":
		searcher = image.NewPixabayClient(cli.GetPixabayKey())

	case "openai":
		apiKey := cli.GetOpenAIKey()
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for image generation")
		}
		searcher = image.NewOpenAIClient(&image.OpenAIConfig{
			APIKey:  apiKey,
			Model:   flags.OpenAIImageModel,
			Size:    flags.OpenAIImageSize,
			Quality: flags.OpenAIImageQuality,
			Style:   flags.OpenAIImageStyle,
		})

	default:
		return nil, fmt.Errorf("unknown image provider: %s", flags.ImageAPI)
	}

	return image.NewDownloader(searcher, image.DefaultDownloadOptions()), nil
}

// ProcessBatch runs the pipeline over every CSV row under inputDir and
// writes the deck. One item's media failure never aborts the batch unless
// --fail-fast is set; validation failures are reported per row and the
// run continues.
func (p *Processor) ProcessBatch(ctx context.Context, inputDir string) error {
	files, err := batch.DiscoverCSVFiles(inputDir)
	if err != nil {
		return err
	}

	rows, err := batch.ReadAll(files)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.flags.MediaDir, 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	// In CSV mode --output names the export directory; APKG mode treats
	// it as the deck file path in writeDeck.
	csvDir := "."
	if p.flags.AnkiCSV && p.flags.OutputPath != "" {
		csvDir = p.flags.OutputPath
		if err := os.MkdirAll(csvDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputDir:      csvDir,
		IncludeHeaders: true,
	})

	results := p.processRows(ctx, rows, gen)

	okCount, partialCount, failedCount, skippedCount := 0, 0, 0, 0
	var firstFailure error
	for _, result := range results {
		switch result.Status {
		case StatusOK:
			okCount++
		case StatusPartialMedia:
			partialCount++
			fmt.Fprintf(os.Stderr, "Media incomplete for %s: %v\n", result.Row.From(), result.Err)
		case StatusFailed:
			failedCount++
			fmt.Fprintf(os.Stderr, "Error at %s: %v\n", result.Row.From(), result.Err)
		case StatusSkipped:
			skippedCount++
		}
		if firstFailure == nil && result.Err != nil {
			firstFailure = result.Err
		}
	}

	fmt.Printf("\n=== Batch Summary ===\n")
	fmt.Printf("Total rows: %d\n", len(rows))
	fmt.Printf("Cards built: %d\n", okCount+partialCount)
	if partialCount > 0 {
		fmt.Printf("With missing media: %d\n", partialCount)
	}
	if failedCount > 0 {
		fmt.Printf("Failed: %d\n", failedCount)
	}
	if skippedCount > 0 {
		fmt.Printf("Not processed: %d\n", skippedCount)
	}
	fmt.Printf("=====================\n")

	if p.flags.FailFast && (failedCount > 0 || partialCount > 0) {
		return fmt.Errorf("batch aborted after first failure: %w", firstFailure)
	}

	return p.writeDeck(gen)
}

// processRows enriches and builds every row, optionally with a bounded
// worker pool. Items are independent; just their enrich->build order is
// fixed, which each worker preserves on its own. With fail-fast set, the
// first failed or media-incomplete item cancels the batch: dispatch stops
// and the remaining rows are marked skipped without any external calls.
func (p *Processor) processRows(ctx context.Context, rows []batch.Row, gen *anki.Generator) []ItemResult {
	workers := p.flags.Workers
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]ItemResult, len(rows))
	for i := range rows {
		results[i] = ItemResult{Row: rows[i], Status: StatusSkipped}
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex // guards gen
	)
	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue // stays StatusSkipped
				}
				row := rows[i]
				fields, noteType, status, err := p.processRow(ctx, row)
				results[i] = ItemResult{Row: row, Status: status, Err: err}
				if p.flags.FailFast && status != StatusOK {
					cancel()
				}
				if status == StatusFailed {
					continue
				}
				mu.Lock()
				if addErr := gen.AddNote(fields, noteType); addErr != nil {
					results[i] = ItemResult{Row: row, Status: StatusFailed, Err: addErr}
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i := range rows {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// processRow runs one item through the full pipeline.
func (p *Processor) processRow(ctx context.Context, row batch.Row) ([]string, card.NoteType, Status, error) {
	wordType, err := record.ParseType(row.WordType)
	if err != nil {
		return nil, card.NoteType{}, StatusFailed, err
	}

	rec, err := record.Create(wordType, row.Fields)
	if err != nil {
		return nil, card.NoteType{}, StatusFailed, err
	}

	model, err := domain.FromRecord(rec)
	if err != nil {
		return nil, card.NoteType{}, StatusFailed, err
	}

	enrichment, enrichErr := p.enricher.Enrich(ctx, model)

	if enrichErr != nil {
		var genErr *enricher.GenerationError
		if !errors.As(enrichErr, &genErr) {
			// Not a media failure; treat as fatal for this item.
			return nil, card.NoteType{}, StatusFailed, enrichErr
		}
		// Recoverable: emit the card with the media that made it.
	}

	fields, noteType, err := p.builder.Build(rec, enrichment)
	if err != nil {
		return nil, card.NoteType{}, StatusFailed, err
	}

	if enrichErr != nil {
		return fields, noteType, StatusPartialMedia, enrichErr
	}
	return fields, noteType, StatusOK, nil
}

func (p *Processor) writeDeck(gen *anki.Generator) error {
	total, withAudio, withImages := gen.Stats()
	if total == 0 {
		fmt.Println("No cards to export")
		return nil
	}

	if p.flags.AnkiCSV {
		if err := gen.GenerateCSV(); err != nil {
			return fmt.Errorf("failed to generate CSV: %w", err)
		}
		fmt.Printf("Exported %d cards as CSV (%d with audio, %d with images)\n",
			total, withAudio, withImages)
		return nil
	}

	outputPath := p.flags.OutputPath
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s.apkg", internal.SanitizeFilename(p.flags.DeckName))
	}
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := gen.GenerateAPKG(outputPath, p.flags.DeckName); err != nil {
		return fmt.Errorf("failed to generate APKG: %w", err)
	}

	fmt.Printf("Exported %d cards to %s (%d with audio, %d with images)\n",
		total, outputPath, withAudio, withImages)
	return nil
}
