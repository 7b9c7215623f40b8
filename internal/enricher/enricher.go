// Package enricher attaches generated media to vocabulary items. For every
// expected media kind it computes a deterministic cache path, reuses the
// file when it already exists, and only calls the external generation
// service for what is missing.
package enricher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/snonux/wortkarten/internal"
	"codeberg.org/snonux/wortkarten/internal/audio"
	"codeberg.org/snonux/wortkarten/internal/domain"
	"codeberg.org/snonux/wortkarten/internal/image"
)

// Enrichment keys. Absent keys mean "no media of that kind", which for
// abstract word types is intentional, not an error.
const (
	KeyWordAudio        = "word_audio"
	KeyExampleAudio     = "example_audio"
	KeyPluralAudio      = "plural_audio"
	KeyConjugationAudio = "conjugation_audio"
	KeyImage            = "image"
)

// ErrServiceUnavailable marks a generation capability that is not
// configured or currently disabled. It is distinct from a generation
// attempt that ran and failed; check for it with errors.Is.
var ErrServiceUnavailable = errors.New("generation service unavailable")

// GenerationError wraps a failed external generation or translation call.
// It always propagates out of Enrich; the orchestrator decides whether to
// drop the item's media or abort the batch.
type GenerationError struct {
	Kind string // enrichment key the failure belongs to
	Word string // primary word of the item
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("media generation failed for %q (%s): %v", e.Word, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Translator is the capability used to turn German example sentences into
// English image queries.
type Translator interface {
	TranslateToEnglish(ctx context.Context, text string) (string, error)
}

// QueryRefiner is the optional AI-assisted query generation capability.
// A nil refiner means the capability is not configured; the enricher then
// searches with the plain translation.
type QueryRefiner interface {
	Generate(ctx context.Context, word, translatedExample string) (string, error)
}

// Config holds the enricher's filesystem and timeout settings.
type Config struct {
	MediaDir    string        // cache directory for generated media
	AudioFormat string        // "mp3" or "wav"
	ImageFormat string        // "jpg" or "png"
	CallTimeout time.Duration // bound on each external call
	SkipAudio   bool          // produce no audio keys at all
	SkipImages  bool          // produce no image key at all
}

// DefaultConfig returns sensible enricher defaults.
func DefaultConfig(mediaDir string) Config {
	return Config{
		MediaDir:    mediaDir,
		AudioFormat: "mp3",
		ImageFormat: "jpg",
		CallTimeout: 60 * time.Second,
	}
}

// Enricher is the only pipeline component with filesystem side effects.
// All collaborators arrive through the constructor.
type Enricher struct {
	cfg        Config
	audio      audio.Provider
	images     *image.Downloader
	translator Translator
	refiner    QueryRefiner

	warnNoRefiner sync.Once
}

// New creates an enricher. The refiner may be nil (optional capability).
func New(cfg Config, provider audio.Provider, images *image.Downloader, tr Translator, refiner QueryRefiner) (*Enricher, error) {
	if cfg.MediaDir == "" {
		return nil, fmt.Errorf("media directory is required")
	}
	if cfg.AudioFormat == "" {
		cfg.AudioFormat = "mp3"
	}
	if cfg.ImageFormat == "" {
		cfg.ImageFormat = "jpg"
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 60 * time.Second
	}
	if err := os.MkdirAll(cfg.MediaDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &Enricher{
		cfg:        cfg,
		audio:      provider,
		images:     images,
		translator: tr,
		refiner:    refiner,
	}, nil
}

// Enrich produces the enrichment mapping for one model: enrichment key to
// resolved media file path. Existing files are reused without touching any
// external service.
func (e *Enricher) Enrich(ctx context.Context, m domain.Model) (map[string]string, error) {
	result := make(map[string]string)

	var clips []struct {
		key  string
		text string
	}
	if !e.cfg.SkipAudio {
		clips = append(clips,
			struct{ key, text string }{KeyWordAudio, m.WordAudioText()},
			struct{ key, text string }{KeyExampleAudio, m.CombinedAudioText()},
		)

		// Phrases are their own example; don't synthesize the same clip twice.
		if m.CombinedAudioText() == m.WordAudioText() {
			clips = clips[:1]
		}

		if extra, ok := m.(domain.ExtraAudio); ok {
			key, text := extra.ExtraAudioText()
			clips = append(clips, struct{ key, text string }{key, text})
		}
	}

	for _, clip := range clips {
		path, err := e.ensureAudio(ctx, m, clip.key, clip.text)
		if err != nil {
			// Partial result: the caller may still emit the card with
			// whatever media made it.
			return result, err
		}
		result[clip.key] = path
	}

	if path, ok, err := e.ensureImage(ctx, m); err != nil {
		return result, err
	} else if ok {
		result[KeyImage] = path
	}

	return result, nil
}

// AudioPath returns the deterministic cache path for one audio clip. The
// name is derived from the primary word plus a hash of the synthesized
// text, so unchanged source data maps to the same file across runs.
func (e *Enricher) AudioPath(primaryWord, key, text string) string {
	hash := internal.HashText(text)[:8]
	name := fmt.Sprintf("%s_%s_%s.%s", primaryWord, key, hash, e.cfg.AudioFormat)
	return filepath.Join(e.cfg.MediaDir, name)
}

// ImagePath returns the deterministic cache path for an item's image.
func (e *Enricher) ImagePath(primaryWord, strategy string) string {
	hash := internal.HashText(strategy)[:8]
	name := fmt.Sprintf("%s_image_%s.%s", primaryWord, hash, e.cfg.ImageFormat)
	return filepath.Join(e.cfg.MediaDir, name)
}

func (e *Enricher) ensureAudio(ctx context.Context, m domain.Model, key, text string) (string, error) {
	path := e.AudioPath(m.PrimaryWord(), key, text)

	if _, err := os.Stat(path); err == nil {
		return path, nil // cache hit, no external call
	}

	if e.audio == nil {
		return "", &GenerationError{Kind: key, Word: m.PrimaryWord(), Err: ErrServiceUnavailable}
	}
	if err := e.audio.IsAvailable(); err != nil {
		return "", &GenerationError{Kind: key, Word: m.PrimaryWord(), Err: fmt.Errorf("%w: %v", ErrServiceUnavailable, err)}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	if err := e.audio.GenerateAudio(callCtx, text, path); err != nil {
		return "", &GenerationError{Kind: key, Word: m.PrimaryWord(), Err: err}
	}

	return path, nil
}

// ensureImage resolves the item's image. The bool result reports whether an
// image applies to this word type at all.
func (e *Enricher) ensureImage(ctx context.Context, m domain.Model) (string, bool, error) {
	if e.cfg.SkipImages {
		return "", false, nil
	}

	strategy := m.ImageSearchStrategy()
	if strategy == domain.NoImage {
		return "", false, nil // abstract word type, intentional omission
	}

	path := e.ImagePath(m.PrimaryWord(), strategy)
	if _, err := os.Stat(path); err == nil {
		return path, true, nil // cache hit, no external call
	}

	if e.images == nil {
		return "", false, &GenerationError{Kind: KeyImage, Word: m.PrimaryWord(), Err: ErrServiceUnavailable}
	}

	query, err := e.buildQuery(ctx, m, strategy)
	if err != nil {
		return "", false, err
	}

	opts := image.DefaultSearchOptions(query)
	opts.Word = m.PrimaryWord()

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	if _, err := e.images.DownloadBestMatch(callCtx, opts, path); err != nil {
		return "", false, &GenerationError{Kind: KeyImage, Word: m.PrimaryWord(), Err: err}
	}

	return path, true, nil
}

// buildQuery translates the search strategy to English and, when the
// optional refiner is configured, distills it into concrete search terms.
// Translation failures propagate; there is no silent fallback to the
// German text.
func (e *Enricher) buildQuery(ctx context.Context, m domain.Model, strategy string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	translated, err := e.translator.TranslateToEnglish(callCtx, strategy)
	if err != nil {
		return "", &GenerationError{Kind: KeyImage, Word: m.PrimaryWord(), Err: err}
	}

	if e.refiner == nil {
		e.warnNoRefiner.Do(func() {
			fmt.Println("Note: AI query generation not configured, using plain translations for image search")
		})
		return translated, nil
	}

	refineCtx, cancelRefine := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancelRefine()

	query, err := e.refiner.Generate(refineCtx, m.PrimaryWord(), translated)
	if err != nil {
		return "", &GenerationError{Kind: KeyImage, Word: m.PrimaryWord(), Err: err}
	}
	return query, nil
}
