package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestNewFlags_Defaults(t *testing.T) {
	flags := NewFlags()

	if flags.DeckName != "German Vocabulary" {
		t.Errorf("Expected default deck name 'German Vocabulary', got '%s'", flags.DeckName)
	}
	if flags.AudioFormat != "mp3" {
		t.Errorf("Expected default audio format 'mp3', got '%s'", flags.AudioFormat)
	}
	if flags.AudioProvider != "openai" {
		t.Errorf("Expected default audio provider 'openai', got '%s'", flags.AudioProvider)
	}
	if flags.ImageAPI != "pixabay" {
		t.Errorf("Expected default image API 'pixabay', got '%s'", flags.ImageAPI)
	}
	if flags.Workers != 1 {
		t.Errorf("Expected 1 worker by default, got %d", flags.Workers)
	}
	if flags.SkipAudio || flags.SkipImages || flags.FailFast {
		t.Error("Skip and fail-fast flags should default to off")
	}
}

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "wortkarten [csv-dir]" {
		t.Errorf("Unexpected Use string: '%s'", cmd.Use)
	}

	for _, name := range []string{
		"config",
		"media-dir", "output", "deck-name", "format", "audio-provider",
		"image-api", "skip-audio", "skip-images", "fail-fast", "workers",
		"anki-csv", "list-models", "archive",
		"openai-model", "openai-voice", "openai-speed", "openai-instruction",
		"openai-image-model", "openai-image-size", "openai-image-quality", "openai-image-style",
	} {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestCreateRootCommand_ParsesFlags(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if err := cmd.Flags().Parse([]string{
		"--deck-name", "A2 Wortschatz",
		"--skip-images",
		"--workers", "4",
		"--image-api", "openai",
	}); err != nil {
		t.Fatalf("Flag parsing failed: %v", err)
	}

	if flags.DeckName != "A2 Wortschatz" {
		t.Errorf("Expected deck name 'A2 Wortschatz', got '%s'", flags.DeckName)
	}
	if !flags.SkipImages {
		t.Error("Expected skip-images to be set")
	}
	if flags.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", flags.Workers)
	}
	if flags.ImageAPI != "openai" {
		t.Errorf("Expected image API 'openai', got '%s'", flags.ImageAPI)
	}
}
