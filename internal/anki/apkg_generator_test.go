package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/wortkarten/internal/card"
	"codeberg.org/snonux/wortkarten/internal/record"
)

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen == nil {
		t.Fatal("NewAPKGGenerator returned nil")
	}
	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}
	if len(gen.notes) != 0 {
		t.Errorf("Expected empty notes slice, got %d notes", len(gen.notes))
	}
	if len(gen.mediaFiles) != 0 {
		t.Errorf("Expected empty media files, got %d files", len(gen.mediaFiles))
	}
}

func TestAPKGAddNote_AssignsModelPerNoteType(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	nounType, _ := card.NoteTypeFor(record.TypeNoun)
	phraseType, _ := card.NoteTypeFor(record.TypePhrase)

	gen.AddNote(Note{Fields: nounFields("", ""), NoteType: nounType})
	gen.AddNote(Note{Fields: nounFields("", ""), NoteType: nounType})
	gen.AddNote(Note{Fields: []string{"Bis bald", "See you soon", "", ""}, NoteType: phraseType})

	if len(gen.notes) != 3 {
		t.Errorf("Expected 3 notes, got %d", len(gen.notes))
	}
	if len(gen.modelIDs) != 2 {
		t.Errorf("Expected 2 models (one per note type), got %d", len(gen.modelIDs))
	}
	if gen.modelIDs["German Noun"] == gen.modelIDs["German Phrase"] {
		t.Error("Each note type needs its own model ID")
	}
}

func TestGenerateAPKG(t *testing.T) {
	tempDir := t.TempDir()

	audioFile := filepath.Join(tempDir, "Haus_word_audio_abc12345.mp3")
	imageFile := filepath.Join(tempDir, "Haus_image_def67890.jpg")
	os.WriteFile(audioFile, []byte("test audio data"), 0644)
	os.WriteFile(imageFile, []byte("test image data"), 0644)

	gen := NewAPKGGenerator("Test German Deck")
	nounType, _ := card.NoteTypeFor(record.TypeNoun)
	gen.AddNote(Note{Fields: nounFields(audioFile, imageFile), NoteType: nounType})

	outputPath := filepath.Join(tempDir, "test.apkg")
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG() error = %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Generated file is not a valid zip: %v", err)
	}
	defer reader.Close()

	found := map[string]bool{}
	for _, f := range reader.File {
		found[f.Name] = true
	}

	if !found["collection.anki2"] {
		t.Error("Package missing collection.anki2")
	}
	if !found["media"] {
		t.Error("Package missing media mapping")
	}
	// Bundled media files get numeric names
	if !found["0"] || !found["1"] {
		t.Errorf("Expected media files 0 and 1, package contains: %v", found)
	}
}

func TestGenerateAPKG_MediaMapping(t *testing.T) {
	tempDir := t.TempDir()

	audioFile := filepath.Join(tempDir, "Haus_word_audio_abc12345.mp3")
	os.WriteFile(audioFile, []byte("audio"), 0644)

	gen := NewAPKGGenerator("Deck")
	nounType, _ := card.NoteTypeFor(record.TypeNoun)
	gen.AddNote(Note{Fields: nounFields(audioFile, ""), NoteType: nounType})
	// Second note referencing the same file must not duplicate it
	gen.AddNote(Note{Fields: nounFields(audioFile, ""), NoteType: nounType})

	outputPath := filepath.Join(tempDir, "deck.apkg")
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG() error = %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open package: %v", err)
	}
	defer reader.Close()

	for _, f := range reader.File {
		if f.Name != "media" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open media mapping: %v", err)
		}
		defer rc.Close()

		var mapping map[string]string
		if err := json.NewDecoder(rc).Decode(&mapping); err != nil {
			t.Fatalf("Media mapping is not valid JSON: %v", err)
		}
		if len(mapping) != 1 {
			t.Errorf("Expected 1 deduplicated media entry, got %d", len(mapping))
		}
		if mapping["0"] != "Haus_word_audio_abc12345.mp3" {
			t.Errorf("Unexpected media mapping: %v", mapping)
		}
		return
	}
	t.Fatal("No media mapping in package")
}

func TestCreateDatabase(t *testing.T) {
	tempDir := t.TempDir()

	gen := NewAPKGGenerator("Test Deck")
	nounType, _ := card.NoteTypeFor(record.TypeNoun)
	gen.AddNote(Note{Fields: nounFields("", ""), NoteType: nounType})

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := gen.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase() error = %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var noteCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&noteCount); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if noteCount != 1 {
		t.Errorf("Expected 1 note, got %d", noteCount)
	}

	// Two cards per note (forward and reverse)
	var cardCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cardCount); err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if cardCount != 2 {
		t.Errorf("Expected 2 cards per note, got %d", cardCount)
	}

	var flds string
	if err := db.QueryRow("SELECT flds FROM notes").Scan(&flds); err != nil {
		t.Fatalf("Failed to read note fields: %v", err)
	}
	values := strings.Split(flds, "\x1f")
	if len(values) != len(nounType.FieldNames) {
		t.Errorf("Expected %d field values, got %d", len(nounType.FieldNames), len(values))
	}
	if values[0] != "Haus" {
		t.Errorf("Expected sort field 'Haus', got '%s'", values[0])
	}

	var models string
	if err := db.QueryRow("SELECT models FROM col").Scan(&models); err != nil {
		t.Fatalf("Failed to read models: %v", err)
	}
	if !strings.Contains(models, "German Noun (wortkarten)") {
		t.Error("Collection models should contain the noun model")
	}
}

func TestForwardTemplates(t *testing.T) {
	nounType, _ := card.NoteTypeFor(record.TypeNoun)

	front := forwardFrontTemplate(nounType)
	if !strings.Contains(front, "{{Noun}}") {
		t.Errorf("Front template should show the headword: %s", front)
	}
	if !strings.Contains(front, "{{WordAudio}}") {
		t.Errorf("Front template should play the word audio: %s", front)
	}

	back := forwardBackTemplate(nounType)
	for _, field := range []string{"{{English}}", "{{Plural}}", "{{Image}}"} {
		if !strings.Contains(back, field) {
			t.Errorf("Back template missing %s: %s", field, back)
		}
	}
}

func TestReverseTemplates(t *testing.T) {
	phraseType, _ := card.NoteTypeFor(record.TypePhrase)

	front := reverseFrontTemplate(phraseType)
	if !strings.Contains(front, "{{English}}") {
		t.Errorf("Reverse front should ask from English: %s", front)
	}

	back := reverseBackTemplate(phraseType)
	if !strings.Contains(back, "{{Phrase}}") {
		t.Errorf("Reverse back should reveal the German side: %s", back)
	}
}

func TestFormatFieldForDeck_MissingMediaDropsReference(t *testing.T) {
	gen := NewAPKGGenerator("Deck")

	// The file was never bundled, so the field must come out empty rather
	// than referencing a file that is not in the package.
	got := gen.formatFieldForDeck("WordAudio", "/media/gone.mp3")
	if got != "" {
		t.Errorf("Expected empty field for unbundled media, got '%s'", got)
	}

	if got := gen.formatFieldForDeck("Noun", "Haus"); got != "Haus" {
		t.Errorf("Plain fields must pass through, got '%s'", got)
	}
}
