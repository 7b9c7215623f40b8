// Package anki persists built cards as Anki import artifacts: either a
// proper .apkg package or per-note-type CSV files.
package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/wortkarten/internal/card"
)

// Note is one built flashcard: the ordered field values and the note type
// they conform to. Media fields hold local file paths; formatting for Anki
// ([sound:...], <img>) happens at write time.
type Note struct {
	Fields   []string
	NoteType card.NoteType
}

// GeneratorOptions configures the deck export
type GeneratorOptions struct {
	OutputDir      string // Directory for CSV exports
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputDir:      ".",
		IncludeHeaders: true,
	}
}

// Generator collects built notes and writes them out
type Generator struct {
	options *GeneratorOptions
	notes   []Note
}

// NewGenerator creates a new deck generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		notes:   make([]Note, 0),
	}
}

// AddNote adds a built card to the collection. The field array length must
// match the note type; mismatches are a programming error upstream and are
// rejected here rather than written out misaligned.
func (g *Generator) AddNote(fields []string, noteType card.NoteType) error {
	if len(fields) != len(noteType.FieldNames) {
		return fmt.Errorf("field count %d does not match note type %q (%d fields)",
			len(fields), noteType.Name, len(noteType.FieldNames))
	}
	g.notes = append(g.notes, Note{Fields: fields, NoteType: noteType})
	return nil
}

// Notes returns all collected notes.
func (g *Generator) Notes() []Note {
	return g.notes
}

// GenerateCSV writes one CSV file per note type into the output directory.
// Anki imports one note type per file.
func (g *Generator) GenerateCSV() error {
	byType := make(map[string][]Note)
	order := []string{}
	for _, note := range g.notes {
		name := note.NoteType.Name
		if _, seen := byType[name]; !seen {
			order = append(order, name)
		}
		byType[name] = append(byType[name], note)
	}

	for _, name := range order {
		notes := byType[name]
		filename := fmt.Sprintf("anki_import_%s.csv", sanitizeCSVName(name))
		if err := g.writeCSV(filepath.Join(g.options.OutputDir, filename), notes); err != nil {
			return err
		}
	}

	return nil
}

func (g *Generator) writeCSV(path string, notes []Note) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if g.options.IncludeHeaders {
		if err := writer.Write(notes[0].NoteType.FieldNames); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, note := range notes {
		row := make([]string, len(note.Fields))
		for i, value := range note.Fields {
			row[i] = formatMediaField(note.NoteType.FieldNames[i], value, filepath.Base)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write note: %w", err)
		}
	}

	return nil
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)

	for _, note := range g.notes {
		apkgGen.AddNote(note)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns counts of total notes and of notes carrying audio and images
func (g *Generator) Stats() (total, withAudio, withImages int) {
	total = len(g.notes)
	for _, note := range g.notes {
		hasAudio, hasImage := false, false
		for i, name := range note.NoteType.FieldNames {
			if note.Fields[i] == "" {
				continue
			}
			if isAudioField(name) {
				hasAudio = true
			}
			if isImageField(name) {
				hasImage = true
			}
		}
		if hasAudio {
			withAudio++
		}
		if hasImage {
			withImages++
		}
	}
	return total, withAudio, withImages
}

// isAudioField reports whether a note type field holds an audio file path.
func isAudioField(fieldName string) bool {
	return strings.HasSuffix(fieldName, "Audio")
}

// isImageField reports whether a note type field holds an image file path.
func isImageField(fieldName string) bool {
	return fieldName == "Image"
}

// formatMediaField converts local media paths into Anki field markup. The
// rename function maps a source path to the filename used inside the deck.
func formatMediaField(fieldName, value string, rename func(string) string) string {
	if value == "" {
		return ""
	}
	switch {
	case isAudioField(fieldName):
		return fmt.Sprintf("[sound:%s]", rename(value))
	case isImageField(fieldName):
		return fmt.Sprintf(`<img src="%s">`, rename(value))
	default:
		return value
	}
}

func sanitizeCSVName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
