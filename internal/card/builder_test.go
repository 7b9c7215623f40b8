package card

import (
	"errors"
	"testing"

	"codeberg.org/snonux/wortkarten/internal/enricher"
	"codeberg.org/snonux/wortkarten/internal/record"
)

func TestBuild_NounFieldOrder(t *testing.T) {
	rec, err := record.NewNoun([]string{"Haus", "das", "house", "Häuser", "Das Haus ist groß."})
	if err != nil {
		t.Fatalf("NewNoun failed: %v", err)
	}

	enrichment := map[string]string{
		enricher.KeyWordAudio:    "/media/Haus_word_audio_abc12345.mp3",
		enricher.KeyExampleAudio: "/media/Haus_example_audio_def67890.mp3",
		enricher.KeyPluralAudio:  "/media/Haus_plural_audio_11223344.mp3",
		enricher.KeyImage:        "/media/Haus_image_55667788.jpg",
	}

	fields, noteType, err := NewBuilder().Build(rec, enrichment)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(fields) != 9 {
		t.Fatalf("Expected 9 fields for a noun card, got %d", len(fields))
	}
	if noteType.Name != "German Noun" {
		t.Errorf("Expected note type 'German Noun', got '%s'", noteType.Name)
	}

	want := []string{
		"Haus", "das", "house", "Häuser", "Das Haus ist groß.",
		"/media/Haus_word_audio_abc12345.mp3",
		"/media/Haus_example_audio_def67890.mp3",
		"/media/Haus_plural_audio_11223344.mp3",
		"/media/Haus_image_55667788.jpg",
	}
	for i, w := range want {
		if fields[i] != w {
			t.Errorf("Field %d (%s): expected '%s', got '%s'",
				i, noteType.FieldNames[i], w, fields[i])
		}
	}
}

func TestBuild_MissingMediaStaysEmpty(t *testing.T) {
	rec, err := record.NewNoun([]string{"Haus", "das", "house", "Häuser", "Das Haus ist groß."})
	if err != nil {
		t.Fatalf("NewNoun failed: %v", err)
	}

	fields, noteType, err := NewBuilder().Build(rec, map[string]string{
		enricher.KeyWordAudio: "/media/word.mp3",
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// The array keeps its full length; absent media renders as empty cells.
	if len(fields) != len(noteType.FieldNames) {
		t.Fatalf("Field count %d does not match schema %d", len(fields), len(noteType.FieldNames))
	}
	for i, name := range noteType.FieldNames {
		switch name {
		case "WordAudio":
			if fields[i] != "/media/word.mp3" {
				t.Errorf("WordAudio: expected path, got '%s'", fields[i])
			}
		case "ExampleAudio", "PluralAudio", "Image":
			if fields[i] != "" {
				t.Errorf("%s: expected empty, got '%s'", name, fields[i])
			}
		}
	}
}

func TestBuild_NilEnrichment(t *testing.T) {
	rec, err := record.NewPhrase([]string{"Guten Morgen", "Good morning"})
	if err != nil {
		t.Fatalf("NewPhrase failed: %v", err)
	}

	fields, noteType, err := NewBuilder().Build(rec, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(fields) != len(noteType.FieldNames) {
		t.Fatalf("Field count %d does not match schema %d", len(fields), len(noteType.FieldNames))
	}
}

func TestBuild_UnknownEnrichmentKeysIgnored(t *testing.T) {
	rec, err := record.NewAdverb([]string{"oft", "often", "Ich lese oft."})
	if err != nil {
		t.Fatalf("NewAdverb failed: %v", err)
	}

	fields, noteType, err := NewBuilder().Build(rec, map[string]string{
		"bogus_key": "/media/bogus.mp3",
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, f := range fields[3:] {
		if f != "" {
			t.Errorf("Media field %s picked up an unknown key: '%s'",
				noteType.FieldNames[3+i], f)
		}
	}
}

func TestBuild_EveryRegisteredType(t *testing.T) {
	rows := map[record.Type][]string{
		record.TypeNoun:        {"Haus", "das", "house", "Häuser", "Das Haus ist groß."},
		record.TypeVerb:        {"gehen", "to go", "gehe", "gehst", "geht", "ist gegangen", "Ich gehe."},
		record.TypeAdjective:   {"gut", "good", "besser", "am besten", "Alles gut."},
		record.TypeAdverb:      {"oft", "often", "Ich lese oft."},
		record.TypePreposition: {"mit", "with", "Dativ", "Ich fahre mit dem Bus."},
		record.TypePhrase:      {"Bis bald", "See you soon"},
		record.TypeConjunction: {"und", "and", "Du und ich."},
	}

	wantCounts := map[record.Type]int{
		record.TypeNoun:        9,
		record.TypeVerb:        11,
		record.TypeAdjective:   8,
		record.TypeAdverb:      6,
		record.TypePreposition: 6,
		record.TypePhrase:      4,
		record.TypeConjunction: 5,
	}

	for wordType, raw := range rows {
		rec, err := record.Create(wordType, raw)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", wordType, err)
		}

		fields, noteType, err := NewBuilder().Build(rec, nil)
		if err != nil {
			t.Fatalf("Build(%s) failed: %v", wordType, err)
		}

		if len(fields) != wantCounts[wordType] {
			t.Errorf("%s: expected %d fields, got %d", wordType, wantCounts[wordType], len(fields))
		}
		if len(noteType.FieldNames) != len(fields) {
			t.Errorf("%s: schema/field length mismatch", wordType)
		}
		if len(noteType.Templates) != 2 {
			t.Errorf("%s: expected 2 card templates, got %d", wordType, len(noteType.Templates))
		}
	}
}

func TestBuild_UnsupportedType(t *testing.T) {
	_, _, err := NewBuilder().Build(fakeRecord{}, nil)
	if err == nil {
		t.Fatal("Expected error for unsupported record type")
	}

	var uErr *record.UnsupportedTypeError
	if !errors.As(err, &uErr) {
		t.Fatalf("Expected UnsupportedTypeError, got %T", err)
	}
}

type fakeRecord struct{}

func (fakeRecord) Type() record.Type         { return record.Type("interjection") }
func (fakeRecord) Fields() map[string]string { return nil }
func (fakeRecord) Raw() []string             { return nil }

func TestNoteTypeFor_CoversAllTypes(t *testing.T) {
	for _, wordType := range record.Types() {
		if _, ok := NoteTypeFor(wordType); !ok {
			t.Errorf("No note type registered for %s", wordType)
		}
	}
}

func TestNoteTypes_AbstractTypesHaveNoImageField(t *testing.T) {
	for _, wordType := range []record.Type{record.TypePreposition, record.TypeConjunction} {
		nt, ok := NoteTypeFor(wordType)
		if !ok {
			t.Fatalf("No note type for %s", wordType)
		}
		for _, name := range nt.FieldNames {
			if name == "Image" {
				t.Errorf("%s note type should not carry an Image field", wordType)
			}
		}
	}
}
