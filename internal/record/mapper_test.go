package record

import (
	"errors"
	"testing"
)

func TestCreate_AllTypes(t *testing.T) {
	tests := []struct {
		wordType Type
		raw      []string
	}{
		{TypeNoun, []string{"Haus", "das", "house", "Häuser", "Das Haus ist groß."}},
		{TypeVerb, []string{"gehen", "to go", "gehe", "gehst", "geht", "ist gegangen", "Ich gehe."}},
		{TypeAdjective, []string{"schnell", "fast", "schneller", "am schnellsten", "Das Auto ist schnell."}},
		{TypeAdverb, []string{"gern", "gladly", "Ich lese gern."}},
		{TypePreposition, []string{"bei", "at", "Dativ", "Ich wohne bei meinen Eltern."}},
		{TypePhrase, []string{"Bis bald", "See you soon"}},
		{TypeConjunction, []string{"aber", "but", "Klein, aber fein."}},
	}

	for _, tt := range tests {
		t.Run(string(tt.wordType), func(t *testing.T) {
			rec, err := Create(tt.wordType, tt.raw)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if rec.Type() != tt.wordType {
				t.Errorf("Expected type %s, got %s", tt.wordType, rec.Type())
			}
		})
	}
}

func TestCreate_UnsupportedType(t *testing.T) {
	_, err := Create(Type("interjection"), []string{"ach", "oh"})
	if err == nil {
		t.Fatal("Expected error for unsupported type")
	}

	var uErr *UnsupportedTypeError
	if !errors.As(err, &uErr) {
		t.Fatalf("Expected UnsupportedTypeError, got %T", err)
	}
	if uErr.Type != "interjection" {
		t.Errorf("Error should carry the offending type, got '%s'", uErr.Type)
	}
}

func TestCreate_PropagatesValidation(t *testing.T) {
	_, err := Create(TypeAdverb, []string{"gern", "", "Ich lese gern."})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"noun", TypeNoun, false},
		{"NOUN", TypeNoun, false},
		{" verb ", TypeVerb, false},
		{"Conjunction", TypeConjunction, false},
		{"nouns", "", true},
		{"substantiv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseType(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q): expected %s, got %s", tt.input, tt.want, got)
			}
		})
	}
}

func TestTypes_Stable(t *testing.T) {
	if len(Types()) != 7 {
		t.Errorf("Expected 7 registered word types, got %d", len(Types()))
	}
	if Types()[0] != TypeNoun {
		t.Errorf("Expected noun first, got %s", Types()[0])
	}
}
