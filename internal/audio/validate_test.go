package audio

import "testing"

func TestValidateGermanText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"simple word", "Haus", false},
		{"with article", "das Haus", false},
		{"with umlauts", "die Tür ist geöffnet", false},
		{"with eszett", "die Straße", false},
		{"full sentence", "Das Haus ist groß.", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"cyrillic", "къща", true},
		{"mixed scripts", "Haus къща", true},
		{"chinese", "房子", true},
		{"digits only", "12345", true},
		{"punctuation only", "?!.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGermanText(tt.text)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error for %q", tt.text)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error for %q: %v", tt.text, err)
			}
		})
	}
}
