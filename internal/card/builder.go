package card

import (
	"codeberg.org/snonux/wortkarten/internal/record"
)

// Builder combines a record with its enrichment mapping into the ordered
// field-value array for the record's note type. Pure assembly: no network,
// no filesystem.
type Builder struct{}

// NewBuilder creates a card builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build resolves every field name of the record's note type either from
// the record's own data or from the enrichment mapping. Media fields take
// their value from enrichment and stay empty when no media was produced.
// The returned slice always has exactly len(noteType.FieldNames) entries.
func (b *Builder) Build(r record.Record, enrichment map[string]string) ([]string, NoteType, error) {
	noteType, ok := NoteTypeFor(r.Type())
	if !ok {
		return nil, NoteType{}, &record.UnsupportedTypeError{Type: string(r.Type())}
	}

	data := r.Fields()
	fields := make([]string, len(noteType.FieldNames))
	for i, name := range noteType.FieldNames {
		if value, ok := data[name]; ok {
			fields[i] = value
			continue
		}
		if key, ok := mediaKeys[name]; ok {
			fields[i] = enrichment[key] // empty string when no media of that kind
		}
	}

	return fields, noteType, nil
}
