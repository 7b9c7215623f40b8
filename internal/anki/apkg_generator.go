package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/wortkarten/internal/card"
)

// APKGGenerator creates Anki package files (.apkg). Each note type gets
// its own Anki model; media files referenced by note fields are bundled
// into the package.
type APKGGenerator struct {
	deckName     string
	deckID       int64
	baseModelID  int64
	notes        []Note
	modelIDs     map[string]int64 // note type name -> model id
	mediaFiles   map[string]int   // deck filename -> media number
	mediaCounter int
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	// IDs are timestamp-based so repeated exports don't collide in Anki
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName:    deckName,
		deckID:      now,
		baseModelID: now + 1,
		notes:       make([]Note, 0),
		modelIDs:    make(map[string]int64),
		mediaFiles:  make(map[string]int),
	}
}

// AddNote adds a note to the generator
func (g *APKGGenerator) AddNote(note Note) {
	if _, ok := g.modelIDs[note.NoteType.Name]; !ok {
		g.modelIDs[note.NoteType.Name] = g.baseModelID + int64(len(g.modelIDs))
	}
	g.notes = append(g.notes, note)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "anki_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first: the database references the bundled filenames
	if err := g.copyMediaFiles(tempDir); err != nil {
		return fmt.Errorf("failed to copy media files: %w", err)
	}

	if err := g.createMediaMapping(tempDir); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// createDatabase creates the Anki SQLite database
func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := g.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the required Anki database tables
func (g *APKGGenerator) createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// insertCollection inserts the collection metadata
func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": deckConfig(1, "Default", "", now),
		fmt.Sprintf("%d", g.deckID): deckConfig(g.deckID, g.deckName,
			"German vocabulary cards created by wortkarten", now),
	}
	decksJSON, _ := json.Marshal(decks)

	models := make(map[string]interface{})
	for name, id := range g.modelIDs {
		noteType := g.noteTypeByName(name)
		models[fmt.Sprintf("%d", id)] = g.createModelConfig(id, noteType)
	}
	modelsJSON, _ := json.Marshal(models)

	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      fmt.Sprintf("%d", g.baseModelID),
		"dayLearnFirst": false,
	}
	confJSON, _ := json.Marshal(conf)

	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}
	dconfJSON, _ := json.Marshal(dconf)

	query := `INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(query,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

func deckConfig(id int64, name, desc string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              now,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

func (g *APKGGenerator) noteTypeByName(name string) card.NoteType {
	for _, note := range g.notes {
		if note.NoteType.Name == name {
			return note.NoteType
		}
	}
	return card.NoteType{Name: name}
}

// createModelConfig creates the Anki model for one note type
func (g *APKGGenerator) createModelConfig(modelID int64, noteType card.NoteType) map[string]interface{} {
	flds := make([]map[string]interface{}, len(noteType.FieldNames))
	for i, name := range noteType.FieldNames {
		flds[i] = map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}

	englishOrd := fieldIndex(noteType, "English")

	return map[string]interface{}{
		"id":    modelID,
		"name":  fmt.Sprintf("%s (wortkarten)", noteType.Name),
		"type":  0,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   g.deckID,
		"req": [][]interface{}{
			{0, "all", []int{0}},
			{1, "all", []int{englishOrd}},
		},
		"vers": []int{},
		"tags": []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			{
				"name":  "German -> English",
				"ord":   0,
				"qfmt":  forwardFrontTemplate(noteType),
				"afmt":  forwardBackTemplate(noteType),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
			{
				"name":  "English -> German",
				"ord":   1,
				"qfmt":  reverseFrontTemplate(noteType),
				"afmt":  reverseBackTemplate(noteType),
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": cardCSS(),
	}
}

func hasField(noteType card.NoteType, name string) bool {
	for _, f := range noteType.FieldNames {
		if f == name {
			return true
		}
	}
	return false
}

func fieldIndex(noteType card.NoteType, name string) int {
	for i, f := range noteType.FieldNames {
		if f == name {
			return i
		}
	}
	return 0
}

// forwardFrontTemplate shows the German headword with its pronunciation.
func forwardFrontTemplate(noteType card.NoteType) string {
	head := noteType.FieldNames[0]
	var b strings.Builder
	b.WriteString("<div class=\"front\">\n")
	fmt.Fprintf(&b, "<div class=\"german\">{{%s}}</div>\n", head)
	if hasField(noteType, "WordAudio") {
		b.WriteString("{{#WordAudio}}<div class=\"audio\">{{WordAudio}}</div>{{/WordAudio}}\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// forwardBackTemplate reveals everything else.
func forwardBackTemplate(noteType card.NoteType) string {
	var b strings.Builder
	b.WriteString("{{FrontSide}}\n\n<hr id=\"answer\">\n\n<div class=\"back\">\n")
	for _, name := range noteType.FieldNames[1:] {
		fmt.Fprintf(&b, "{{#%s}}<div class=\"%s\">{{%s}}</div>{{/%s}}\n",
			name, cssClass(name), name, name)
	}
	b.WriteString("</div>")
	return b.String()
}

// reverseFrontTemplate asks from the English side.
func reverseFrontTemplate(noteType card.NoteType) string {
	return "<div class=\"front\">\n<div class=\"english\">{{English}}</div>\n</div>"
}

func reverseBackTemplate(noteType card.NoteType) string {
	head := noteType.FieldNames[0]
	var b strings.Builder
	b.WriteString("{{FrontSide}}\n\n<hr id=\"answer\">\n\n<div class=\"back\">\n")
	fmt.Fprintf(&b, "<div class=\"german\">{{%s}}</div>\n", head)
	for _, name := range noteType.FieldNames[1:] {
		if name == "English" {
			continue
		}
		fmt.Fprintf(&b, "{{#%s}}<div class=\"%s\">{{%s}}</div>{{/%s}}\n",
			name, cssClass(name), name, name)
	}
	b.WriteString("</div>")
	return b.String()
}

func cssClass(fieldName string) string {
	switch {
	case isAudioField(fieldName):
		return "audio"
	case isImageField(fieldName):
		return "image-container"
	default:
		return strings.ToLower(fieldName)
	}
}

func cardCSS() string {
	return `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.front, .back {
  padding: 20px;
}

.image-container {
  margin: 20px auto;
  max-width: 400px;
}

.image-container img {
  max-width: 100%;
  height: auto;
  border-radius: 8px;
  box-shadow: 0 2px 8px rgba(0,0,0,0.1);
}

.english {
  font-size: 28px;
  font-weight: bold;
  color: #2c3e50;
  margin: 20px 0;
}

.german {
  font-size: 32px;
  font-weight: bold;
  color: #1f618d;
  margin: 20px 0;
}

.example {
  font-size: 22px;
  color: #34495e;
  margin: 15px 0;
}

.audio {
  margin: 15px 0;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`
}

// insertNotesAndCards inserts all notes and cards into the database
func (g *APKGGenerator) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	for i, note := range g.notes {
		// Leave space for two cards per note
		noteID := now.UnixMilli() + int64(i*3)
		cardID1 := noteID + 1
		cardID2 := noteID + 2

		values := make([]string, len(note.Fields))
		for j, value := range note.Fields {
			values[j] = g.formatFieldForDeck(note.NoteType.FieldNames[j], value)
		}

		fields := strings.Join(values, "\x1f")
		sortField := values[0]
		guid := fmt.Sprintf("wk_%d_%s", now.Unix(), sortField)

		noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := db.Exec(noteQuery,
			noteID,                         // id
			guid,                           // guid
			g.modelIDs[note.NoteType.Name], // mid
			now.Unix(),                     // mod
			-1,                             // usn
			"",                             // tags
			fields,                         // flds
			sortField,                      // sfld
			0,                              // csum
			0,                              // flags
			"",                             // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for ord, cardID := range []int64{cardID1, cardID2} {
			_, err = db.Exec(cardQuery,
				cardID,               // id
				noteID,               // nid
				g.deckID,             // did
				ord,                  // ord (template index)
				now.Unix(),           // mod
				-1,                   // usn
				0,                    // type (0=new)
				0,                    // queue (0=new)
				noteID+int64(ord),    // due (position for new cards)
				0,                    // ivl
				0,                    // factor
				0,                    // reps
				0,                    // lapses
				0,                    // left
				0,                    // odue
				0,                    // odid
				0,                    // flags
				"",                   // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
		}
	}

	return nil
}

// formatFieldForDeck turns a media file path into Anki markup referencing
// the bundled filename, and passes plain fields through.
func (g *APKGGenerator) formatFieldForDeck(fieldName, value string) string {
	if value == "" || (!isAudioField(fieldName) && !isImageField(fieldName)) {
		return value
	}

	deckName := filepath.Base(value)
	if _, ok := g.mediaFiles[deckName]; !ok {
		// Media file went missing between enrichment and export
		return ""
	}

	return formatMediaField(fieldName, value, filepath.Base)
}

// copyMediaFiles copies media files into the package and assigns numbers
func (g *APKGGenerator) copyMediaFiles(tempDir string) error {
	for _, note := range g.notes {
		for i, value := range note.Fields {
			fieldName := note.NoteType.FieldNames[i]
			if value == "" || (!isAudioField(fieldName) && !isImageField(fieldName)) {
				continue
			}
			if !fileExists(value) {
				continue
			}

			deckName := filepath.Base(value)
			if _, exists := g.mediaFiles[deckName]; exists {
				continue
			}

			targetPath := filepath.Join(tempDir, fmt.Sprintf("%d", g.mediaCounter))
			if err := copyFile(value, targetPath); err != nil {
				return fmt.Errorf("failed to copy media file %s: %w", value, err)
			}
			g.mediaFiles[deckName] = g.mediaCounter
			g.mediaCounter++
		}
	}

	return nil
}

// createMediaMapping creates the media mapping JSON file
func (g *APKGGenerator) createMediaMapping(tempDir string) error {
	mapping := make(map[string]string)
	for filename, num := range g.mediaFiles {
		mapping[fmt.Sprintf("%d", num)] = filename
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

// createZipPackage creates the final .apkg zip file
func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	defer archive.Close()

	return filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()

	_, err = io.Copy(destination, source)
	return err
}
