package batch

import (
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/wortkarten/internal/testutil"
)

func TestDiscoverCSVFiles(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestCSV(t, dir, "b_verbs.csv", []string{"verb,gehen,to go,gehe,gehst,geht,ist gegangen,Ich gehe."})
	testutil.CreateTestCSV(t, dir, "a_nouns.csv", []string{"noun,Haus,das,house,Häuser,Das Haus ist groß."})
	testutil.CreateTestFile(t, filepath.Join(dir, "notes.txt"), []byte("not a csv"))

	files, err := DiscoverCSVFiles(dir)
	if err != nil {
		t.Fatalf("DiscoverCSVFiles failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 CSV files, got %d", len(files))
	}
	if filepath.Base(files[0]) != "a_nouns.csv" {
		t.Errorf("Files should be sorted by name, got %s first", filepath.Base(files[0]))
	}
}

func TestDiscoverCSVFiles_NoneFound(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestFile(t, filepath.Join(dir, "readme.md"), []byte("no data here"))

	_, err := DiscoverCSVFiles(dir)
	if err == nil {
		t.Fatal("Expected error when directory has no CSV files")
	}
	if !strings.Contains(err.Error(), "no CSV files") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestDiscoverCSVFiles_IgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestCSV(t, dir, "words.csv", []string{"phrase,Bis bald,See you soon"})
	testutil.CreateTestCSV(t, filepath.Join(dir, "nested"), "more.csv", []string{"phrase,Guten Tag,Good day"})

	files, err := DiscoverCSVFiles(dir)
	if err != nil {
		t.Fatalf("DiscoverCSVFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Nested CSV files should be ignored, got %d files", len(files))
	}
}

func TestReadCSVFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestCSV(t, dir, "mixed.csv", []string{
		"type,field1,field2",
		"noun,Haus,das,house,Häuser,Das Haus ist groß.",
		"# commented out row",
		"",
		"phrase,Bis bald,See you soon",
	})

	rows, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("ReadCSVFile failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 data rows, got %d", len(rows))
	}

	if rows[0].WordType != "noun" {
		t.Errorf("Expected word type 'noun', got '%s'", rows[0].WordType)
	}
	if len(rows[0].Fields) != 5 {
		t.Errorf("Expected 5 noun fields, got %d", len(rows[0].Fields))
	}
	if rows[0].Fields[0] != "Haus" {
		t.Errorf("Expected first field 'Haus', got '%s'", rows[0].Fields[0])
	}

	if rows[1].WordType != "phrase" {
		t.Errorf("Expected word type 'phrase', got '%s'", rows[1].WordType)
	}
	if len(rows[1].Fields) != 2 {
		t.Errorf("Expected 2 phrase fields, got %d", len(rows[1].Fields))
	}

	// Physical file lines, counting the comment and blank lines the CSV
	// reader swallows.
	if rows[0].Line != 2 {
		t.Errorf("Expected noun row at file line 2, got %d", rows[0].Line)
	}
	if rows[1].Line != 5 {
		t.Errorf("Expected phrase row at file line 5, got %d", rows[1].Line)
	}
}

func TestReadCSVFile_RowOrigin(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestCSV(t, dir, "origin.csv", []string{
		"type,word",
		"# A2 vocabulary",
		"phrase,Guten Morgen,Good morning",
	})

	rows, err := ReadCSVFile(path)
	if err != nil {
		t.Fatalf("ReadCSVFile failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	if rows[0].Line != 3 {
		t.Errorf("Expected line 3, got %d", rows[0].Line)
	}
	if rows[0].From() != "origin.csv:3" {
		t.Errorf("Unexpected origin string: %s", rows[0].From())
	}
}

func TestReadAll_KeepsFileOrder(t *testing.T) {
	dir := t.TempDir()
	a := testutil.CreateTestCSV(t, dir, "a.csv", []string{"phrase,Eins,One"})
	b := testutil.CreateTestCSV(t, dir, "b.csv", []string{"phrase,Zwei,Two"})

	rows, err := ReadAll([]string{a, b})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Fields[0] != "Eins" || rows[1].Fields[0] != "Zwei" {
		t.Errorf("Rows out of order: %v", rows)
	}
}
