// Package archive moves a media cache directory aside so the next run
// starts from a clean cache.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveMedia moves the media directory to a timestamped directory under
// a sibling "archive" directory.
func ArchiveMedia(mediaDir string) error {
	if _, err := os.Stat(mediaDir); os.IsNotExist(err) {
		return fmt.Errorf("media directory does not exist: %s", mediaDir)
	}

	parentDir := filepath.Dir(mediaDir)
	archiveDir := filepath.Join(parentDir, "archive")

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("media-%s", timestamp))

	// Two runs within one second collide; fall back to microseconds.
	if _, err := os.Stat(archivePath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("media-%s", timestamp))
	}

	if err := os.Rename(mediaDir, archivePath); err != nil {
		return fmt.Errorf("failed to archive media directory: %w", err)
	}

	fmt.Printf("Media directory archived to: %s\n", archivePath)
	return nil
}
