package image

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DownloadOptions configures image download behavior
type DownloadOptions struct {
	OverwriteExisting bool  // Whether to overwrite existing files
	MaxSizeBytes      int64 // Maximum file size to download (0 = no limit)
	SaveAttribution   bool  // Write a sidecar attribution file next to the image
}

// DefaultDownloadOptions returns sensible defaults for image downloads
func DefaultDownloadOptions() *DownloadOptions {
	return &DownloadOptions{
		OverwriteExisting: false,
		MaxSizeBytes:      10 * 1024 * 1024, // 10MB
		SaveAttribution:   true,
	}
}

// Downloader fetches the best search result to a local file
type Downloader struct {
	searcher Searcher
	options  *DownloadOptions
}

// NewDownloader creates a new image downloader
func NewDownloader(searcher Searcher, options *DownloadOptions) *Downloader {
	if options == nil {
		options = DefaultDownloadOptions()
	}
	return &Downloader{
		searcher: searcher,
		options:  options,
	}
}

// Searcher returns the underlying search provider.
func (d *Downloader) Searcher() Searcher {
	return d.searcher
}

// DownloadBestMatch searches with the given options and downloads the first
// result to outputPath. The write goes through a temp file and rename so a
// concurrent worker on the same path sees either nothing or a whole file.
func (d *Downloader) DownloadBestMatch(ctx context.Context, opts *SearchOptions, outputPath string) (*SearchResult, error) {
	results, err := d.searcher.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, &SearchError{
			Provider: d.searcher.Name(),
			Code:     "NO_RESULTS",
			Message:  fmt.Sprintf("no images found for %q", opts.Query),
		}
	}

	result := results[0]
	if err := d.downloadTo(ctx, &result, outputPath); err != nil {
		return nil, err
	}
	return &result, nil
}

func (d *Downloader) downloadTo(ctx context.Context, result *SearchResult, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if !d.options.OverwriteExisting {
		if _, err := os.Stat(outputPath); err == nil {
			return nil // Already there, nothing to do
		}
	}

	reader, err := d.searcher.Download(ctx, result.URL)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer reader.Close()

	tmp, err := os.CreateTemp(dir, ".img-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := d.copyLimited(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to finish image file: %w", err)
	}

	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move image into place: %w", err)
	}

	if d.options.SaveAttribution {
		if attribution := d.searcher.GetAttribution(result); attribution != "" {
			attrPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_attribution.txt"
			if err := os.WriteFile(attrPath, []byte(attribution), 0644); err != nil {
				// Non-fatal, the image itself made it
				fmt.Fprintf(os.Stderr, "Warning: failed to save attribution: %v\n", err)
			}
		}
	}

	return nil
}

func (d *Downloader) copyLimited(dst io.Writer, src io.Reader) error {
	if d.options.MaxSizeBytes <= 0 {
		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		return nil
	}

	written, err := io.CopyN(dst, src, d.options.MaxSizeBytes)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if written == d.options.MaxSizeBytes {
		// One more byte means the source exceeds the cap
		if _, err := src.Read(make([]byte, 1)); err != io.EOF {
			return fmt.Errorf("image exceeds maximum size of %d bytes", d.options.MaxSizeBytes)
		}
	}

	return nil
}
