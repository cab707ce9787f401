// Package export writes finished bitmaps to storage without blocking the
// caller.
package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of one export: either Path is set or Err is.
type Result struct {
	Path string
	Err  error
}

// OK reports whether the export succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Exporter accepts a bitmap and reports exactly one Result on the returned
// channel, which is then closed.
type Exporter interface {
	Export(img image.Image) <-chan Result
}

var extensions = map[imaging.Format]string{
	imaging.JPEG: ".jpg",
	imaging.PNG:  ".png",
	imaging.GIF:  ".gif",
	imaging.TIFF: ".tif",
	imaging.BMP:  ".bmp",
}

// DiskExporter saves images into a directory under unique names.
type DiskExporter struct {
	dir     string
	format  imaging.Format
	quality int
}

// NewDiskExporter validates format ("png", "jpeg", "jpg", "gif", "tiff", "bmp")
// and returns an exporter writing into dir. quality applies to JPEG only.
func NewDiskExporter(dir, format string, quality int) (*DiskExporter, error) {
	f, err := imaging.FormatFromExtension(strings.TrimPrefix(strings.ToLower(format), "."))
	if err != nil {
		return nil, fmt.Errorf("unsupported export format %q: %w", format, err)
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality must be in 1..100, got %d", quality)
	}
	if dir == "" {
		dir = "."
	}
	return &DiskExporter{dir: dir, format: f, quality: quality}, nil
}

// Export writes img in the background.
func (d *DiskExporter) Export(img image.Image) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		path, err := d.write(img)
		if err != nil {
			log.Error().Err(err).Str("dir", d.dir).Msg("export failed")
			ch <- Result{Err: err}
			return
		}
		log.Info().Str("path", path).Msg("image exported")
		ch <- Result{Path: path}
	}()
	return ch
}

func (d *DiskExporter) write(img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("nothing to export")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("error generating file name %w", err)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory %w", err)
	}
	path := filepath.Join(d.dir, id.String()+extensions[d.format])
	if err := imaging.Save(img, path, imaging.JPEGQuality(d.quality)); err != nil {
		return "", fmt.Errorf("error writing image %w", err)
	}
	return path, nil
}
