// Package imageio writes rendered framebuffers to disk. PPM (binary P6) is
// the native format; PNG, BMP and TIFF are available for viewers that do not
// read PPM.
package imageio

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-tiny-raytracer/pkg/renderer"
)

// Format identifies an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat maps a format name such as "png" or "tif" to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format: %q", name)
	}
}

// FormatForPath picks the format from a file extension. Paths without an
// extension are written as PPM.
func FormatForPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatPPM, nil
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/x-portable-pixmap"
	}
}

// WritePPM writes fb as a binary P6 pixmap: an ASCII header followed by
// tone-mapped RGB bytes, row-major from the top row
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, pixel := range fb.Pixels {
		c := renderer.ToneMap(pixel)
		if _, err := bw.Write([]byte{c.R, c.G, c.B}); err != nil {
			return fmt.Errorf("failed to write PPM pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM pixels: %w", err)
	}
	return nil
}

// Encode writes fb to w in the given format
func Encode(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	var err error
	switch format {
	case FormatPPM:
		return WritePPM(w, fb)
	case FormatPNG:
		err = png.Encode(w, fb.ToImage())
	case FormatBMP:
		err = bmp.Encode(w, fb.ToImage())
	case FormatTIFF:
		err = tiff.Encode(w, fb.ToImage(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format: %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Save writes fb to path, choosing the format from the file extension
func Save(path string, fb *renderer.Framebuffer) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(file, fb, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
