// Package imageintake turns image files into the data URIs stored on image
// pins.
package imageintake

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxBytes caps the size of a file accepted by Load. Pins embed the whole
// payload, and every history entry shares it.
const MaxBytes = 8 << 20

var (
	// ErrTooLarge is returned for files above MaxBytes.
	ErrTooLarge = errors.New("image exceeds size limit")
	// ErrNotImage is returned when the content is not a supported image.
	ErrNotImage = errors.New("not a supported image")
)

// Image is a decoded-header view of an image file.
type Image struct {
	DataURI string
	MIME    string
	Width   int
	Height  int
}

// Load reads the file at path and returns it as a data URI with its natural
// dimensions. Only the image header is decoded.
func Load(path string) (Image, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Image{}, fmt.Errorf("image path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read is Load for an already open reader.
func Read(r io.Reader) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxBytes {
		return Image{}, fmt.Errorf("%w (%d MiB)", ErrTooLarge, MaxBytes>>20)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Image{}, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %s: %v", ErrNotImage, mt.String(), err)
	}

	// mimetype may append parameters; the data URI only wants the type.
	mime, _, _ := strings.Cut(mt.String(), ";")
	return Image{
		DataURI: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIME:    mime,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}

// Fit scales w×h down so neither side exceeds bound, keeping the aspect
// ratio. Images already inside the bound are returned unchanged.
func Fit(w, h, bound float64) (float64, float64) {
	if w <= 0 || h <= 0 || bound <= 0 {
		return w, h
	}
	if w <= bound && h <= bound {
		return w, h
	}
	if w >= h {
		return bound, h * bound / w
	}
	return w * bound / h, bound
}
