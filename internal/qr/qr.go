// Package qr renders QR code images for arbitrary URLs.
package qr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// defaultSize is the output image edge in pixels, sized for 10 px modules on
// a small code with the standard quiet zone.
const defaultSize = 410

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithDir sets the directory saved codes are written under. Files land in a
// QR/ subdirectory so they can be served next to other static assets.
func WithDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.dir = dir
		}
	}
}

// WithSize sets the output image edge in pixels.
func WithSize(px int) Option {
	return func(g *Generator) {
		if px > 0 {
			g.size = px
		}
	}
}

// Generator encodes URLs as black-on-white PNG QR codes with low error
// correction, matching the site's original codes.
type Generator struct {
	dir  string
	size int
}

// NewGenerator creates a Generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		dir:  "static",
		size: defaultSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// PNG encodes url and returns the image bytes for inline responses.
func (g *Generator) PNG(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, ErrEmptyURL
	}
	png, err := qrcode.Encode(url, qrcode.Low, g.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return png, nil
}

// Save encodes url and writes it under <dir>/QR/<name>.png, creating the
// directory when missing. An empty name gets a random one. The returned path
// is relative to the static root, ready to reference from a page.
func (g *Generator) Save(ctx context.Context, url, name string) (string, error) {
	png, err := g.PNG(ctx, url)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = uuid.NewString()
	}

	folder := filepath.Join(g.dir, "QR")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("qr dir: %w", err)
	}
	file := filepath.Join(folder, name+".png")
	if err := os.WriteFile(file, png, 0o644); err != nil {
		return "", fmt.Errorf("write qr: %w", err)
	}
	return filepath.ToSlash(filepath.Join("QR", name+".png")), nil
}
