package chart

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Renderer writes a chart image.
type Renderer interface {
	Render(w io.Writer, data *Data) error
}

// RendererFor returns the renderer matching the extension of path.
func RendererFor(path string) (Renderer, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps":
		return GonumRenderer{Format: format}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}
