package chart

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Display presents a chart to the user.
type Display interface {
	// Show returns once the chart has been presented. Interactive displays block until they
	// are dismissed.
	Show(ctx context.Context, data *Data) error
}

// FileDisplay writes the chart to Path. Renderer defaults to RendererFor(Path). Nothing is
// written when rendering fails.
type FileDisplay struct {
	Path     string
	Renderer Renderer
}

func (f FileDisplay) Show(ctx context.Context, data *Data) error {
	renderer := f.Renderer
	if renderer == nil {
		var err error

		renderer, err = RendererFor(f.Path)
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer

	err := renderer.Render(&buf, data)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck // context errors are returned as is
	}

	err = os.WriteFile(f.Path, buf.Bytes(), 0o644) //nolint:gosec // charts are meant to be shared
	if err != nil {
		return errors.Wrapf(err, "unable to write chart to %s", f.Path)
	}

	klog.Infof("chart written to %s", f.Path)

	return nil
}

var _ Display = FileDisplay{}
