package chart_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lossplot/pkg/chart"
	"github.com/askiada/go-lossplot/pkg/series"
)

var pngMagic = []byte("\x89PNG")

func newData(t *testing.T, x, y []string) *chart.Data {
	t.Helper()

	data, err := chart.NewData(&series.Series{X: x, Y: y}, chart.DefaultConfig())
	require.NoError(t, err)

	return data
}

func TestRendererFor(t *testing.T) {
	t.Parallel()

	renderer, err := chart.RendererFor("out/loss.PNG")
	require.NoError(t, err)
	assert.Equal(t, chart.GonumRenderer{Format: "png"}, renderer)

	renderer, err = chart.RendererFor("loss.svg")
	require.NoError(t, err)
	assert.Equal(t, chart.GonumRenderer{Format: "svg"}, renderer)

	_, err = chart.RendererFor("loss.txt")
	require.ErrorIs(t, err, chart.ErrUnsupportedFormat)

	_, err = chart.RendererFor("loss")
	require.ErrorIs(t, err, chart.ErrUnsupportedFormat)
}

func TestRenderers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		renderer chart.Renderer
		x        []string
		y        []string
		prefix   []byte
		contains []byte
	}{
		"gonum png":             {renderer: chart.GonumRenderer{Format: "png"}, x: []string{"1", "2", "3"}, y: []string{"0.5", "0.3", "0.25"}, prefix: pngMagic},
		"gonum svg":             {renderer: chart.GonumRenderer{Format: "svg"}, x: []string{"1", "2", "3"}, y: []string{"0.5", "0.3", "0.9"}, contains: []byte("<svg")},
		"gonum single point":    {renderer: chart.GonumRenderer{Format: "png"}, x: []string{"1"}, y: []string{"0.2"}, prefix: pngMagic},
		"gonum categorical":     {renderer: chart.GonumRenderer{Format: "svg"}, x: []string{"a", "b"}, y: []string{"0.1", "0.2"}, contains: []byte("<svg")},
		"go-chart png":          {renderer: chart.GoChartRenderer{Format: "png"}, x: []string{"1", "2", "3"}, y: []string{"0.5", "0.3", "0.25"}, prefix: pngMagic},
		"go-chart svg":          {renderer: chart.GoChartRenderer{Format: "svg"}, x: []string{"1", "2"}, y: []string{"0.5", "0.3"}, contains: []byte("<svg")},
		"go-chart single point": {renderer: chart.GoChartRenderer{Format: "png"}, x: []string{"1"}, y: []string{"0.2"}, prefix: pngMagic},
		"go-chart categorical":  {renderer: chart.GoChartRenderer{Format: "png"}, x: []string{"a", "b"}, y: []string{"0.1", "0.2"}, prefix: pngMagic},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			require.NoError(t, tc.renderer.Render(&buf, newData(t, tc.x, tc.y)))

			if tc.prefix != nil {
				assert.True(t, bytes.HasPrefix(buf.Bytes(), tc.prefix))
			}

			if tc.contains != nil {
				assert.True(t, bytes.Contains(buf.Bytes(), tc.contains))
			}
		})
	}
}

func TestRenderersKeepTheVerticalAxis(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		renderer chart.Renderer
	}{
		"gonum":    {renderer: chart.GonumRenderer{Format: "svg"}},
		"go-chart": {renderer: chart.GoChartRenderer{Format: "svg"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			data := newData(t, []string{"10", "20", "30"}, []string{"0.9", "0.3", "1.7"})
			require.NoError(t, tc.renderer.Render(&buf, data))

			svg := buf.String()
			assert.Contains(t, svg, ">0.00</text>")
			assert.Contains(t, svg, ">0.50</text>")
			assert.Contains(t, svg, "#iterations")
			assert.Contains(t, svg, "score")

			for _, label := range []string{">0.75</text>", ">1.00</text>", ">1.0</text>", ">1.5</text>", ">1.50</text>", ">1.70</text>"} {
				assert.NotContains(t, svg, label)
			}
		})
	}
}

func TestGoChartRendererIntegerXTicks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, chart.GoChartRenderer{Format: "svg"}.Render(&buf, newData(t, []string{"1", "2", "3"}, []string{"0.5", "0.3", "0.25"})))

	svg := buf.String()
	for _, label := range []string{">1</text>", ">2</text>", ">3</text>"} {
		assert.Contains(t, svg, label)
	}

	assert.NotContains(t, svg, ">1.50</text>")
	assert.NotContains(t, svg, ">2.50</text>")
}

func TestGoChartRendererUnsupportedFormat(t *testing.T) {
	t.Parallel()

	err := chart.GoChartRenderer{Format: "pdf"}.Render(&bytes.Buffer{}, newData(t, []string{"1"}, []string{"0.1"}))
	assert.ErrorIs(t, err, chart.ErrUnsupportedFormat)
}

func TestFileDisplay(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loss.png")

	err := chart.FileDisplay{Path: path}.Show(t.Context(), newData(t, []string{"1", "2"}, []string{"0.4", "0.2"}))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, pngMagic))
}

func TestFileDisplayWithRenderer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loss.out")

	display := chart.FileDisplay{Path: path, Renderer: chart.GoChartRenderer{Format: "svg"}}
	require.NoError(t, display.Show(t.Context(), newData(t, []string{"1", "2"}, []string{"0.4", "0.2"})))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<svg")
}

func TestFileDisplayErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := newData(t, []string{"1", "2"}, []string{"0.4", "0.2"})

	err := chart.FileDisplay{Path: filepath.Join(dir, "loss.txt")}.Show(t.Context(), data)
	require.ErrorIs(t, err, chart.ErrUnsupportedFormat)
	assert.NoFileExists(t, filepath.Join(dir, "loss.txt"))

	err = chart.FileDisplay{Path: filepath.Join(dir, "loss.pdf"), Renderer: chart.GoChartRenderer{Format: "pdf"}}.Show(t.Context(), data)
	require.ErrorIs(t, err, chart.ErrUnsupportedFormat)
	assert.NoFileExists(t, filepath.Join(dir, "loss.pdf"))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err = chart.FileDisplay{Path: filepath.Join(dir, "loss.png")}.Show(ctx, data)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "loss.png"))
}
