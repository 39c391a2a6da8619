// Command lossplot draws the loss recorded in a training log against the iteration count.
//
// Usage:
//
//	lossplot <data file>
//
// Every line of the data file is "iteration,loss[,...]". When stdout is a terminal the chart
// is shown in place until q is pressed, otherwise it is written next to the data file as a
// PNG image.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/askiada/go-lossplot/pkg/chart"
	"github.com/askiada/go-lossplot/pkg/lossplot"
	"github.com/askiada/go-lossplot/pkg/viewer"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("data file is required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := execute(ctx, os.Args[1:], os.Stdout, defaultDisplay)

	stop()
	klog.Flush()
	os.Exit(code)
}

func newRootCommand(displayFor func(dataFile string) chart.Display) *cobra.Command {
	return &cobra.Command{
		Use:   "lossplot <data file>",
		Short: "Plot the loss of a training log against the iteration count",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errUsage
			}

			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// klog stays at verbosity 0 without flags, so the step measure is left out.
			plotter, err := lossplot.New(displayFor(args[0]))
			if err != nil {
				return err
			}

			return plotter.Plot(cmd.Context(), args[0])
		},
	}
}

// execute runs the command line and returns the exit status.
func execute(ctx context.Context, args []string, stdout io.Writer, displayFor func(dataFile string) chart.Display) int {
	cmd := newRootCommand(displayFor)
	// cobra falls back to os.Args on nil
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(stdout)

	err := cmd.ExecuteContext(ctx)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stdout, "Usage: %s <data file>\n", cmd.Name())

		return exitUsage
	default:
		klog.Errorf("%v", err)

		return exitFailure
	}
}

func defaultDisplay(dataFile string) chart.Display {
	if term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // file descriptors fit in an int
		return viewer.Terminal{}
	}

	return chart.FileDisplay{Path: chartPath(dataFile)}
}

// chartPath replaces the extension of dataFile with .png, without ever returning dataFile
// itself.
func chartPath(dataFile string) string {
	path := strings.TrimSuffix(dataFile, filepath.Ext(dataFile)) + ".png"
	if path == dataFile {
		path += ".png"
	}

	return path
}
