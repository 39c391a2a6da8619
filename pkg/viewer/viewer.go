// Package viewer shows a chart in the terminal and waits for the user to close it.
package viewer

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/askiada/go-lossplot/pkg/chart"
)

// Terminal is an interactive chart.Display. In and Out default to the process stdin and
// stdout.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// Show draws data on the alternate screen and blocks until q, esc or ctrl+c is pressed, or ctx
// is done.
func (t Terminal) Show(ctx context.Context, data *chart.Data) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}

	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}

	_, err := tea.NewProgram(newModel(data), opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr //nolint:wrapcheck // context errors are returned as is
	}

	if err != nil {
		return errors.Wrap(err, "unable to run terminal viewer")
	}

	return nil
}

type model struct {
	data   *chart.Data
	width  int
	height int
}

func newModel(data *chart.Data) model {
	return model{data: data}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading chart..."
	}

	return render(m.data, m.width, m.height)
}

var _ chart.Display = Terminal{}
