package cli

import (
	"context"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/runtime"
)

// indentUnit is inserted by tab.
const indentUnit = "    "

// Status lines.
const (
	statusLoading   = "Loading runtime..."
	statusExecuting = "Executing..."
)

// Playground styles
var (
	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFaint).
			Padding(0, 1)
	outputStyle = lipgloss.NewStyle().Foreground(colorBright)
	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// playgroundCommand creates the interactive snippet editor.
func (c *CLI) playgroundCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "playground [file]",
		Short: "Edit and run a snippet interactively",
		Long: `Playground opens a small editor for a snippet. Type to edit, tab inserts
four spaces, ctrl+r runs the snippet, esc or ctrl+c quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code string
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "snippet %s", args[0])
				}
				if err != nil {
					return err
				}
				code = string(data)
			}

			ctx := cmd.Context()
			m := newPlaygroundModel(ctx, c.loader(), code)
			_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// =============================================================================
// PlaygroundModel
// =============================================================================

// PlaygroundModel is the bubbletea model for the snippet editor. The
// runtime is acquired in the background as soon as the model starts.
type PlaygroundModel struct {
	ctx    context.Context
	loader *runtime.Loader

	Code      string
	Ready     bool
	LoadErr   error
	Executing bool
	Result    *runtime.Result
	ExecErr   error
}

type runtimeReadyMsg struct{ err error }

type execDoneMsg struct {
	res runtime.Result
	err error
}

func newPlaygroundModel(ctx context.Context, l *runtime.Loader, code string) PlaygroundModel {
	return PlaygroundModel{ctx: ctx, loader: l, Code: code, Ready: l.Ready()}
}

func (m PlaygroundModel) Init() tea.Cmd {
	if m.Ready {
		return nil
	}
	return m.load
}

func (m PlaygroundModel) load() tea.Msg {
	_, err := m.loader.Load(m.ctx)
	return runtimeReadyMsg{err: err}
}

func (m PlaygroundModel) exec(code string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.loader.Exec(m.ctx, code)
		return execDoneMsg{res: res, err: err}
	}
}

func (m PlaygroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case runtimeReadyMsg:
		m.Ready = msg.err == nil
		m.LoadErr = msg.err
	case execDoneMsg:
		m.Executing = false
		m.Ready = m.loader.Ready()
		m.ExecErr = msg.err
		m.Result = nil
		if msg.err == nil {
			m.Result = &msg.res
		} else if !m.Ready {
			m.LoadErr = msg.err
		}
	}
	return m, nil
}

func (m PlaygroundModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlR:
		if m.Executing {
			return m, nil
		}
		// A failed acquisition is retried by Exec.
		m.Executing = true
		m.LoadErr = nil
		return m, m.exec(m.Code)
	case tea.KeyTab:
		m.Code += indentUnit
	case tea.KeyEnter:
		m.Code += "\n"
	case tea.KeySpace:
		m.Code += " "
	case tea.KeyBackspace:
		if r := []rune(m.Code); len(r) > 0 {
			m.Code = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.Code += string(msg.Runes)
	}
	return m, nil
}

// Status returns the line shown under the editor.
func (m PlaygroundModel) Status() string {
	switch {
	case m.LoadErr != nil:
		return errors.UserMessage(m.LoadErr)
	case !m.Ready:
		return statusLoading
	case m.Executing:
		return statusExecuting
	case m.ExecErr != nil:
		return errors.UserMessage(m.ExecErr)
	case m.Result != nil:
		return m.Result.Output()
	}
	return ""
}

func (m PlaygroundModel) failed() bool {
	if m.Executing {
		return false
	}
	return m.LoadErr != nil || m.ExecErr != nil || (m.Result != nil && m.Result.Failed)
}

func (m PlaygroundModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Playground"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("ctrl+r run  tab indent  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(editorStyle.Render(m.Code + cursorStyle.Render("█")))
	b.WriteString("\n\n")

	status := m.Status()
	switch {
	case m.failed():
		b.WriteString(StyleOutputError.Render(status))
	case status == statusLoading || status == statusExecuting:
		b.WriteString(StyleDim.Render(status))
	default:
		b.WriteString(outputStyle.Render(status))
	}
	b.WriteString("\n")

	return b.String()
}
