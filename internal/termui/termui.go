// Package termui is the reference terminal frontend: a bubbletea
// program that forwards decoded key and resize events into a
// server.RendererServer and renders whatever regions it hands back,
// grounded on original_source/src/frontend/cursive_frontend.rs and the
// teacher repo's own bubbletea+lipgloss UI packages.
package termui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kestrel/internal/editor"
	"kestrel/internal/server"
)

var (
	errorBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Padding(0, 1)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
	highlightStyle = lipgloss.NewStyle().
			Reverse(true)
)

type stateUpdatedMsg struct {
	summary editor.EditorStateSummary
	regions []server.StyleRegion
}

type errorMsg struct{ err error }

type quitMsg struct{}

// bridge implements server.Frontend by forwarding each callback onto a
// running tea.Program's message queue, since RendererServer invokes
// these from its own goroutine rather than bubbletea's event loop.
type bridge struct {
	program *tea.Program
}

func (b *bridge) StateUpdated(summary editor.EditorStateSummary, regions []server.StyleRegion) {
	b.program.Send(stateUpdatedMsg{summary: summary, regions: regions})
}

func (b *bridge) Error(err error) { b.program.Send(errorMsg{err: err}) }

func (b *bridge) Quit() { b.program.Send(quitMsg{}) }

// rendererBox is a level of pointer indirection around the *RendererServer
// a Model forwards events to. bubbletea stores its own copy of the Model
// value once tea.NewProgram is called, so wiring the renderer in requires
// a shared mutable cell rather than a second field assignment after the
// fact: NewModel and SetRenderer both operate through the same box,
// breaking what would otherwise be a construction cycle between Model and
// RendererServer (RendererServer needs a Frontend, whose only
// implementation needs the *tea.Program, which needs a Model).
type rendererBox struct {
	renderer *server.RendererServer
}

// Model is the bubbletea model rendering the last redraw the renderer
// handed it.
type Model struct {
	box     *rendererBox
	summary editor.EditorStateSummary
	regions []server.StyleRegion
	errText string
	width   int
	height  int
}

// NewModel returns a Model with no renderer wired yet. Build the
// tea.Program around it, construct the RendererServer with Bridge(program)
// as its Frontend, then call SetRenderer before starting program.Run().
func NewModel() Model {
	return Model{box: &rendererBox{}}
}

// SetRenderer completes the wiring between a Model already handed to
// tea.NewProgram and the RendererServer built afterward.
func (m Model) SetRenderer(r *server.RendererServer) { m.box.renderer = r }

// Bridge returns a server.Frontend that forwards renderer callbacks
// into p's message loop; wire it up via RendererServer's constructor
// before p.Run() is called.
func Bridge(p *tea.Program) server.Frontend { return &bridge{program: p} }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.box.renderer.Forward(server.Resized(msg.Width, msg.Height))
		return m, nil
	case tea.KeyMsg:
		if evt, ok := decodeKey(msg); ok {
			m.box.renderer.Forward(server.KeyEvent(evt))
		}
		return m, nil
	case stateUpdatedMsg:
		m.summary = msg.summary
		m.regions = msg.regions
		m.errText = ""
		return m, nil
	case errorMsg:
		m.errText = msg.err.Error()
		return m, nil
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

// View concatenates the stylised slices of the current document,
// visualising tab as "····" and newline as "↩\n" per the frontend
// contract, followed by a status bar and an optional error line.
func (m Model) View() string {
	var body strings.Builder
	if m.summary.CurrDoc != nil {
		buf := m.summary.CurrDoc.Buf()
		for _, r := range m.regions {
			slice := buf.Slice(r.Start, r.End)
			rendered := visualize(slice)
			if r.Style.Fg != "" || r.Style.Bg != "" {
				style := lipgloss.NewStyle()
				if r.Style.Fg != "" {
					style = style.Foreground(lipgloss.Color(r.Style.Fg))
				}
				if r.Style.Bg != "" {
					style = style.Background(lipgloss.Color(r.Style.Bg))
				}
				rendered = style.Render(rendered)
			}
			if r.Style.Highlight {
				rendered = highlightStyle.Render(rendered)
			}
			body.WriteString(rendered)
		}
	}

	source := "[scratch]"
	if m.summary.CurrDoc != nil {
		source = m.summary.CurrDoc.Source.String()
	}
	status := statusBarStyle.Render(source + " -- " + m.summary.CurrMode)
	out := body.String() + "\n" + status
	if m.errText != "" {
		out += "\n" + errorBarStyle.Render(m.errText)
	}
	return out
}

// visualize replaces tabs and newlines with their visible glyphs so a
// blank line's whitespace remains legible on screen.
func visualize(s string) string {
	s = strings.ReplaceAll(s, "\t", "····")
	s = strings.ReplaceAll(s, "\n", "↩\n")
	return s
}
