package mode

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"kestrel/internal/editor"
	"kestrel/internal/keys"
)

// CommandMode is the ':'-prefixed command line: it accumulates raw
// keystrokes into currCmd, autocompletes the first token against a
// registry of named ActionGenerators on Tab, and on Enter tokenizes the
// line, dispatches the first token's generator with the rest as
// arguments, and pops back out whether the command succeeds, fails or is
// unknown. An empty line leaves the mode active.
type CommandMode struct {
	registry map[string]editor.ActionGenerator
	order    []string // registration order, for stable fuzzy ranking
	currCmd  string
}

const CommandModeID = "command"

// NewCommandMode builds a CommandMode with the quit and save commands
// registered, ready to grow via Register for host-specific commands.
func NewCommandMode() *CommandMode {
	m := &CommandMode{registry: make(map[string]editor.ActionGenerator)}
	m.Register(editor.NewActionGenerator("quit", func(_ []string, _ *editor.EditorStateSummary) (editor.EditorAction, bool) {
		return editor.EditorAction{editor.Quit()}, true
	}))
	m.Register(editor.NewActionGenerator("save", func(args []string, _ *editor.EditorStateSummary) (editor.EditorAction, bool) {
		if len(args) == 0 {
			return editor.EditorAction{editor.SaveCurrDocument(nil)}, true
		}
		path := args[0]
		return editor.EditorAction{editor.SaveCurrDocument(&path)}, true
	}))
	return m
}

// Register adds gen to the command registry under its own name.
func (m *CommandMode) Register(gen editor.ActionGenerator) {
	if _, exists := m.registry[gen.Name()]; !exists {
		m.order = append(m.order, gen.Name())
	}
	m.registry[gen.Name()] = gen
}

func (m *CommandMode) ID() string { return CommandModeID }

func (m *CommandMode) HandleCombo(kc keys.KeyCombo, state *editor.EditorStateSummary) editor.EditorAction {
	if evt, ok := kc.First(); ok && kc.Len() == 1 && !evt.IsChar {
		switch evt.Named {
		case keys.KeyEsc:
			m.currCmd = ""
			return editor.EditorAction{editor.PopMode()}
		case keys.KeyBackspace:
			if m.currCmd != "" {
				r := []rune(m.currCmd)
				m.currCmd = string(r[:len(r)-1])
			}
			return editor.EditorAction{editor.ResetCombo()}
		case keys.KeyEnter:
			return m.runLine(state)
		case keys.KeyTab:
			m.autocomplete()
			return editor.EditorAction{editor.ResetCombo()}
		}
	}

	text := kc.ExtractText()
	text = strings.NewReplacer(":", "", "\n", "", "\t", "").Replace(text)
	if text == "" {
		return nil
	}
	m.currCmd += text
	return editor.EditorAction{editor.ResetCombo()}
}

func (m *CommandMode) runLine(state *editor.EditorStateSummary) editor.EditorAction {
	line := m.currCmd
	m.currCmd = ""

	fields := strings.Fields(line)
	if len(fields) == 0 {
		// An empty line stays in the mode and just resets the combo,
		// it never reaches the registry lookup below.
		return editor.EditorAction{editor.ResetCombo()}
	}
	gen, ok := m.registry[fields[0]]
	if !ok {
		return editor.EditorAction{
			editor.PopMode(),
			editor.ThrowErr(editor.ModalEditorError{Msg: "unknown command: " + fields[0]}),
		}
	}
	action, ok := gen.Fn(fields[1:], state)
	if !ok {
		action = editor.EditorAction{editor.ThrowErr(editor.ModalEditorError{Msg: "command failed: " + fields[0]})}
	}
	return append(editor.EditorAction{editor.PopMode()}, action...)
}

func (m *CommandMode) autocomplete() {
	fields := strings.Fields(m.currCmd)
	if len(fields) != 1 {
		return
	}
	matches := fuzzy.Find(fields[0], m.order)
	if len(matches) == 0 {
		return
	}
	m.currCmd = matches[0].Str
}

func (m *CommandMode) GetDisplay(*editor.EditorStateSummary) editor.EditorDisplay {
	text := ":" + m.currCmd
	return editor.EditorDisplay{BtmBarText: &text}
}
