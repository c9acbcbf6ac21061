package termui

import (
	tea "github.com/charmbracelet/bubbletea"

	"kestrel/internal/keys"
)

var namedKeys = map[tea.KeyType]keys.Key{
	tea.KeyEnter:     keys.KeyEnter,
	tea.KeyTab:       keys.KeyTab,
	tea.KeyBackspace: keys.KeyBackspace,
	tea.KeyEsc:       keys.KeyEsc,
	tea.KeyLeft:      keys.KeyLeft,
	tea.KeyRight:     keys.KeyRight,
	tea.KeyUp:        keys.KeyUp,
	tea.KeyDown:      keys.KeyDown,
	tea.KeyInsert:    keys.KeyIns,
	tea.KeyDelete:    keys.KeyDel,
	tea.KeyHome:      keys.KeyHome,
	tea.KeyEnd:       keys.KeyEnd,
	tea.KeyPgUp:      keys.KeyPageUp,
	tea.KeyPgDown:    keys.KeyPageDown,
	tea.KeyF1:        keys.KeyF1,
	tea.KeyF2:        keys.KeyF2,
	tea.KeyF3:        keys.KeyF3,
	tea.KeyF4:        keys.KeyF4,
	tea.KeyF5:        keys.KeyF5,
	tea.KeyF6:        keys.KeyF6,
	tea.KeyF7:        keys.KeyF7,
	tea.KeyF8:        keys.KeyF8,
	tea.KeyF9:        keys.KeyF9,
	tea.KeyF10:       keys.KeyF10,
	tea.KeyF11:       keys.KeyF11,
	tea.KeyF12:       keys.KeyF12,
}

// ctrlChars maps bubbletea's Ctrl-letter key types, which it reports as
// distinct KeyType values rather than a modifier bit, back onto a plain
// character plus ModCtrl.
var ctrlChars = map[tea.KeyType]rune{
	tea.KeyCtrlA: 'a', tea.KeyCtrlB: 'b', tea.KeyCtrlC: 'c', tea.KeyCtrlD: 'd',
	tea.KeyCtrlE: 'e', tea.KeyCtrlF: 'f', tea.KeyCtrlG: 'g', tea.KeyCtrlH: 'h',
	tea.KeyCtrlJ: 'j', tea.KeyCtrlK: 'k', tea.KeyCtrlL: 'l', tea.KeyCtrlN: 'n',
	tea.KeyCtrlO: 'o', tea.KeyCtrlP: 'p', tea.KeyCtrlQ: 'q', tea.KeyCtrlR: 'r',
	tea.KeyCtrlS: 's', tea.KeyCtrlT: 't', tea.KeyCtrlU: 'u', tea.KeyCtrlV: 'v',
	tea.KeyCtrlW: 'w', tea.KeyCtrlX: 'x', tea.KeyCtrlY: 'y', tea.KeyCtrlZ: 'z',
}

// decodeKey translates a bubbletea key message into the core's KeyEvt,
// reporting false for message shapes the editor has no opinion about.
func decodeKey(msg tea.KeyMsg) (keys.KeyEvt, bool) {
	if c, ok := ctrlChars[msg.Type]; ok {
		return keys.CharEvt(c, keys.ModCtrl), true
	}

	mods := keys.ModNone
	if msg.Alt {
		mods |= keys.ModAlt
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return keys.CharEvt(msg.Runes[0], mods), true
	}

	if named, ok := namedKeys[msg.Type]; ok {
		return keys.NamedEvt(named, mods), true
	}

	return keys.KeyEvt{}, false
}
