// Package keys models keyboard input as a small pattern-matching
// language: raw key events accumulate into a KeyCombo, and a KeyPattern
// (a sequence of disjunctive KeyMatcher clauses) decides whether a combo
// fully matches a trigger.
package keys

// KeyMods is a bitset of modifier keys held during a key event.
type KeyMods uint8

const (
	ModNone  KeyMods = 0
	ModCtrl  KeyMods = 1 << 0
	ModAlt   KeyMods = 1 << 1
	ModShift KeyMods = 1 << 2
)

// Key names a non-character key on the keyboard.
type Key int

const (
	KeyEnter Key = iota
	KeyTab
	KeyBackspace
	KeyEsc
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyIns
	KeyDel
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyPauseBreak
	KeyNumpadCenter
	KeyF0
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeyEvt is either a printable character or a named key, each carrying
// the modifiers held when it was produced.
type KeyEvt struct {
	Char  rune // valid only when IsChar
	Named Key  // valid only when !IsChar
	Mods  KeyMods
	IsChar bool
}

// CharEvt builds a KeyEvt for a printable character.
func CharEvt(c rune, mods KeyMods) KeyEvt {
	return KeyEvt{Char: c, Mods: mods, IsChar: true}
}

// NamedEvt builds a KeyEvt for a non-character key.
func NamedEvt(k Key, mods KeyMods) KeyEvt {
	return KeyEvt{Named: k, Mods: mods, IsChar: false}
}

// KeyCombo is an ordered buffer of pending key events, consumed
// front-to-back by a TriggerHandler as it attempts to match patterns.
type KeyCombo struct {
	evts []KeyEvt
}

// NewKeyCombo builds a combo from the given events, in order.
func NewKeyCombo(evts ...KeyEvt) KeyCombo {
	return KeyCombo{evts: append([]KeyEvt(nil), evts...)}
}

func (kc KeyCombo) IsEmpty() bool { return len(kc.evts) == 0 }
func (kc KeyCombo) Len() int      { return len(kc.evts) }

// First returns the front event, if any.
func (kc KeyCombo) First() (KeyEvt, bool) {
	if kc.IsEmpty() {
		return KeyEvt{}, false
	}
	return kc.evts[0], true
}

// EventAt returns the event at the given 0-indexed position without
// consuming anything.
func (kc KeyCombo) EventAt(i int) (KeyEvt, bool) {
	if i < 0 || i >= len(kc.evts) {
		return KeyEvt{}, false
	}
	return kc.evts[i], true
}

// FirstMatches reports whether pred holds for the front event.
func (kc KeyCombo) FirstMatches(pred func(KeyEvt) bool) bool {
	e, ok := kc.First()
	return ok && pred(e)
}

// PopFirst removes and returns the front event.
func (kc *KeyCombo) PopFirst() (KeyEvt, bool) {
	if kc.IsEmpty() {
		return KeyEvt{}, false
	}
	e := kc.evts[0]
	kc.evts = kc.evts[1:]
	return e, true
}

// PopFirstIf removes and returns the front event only if pred holds for it.
func (kc *KeyCombo) PopFirstIf(pred func(KeyEvt) bool) (KeyEvt, bool) {
	if kc.FirstMatches(pred) {
		return kc.PopFirst()
	}
	return KeyEvt{}, false
}

// Add appends evt to the combo.
func (kc *KeyCombo) Add(evt KeyEvt) {
	kc.evts = append(kc.evts, evt)
}

// Reset drains this combo into a freshly returned one, leaving the
// receiver empty.
func (kc *KeyCombo) Reset() KeyCombo {
	drained := KeyCombo{evts: kc.evts}
	kc.evts = nil
	return drained
}

// StartsWith reports whether kc begins with the given event sequence.
func (kc KeyCombo) StartsWith(prefix []KeyEvt) bool {
	if len(prefix) > len(kc.evts) {
		return false
	}
	for i, e := range prefix {
		if kc.evts[i] != e {
			return false
		}
	}
	return true
}

// EndsWith reports whether kc ends with the given event sequence.
func (kc KeyCombo) EndsWith(suffix []KeyEvt) bool {
	if len(suffix) > len(kc.evts) {
		return false
	}
	offset := len(kc.evts) - len(suffix)
	for i, e := range suffix {
		if kc.evts[offset+i] != e {
			return false
		}
	}
	return true
}

// ExtractText renders the combo's character-producing events as text:
// Char events pass through verbatim, Enter becomes '\n', Tab becomes '\t',
// and every other named key is dropped.
func (kc KeyCombo) ExtractText() string {
	var sb []rune
	for _, e := range kc.evts {
		switch {
		case e.IsChar:
			sb = append(sb, e.Char)
		case e.Named == KeyEnter:
			sb = append(sb, '\n')
		case e.Named == KeyTab:
			sb = append(sb, '\t')
		}
	}
	return string(sb)
}
