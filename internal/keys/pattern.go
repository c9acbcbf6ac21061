package keys

import "unicode"

// KeyMatcher is one unit of a KeyPatternClause: a rule for consuming
// some events off the front of a KeyCombo.
type KeyMatcher struct {
	kind  matcherKind
	exact KeyEvt
	mods  KeyMods
}

type matcherKind int

const (
	matchExact matcherKind = iota
	matchAnyChar
	matchAnyKey
	matchDigit
	matchNumber
	matchAny
)

func Exact(evt KeyEvt) KeyMatcher     { return KeyMatcher{kind: matchExact, exact: evt} }
func AnyChar(mods KeyMods) KeyMatcher { return KeyMatcher{kind: matchAnyChar, mods: mods} }
func AnyKey(mods KeyMods) KeyMatcher  { return KeyMatcher{kind: matchAnyKey, mods: mods} }
func Digit(mods KeyMods) KeyMatcher   { return KeyMatcher{kind: matchDigit, mods: mods} }
func Number(mods KeyMods) KeyMatcher  { return KeyMatcher{kind: matchNumber, mods: mods} }
func Any() KeyMatcher                 { return KeyMatcher{kind: matchAny} }

func isASCIIDigit(c rune) bool { return c >= '0' && c <= '9' && unicode.IsDigit(c) }

// TryConsume attempts to remove matching events from the front of kc,
// returning them. An empty result means no match; kc is left untouched
// in that case.
func (m KeyMatcher) TryConsume(kc *KeyCombo) []KeyEvt {
	switch m.kind {
	case matchExact:
		if e, ok := kc.PopFirstIf(func(k KeyEvt) bool { return k == m.exact }); ok {
			return []KeyEvt{e}
		}
	case matchAnyChar:
		if e, ok := kc.PopFirstIf(func(k KeyEvt) bool { return k.IsChar && k.Mods == m.mods }); ok {
			return []KeyEvt{e}
		}
	case matchAnyKey:
		if e, ok := kc.PopFirstIf(func(k KeyEvt) bool { return !k.IsChar && k.Mods == m.mods }); ok {
			return []KeyEvt{e}
		}
	case matchNumber:
		var num []KeyEvt
		for kc.FirstMatches(func(k KeyEvt) bool { return k.IsChar && k.Mods == m.mods && isASCIIDigit(k.Char) }) {
			e, _ := kc.PopFirst()
			num = append(num, e)
		}
		return num
	case matchDigit:
		if e, ok := kc.PopFirstIf(func(k KeyEvt) bool { return k.IsChar && k.Mods == m.mods && isASCIIDigit(k.Char) }); ok {
			return []KeyEvt{e}
		}
	case matchAny:
		if e, ok := kc.PopFirstIf(func(KeyEvt) bool { return true }); ok {
			return []KeyEvt{e}
		}
	}
	return nil
}

// KeyPatternClause is a disjunction of matchers: the first one that
// consumes anything wins.
type KeyPatternClause []KeyMatcher

// TryConsume returns the first matcher's non-empty consumption, or nil.
func (c KeyPatternClause) TryConsume(kc *KeyCombo) []KeyEvt {
	for _, m := range c {
		if consumed := m.TryConsume(kc); len(consumed) > 0 {
			return consumed
		}
	}
	return nil
}

// KeyPattern is a conjunction (sequence) of clauses: a combo matches iff
// every clause in order consumes at least one event and nothing is left
// over afterward.
type KeyPattern []KeyPatternClause

// Matches reports whether kc, taken as a whole, satisfies p. kc is
// passed by value so match attempts never mutate the caller's combo.
func (p KeyPattern) Matches(kc KeyCombo) bool {
	for _, clause := range p {
		if consumed := clause.TryConsume(&kc); len(consumed) == 0 {
			return false
		}
	}
	return kc.IsEmpty()
}
