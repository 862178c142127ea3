package event

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// Key is a virtual key code. Printable keys use their lower-case rune.
type Key rune

const (
	KeyNone   Key = 0
	KeySpace  Key = ' '
	KeyEscape Key = 0x1b
	KeyEnter  Key = '\r'
	KeyUp     Key = 0xE000 + iota
	KeyDown
	KeyLeft
	KeyRight
)

var namedKeys = map[string]Key{
	"space":  KeySpace,
	"escape": KeyEscape,
	"esc":    KeyEscape,
	"enter":  KeyEnter,
	"up":     KeyUp,
	"down":   KeyDown,
	"left":   KeyLeft,
	"right":  KeyRight,
}

// ErrUnknownKey is returned by ParseKey for names it does not recognise.
var ErrUnknownKey = eris.New("unknown key name")

// KeyFromRune maps a typed rune to its key code.
func KeyFromRune(r rune) Key {
	return Key(unicode.ToLower(r))
}

// ParseKey accepts a single character ("a", "Q") or a key name ("space").
func ParseKey(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return KeyFromRune(r), nil
	}
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return k, nil
	}
	return KeyNone, eris.Wrapf(ErrUnknownKey, "%q", name)
}

func (k Key) String() string {
	for name, v := range namedKeys {
		if v == k && name != "esc" {
			return name
		}
	}
	if k == KeyNone {
		return "none"
	}
	return string(rune(k))
}
