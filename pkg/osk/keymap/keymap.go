// Package keymap describes the installed keyboard layouts the engine can
// switch between and maps physical key codes to the text they produce.
//
// Physical codes use the Linux input event numbering (KEY_Q = 16, ...), so a
// host reading an evdev device can hand its codes to the engine unchanged.
package keymap

import (
	"errors"
	"strings"

	"github.com/holoplot/go-evdev"
	"golang.org/x/text/language"
)

// ErrUnknownLayout is returned by Activate for ids that are not installed.
var ErrUnknownLayout = errors.New("keymap: unknown layout")

// Code is a physical key code in evdev numbering.
type Code uint16

// LayoutID identifies an installed layout. It is a BCP 47 tag such as "en-US".
type LayoutID string

// Service is the layout/keymap collaborator consumed by the engine.
type Service interface {
	// InstalledLayouts returns the installed layouts in switching order.
	InstalledLayouts() []LayoutID
	// CurrentLayout returns the active layout.
	CurrentLayout() LayoutID
	// Activate makes id the active layout.
	Activate(id LayoutID) error
	// MapPhysicalKey returns the text produced by code, or "" when the
	// layout has no mapping for it.
	MapPhysicalKey(code Code, shift bool, id LayoutID) string
}

// Physical codes of the keys that appear on the letters page.
var (
	Code1     = Code(evdev.KEY_1)
	Code2     = Code(evdev.KEY_2)
	Code3     = Code(evdev.KEY_3)
	Code4     = Code(evdev.KEY_4)
	Code5     = Code(evdev.KEY_5)
	Code6     = Code(evdev.KEY_6)
	Code7     = Code(evdev.KEY_7)
	Code8     = Code(evdev.KEY_8)
	Code9     = Code(evdev.KEY_9)
	Code0     = Code(evdev.KEY_0)
	CodeMinus = Code(evdev.KEY_MINUS)
	CodeQ     = Code(evdev.KEY_Q)
	CodeW     = Code(evdev.KEY_W)
	CodeE     = Code(evdev.KEY_E)
	CodeR     = Code(evdev.KEY_R)
	CodeT     = Code(evdev.KEY_T)
	CodeY     = Code(evdev.KEY_Y)
	CodeU     = Code(evdev.KEY_U)
	CodeI     = Code(evdev.KEY_I)
	CodeO     = Code(evdev.KEY_O)
	CodeP     = Code(evdev.KEY_P)
	CodeA     = Code(evdev.KEY_A)
	CodeS     = Code(evdev.KEY_S)
	CodeD     = Code(evdev.KEY_D)
	CodeF     = Code(evdev.KEY_F)
	CodeG     = Code(evdev.KEY_G)
	CodeH     = Code(evdev.KEY_H)
	CodeJ     = Code(evdev.KEY_J)
	CodeK     = Code(evdev.KEY_K)
	CodeL     = Code(evdev.KEY_L)
	CodeZ     = Code(evdev.KEY_Z)
	CodeX     = Code(evdev.KEY_X)
	CodeC     = Code(evdev.KEY_C)
	CodeV     = Code(evdev.KEY_V)
	CodeB     = Code(evdev.KEY_B)
	CodeN     = Code(evdev.KEY_N)
	CodeM     = Code(evdev.KEY_M)
	CodeComma = Code(evdev.KEY_COMMA)
	CodeDot   = Code(evdev.KEY_DOT)
)

type codeInfo struct {
	name     string
	fallback string
}

var codeTable = map[Code]codeInfo{
	Code1: {"KEY_1", "1"}, Code2: {"KEY_2", "2"}, Code3: {"KEY_3", "3"},
	Code4: {"KEY_4", "4"}, Code5: {"KEY_5", "5"}, Code6: {"KEY_6", "6"},
	Code7: {"KEY_7", "7"}, Code8: {"KEY_8", "8"}, Code9: {"KEY_9", "9"},
	Code0: {"KEY_0", "0"}, CodeMinus: {"KEY_MINUS", "-"},
	CodeQ: {"KEY_Q", "q"}, CodeW: {"KEY_W", "w"}, CodeE: {"KEY_E", "e"},
	CodeR: {"KEY_R", "r"}, CodeT: {"KEY_T", "t"}, CodeY: {"KEY_Y", "y"},
	CodeU: {"KEY_U", "u"}, CodeI: {"KEY_I", "i"}, CodeO: {"KEY_O", "o"},
	CodeP: {"KEY_P", "p"}, CodeA: {"KEY_A", "a"}, CodeS: {"KEY_S", "s"},
	CodeD: {"KEY_D", "d"}, CodeF: {"KEY_F", "f"}, CodeG: {"KEY_G", "g"},
	CodeH: {"KEY_H", "h"}, CodeJ: {"KEY_J", "j"}, CodeK: {"KEY_K", "k"},
	CodeL: {"KEY_L", "l"}, CodeZ: {"KEY_Z", "z"}, CodeX: {"KEY_X", "x"},
	CodeC: {"KEY_C", "c"}, CodeV: {"KEY_V", "v"}, CodeB: {"KEY_B", "b"},
	CodeN: {"KEY_N", "n"}, CodeM: {"KEY_M", "m"}, CodeComma: {"KEY_COMMA", ","},
	CodeDot: {"KEY_DOT", "."},
}

var codesByName = func() map[string]Code {
	m := make(map[string]Code, len(codeTable))
	for code, info := range codeTable {
		m[info.name] = code
	}
	return m
}()

// Placeholder is shown on keys whose code has neither a layout mapping nor
// an ASCII fallback.
const Placeholder = "□"

// Name returns the evdev name of the code ("KEY_Q"), or "" if the code is
// not one of the letters-page keys.
func (c Code) Name() string {
	return codeTable[c].name
}

// IsCharacter reports whether code is one of the letters-page keys that
// produce text.
func IsCharacter(code Code) bool {
	_, ok := codeTable[code]
	return ok
}

// CodeByName resolves an evdev key name such as "KEY_Q".
func CodeByName(name string) (Code, bool) {
	code, ok := codesByName[strings.ToUpper(strings.TrimSpace(name))]
	return code, ok
}

// FallbackText returns the literal ASCII letter or digit for code, upper-cased
// for letters when shift is active. Codes without a literal get Placeholder.
func FallbackText(code Code, shift bool) string {
	info, ok := codeTable[code]
	if !ok {
		return Placeholder
	}
	if shift {
		return strings.ToUpper(info.fallback)
	}
	return info.fallback
}

// LanguageCaption returns the short caption shown on the language-switch key,
// the upper-cased base language of id ("en-US" -> "EN").
func LanguageCaption(id LayoutID) string {
	tag, err := language.Parse(string(id))
	if err != nil {
		s := strings.ToUpper(string(id))
		if len(s) > 2 {
			s = s[:2]
		}
		return s
	}
	base, _ := tag.Base()
	return strings.ToUpper(base.String())
}
