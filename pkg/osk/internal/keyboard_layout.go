package internal

import (
	"image"
	"math"

	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
)

// KeyboardDimensions holds the default placement of the input field and the
// keyboard panel inside a window.
type KeyboardDimensions struct {
	WindowWidth     int
	WindowHeight    int
	KeyboardWidth   int
	KeyboardHeight  int
	StartX          int
	TextInputY      int
	KeyboardStartY  int
	TextInputHeight int
}

// CalculateKeyboardDimensions uses 85% of the window for the input field and
// keyboard together, with the input stacked above the keyboard.
func CalculateKeyboardDimensions(windowWidth, windowHeight int) KeyboardDimensions {
	keyboardWidth := (windowWidth * 85) / 100
	keyboardHeight := (windowHeight * 85) / 100
	textInputHeight := windowHeight / 10
	keyboardHeight = keyboardHeight - textInputHeight - 20
	startX := (windowWidth - keyboardWidth) / 2
	textInputY := (windowHeight - keyboardHeight - textInputHeight - 20) / 2
	keyboardStartY := textInputY + textInputHeight + 20

	return KeyboardDimensions{
		WindowWidth:     windowWidth,
		WindowHeight:    windowHeight,
		KeyboardWidth:   keyboardWidth,
		KeyboardHeight:  keyboardHeight,
		StartX:          startX,
		TextInputY:      textInputY,
		KeyboardStartY:  keyboardStartY,
		TextInputHeight: textInputHeight,
	}
}

func (d KeyboardDimensions) KeyboardRect() image.Rectangle {
	return image.Rect(d.StartX, d.KeyboardStartY, d.StartX+d.KeyboardWidth, d.KeyboardStartY+d.KeyboardHeight)
}

func (d KeyboardDimensions) TextInputRect() image.Rectangle {
	return image.Rect(d.StartX, d.TextInputY, d.StartX+d.KeyboardWidth, d.TextInputY+d.TextInputHeight)
}

// KeyKind is the behaviour of a key when activated.
type KeyKind int

const (
	KeyCharacter KeyKind = iota
	KeyBackspace
	KeyShift
	KeySymbolsToggle
	KeySpace
	KeySubmit
	KeyLanguageSwitch
	KeyKindCount
)

func (k KeyKind) String() string {
	switch k {
	case KeyCharacter:
		return "character"
	case KeyBackspace:
		return "backspace"
	case KeyShift:
		return "shift"
	case KeySymbolsToggle:
		return "symbols-toggle"
	case KeySpace:
		return "space"
	case KeySubmit:
		return "submit"
	case KeyLanguageSwitch:
		return "language-switch"
	default:
		return "unknown"
	}
}

// Page is one of the keyboard's key sets.
type Page int

const (
	PageLetters Page = iota
	PageSymbols1
	PageSymbols2
)

func (p Page) String() string {
	switch p {
	case PageLetters:
		return "letters"
	case PageSymbols1:
		return "symbols-1"
	case PageSymbols2:
		return "symbols-2"
	default:
		return "unknown"
	}
}

// RowCount is the number of rows the page lays out.
func (p Page) RowCount() int {
	if p == PageLetters {
		return 5
	}
	return 4
}

// Key is one element of the laid-out keyboard. Keys are rebuilt wholesale,
// so nothing should hold on to one across a rebuild.
type Key struct {
	Kind    KeyKind
	Code    keymap.Code
	HasCode bool
	Rect    image.Rectangle
	Weight  float64
	Caption string
	Output  string
	Icon    Icon
	Row     int
}

// Visible reports whether the key was given an area and can be drawn or hit.
func (k Key) Visible() bool {
	return !k.Rect.Empty()
}

// Center is the middle of the key's rectangle.
func (k Key) Center() image.Point {
	return image.Pt((k.Rect.Min.X+k.Rect.Max.X)/2, (k.Rect.Min.Y+k.Rect.Max.Y)/2)
}

// LayoutRequest is everything a key set depends on.
type LayoutRequest struct {
	Page     Page
	Shift    bool
	Layouts  int             // Number of installed input layouts
	Active   keymap.LayoutID // Layout used to resolve letters-page captions
	Keymap   keymap.Service
	Captions Captions
}

// KeyboardLayout is a built key set. Rows lists key indices per row; keys not
// in any row are never given an area.
type KeyboardLayout struct {
	Keys []Key
	Rows [][]int
	Page Page
}

// RowSlots returns the number of keys each row holds for the request.
func RowSlots(page Page, layouts int) []int {
	bottom := 3
	if layouts > 1 {
		bottom++
	}
	if page == PageLetters {
		return []int{11, 10, 9, 11, bottom}
	}
	return []int{11, 10, 10, bottom + 1}
}

var letterRows = [][]keymap.Code{
	{keymap.Code1, keymap.Code2, keymap.Code3, keymap.Code4, keymap.Code5, keymap.Code6,
		keymap.Code7, keymap.Code8, keymap.Code9, keymap.Code0, keymap.CodeMinus},
	{keymap.CodeQ, keymap.CodeW, keymap.CodeE, keymap.CodeR, keymap.CodeT,
		keymap.CodeY, keymap.CodeU, keymap.CodeI, keymap.CodeO, keymap.CodeP},
	{keymap.CodeA, keymap.CodeS, keymap.CodeD, keymap.CodeF, keymap.CodeG,
		keymap.CodeH, keymap.CodeJ, keymap.CodeK, keymap.CodeL},
	{keymap.CodeZ, keymap.CodeX, keymap.CodeC, keymap.CodeV, keymap.CodeB,
		keymap.CodeN, keymap.CodeM, keymap.CodeComma, keymap.CodeDot},
}

var symbolRows = map[Page][3][]string{
	PageSymbols1: {
		{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
		{"@", "#", "$", "_", "&", "-", "+", "(", ")", "/"},
		{"*", "\"", "'", ":", ";", "!", "?", ",", "."},
	},
	PageSymbols2: {
		{"~", "`", "|", "•", "√", "π", "÷", "×", "¶", "∆"},
		{"£", "€", "¥", "^", "°", "=", "{", "}", "\\", "%"},
		{"©", "®", "™", "✓", "[", "]", "<", ">", "¢"},
	},
}

// BuildKeyboard produces the key set for req. Rectangles are assigned later
// by Layout.
func BuildKeyboard(req LayoutRequest) KeyboardLayout {
	if req.Page == PageLetters {
		return buildLetters(req)
	}
	return buildSymbols(req)
}

func buildLetters(req LayoutRequest) KeyboardLayout {
	var kl KeyboardLayout
	kl.Page = PageLetters

	for row, codes := range letterRows {
		if row == 3 {
			shiftIcon := IconShift
			if req.Shift {
				shiftIcon = IconShiftActive
			}
			kl.add(row, Key{Kind: KeyShift, Weight: 1.5, Caption: req.Captions.Shift, Icon: shiftIcon})
		}
		for _, code := range codes {
			text := resolveCharacter(req, code)
			kl.add(row, Key{Kind: KeyCharacter, Code: code, HasCode: true, Weight: 1, Caption: text, Output: text})
		}
		if row == 3 {
			kl.add(row, Key{Kind: KeyBackspace, Weight: 1.5, Caption: req.Captions.Backspace, Icon: IconBackspace})
		}
	}

	kl.addBottomRow(4, req, req.Captions.SymbolsToggle, nil)
	return kl
}

func buildSymbols(req LayoutRequest) KeyboardLayout {
	var kl KeyboardLayout
	kl.Page = req.Page
	rows := symbolRows[req.Page]

	for _, s := range rows[0] {
		kl.add(0, charKey(s))
	}
	kl.add(0, Key{Kind: KeyBackspace, Weight: 1, Caption: req.Captions.Backspace, Icon: IconBackspace})

	for _, s := range rows[1] {
		kl.add(1, charKey(s))
	}

	shiftCaption := req.Captions.SymbolsMore
	if req.Page == PageSymbols2 {
		shiftCaption = req.Captions.SymbolsBack
	}
	kl.add(2, Key{Kind: KeyShift, Weight: 1.5, Caption: shiftCaption})
	for _, s := range rows[2] {
		kl.add(2, charKey(s))
	}

	dot := charKey(".")
	kl.addBottomRow(3, req, req.Captions.LettersToggle, &dot)
	return kl
}

func (kl *KeyboardLayout) addBottomRow(row int, req LayoutRequest, toggleCaption string, extra *Key) {
	kl.add(row, Key{Kind: KeySymbolsToggle, Weight: 1.5, Caption: toggleCaption})
	if req.Layouts > 1 {
		caption := keymap.LanguageCaption(req.Active)
		kl.add(row, Key{Kind: KeyLanguageSwitch, Weight: 1, Caption: caption})
	}
	kl.add(row, Key{Kind: KeySpace, Weight: 5, Caption: req.Captions.Space, Output: " "})
	if extra != nil {
		kl.add(row, *extra)
	}
	kl.add(row, Key{Kind: KeySubmit, Weight: 1.5, Caption: req.Captions.Submit, Icon: IconSubmit})
}

func (kl *KeyboardLayout) add(row int, k Key) {
	for len(kl.Rows) <= row {
		kl.Rows = append(kl.Rows, nil)
	}
	k.Row = row
	kl.Keys = append(kl.Keys, k)
	kl.Rows[row] = append(kl.Rows[row], len(kl.Keys)-1)
}

func charKey(s string) Key {
	return Key{Kind: KeyCharacter, Weight: 1, Caption: s, Output: s}
}

func resolveCharacter(req LayoutRequest, code keymap.Code) string {
	if req.Keymap != nil {
		if text := req.Keymap.MapPhysicalKey(code, req.Shift, req.Active); text != "" {
			return text
		}
	}
	return keymap.FallbackText(code, req.Shift)
}

// Layout assigns every key a rectangle inside area. Rows share the height
// equally; within a row, keys split the width left after margins in
// proportion to their weights. Keys beyond a row's slot count, or in rows
// beyond the page's row count, get an empty rectangle.
func (kl *KeyboardLayout) Layout(area image.Rectangle, margin int, slots []int) {
	for i := range kl.Keys {
		kl.Keys[i].Rect = image.Rectangle{}
	}
	rows := len(slots)
	if area.Empty() || rows == 0 {
		return
	}
	if margin < 0 {
		margin = 0
	}

	rowH := RowHeight(area.Dy(), rows, margin)
	if rowH <= 0 {
		return
	}

	for r := 0; r < rows && r < len(kl.Rows); r++ {
		indices := kl.Rows[r]
		if len(indices) > slots[r] {
			indices = indices[:slots[r]]
		}
		y := area.Min.Y + margin + r*(int(rowH)+margin)
		widths := DistributeWidths(kl.weights(indices), float64(area.Dx()-margin*(len(indices)+1)))

		x := float64(area.Min.X + margin)
		for j, idx := range indices {
			x0 := int(math.Round(x))
			x1 := int(math.Round(x + widths[j]))
			kl.Keys[idx].Rect = image.Rect(x0, y, x1, y+int(rowH))
			x += widths[j] + float64(margin)
		}
	}
}

func (kl *KeyboardLayout) weights(indices []int) []float64 {
	w := make([]float64, len(indices))
	for i, idx := range indices {
		w[i] = kl.Keys[idx].Weight
	}
	return w
}

// RowHeight is the uniform row height for a panel of height h.
func RowHeight(h, rows, margin int) float64 {
	if rows <= 0 {
		return 0
	}
	return math.Floor(float64(h-margin*(rows+1)) / float64(rows))
}

// DistributeWidths splits available among weights proportionally. The widths
// always sum to available; non-positive weights count as 1.
func DistributeWidths(weights []float64, available float64) []float64 {
	widths := make([]float64, len(weights))
	if available <= 0 || len(weights) == 0 {
		return widths
	}
	sum := 0.0
	for _, w := range weights {
		if w <= 0 {
			w = 1
		}
		sum += w
	}
	for i, w := range weights {
		if w <= 0 {
			w = 1
		}
		widths[i] = available * w / sum
	}
	return widths
}

// MarginPixels converts a margin fraction of the panel height to pixels.
func MarginPixels(panelHeight int, fraction float64) int {
	return int(math.Round(float64(panelHeight) * fraction))
}
