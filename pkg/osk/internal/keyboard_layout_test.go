package internal

import (
	"image"
	"testing"

	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinKeymap(t *testing.T) *keymap.Static {
	t.Helper()
	s, err := keymap.NewBuiltin()
	require.NoError(t, err)
	return s
}

func rowLengths(kl KeyboardLayout) []int {
	out := make([]int, len(kl.Rows))
	for i, r := range kl.Rows {
		out[i] = len(r)
	}
	return out
}

func TestRowCounts(t *testing.T) {
	km := builtinKeymap(t)
	captions := DefaultCaptions()

	tests := []struct {
		page    Page
		layouts int
		want    []int
	}{
		{PageLetters, 1, []int{11, 10, 9, 11, 3}},
		{PageLetters, 2, []int{11, 10, 9, 11, 4}},
		{PageSymbols1, 1, []int{11, 10, 10, 4}},
		{PageSymbols2, 2, []int{11, 10, 10, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.page.String(), func(t *testing.T) {
			kl := BuildKeyboard(LayoutRequest{Page: tt.page, Layouts: tt.layouts, Active: "en-US", Keymap: km, Captions: captions})
			assert.Equal(t, tt.want, rowLengths(kl))
			assert.Equal(t, tt.want, RowSlots(tt.page, tt.layouts))
			assert.Len(t, kl.Rows, tt.page.RowCount())
		})
	}
}

func TestLanguageKeyOnlyWithSeveralLayouts(t *testing.T) {
	km := builtinKeymap(t)
	count := func(kl KeyboardLayout) int {
		n := 0
		for _, k := range kl.Keys {
			if k.Kind == KeyLanguageSwitch {
				n++
				assert.Equal(t, "EN", k.Caption)
			}
		}
		return n
	}

	assert.Equal(t, 0, count(BuildKeyboard(LayoutRequest{Layouts: 1, Active: "en-US", Keymap: km})))
	assert.Equal(t, 1, count(BuildKeyboard(LayoutRequest{Layouts: 2, Active: "en-US", Keymap: km})))
	assert.Equal(t, 1, count(BuildKeyboard(LayoutRequest{Page: PageSymbols1, Layouts: 2, Active: "en-US", Keymap: km})))
}

func TestLetterCaptionsComeFromKeymap(t *testing.T) {
	km := builtinKeymap(t)

	kl := BuildKeyboard(LayoutRequest{Active: "en-US", Keymap: km, Layouts: 2})
	q := kl.Keys[kl.Rows[1][0]]
	assert.Equal(t, "q", q.Caption)
	assert.Equal(t, keymap.CodeQ, q.Code)
	assert.True(t, q.HasCode)

	kl = BuildKeyboard(LayoutRequest{Active: "en-US", Keymap: km, Shift: true})
	assert.Equal(t, "Q", kl.Keys[kl.Rows[1][0]].Output)
	assert.Equal(t, "!", kl.Keys[kl.Rows[0][0]].Output)

	kl = BuildKeyboard(LayoutRequest{Active: "de-DE", Keymap: km})
	assert.Equal(t, "z", kl.Keys[kl.Rows[1][5]].Caption)
	assert.Equal(t, keymap.CodeY, kl.Keys[kl.Rows[1][5]].Code)
}

func TestLetterCaptionsFallBack(t *testing.T) {
	km := emptyKeymap{layouts: []keymap.LayoutID{"xx"}}

	kl := BuildKeyboard(LayoutRequest{Active: "xx", Keymap: km})
	assert.Equal(t, "q", kl.Keys[kl.Rows[1][0]].Caption)
	assert.Equal(t, "7", kl.Keys[kl.Rows[0][6]].Caption)

	kl = BuildKeyboard(LayoutRequest{Active: "xx", Keymap: km, Shift: true})
	assert.Equal(t, "A", kl.Keys[kl.Rows[2][0]].Caption)

	kl = BuildKeyboard(LayoutRequest{Active: "xx"})
	assert.Equal(t, "m", kl.Keys[kl.Rows[3][7]].Caption)
}

func TestSymbolPageShiftCaptions(t *testing.T) {
	captions := DefaultCaptions()
	find := func(kl KeyboardLayout, kind KeyKind) Key {
		for _, k := range kl.Keys {
			if k.Kind == kind {
				return k
			}
		}
		t.Fatalf("no %s key", kind)
		return Key{}
	}

	s1 := BuildKeyboard(LayoutRequest{Page: PageSymbols1, Captions: captions})
	s2 := BuildKeyboard(LayoutRequest{Page: PageSymbols2, Captions: captions})
	letters := BuildKeyboard(LayoutRequest{Page: PageLetters, Captions: captions})

	assert.Equal(t, "=\\<", find(s1, KeyShift).Caption)
	assert.Equal(t, "?123", find(s2, KeyShift).Caption)
	assert.Equal(t, "ABC", find(s1, KeySymbolsToggle).Caption)
	assert.Equal(t, "?123", find(letters, KeySymbolsToggle).Caption)
	assert.Equal(t, "@", s1.Keys[s1.Rows[1][0]].Output)
	assert.Equal(t, "£", s2.Keys[s2.Rows[1][0]].Output)
}

func TestLayoutAssignsProportionalRects(t *testing.T) {
	kl := BuildKeyboard(LayoutRequest{Layouts: 1, Captions: DefaultCaptions()})
	area := image.Rect(0, 0, 1000, 500)
	kl.Layout(area, 10, RowSlots(PageLetters, 1))

	first := kl.Keys[kl.Rows[0][0]]
	assert.Equal(t, image.Rect(10, 10, 90, 98), first.Rect)

	for r, row := range kl.Rows {
		sum := 0
		for _, idx := range row {
			k := kl.Keys[idx]
			assert.True(t, k.Visible())
			assert.Equal(t, 88, k.Rect.Dy())
			assert.Equal(t, r, k.Row)
			sum += k.Rect.Dx()
		}
		assert.InDelta(t, 1000-10*(len(row)+1), sum, 1, "row %d", r)
	}

	bottom := kl.Rows[4]
	space := kl.Keys[bottom[1]]
	toggle := kl.Keys[bottom[0]]
	require.Equal(t, KeySpace, space.Kind)
	assert.InDelta(t, 5.0/1.5, float64(space.Rect.Dx())/float64(toggle.Rect.Dx()), 0.05)
}

func TestLayoutGivesExtraKeysNoArea(t *testing.T) {
	kl := BuildKeyboard(LayoutRequest{Layouts: 1})
	kl.add(0, charKey("x"))
	kl.Layout(image.Rect(0, 0, 600, 300), 4, RowSlots(PageLetters, 1))

	extra := kl.Keys[len(kl.Keys)-1]
	assert.False(t, extra.Visible())
	assert.Equal(t, image.Rectangle{}, extra.Rect)
}

func TestLayoutEmptyArea(t *testing.T) {
	kl := BuildKeyboard(LayoutRequest{Layouts: 1})
	kl.Layout(image.Rectangle{}, 4, RowSlots(PageLetters, 1))
	for _, k := range kl.Keys {
		assert.False(t, k.Visible())
	}
	assert.Equal(t, -1, FirstVisible(kl.Keys))
}

func TestDistributeWidths(t *testing.T) {
	weights := []float64{1.5, 1, 5, 1.5}
	widths := DistributeWidths(weights, 900)

	sum := 0.0
	for i, w := range widths {
		sum += w
		assert.InDelta(t, 900*weights[i]/9, w, 1e-9)
	}
	assert.InDelta(t, 900, sum, 1e-9)

	assert.Equal(t, []float64{0, 0}, DistributeWidths([]float64{1, 1}, -5))
}

func TestCalculateKeyboardDimensions(t *testing.T) {
	d := CalculateKeyboardDimensions(1000, 800)
	assert.Equal(t, image.Rect(75, 60, 925, 140), d.TextInputRect())
	assert.Equal(t, image.Rect(75, 160, 925, 740), d.KeyboardRect())
}
