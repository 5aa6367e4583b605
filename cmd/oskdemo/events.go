package main

import (
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/device"
	"github.com/veandco/go-sdl2/sdl"
)

// sdlKey maps an SDL key to the engine's key codes.
func sdlKey(sym sdl.Keycode) (constants.KeyCode, bool) {
	switch sym {
	case sdl.K_LEFT:
		return constants.KeyLeft, true
	case sdl.K_RIGHT:
		return constants.KeyRight, true
	case sdl.K_UP:
		return constants.KeyUp, true
	case sdl.K_DOWN:
		return constants.KeyDown, true
	case sdl.K_HOME:
		return constants.KeyHome, true
	case sdl.K_END:
		return constants.KeyEnd, true
	case sdl.K_BACKSPACE:
		return constants.KeyBackspace, true
	case sdl.K_DELETE:
		return constants.KeyDelete, true
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		return constants.KeyEnter, true
	case sdl.K_ESCAPE:
		return constants.KeyEscape, true
	case sdl.K_TAB:
		return constants.KeyTab, true
	case sdl.K_a:
		return constants.KeyA, true
	case sdl.K_c:
		return constants.KeyC, true
	case sdl.K_v:
		return constants.KeyV, true
	case sdl.K_x:
		return constants.KeyX, true
	default:
		return constants.KeyUnknown, false
	}
}

func sdlMods(mod uint16) constants.Modifier {
	m := uint32(mod)
	mods := constants.ModNone
	if m&sdl.KMOD_SHIFT != 0 {
		mods |= constants.ModShift
	}
	if m&sdl.KMOD_CTRL != 0 {
		mods |= constants.ModCtrl
	}
	if m&sdl.KMOD_ALT != 0 {
		mods |= constants.ModAlt
	}
	return mods
}

func sdlButton(b uint8) constants.MouseButton {
	switch b {
	case sdl.BUTTON_LEFT:
		return constants.MouseButtonLeft
	case sdl.BUTTON_MIDDLE:
		return constants.MouseButtonMiddle
	case sdl.BUTTON_RIGHT:
		return constants.MouseButtonRight
	default:
		return constants.MouseButtonNone
	}
}

// handleEvent feeds one SDL event to the engine. It returns false when the
// demo should quit.
func (a *app) handleEvent(ev sdl.Event) bool {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return false

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			if err := a.layout(); err != nil {
				a.logger.Error("Failed to resize", "error", err)
			}
		}

	case *sdl.KeyboardEvent:
		code, ok := sdlKey(e.Keysym.Sym)
		if !ok {
			return true
		}
		if e.Type == sdl.KEYUP {
			a.engine.KeyUp(code)
			return true
		}
		// The engine repeats held arrows itself.
		if e.Repeat != 0 && code.IsArrow() {
			return true
		}
		a.engine.KeyDown(code, sdlMods(e.Keysym.Mod))

	case *sdl.TextInputEvent:
		for _, r := range e.GetText() {
			a.engine.CharInput(r)
		}

	case *sdl.MouseButtonEvent:
		x, y := a.toBuffer(e.X, e.Y)
		if e.Type == sdl.MOUSEBUTTONDOWN {
			a.engine.MouseDown(x, y, sdlButton(e.Button))
		} else {
			a.engine.MouseUp(x, y, sdlButton(e.Button))
		}

	case *sdl.MouseMotionEvent:
		x, y := a.toBuffer(e.X, e.Y)
		a.engine.MouseMove(x, y)
	}
	return true
}

// handleDevice feeds one input device event to the engine.
func (a *app) handleDevice(ev device.Event) {
	in, ok := a.translator.Translate(ev)
	if !ok {
		return
	}
	switch {
	case in.Text != "":
		for _, r := range in.Text {
			a.engine.CharInput(r)
		}
	case in.Release:
		a.engine.KeyUp(in.Key)
	default:
		a.engine.KeyDown(in.Key, in.Mods)
	}
}

// toBuffer converts window coordinates to buffer pixels.
func (a *app) toBuffer(x, y int32) (int, int) {
	return int(float64(x) * a.pixelRatio), int(float64(y) * a.pixelRatio)
}
