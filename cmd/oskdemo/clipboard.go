package main

import "github.com/veandco/go-sdl2/sdl"

// sdlClipboard is the system clipboard as seen by SDL.
type sdlClipboard struct{}

func (sdlClipboard) SetText(text string) error {
	return sdl.SetClipboardText(text)
}

func (sdlClipboard) Text() (string, error) {
	if !sdl.HasClipboardText() {
		return "", nil
	}
	return sdl.GetClipboardText()
}
