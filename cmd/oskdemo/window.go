package main

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"unsafe"

	"github.com/BrandonKowalski/osk/pkg/osk"
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/veandco/go-sdl2/sdl"
)

// WindowOptions selects the SDL window flags.
type WindowOptions struct {
	Borderless  bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable   bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Fullscreen  bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	AlwaysOnTop bool // Window stays above others (SDL_WINDOW_ALWAYS_ON_TOP)
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	flags := uint32(sdl.WINDOW_SHOWN)

	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}

	if wo.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	if wo.AlwaysOnTop {
		flags |= sdl.WINDOW_ALWAYS_ON_TOP
	}

	return flags
}

// Window owns the SDL window, its renderer and the streaming texture the
// engine's buffer is uploaded to each frame.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Texture  *sdl.Texture
	Buffer   *image.RGBA

	hasVSync        bool
	lastPresentTime uint64
}

func newWindow(title string, opts WindowOptions) (*Window, error) {
	width, height := windowSize()

	osk.GetLogger().Debug("Initializing SDL Window", "width", width, "height", height)

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, opts.ToSDLFlags())
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		osk.GetLogger().Warn("Accelerated renderer unavailable, falling back to software", "error", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	w := &Window{
		Window:   window,
		Renderer: renderer,
		hasVSync: vsync,
	}
	if err := w.resize(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// windowSize is the display size, or in development mode 1024x768 unless
// overridden by WINDOW_WIDTH and WINDOW_HEIGHT.
func windowSize() (int32, int32) {
	if !constants.IsDevMode() {
		mode, err := sdl.GetCurrentDisplayMode(0)
		if err == nil {
			return mode.W, mode.H
		}
		osk.GetLogger().Error("Failed to get display mode", "error", err)
	}
	return envSize(constants.WindowWidthEnvVar, 1024), envSize(constants.WindowHeightEnvVar, 768)
}

func envSize(name string, def int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		osk.GetLogger().Warn("Invalid window size; using default", "variable", name, "value", v, "error", err)
		return def
	}
	return int32(n)
}

// resize matches the buffer and texture to the window's drawable size.
func (w *Window) resize() error {
	width, height, err := w.Renderer.GetOutputSize()
	if err != nil {
		return fmt.Errorf("get output size: %w", err)
	}
	if w.Buffer != nil && w.Buffer.Rect.Dx() == int(width) && w.Buffer.Rect.Dy() == int(height) {
		return nil
	}

	// Byte order R, G, B, A matches ABGR8888 on little-endian machines.
	texture, err := w.Renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, width, height)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	if w.Texture != nil {
		w.Texture.Destroy()
	}
	w.Texture = texture
	w.Buffer = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	return nil
}

// Present uploads the buffer, swaps the render buffer and enforces ~60fps
// frame timing when VSync is not available.
func (w *Window) Present() error {
	if err := w.Texture.Update(nil, unsafe.Pointer(&w.Buffer.Pix[0]), w.Buffer.Stride); err != nil {
		return fmt.Errorf("update texture: %w", err)
	}
	if err := w.Renderer.Copy(w.Texture, nil, nil); err != nil {
		return fmt.Errorf("copy texture: %w", err)
	}
	w.Renderer.Present()

	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
	return nil
}

func (w *Window) Close() {
	if w.Texture != nil {
		w.Texture.Destroy()
	}
	w.Renderer.Destroy()
	w.Window.Destroy()
}
