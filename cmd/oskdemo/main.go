// Command oskdemo hosts the on-screen keyboard in an SDL window. It exercises
// the whole engine: mouse and keyboard input, an optional Linux input device,
// the system clipboard and hot reload of the configuration file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/BrandonKowalski/osk/pkg/osk"
	"github.com/BrandonKowalski/osk/pkg/osk/config"
	"github.com/BrandonKowalski/osk/pkg/osk/device"
	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
	"github.com/BrandonKowalski/osk/pkg/osk/platform/cannoli"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"
)

const cannoliFontPath = "/mnt/SDCARD/System/fonts/Cannoli.ttf"

type app struct {
	win        *Window
	engine     *osk.Engine
	logger     *slog.Logger
	translator *device.Translator
	background color.NRGBA

	deviceScale float64
	pixelRatio  float64
}

func main() {
	configPath := flag.String("config", "", "configuration file (TOML, YAML or JSON); watched for changes")
	devicePath := flag.String("device", "", "Linux input device to read keys from, e.g. /dev/input/event0")
	useCannoli := flag.Bool("cannoli", false, "use the Cannoli colour scheme and font")
	flag.Parse()

	if err := run(*configPath, *devicePath, *useCannoli); err != nil {
		fmt.Fprintln(os.Stderr, "oskdemo:", err)
		os.Exit(1)
	}
}

func run(configPath, devicePath string, useCannoli bool) error {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cfg.Logging.File != "" {
		osk.SetLogPath(cfg.Logging.File)
	}
	osk.SetRawLogLevel(cfg.Logging.Level)
	osk.SetInternalLogLevel(osk.ParseLogLevel(cfg.Logging.InternalLevel))
	defer osk.CloseLogger()
	logger := osk.GetLogger()

	opts, err := osk.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	if useCannoli {
		theme := cannoli.InitCannoliTheme(cannoliFontPath)
		if _, err := os.Stat(cannoliFontPath); err != nil {
			logger.Warn("Cannoli font not found, using the embedded font", "path", cannoliFontPath)
			theme.FontPath = ""
		}
		opts.Theme = &theme
	}
	opts.Clipboard = sdlClipboard{}
	opts.OnSubmit = func(text string) {
		logger.Info("Submitted", "text", text)
	}
	opts.OnTextChanged = func(text string) {
		logger.Debug("Text changed", "runes", len([]rune(text)))
	}
	opts.OnLayoutChanged = func(id keymap.LayoutID) {
		logger.Info("Input layout changed", "layout", id)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("init SDL: %w", err)
	}
	defer sdl.Quit()

	win, err := newWindow("On-Screen Keyboard", WindowOptions{Resizable: true})
	if err != nil {
		return err
	}
	defer win.Close()

	engine, err := osk.New(opts)
	if err != nil {
		return err
	}
	defer engine.Close()

	a := &app{
		win:         win,
		engine:      engine,
		logger:      logger,
		translator:  device.NewTranslator(opts.Keymap),
		background:  color.NRGBA{A: 0xff},
		deviceScale: cfg.DeviceScale,
	}
	if err := a.layout(); err != nil {
		return err
	}

	var deviceEvents <-chan device.Event
	if devicePath != "" {
		reader, err := device.Open(devicePath, logger)
		if err != nil {
			return err
		}
		defer reader.Close()
		deviceEvents = reader.Events()
	}

	var updates <-chan *config.Config
	var reloadErrs <-chan error
	if configPath != "" {
		watcher, err := config.Watch(configPath, logger)
		if err != nil {
			logger.Warn("Config hot reload disabled", "error", err)
		} else {
			defer watcher.Close()
			updates = watcher.Updates()
			reloadErrs = watcher.Errors()
		}
	}

	sdl.StartTextInput()
	defer sdl.StopTextInput()

	logger.Info("Keyboard ready", "layout", engine.ActiveLayout(), "device", devicePath, "config", configPath)

	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			if !a.handleEvent(ev) {
				return nil
			}
		}

	drain:
		for {
			select {
			case ev, ok := <-deviceEvents:
				if !ok {
					logger.Warn("Input device closed")
					deviceEvents = nil
					continue
				}
				a.handleDevice(ev)
			case next := <-updates:
				a.applyConfig(next)
			case err := <-reloadErrs:
				logger.Warn("Ignoring invalid configuration", "error", err)
			default:
				break drain
			}
		}

		engine.TickKeyRepeat()
		engine.TickCaretBlink()

		if err := a.render(); err != nil {
			return err
		}
	}
}

// layout sizes the buffer to the window and places the input field and the
// keyboard in it.
func (a *app) layout() error {
	if err := a.win.resize(); err != nil {
		return err
	}
	b := a.win.Buffer.Bounds()

	a.pixelRatio = 1
	if w, _ := a.win.Window.GetSize(); w > 0 {
		a.pixelRatio = float64(b.Dx()) / float64(w)
	}

	keyboard, input := osk.DefaultRects(b.Dx(), b.Dy())
	a.engine.SetTargetBuffer(a.win.Buffer, a.background)
	a.engine.SetKeyboardRect(keyboard)
	a.engine.SetInputRect(input)
	a.engine.SetDeviceScale(a.deviceScale * a.pixelRatio)
	return nil
}

func (a *app) applyConfig(cfg *config.Config) {
	osk.SetRawLogLevel(cfg.Logging.Level)
	if err := a.engine.ApplyConfig(cfg); err != nil {
		a.logger.Warn("Failed to apply configuration", "error", err)
		return
	}
	a.deviceScale = cfg.DeviceScale
	a.engine.SetDeviceScale(a.deviceScale * a.pixelRatio)
	a.logger.Info("Configuration reloaded")
}

func (a *app) render() error {
	draw.Draw(a.win.Buffer, a.win.Buffer.Bounds(), image.NewUniform(a.background), image.Point{}, draw.Src)
	a.engine.DrawInputArea()
	a.engine.DrawKeyboardArea()
	return a.win.Present()
}
