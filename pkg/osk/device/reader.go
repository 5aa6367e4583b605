package device

import (
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"
)

// Reader delivers the key events of one input device on a channel. The
// device is read on its own goroutine; the host drains Events from its event
// loop.
type Reader struct {
	dev    *evdev.InputDevice
	events chan Event
	done   chan struct{}
	closed *atomic.Bool
	logger *slog.Logger
}

// Open opens the device at path, e.g. /dev/input/event0, and starts reading.
func Open(path string, logger *slog.Logger) (*Reader, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input device: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Reader{
		dev:    dev,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		closed: atomic.NewBool(false),
		logger: logger,
	}
	name, _ := dev.Name()
	logger.Debug("Reading input device", "path", path, "name", name)

	go r.loop()
	return r, nil
}

// Events delivers key events until the device fails or the reader is closed.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Close stops reading and closes the device. It is safe to call more than
// once.
func (r *Reader) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(r.done)
	return r.dev.Close()
}

func (r *Reader) loop() {
	defer close(r.events)

	for {
		ev, err := r.dev.ReadOne()
		if err != nil {
			if !r.closed.Load() {
				r.logger.Warn("Input device read failed", "error", err)
			}
			return
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}

		select {
		case r.events <- Event{Code: keymap.Code(ev.Code), Value: ev.Value}:
		case <-r.done:
			return
		}
	}
}
