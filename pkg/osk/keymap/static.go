package keymap

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"go.uber.org/atomic"
	"gopkg.in/yaml.v3"
)

//go:embed layouts/*.toml
var builtinFS embed.FS

// Layout is a physical-key to text table for one input language.
// Keys maps an evdev key name to its unshifted and shifted outputs. A single
// entry means the shifted output is the upper-cased unshifted one.
type Layout struct {
	ID   LayoutID            `toml:"id" yaml:"id" json:"id"`
	Name string              `toml:"name" yaml:"name" json:"name"`
	Keys map[string][]string `toml:"keys" yaml:"keys" json:"keys"`

	table map[Code][2]string
}

func (l *Layout) compile() error {
	if l.ID == "" {
		return fmt.Errorf("layout %q: missing id", l.Name)
	}
	l.table = make(map[Code][2]string, len(l.Keys))
	for name, outputs := range l.Keys {
		code, ok := CodeByName(name)
		if !ok {
			return fmt.Errorf("layout %s: unknown key %q", l.ID, name)
		}
		var pair [2]string
		switch len(outputs) {
		case 0:
			continue
		case 1:
			pair = [2]string{outputs[0], strings.ToUpper(outputs[0])}
		default:
			pair = [2]string{outputs[0], outputs[1]}
		}
		l.table[code] = pair
	}
	return nil
}

// ParseLayout decodes a layout from data. format is "toml" or "yaml"; an empty
// format tries TOML first and then YAML.
func ParseLayout(data []byte, format string) (Layout, error) {
	var l Layout
	var err error

	switch strings.ToLower(format) {
	case "toml":
		err = toml.Unmarshal(data, &l)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &l)
	case "":
		if err = toml.Unmarshal(data, &l); err != nil {
			l = Layout{}
			err = yaml.Unmarshal(data, &l)
		}
	default:
		return Layout{}, fmt.Errorf("unsupported layout format %q", format)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.compile(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadFile reads a layout file, choosing the decoder from its extension.
func LoadFile(p string) (Layout, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
	if format != "toml" && format != "yaml" && format != "yml" {
		format = ""
	}
	return ParseLayout(data, format)
}

// BuiltinLayouts returns the layouts compiled into the binary, en-US first.
func BuiltinLayouts() ([]Layout, error) {
	entries, err := builtinFS.ReadDir("layouts")
	if err != nil {
		return nil, err
	}

	var layouts []Layout
	for _, entry := range entries {
		data, err := builtinFS.ReadFile(path.Join("layouts", entry.Name()))
		if err != nil {
			return nil, err
		}
		l, err := ParseLayout(data, "toml")
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", entry.Name(), err)
		}
		if l.ID == "en-US" {
			layouts = append([]Layout{l}, layouts...)
		} else {
			layouts = append(layouts, l)
		}
	}
	return layouts, nil
}

// Static is an in-process Service over a fixed set of layouts. The current
// layout may be changed from any goroutine.
type Static struct {
	mu      sync.RWMutex
	order   []LayoutID
	layouts map[LayoutID]Layout
	current *atomic.String
}

// NewStatic installs layouts in the given order; the first becomes current.
func NewStatic(layouts ...Layout) (*Static, error) {
	s := &Static{
		layouts: make(map[LayoutID]Layout, len(layouts)),
		current: atomic.NewString(""),
	}
	for _, l := range layouts {
		if err := s.Install(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewBuiltin returns a Static service with the built-in layouts installed.
func NewBuiltin() (*Static, error) {
	layouts, err := BuiltinLayouts()
	if err != nil {
		return nil, fmt.Errorf("load builtin layouts: %w", err)
	}
	return NewStatic(layouts...)
}

// Install adds or replaces a layout. Replacing keeps its position.
func (s *Static) Install(l Layout) error {
	if l.table == nil {
		if err := l.compile(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.layouts[l.ID]; !exists {
		s.order = append(s.order, l.ID)
	}
	s.layouts[l.ID] = l
	s.current.CompareAndSwap("", string(l.ID))
	return nil
}

// Uninstall removes a layout. If it was current, the first remaining layout
// becomes current.
func (s *Static) Uninstall(id LayoutID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.layouts[id]; !exists {
		return
	}
	delete(s.layouts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if LayoutID(s.current.Load()) == id {
		next := ""
		if len(s.order) > 0 {
			next = string(s.order[0])
		}
		s.current.Store(next)
	}
}

func (s *Static) InstalledLayouts() []LayoutID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LayoutID, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Static) CurrentLayout() LayoutID {
	return LayoutID(s.current.Load())
}

func (s *Static) Activate(id LayoutID) error {
	s.mu.RLock()
	_, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLayout, id)
	}
	s.current.Store(string(id))
	return nil
}

func (s *Static) MapPhysicalKey(code Code, shift bool, id LayoutID) string {
	s.mu.RLock()
	l, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		return ""
	}
	pair, ok := l.table[code]
	if !ok {
		return ""
	}
	if shift {
		return pair[1]
	}
	return pair[0]
}

// Name returns the display name of an installed layout.
func (s *Static) Name(id LayoutID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layouts[id].Name
}
