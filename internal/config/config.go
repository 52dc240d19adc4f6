// Package config loads the static bot configuration. It is read once at
// startup and never changed afterwards.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lkarlslund/stormbot/internal/gamestate"
	"github.com/lkarlslund/stormbot/internal/target"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// SprayDelay is the shoot_delay value that turns off rate limiting and fires
// at every ranked target each cycle.
const SprayDelay = -1

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p Point) Point() image.Point {
	return image.Pt(p.X, p.Y)
}

type Rect struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

type Capture struct {
	// Source is "screen" to grab a desktop rectangle or "window" to grab
	// from a window handle.
	Source      string `yaml:"source"`
	Monitor     int    `yaml:"monitor"`
	WindowTitle string `yaml:"window_title"`

	// Pointer is "input" to move the real cursor or "message" to post
	// mouse messages to the captured window.
	Pointer string `yaml:"pointer"`
}

type Class struct {
	Template  string  `yaml:"template"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	AnchorX   int     `yaml:"anchor_x"`
	AnchorY   int     `yaml:"anchor_y"`
	Threshold float32 `yaml:"threshold"`
}

// Classes maps class names to descriptors. Decoding merges every entry onto
// the one already present, so an override only needs the fields it changes.
type Classes map[string]Class

func (cs *Classes) UnmarshalYAML(n *yaml.Node) error {
	var entries map[string]yaml.Node
	if err := n.Decode(&entries); err != nil {
		return err
	}
	if *cs == nil {
		*cs = make(Classes, len(entries))
	}
	for name, node := range entries {
		// Node.Decode is not strict, so go through the encoded entry.
		data, err := yaml.Marshal(&node)
		if err != nil {
			return fmt.Errorf("classes.%s: %w", name, err)
		}
		class := (*cs)[name]
		if err := decodeStrict(data, &class); err != nil {
			return fmt.Errorf("classes.%s: %w", name, err)
		}
		(*cs)[name] = class
	}
	return nil
}

type Segment struct {
	Low            uint8 `yaml:"low"`
	High           uint8 `yaml:"high"`
	Kernel         int   `yaml:"kernel"`
	MinSize        int   `yaml:"min_size"`
	DeathMinWidth  int   `yaml:"death_min_width"`
	DeathMaxHeight int   `yaml:"death_max_height"`
}

type Ammo struct {
	EmptyProbe Point         `yaml:"empty_probe"`
	ReadyProbe Point         `yaml:"ready_probe"`
	Full       gamestate.BGR `yaml:"full"`
	Tolerance  uint8         `yaml:"tolerance"`
}

type Menu struct {
	Probe  Point         `yaml:"probe"`
	HUD    gamestate.BGR `yaml:"hud"`
	Pause  gamestate.BGR `yaml:"pause"`
	Death  gamestate.BGR `yaml:"death"`
	Shop   gamestate.BGR `yaml:"shop"`
	Frames int           `yaml:"frames"`
}

type Config struct {
	LogLevel string  `yaml:"log_level"`
	Capture  Capture `yaml:"capture"`

	// Window is the game area, relative to the monitor (screen capture) or
	// to the client area (window capture).
	Window Rect `yaml:"window"`

	// EnemyRegion and CriticalRegion are relative to Window.
	EnemyRegion    Rect `yaml:"enemy_region"`
	CriticalRegion Rect `yaml:"critical_region"`

	// Objective is the defended point targets are ranked against, in
	// window coordinates.
	Objective Point `yaml:"objective"`

	// ShootDelay is the minimum time between clicks in seconds, or
	// SprayDelay.
	ShootDelay float64 `yaml:"shoot_delay"`
	PoolSize   int     `yaml:"pool_size"`

	TemplateDir string `yaml:"template_dir"`
	Overlay     bool   `yaml:"overlay"`

	// Classes overrides fields of the built-in descriptor of each named
	// class. A class mapped to an empty template is not searched for.
	Classes    Classes        `yaml:"classes"`
	Priorities map[string]int `yaml:"priorities"`

	Segment Segment `yaml:"segment"`
	Ammo    Ammo    `yaml:"ammo"`
	Menu    Menu    `yaml:"menu"`
}

// Default returns the configuration for a 650x520 game window placed 10,130
// from the top-left of the first monitor.
func Default() *Config {
	c := &Config{
		LogLevel:       "info",
		Capture:        Capture{Source: "screen", Pointer: "input"},
		Window:         Rect{X: 10, Y: 130, Width: 650, Height: 520},
		EnemyRegion:    Rect{X: 0, Y: 50, Width: 500, Height: 350},
		CriticalRegion: Rect{X: 350, Y: 200, Width: 150, Height: 200},
		Objective:      Point{X: 500, Y: 175},
		ShootDelay:     0.2,
		PoolSize:       target.DefaultPool,
		TemplateDir:    "template_images",
		Overlay:        true,
		Classes:        make(Classes),
		Priorities:     make(map[string]int),
		Segment: Segment{
			Low:            0,
			High:           8,
			Kernel:         3,
			MinSize:        10,
			DeathMinWidth:  10,
			DeathMaxHeight: 20,
		},
		Ammo: Ammo{
			EmptyProbe: Point{X: 8, Y: 10},
			ReadyProbe: Point{X: 208, Y: 10},
			Full:       gamestate.BGR{38, 34, 46},
			Tolerance:  20,
		},
		Menu: Menu{
			Probe:  Point{X: 5, Y: 220},
			HUD:    gamestate.BGR{175, 178, 182},
			Pause:  gamestate.BGR{120, 126, 132},
			Death:  gamestate.BGR{58, 64, 108},
			Shop:   gamestate.BGR{101, 102, 104},
			Frames: 2,
		},
	}
	for _, d := range target.Descriptors() {
		c.Classes[d.Class.String()] = Class{
			Template:  d.Template,
			Width:     d.Size.X,
			Height:    d.Size.Y,
			AnchorX:   d.Anchor.X,
			AnchorY:   d.Anchor.Y,
			Threshold: d.Threshold,
		}
	}
	for class, rank := range target.DefaultPriorities() {
		c.Priorities[class.String()] = rank
	}
	return c
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are errors.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := decodeStrict(data, c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the configuration for values the loops cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Capture.Source {
	case "screen":
	case "window":
		if c.Capture.WindowTitle == "" {
			errs = append(errs, invalid("capture.window_title is required for window capture"))
		}
	default:
		errs = append(errs, invalid("capture.source %q is not screen or window", c.Capture.Source))
	}

	switch c.Capture.Pointer {
	case "input":
	case "message":
		if c.Capture.Source != "window" {
			errs = append(errs, invalid("capture.pointer message needs window capture"))
		}
	default:
		errs = append(errs, invalid("capture.pointer %q is not input or message", c.Capture.Pointer))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, invalid("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	bounds := image.Rect(0, 0, c.Window.Width, c.Window.Height)
	for name, r := range map[string]Rect{"enemy_region": c.EnemyRegion, "critical_region": c.CriticalRegion} {
		if r.Width <= 0 || r.Height <= 0 {
			errs = append(errs, invalid("%s size %dx%d", name, r.Width, r.Height))
			continue
		}
		if !r.Rectangle().In(bounds) {
			errs = append(errs, invalid("%s %v is outside the window %v", name, r.Rectangle(), bounds))
		}
	}

	if c.ShootDelay < 0 && c.ShootDelay != SprayDelay {
		errs = append(errs, invalid("shoot_delay %v must be >= 0 or %d", c.ShootDelay, SprayDelay))
	}
	if c.PoolSize < 1 {
		errs = append(errs, invalid("pool_size %d must be at least 1", c.PoolSize))
	}

	for name, class := range c.Classes {
		if _, err := target.ParseClass(name); err != nil {
			errs = append(errs, invalid("classes: %v", err))
			continue
		}
		if class.Template == "" {
			continue
		}
		if class.Width <= 0 || class.Height <= 0 {
			errs = append(errs, invalid("classes.%s size %dx%d", name, class.Width, class.Height))
		}
		if class.Threshold < 0 || class.Threshold > 1 {
			errs = append(errs, invalid("classes.%s threshold %v is outside [0,1]", name, class.Threshold))
		}
	}
	for name := range c.Priorities {
		if _, err := target.ParseClass(name); err != nil {
			errs = append(errs, invalid("priorities: %v", err))
		}
	}

	if c.Segment.Low > c.Segment.High {
		errs = append(errs, invalid("segment range %d..%d is empty", c.Segment.Low, c.Segment.High))
	}
	if c.Segment.Kernel < 1 {
		errs = append(errs, invalid("segment.kernel %d must be at least 1", c.Segment.Kernel))
	}
	if c.Menu.Frames < 0 {
		errs = append(errs, invalid("menu.frames %d is negative", c.Menu.Frames))
	}

	return errors.Join(errs...)
}

// Spray reports whether the bot fires at every target each cycle.
func (c *Config) Spray() bool {
	return c.ShootDelay == SprayDelay
}

// Delay returns the minimum time between shots.
func (c *Config) Delay() time.Duration {
	if c.Spray() {
		return 0
	}
	return time.Duration(c.ShootDelay * float64(time.Second))
}

// Descriptors returns the descriptors of every searched class, in class
// order.
func (c *Config) Descriptors() []target.Descriptor {
	var ds []target.Descriptor
	for _, d := range target.Descriptors() {
		class, ok := c.Classes[d.Class.String()]
		if !ok || class.Template == "" {
			continue
		}
		d.Template = class.Template
		d.Size = image.Pt(class.Width, class.Height)
		d.Anchor = image.Pt(class.AnchorX, class.AnchorY)
		d.Threshold = class.Threshold
		ds = append(ds, d)
	}
	return ds
}

// PriorityTable returns the ranking table. Names are validated by Validate.
func (c *Config) PriorityTable() target.Priorities {
	p := make(target.Priorities, len(c.Priorities))
	for name, rank := range c.Priorities {
		if class, err := target.ParseClass(name); err == nil {
			p[class] = rank
		}
	}
	return p
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewAmmoTracker builds the reload tracker from the ammo probes.
func (c *Config) NewAmmoTracker() *gamestate.AmmoTracker {
	return &gamestate.AmmoTracker{
		EmptyProbe: c.Ammo.EmptyProbe.Point(),
		ReadyProbe: c.Ammo.ReadyProbe.Point(),
		Full:       c.Ammo.Full,
		Tolerance:  c.Ammo.Tolerance,
	}
}

// NewMenuTracker builds the menu tracker from the menu probe.
func (c *Config) NewMenuTracker() *gamestate.MenuTracker {
	return &gamestate.MenuTracker{
		Probe:  c.Menu.Probe.Point(),
		HUD:    c.Menu.HUD,
		Pause:  c.Menu.Pause,
		Death:  c.Menu.Death,
		Shop:   c.Menu.Shop,
		Frames: c.Menu.Frames,
	}
}
