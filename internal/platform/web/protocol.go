package web

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/feed"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

// Client message types.
const (
	TypeStart   = "start"
	TypeInput   = "input"
	TypePause   = "pause"
	TypeResume  = "resume"
	TypeRestart = "restart"
)

// Server-only event types. The rest come from the feed package.
const (
	TypeFrame = "frame"
	TypeError = "error"
)

// Envelope is the JSON frame exchanged in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StartPayload picks the run setup. Empty fields fall back to the defaults.
type StartPayload struct {
	Difficulty string `json:"difficulty"`
	Class      string `json:"class"`
	Gender     string `json:"gender"`
}

// Setup resolves the payload to a validated setup.
func (p StartPayload) Setup() (arena.Setup, error) {
	setup := arena.DefaultSetup()
	var err error
	if p.Difficulty != "" {
		if setup.Difficulty, err = config.ParseDifficulty(p.Difficulty); err != nil {
			return arena.Setup{}, err
		}
	}
	if p.Class != "" {
		if setup.Class, err = config.ParseClass(p.Class); err != nil {
			return arena.Setup{}, err
		}
	}
	if p.Gender != "" {
		if setup.Gender, err = config.ParseGender(p.Gender); err != nil {
			return arena.Setup{}, err
		}
	}
	return setup, nil
}

// Point is a position in arena units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func point(v core.Vec2) Point {
	return Point{X: v.X, Y: v.Y}
}

// InputPayload is the full held-input state of the browser.
// Each message replaces the previous one.
type InputPayload struct {
	Keys    []string `json:"keys"`
	Pointer Point    `json:"pointer"`
}

// Frame converts the payload to an input frame. Unknown keys are ignored.
func (p InputPayload) Frame() core.InputFrame {
	f := core.NewInputFrame()
	for _, k := range p.Keys {
		f.Set(core.ParseAction(k))
	}
	f.Pointer = core.V(p.Pointer.X, p.Pointer.Y)
	return f
}

// ErrorEvent reports a rejected client message.
type ErrorEvent struct {
	Message string `json:"message"`
}

// Type implements feed.Event.
func (ErrorEvent) Type() string { return TypeError }

// Body is one drawable circle.
type Body struct {
	Point
	Radius float64 `json:"r"`
	Kind   string  `json:"kind,omitempty"`
}

// FrameEvent is a reduced snapshot for drawing the arena in the browser.
type FrameEvent struct {
	Tick       uint64  `json:"tick"`
	State      string  `json:"state"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Player     Body    `json:"player"`
	Angle      float64 `json:"angle"`
	Dashing    bool    `json:"dashing"`
	Enemies    []Body  `json:"enemies"`
	Bullets    []Body  `json:"bullets"`
	Explosions []Body  `json:"explosions"`
	Loot       []Body  `json:"loot"`
	Zone       Body    `json:"zone"`
	ZoneTarget float64 `json:"zoneTarget"`
}

// Type implements feed.Event.
func (FrameEvent) Type() string { return TypeFrame }

// NewFrameEvent reduces a snapshot to what the browser draws.
// Destroyed and collected entities are left out.
func NewFrameEvent(s arena.Snapshot) FrameEvent {
	f := FrameEvent{
		Tick:       s.Tick,
		State:      s.State,
		Width:      s.Bounds.W,
		Height:     s.Bounds.H,
		Player:     Body{Point: point(s.Player.Pos), Radius: s.Player.Radius, Kind: string(s.Player.Class)},
		Angle:      s.Player.Angle,
		Dashing:    s.Dashing,
		Enemies:    []Body{},
		Bullets:    []Body{},
		Explosions: []Body{},
		Loot:       []Body{},
		Zone:       Body{Point: point(s.Zone.Center), Radius: s.Zone.Radius},
		ZoneTarget: s.Zone.TargetRadius,
	}
	for _, e := range s.Enemies {
		if !e.Destroyed {
			f.Enemies = append(f.Enemies, Body{Point: point(e.Pos), Radius: e.Radius, Kind: string(e.Kind)})
		}
	}
	for _, b := range s.Bullets {
		if b.Destroyed {
			continue
		}
		kind := "enemy"
		if b.FromPlayer {
			kind = "player"
		}
		f.Bullets = append(f.Bullets, Body{Point: point(b.Pos), Radius: b.Radius, Kind: kind})
	}
	for _, e := range s.Explosions {
		f.Explosions = append(f.Explosions, Body{Point: point(e.Pos), Radius: e.DrawRadius()})
	}
	for _, l := range s.Loot {
		if !l.Collected {
			f.Loot = append(f.Loot, Body{Point: point(l.Pos), Radius: l.Radius, Kind: l.Kind.String()})
		}
	}
	return f
}

// encode wraps an event in an envelope.
func encode(evt feed.Event) ([]byte, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("web: cannot encode %s event: %w", evt.Type(), err)
	}
	return json.Marshal(Envelope{Type: evt.Type(), Payload: payload})
}
