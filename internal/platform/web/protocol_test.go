package web

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/feed"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

func TestStartPayloadSetup(t *testing.T) {
	tests := []struct {
		name     string
		payload  StartPayload
		expected arena.Setup
		wantErr  bool
	}{
		{"defaults", StartPayload{}, arena.DefaultSetup(), false},
		{
			"full",
			StartPayload{Difficulty: "Easy", Class: "heavy", Gender: "female"},
			arena.Setup{Difficulty: config.DifficultyEasy, Class: config.ClassHeavy, Gender: config.GenderFemale},
			false,
		},
		{"bad class", StartPayload{Class: "medic"}, arena.Setup{}, true},
		{"bad gender", StartPayload{Gender: "robot"}, arena.Setup{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.payload.Setup()
			if tc.wantErr {
				if !errors.Is(err, config.ErrInvalid) {
					t.Errorf("Setup() error = %v, expected ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Setup() error = %v", err)
			}
			if got != tc.expected {
				t.Errorf("Setup() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestInputPayloadFrame(t *testing.T) {
	f := InputPayload{Keys: []string{"up", "FIRE", "moonwalk"}, Pointer: Point{X: 12, Y: 34}}.Frame()

	if !f.Has(core.ActionMoveUp) || !f.Has(core.ActionFire) {
		t.Errorf("Held() = %v, expected Up and Fire", f.Held())
	}
	if len(f.Held()) != 2 {
		t.Errorf("unknown keys should be ignored, held %v", f.Held())
	}
	if f.Pointer != core.V(12, 34) {
		t.Errorf("Pointer = %v, expected (12, 34)", f.Pointer)
	}
}

func TestNewFrameEventSkipsDeadEntities(t *testing.T) {
	snap := arena.Snapshot{
		Tick:   9,
		State:  arena.StatePlaying,
		Bounds: core.Bounds{W: 1280, H: 720},
		Player: arena.Player{Pos: core.V(640, 360), Radius: 16, Class: config.ClassRusher},
		Enemies: []arena.Enemy{
			{Pos: core.V(10, 10), Radius: 14, Kind: config.EnemyScout},
			{Pos: core.V(20, 20), Radius: 14, Kind: config.EnemyGrunt, Destroyed: true},
		},
		Bullets: []arena.Bullet{
			{Pos: core.V(5, 5), Radius: 3, FromPlayer: true},
			{Pos: core.V(6, 6), Radius: 3},
			{Pos: core.V(7, 7), Radius: 3, Destroyed: true},
		},
		Loot: []arena.LootCrate{
			{Pos: core.V(30, 30), Radius: 10, Kind: arena.LootArmor},
			{Pos: core.V(40, 40), Radius: 10, Collected: true},
		},
		Zone: arena.SafeZone{Center: core.V(640, 360), Radius: 600, TargetRadius: 400},
	}

	f := NewFrameEvent(snap)

	if f.Player.Kind != "rusher" || f.Player.X != 640 {
		t.Errorf("player = %+v", f.Player)
	}
	if len(f.Enemies) != 1 || f.Enemies[0].Kind != "scout" {
		t.Errorf("enemies = %+v, expected one scout", f.Enemies)
	}
	if len(f.Bullets) != 2 || f.Bullets[0].Kind != "player" || f.Bullets[1].Kind != "enemy" {
		t.Errorf("bullets = %+v", f.Bullets)
	}
	if len(f.Loot) != 1 || f.Loot[0].Kind != arena.LootArmor.String() {
		t.Errorf("loot = %+v", f.Loot)
	}
	if f.Zone.Radius != 600 || f.ZoneTarget != 400 {
		t.Errorf("zone = %+v target %v", f.Zone, f.ZoneTarget)
	}
	if f.Explosions == nil {
		t.Error("empty lists should encode as [] not null")
	}
}

func TestEncodeEnvelope(t *testing.T) {
	data, err := encode(feed.StateEvent{State: arena.StatePaused})
	if err != nil {
		t.Fatalf("encode() error = %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if env.Type != feed.TypeState || string(env.Payload) != `{"state":"paused"}` {
		t.Errorf("envelope = %s", data)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvFrameEvery, "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig() with a missing file error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, expected defaults", cfg)
	}

	t.Setenv(EnvAddr, ":9999")
	t.Setenv(EnvFrameEvery, "3")
	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr != ":9999" || cfg.FrameEvery != 3 {
		t.Errorf("LoadConfig() = %+v, expected env overrides", cfg)
	}

	t.Setenv(EnvFrameEvery, "0")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("LoadConfig() error = %v, expected ErrInvalid", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv(EnvAddr, "")
	os.Unsetenv(EnvAddr)

	path := filepath.Join(t.TempDir(), "arena.env")
	if err := os.WriteFile(path, []byte("ARENA_WEB_ADDR=:7070\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, expected :7070", cfg.Addr)
	}
}
