package core

import (
	"sync"
	"testing"
)

func TestInputFrameSetHas(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFire)
	f.Set(ActionMoveLeft)

	if !f.Has(ActionFire) || !f.Has(ActionMoveLeft) {
		t.Error("Set actions should be held")
	}
	if f.Has(ActionDash) {
		t.Error("Dash was never set")
	}
	if f.Has(ActionNone) {
		t.Error("ActionNone is never held")
	}

	f.Unset(ActionFire)
	if f.Has(ActionFire) {
		t.Error("Unset should release the action")
	}

	held := f.Held()
	if len(held) != 1 || held[0] != ActionMoveLeft {
		t.Errorf("Held() = %v, expected [Left]", held)
	}

	f.Pointer = V(3, 4)
	f.Clear()
	if len(f.Held()) != 0 {
		t.Error("Clear should release all actions")
	}
	if f.Pointer != V(3, 4) {
		t.Error("Clear should keep the pointer")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name     string
		expected Action
	}{
		{"up", ActionMoveUp},
		{"DOWN", ActionMoveDown},
		{"left", ActionMoveLeft},
		{"right", ActionMoveRight},
		{"fire", ActionFire},
		{"dash", ActionDash},
		{"grenade", ActionGrenade},
		{"jump", ActionNone},
	}

	for _, tc := range tests {
		if got := ParseAction(tc.name); got != tc.expected {
			t.Errorf("ParseAction(%q) = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestInputStateSnapshotIsolation(t *testing.T) {
	s := NewInputState()

	snap := s.Load()
	s.Update(func(f *InputFrame) { f.Set(ActionFire) })

	if snap.Has(ActionFire) {
		t.Error("A loaded snapshot must not observe later writes")
	}
	if !s.Load().Has(ActionFire) {
		t.Error("Update should publish the new frame")
	}

	s.Reset()
	if s.Load().Has(ActionFire) {
		t.Error("Reset should release all actions")
	}
}

func TestInputStateConcurrentUpdates(t *testing.T) {
	s := NewInputState()

	var wg sync.WaitGroup
	actions := []Action{ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight, ActionFire, ActionDash, ActionGrenade}
	for _, a := range actions {
		wg.Add(1)
		go func(a Action) {
			defer wg.Done()
			s.Update(func(f *InputFrame) { f.Set(a) })
		}(a)
	}
	wg.Wait()

	frame := s.Load()
	for _, a := range actions {
		if !frame.Has(a) {
			t.Errorf("Action %v lost under concurrent updates", a)
		}
	}
}
