package core

import (
	"io"
	"testing"
)

func setupInput(t *testing.T) {
	t.Helper()
	SetLogOutput(io.Discard)
	EventSystemShutdown()
	if !EventSystemInitialize() {
		t.Fatalf("event system failed to initialize")
	}
	if err := InputInitialize(); err != nil {
		t.Fatalf("input failed to initialize: %v", err)
	}
	t.Cleanup(func() {
		_ = InputShutdown()
		EventSystemShutdown()
	})
}

func TestInputKeyTransitions(t *testing.T) {
	setupInput(t)

	if err := InputProcessKey(KEY_W, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !InputIsKeyDown(KEY_W) || !InputWasKeyUp(KEY_W) {
		t.Fatalf("expected W down this frame and up last frame")
	}

	_ = InputUpdate(0.016)
	_ = InputProcessKey(KEY_W, false)
	if !InputKeyReleased(KEY_W) {
		t.Fatalf("expected W released transition")
	}

	_ = InputUpdate(0.016)
	if InputKeyReleased(KEY_W) {
		t.Fatalf("release transition should only last one frame")
	}
}

func TestInputMouseDelta(t *testing.T) {
	setupInput(t)

	// First sample only establishes the reference point.
	_ = InputProcessMouseMove(400, 300)
	if x, y := InputGetMouseDelta(); x != 0 || y != 0 {
		t.Fatalf("expected zero delta on first sample, got (%v, %v)", x, y)
	}
	_ = InputUpdate(0.016)

	_ = InputProcessMouseMove(410, 290)
	x, y := InputGetMouseDelta()
	if x != 10 {
		t.Fatalf("expected x offset 10, got %v", x)
	}
	if y != 10 {
		t.Fatalf("expected reversed y offset 10, got %v", y)
	}

	_ = InputUpdate(0.016)
	if x, y := InputGetMouseDelta(); x != 0 || y != 0 {
		t.Fatalf("expected zero delta without movement, got (%v, %v)", x, y)
	}
}

func TestInputScrollAccumulatesPerFrame(t *testing.T) {
	setupInput(t)

	_ = InputProcessMouseWheel(1)
	_ = InputProcessMouseWheel(0.5)
	if got := InputGetScrollDelta(); got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
	_ = InputUpdate(0.016)
	if got := InputGetScrollDelta(); got != 0 {
		t.Fatalf("expected scroll reset after update, got %v", got)
	}
}

func TestInputFiresEvents(t *testing.T) {
	setupInput(t)

	var pressed []KeyCode
	listener := &struct{}{}
	EventRegister(EVENT_CODE_KEY_PRESSED, listener, func(ctx EventContext) bool {
		pressed = append(pressed, ctx.Data.(*KeyEvent).KeyCode)
		return true
	})

	_ = InputProcessKey(KEY_A, true)
	// Same state again must not fire.
	_ = InputProcessKey(KEY_A, true)
	_ = InputProcessKey(KEY_D, true)

	if len(pressed) != 2 || pressed[0] != KEY_A || pressed[1] != KEY_D {
		t.Fatalf("expected [A D], got %v", pressed)
	}
}

func TestInputUninitialized(t *testing.T) {
	_ = InputShutdown()
	if InputIsKeyDown(KEY_W) {
		t.Fatalf("expected no key state before initialization")
	}
	if err := InputProcessKey(KEY_W, true); err != ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestKeyCodeFromName(t *testing.T) {
	cases := []struct {
		name string
		want KeyCode
		ok   bool
	}{
		{"w", KEY_W, true},
		{"W", KEY_W, true},
		{"space", KEY_SPACE, true},
		{"lshift", KEY_LSHIFT, true},
		{"1", KEY_UNKNOWN, false},
		{"hyper", KEY_UNKNOWN, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := KeyCodeFromName(c.name)
			if ok != c.ok || got != c.want {
				t.Fatalf("expected (%v, %v), got (%v, %v)", c.want, c.ok, got, ok)
			}
		})
	}
}
