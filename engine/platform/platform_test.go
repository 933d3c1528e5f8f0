package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/flycam/engine/core"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		key      glfw.Key
		expected core.KeyCode
	}{
		{glfw.KeyA, core.KEY_A},
		{glfw.KeyW, core.KEY_W},
		{glfw.KeyZ, core.KEY_Z},
		{glfw.KeyEscape, core.KEY_ESCAPE},
		{glfw.KeyUp, core.KEY_UP},
		{glfw.KeyLeft, core.KEY_LEFT},
		{glfw.KeyLeftShift, core.KEY_LSHIFT},
		{glfw.KeyF2, core.KEY_F2},
		{glfw.KeyKPEnter, core.KEY_UNKNOWN},
		{glfw.KeyUnknown, core.KEY_UNKNOWN},
	}
	for _, c := range cases {
		if got := TranslateKey(c.key); got != c.expected {
			t.Fatalf("key %d: expected %#x, got %#x", c.key, c.expected, got)
		}
	}
}

func TestTranslateButton(t *testing.T) {
	if b, ok := TranslateButton(glfw.MouseButtonRight); !ok || b != core.BUTTON_RIGHT {
		t.Fatalf("expected BUTTON_RIGHT, got %d %v", b, ok)
	}
	if _, ok := TranslateButton(glfw.MouseButton4); ok {
		t.Fatalf("expected extra buttons to be ignored")
	}
}

func TestPumpMessagesWithoutWindow(t *testing.T) {
	p := New()
	if p.PumpMessages() {
		t.Fatalf("expected no window to report closed")
	}
	if !p.ShouldClose() {
		t.Fatalf("expected ShouldClose without a window")
	}
}
