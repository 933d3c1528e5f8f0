package testbed

import (
	"io"
	"testing"

	"github.com/spaghettifunk/flycam/engine"
	"github.com/spaghettifunk/flycam/engine/components"
	"github.com/spaghettifunk/flycam/engine/core"
	"github.com/spaghettifunk/flycam/engine/math"
)

func newTestbed(t *testing.T) *TestGame {
	t.Helper()
	core.SetLogOutput(io.Discard)
	core.EventSystemShutdown()
	core.EventSystemInitialize()
	_ = core.InputInitialize()
	t.Cleanup(func() {
		_ = core.InputShutdown()
		core.EventSystemShutdown()
	})

	tb := NewTestGame(nil)
	if _, err := engine.New(tb.Game, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tb.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tb
}

func TestInitializeRequiresSystems(t *testing.T) {
	tb := NewTestGame(nil)
	if err := tb.Initialize(); err == nil {
		t.Fatalf("expected an error without a system manager")
	}
}

func TestRenderRecordsMatrices(t *testing.T) {
	tb := newTestbed(t)
	view := math.NewMat4Translation(math.NewVec3(1, 2, 3))
	proj := math.NewMat4Perspective(math.DegToRad(45), 1, 0.1, 100)

	if err := tb.Render(view, proj, 0.016); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := tb.State.(*gameState)
	if state.frames != 1 || state.view != view || state.projection != proj {
		t.Fatalf("expected render to record the matrices")
	}
}

func TestUpdateResetsCamera(t *testing.T) {
	tb := newTestbed(t)
	state := tb.State.(*gameState)

	state.WorldCamera.ProcessKeyboard(components.CameraMovementForward, 1)
	state.WorldCamera.ProcessMouseMovement(200, 50, true)

	_ = core.InputProcessKey(core.KEY_R, true)
	_ = core.InputUpdate(0)
	_ = core.InputProcessKey(core.KEY_R, false)
	if err := tb.Update(0.016); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cam := state.WorldCamera
	if cam.Position() != math.NewVec3(0, 0, 3) || cam.Yaw() != -90 || cam.Pitch() != 0 {
		t.Fatalf("expected camera reset, got pos %+v yaw %v pitch %v", cam.Position(), cam.Yaw(), cam.Pitch())
	}
}

func TestKeyEventsHandled(t *testing.T) {
	tb := newTestbed(t)

	for _, key := range []core.KeyCode{core.KEY_P, core.KEY_Z} {
		_ = core.InputProcessKey(key, true)
		handled := core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_KEY_RELEASED,
			Data: &core.KeyEvent{KeyCode: key},
		})
		if !handled {
			t.Fatalf("expected key %#x to be handled", key)
		}
	}
	if tb.gameOnKey(core.EventContext{Type: core.EVENT_CODE_KEY_RELEASED, Data: &core.KeyEvent{KeyCode: core.KEY_Q}}) {
		t.Fatalf("unbound key must not be handled")
	}
}

func TestCursorNDC(t *testing.T) {
	tb := newTestbed(t)
	_ = tb.OnResize(800, 600)

	_ = core.InputProcessMouseMove(400, 0)
	if got := tb.cursorNDC(); got != math.NewVec2(0, 1) {
		t.Fatalf("expected (0,1), got %+v", got)
	}
	_ = core.InputProcessMouseMove(800, 600)
	if got := tb.cursorNDC(); got != math.NewVec2(1, -1) {
		t.Fatalf("expected (1,-1), got %+v", got)
	}
}
