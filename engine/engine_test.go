package engine

import (
	"errors"
	"io"
	"testing"

	"github.com/spaghettifunk/flycam/engine/config"
	"github.com/spaghettifunk/flycam/engine/core"
	"github.com/spaghettifunk/flycam/engine/math"
)

type fakePlatform struct {
	started  bool
	stopped  bool
	frames   int
	maxPumps int
}

func (p *fakePlatform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	p.started = true
	return nil
}

func (p *fakePlatform) PumpMessages() bool {
	p.frames++
	return p.frames <= p.maxPumps
}

func (p *fakePlatform) Shutdown() error {
	p.stopped = true
	return nil
}

type recordingGame struct {
	views       []math.Mat4
	projections []math.Mat4
	updates     int
	resizes     [][2]uint32
	updateErr   error
	shutdown    bool
}

func (r *recordingGame) game() *Game {
	return &Game{
		FnInitialize: func() error { return nil },
		FnUpdate: func(deltaTime float64) error {
			r.updates++
			return r.updateErr
		},
		FnRender: func(view, projection math.Mat4, deltaTime float64) error {
			r.views = append(r.views, view)
			r.projections = append(r.projections, projection)
			return nil
		},
		FnOnResize: func(width uint32, height uint32) error {
			r.resizes = append(r.resizes, [2]uint32{width, height})
			return nil
		},
		FnShutdown: func() error {
			r.shutdown = true
			return nil
		},
	}
}

func newTestEngine(t *testing.T, maxPumps int) (*Engine, *recordingGame, *fakePlatform) {
	t.Helper()
	core.SetLogOutput(io.Discard)

	rec := &recordingGame{}
	e, err := New(rec.game(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp := &fakePlatform{maxPumps: maxPumps}
	e.platform = fp
	e.absoluteTime = func() float64 { return 0 }

	if err := e.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = e.Shutdown() })
	return e, rec, fp
}

func TestEngineStages(t *testing.T) {
	e, rec, fp := newTestEngine(t, 3)

	if e.Stage() != EngineStageInitialized {
		t.Fatalf("expected initialized stage, got %d", e.Stage())
	}
	if !fp.started {
		t.Fatalf("expected platform startup")
	}
	if len(rec.resizes) != 1 || rec.resizes[0] != [2]uint32{1280, 720} {
		t.Fatalf("expected initial resize to 1280x720, got %v", rec.resizes)
	}

	if err := e.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.updates != 3 || len(rec.views) != 3 {
		t.Fatalf("expected 3 frames, got %d updates %d renders", rec.updates, len(rec.views))
	}

	if err := e.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Stage() != EngineStageUninitialized || !fp.stopped || !rec.shutdown {
		t.Fatalf("expected full shutdown, stage %d", e.Stage())
	}
}

func TestEngineRunRequiresInitialize(t *testing.T) {
	core.SetLogOutput(io.Discard)
	e, err := New(&Game{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Run(); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestEngineFrameRendersCameraMatrices(t *testing.T) {
	e, rec, _ := newTestEngine(t, 0)

	_ = core.InputProcessKey(core.KEY_W, true)
	if err := e.frame(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cam := e.systemManager.CameraSystem.GetDefault()
	// default camera starts at (0,0,3) looking down -Z
	if !cam.Position().Compare(math.NewVec3(0, 0, 0.5), 1e-5) {
		t.Fatalf("expected (0,0,0.5), got %+v", cam.Position())
	}
	if !rec.views[0].Compare(cam.GetViewMatrix(), 1e-6) {
		t.Fatalf("render hook should get the camera view matrix")
	}
	expected := cam.GetProjectionMatrix(1280.0/720.0, 0.1, 100)
	if !rec.projections[0].Compare(expected, 1e-6) {
		t.Fatalf("render hook should get the zoom projection")
	}

	// input state was rolled over at the end of the frame
	if !core.InputWasKeyDown(core.KEY_W) {
		t.Fatalf("expected W to be in the previous state")
	}
}

func TestEngineFrameUpdateError(t *testing.T) {
	e, rec, _ := newTestEngine(t, 5)
	rec.updateErr = errors.New("boom")

	if err := e.Run(); err == nil || !errors.Is(err, rec.updateErr) {
		t.Fatalf("expected update error, got %v", err)
	}
	if len(rec.views) != 0 {
		t.Fatalf("render must not run after a failed update")
	}
}

func TestEngineEscapeQuits(t *testing.T) {
	e, _, _ := newTestEngine(t, 100)

	e.isRunning.Store(true)
	_ = core.InputProcessKey(core.KEY_ESCAPE, true)
	if e.isRunning.Load() {
		t.Fatalf("escape should stop the loop")
	}
}

func TestEngineResize(t *testing.T) {
	e, rec, _ := newTestEngine(t, 0)

	fire := func(w, h uint32) {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.ResizeEvent{Width: w, Height: h},
		})
	}

	fire(800, 600)
	if w, h := e.GetFramebufferSize(); w != 800 || h != 600 {
		t.Fatalf("expected 800x600, got %dx%d", w, h)
	}
	if len(rec.resizes) != 2 {
		t.Fatalf("expected game resize hook, got %v", rec.resizes)
	}

	fire(0, 0)
	if !e.isSuspended {
		t.Fatalf("expected suspension when minimized")
	}
	if e.aspectRatio() != 1 {
		t.Fatalf("expected fallback aspect ratio, got %v", e.aspectRatio())
	}

	fire(1024, 512)
	if e.isSuspended {
		t.Fatalf("expected resume after restore")
	}
	if e.aspectRatio() != 2 {
		t.Fatalf("expected aspect ratio 2, got %v", e.aspectRatio())
	}
}

func TestEngineApplyConfig(t *testing.T) {
	e, _, _ := newTestEngine(t, 0)

	var reloaded *config.Config
	listener := new(int)
	core.EventRegister(core.EVENT_CODE_CONFIG_RELOADED, listener, func(ctx core.EventContext) bool {
		reloaded, _ = ctx.Data.(*config.Config)
		return true
	})

	cam := e.systemManager.CameraSystem.GetDefault()
	cam.ProcessMouseMovement(100, 0, true)
	yaw := cam.Yaw()

	cfg := config.Default()
	cfg.Camera.MovementSpeed = 7
	cfg.Camera.MouseSensitivity = 0.5
	cfg.Camera.Yaw = 0
	e.applyConfig(cfg)

	if cam.MovementSpeed() != 7 || cam.MouseSensitivity() != 0.5 {
		t.Fatalf("tuning not applied: speed %v sensitivity %v", cam.MovementSpeed(), cam.MouseSensitivity())
	}
	if cam.Yaw() != yaw {
		t.Fatalf("reload must not reset orientation, yaw %v != %v", cam.Yaw(), yaw)
	}
	if reloaded != cfg {
		t.Fatalf("expected config reloaded event")
	}
}
