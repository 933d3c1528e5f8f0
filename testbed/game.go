package testbed

import (
	"fmt"

	"github.com/spaghettifunk/flycam/engine"
	"github.com/spaghettifunk/flycam/engine/components"
	"github.com/spaghettifunk/flycam/engine/core"
	"github.com/spaghettifunk/flycam/engine/math"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32

	// matrices handed to the last render call
	view       math.Mat4
	projection math.Mat4
	frames     uint64
}

func NewTestGame(appConfig *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: appConfig,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	state := g.State.(*gameState)
	state.WorldCamera = g.SystemManager.CameraSystem.GetDefault()

	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, g, g.gameOnKey)
	core.EventRegister(core.EVENT_CODE_CONFIG_RELOADED, g, g.gameOnConfigReloaded)

	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	// Reset the camera to where it started.
	if core.InputKeyReleased(core.KEY_R) {
		state.WorldCamera.Reset(math.NewVec3(0, 0, 3))
		core.LogInfo("camera reset")
	}
	return nil
}

// Render only records the matrices; drawing is left to whatever backend
// the game plugs in.
func (g *TestGame) Render(view, projection math.Mat4, deltaTime float64) error {
	state := g.State.(*gameState)
	state.view = view
	state.projection = projection
	state.frames++
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height

	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogInfo("testbed rendered %d frames", state.frames)
	core.EventUnregister(core.EVENT_CODE_KEY_RELEASED, g)
	core.EventUnregister(core.EVENT_CODE_CONFIG_RELOADED, g)
	return nil
}

func (g *TestGame) gameOnKey(context core.EventContext) bool {
	state := g.State.(*gameState)
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}

	cam := state.WorldCamera
	switch ke.KeyCode {
	case core.KEY_P:
		pos := cam.Position()
		core.LogInfo("Pos:[%.2f, %.2f, %.2f] Yaw: %.2f Pitch: %.2f", pos.X, pos.Y, pos.Z, cam.Yaw(), cam.Pitch())
		return true
	case core.KEY_Z:
		fps, frameTime := core.MetricsFrame()
		ndc := g.cursorNDC()
		core.LogInfo("Zoom: %.1f FPS: %5.1f(%4.1fms) Mouse NDC: X=%.6f, Y=%.6f", cam.Zoom(), fps, frameTime, ndc.X, ndc.Y)
		return true
	}
	return false
}

// cursorNDC converts the cursor position to normalized device coordinates.
func (g *TestGame) cursorNDC() math.Vec2 {
	state := g.State.(*gameState)
	if state.width == 0 || state.height == 0 {
		return math.NewVec2Zero()
	}
	mouseX, mouseY := core.InputGetMousePosition()
	return math.NewVec2(
		math.RangeConvertFloat32(float32(mouseX), 0, float32(state.width), -1, 1),
		math.RangeConvertFloat32(float32(mouseY), 0, float32(state.height), 1, -1),
	)
}

func (g *TestGame) gameOnConfigReloaded(context core.EventContext) bool {
	state := g.State.(*gameState)
	core.LogInfo("config reloaded, speed %.2f sensitivity %.3f", state.WorldCamera.MovementSpeed(), state.WorldCamera.MouseSensitivity())
	return false
}
