package systems

import (
	"github.com/spaghettifunk/flycam/engine/components"
	"github.com/spaghettifunk/flycam/engine/core"
)

// CameraBindings maps each movement to the keys that trigger it. Any bound
// key being down is enough.
type CameraBindings struct {
	Forward  []core.KeyCode
	Backward []core.KeyCode
	Left     []core.KeyCode
	Right    []core.KeyCode
}

func DefaultCameraBindings() CameraBindings {
	return CameraBindings{
		Forward:  []core.KeyCode{core.KEY_W, core.KEY_UP},
		Backward: []core.KeyCode{core.KEY_S, core.KEY_DOWN},
		Left:     []core.KeyCode{core.KEY_A, core.KEY_LEFT},
		Right:    []core.KeyCode{core.KEY_D, core.KEY_RIGHT},
	}
}

type CameraControllerConfig struct {
	Bindings       CameraBindings
	ConstrainPitch bool
}

// CameraController turns the frame's input state into camera operations.
type CameraController struct {
	config *CameraControllerConfig
}

func NewCameraController(config *CameraControllerConfig) *CameraController {
	return &CameraController{config: config}
}

func (cc *CameraController) SetConstrainPitch(constrain bool) {
	cc.config.ConstrainPitch = constrain
}

// Apply feeds keyboard, mouse and wheel input of the current frame into cam.
// deltaTime is in seconds.
func (cc *CameraController) Apply(cam *components.Camera, deltaTime float32) {
	if cam == nil {
		return
	}

	b := cc.config.Bindings
	moves := []struct {
		keys      []core.KeyCode
		direction components.CameraMovement
	}{
		{b.Forward, components.CameraMovementForward},
		{b.Backward, components.CameraMovementBackward},
		{b.Left, components.CameraMovementLeft},
		{b.Right, components.CameraMovementRight},
	}
	for _, m := range moves {
		if anyKeyDown(m.keys) {
			cam.ProcessKeyboard(m.direction, deltaTime)
		}
	}

	if x, y := core.InputGetMouseDelta(); x != 0 || y != 0 {
		cam.ProcessMouseMovement(float32(x), float32(y), cc.config.ConstrainPitch)
	}

	if scroll := core.InputGetScrollDelta(); scroll != 0 {
		cam.ProcessMouseScroll(float32(scroll))
	}
}

func anyKeyDown(keys []core.KeyCode) bool {
	for _, k := range keys {
		if core.InputIsKeyDown(k) {
			return true
		}
	}
	return false
}
