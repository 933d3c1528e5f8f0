package engine

import (
	"github.com/spaghettifunk/flycam/engine/math"
	"github.com/spaghettifunk/flycam/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render receives the active camera's view and projection for the frame.
type Render func(view, projection math.Mat4, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
