package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/flycam/engine/config"
	"github.com/spaghettifunk/flycam/engine/core"
	"github.com/spaghettifunk/flycam/engine/platform"
	"github.com/spaghettifunk/flycam/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// windowPlatform is the part of the platform layer the loop drives.
type windowPlatform interface {
	Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error
	PumpMessages() bool
	Shutdown() error
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	isSuspended   bool
	platform      windowPlatform
	systemManager *systems.SystemManager
	projection    config.ProjectionConfig
	watcher       *config.Watcher
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	absoluteTime  func() float64
	shutdownOnce  sync.Once
}

// New wires the systems described by cfg. A nil cfg uses config.Default().
func New(g *Game, cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if g.ApplicationConfig == nil {
		ac, err := NewApplicationConfig(cfg, "")
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		g.ApplicationConfig = ac
	}

	sm, err := systems.NewSystemManager(cfg.CameraSystemConfig(), cfg.CameraControllerConfig())
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		platform:      platform.New(),
		systemManager: sm,
		projection:    cfg.Projection,
		isSuspended:   false,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
		lastTime:      0,
		absoluteTime:  platform.GetAbsoluteTime,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageBooting
	appConfig := e.gameInstance.ApplicationConfig
	core.SetLogLevel(appConfig.LogLevel)

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		err := fmt.Errorf("failed to initialize the event system")
		core.LogError(err.Error())
		return err
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	e.currentStage = EngineStageBootComplete

	if err := e.platform.Startup(appConfig.Name,
		appConfig.StartPosX,
		appConfig.StartPosY,
		appConfig.StartWidth,
		appConfig.StartHeight); err != nil {
		return err
	}

	if appConfig.ConfigPath != "" {
		w, err := config.NewWatcher(appConfig.ConfigPath, config.DefaultDebounce)
		if err != nil {
			// the engine still runs, only without hot reload
			core.LogWarn("config hot reload disabled: %s", err)
		} else {
			e.watcher = w
		}
	}

	e.currentStage = EngineStageInitializing

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			core.LogError("game initialization failed: %s", err)
			return err
		}
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized")
	return nil
}

// Run blocks until the window closes, Stop is called or the game returns an error.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine run: %w", core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}

		if e.isSuspended {
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)

		if err := e.frame(delta); err != nil {
			e.isRunning.Store(false)
			return err
		}

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

// frame runs one iteration of the loop with the given delta in seconds.
func (e *Engine) frame(delta float64) error {
	var frameStartTime float64 = e.absoluteTime()

	e.applyConfigReloads()

	camera := e.systemManager.CameraSystem.GetDefault()
	e.systemManager.CameraController.Apply(camera, float32(delta))

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			return fmt.Errorf("game update: %w", err)
		}
	}

	view := camera.GetViewMatrix()
	projection := camera.GetProjectionMatrix(e.aspectRatio(), e.projection.Near, e.projection.Far)

	// Call the game's render routine.
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(view, projection, delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			return fmt.Errorf("game render: %w", err)
		}
	}

	core.MetricsUpdate(e.absoluteTime() - frameStartTime)

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	// As a safety, input is the last thing to be updated before
	// this frame ends.
	return core.InputUpdate(delta)
}

// Stop asks the loop to exit after the current frame. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

// Shutdown releases every subsystem. Call it from the goroutine that ran Run.
func (e *Engine) Shutdown() error {
	var err error
	e.shutdownOnce.Do(func() {
		e.currentStage = EngineStageShuttingDown
		e.isRunning.Store(false)

		if e.watcher != nil {
			if cerr := e.watcher.Close(); cerr != nil {
				core.LogWarn("closing config watcher: %s", cerr)
			}
		}
		if e.gameInstance.FnShutdown != nil {
			if gerr := e.gameInstance.FnShutdown(); gerr != nil {
				core.LogError("game shutdown failed: %s", gerr)
				err = gerr
			}
		}
		if serr := e.systemManager.Shutdown(); serr != nil && err == nil {
			err = serr
		}
		core.EventSystemShutdown()
		if ierr := core.InputShutdown(); ierr != nil && err == nil {
			err = ierr
		}
		if perr := e.platform.Shutdown(); perr != nil && err == nil {
			err = perr
		}
		e.currentStage = EngineStageUninitialized
	})
	return err
}

// ApplicationGetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) aspectRatio() float32 {
	if e.height == 0 {
		return 1
	}
	return float32(e.width) / float32(e.height)
}

// applyConfigReloads drains the watcher without blocking. Only tuning values
// and the log level are taken from a reload; the camera keeps its pose.
func (e *Engine) applyConfigReloads() {
	if e.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-e.watcher.Updates():
		if ok {
			e.applyConfig(cfg)
		}
	default:
	}
	select {
	case err, ok := <-e.watcher.Errors():
		if ok {
			core.LogWarn("keeping previous config: %s", err)
		}
	default:
	}
}

func (e *Engine) applyConfig(cfg *config.Config) {
	if level, err := core.ParseLogLevel(cfg.Application.LogLevel); err == nil {
		core.SetLogLevel(level)
	}

	camera := e.systemManager.CameraSystem.GetDefault()
	camera.SetMovementSpeed(cfg.Camera.MovementSpeed)
	camera.SetMouseSensitivity(cfg.Camera.MouseSensitivity)
	core.LogDebug("camera tuning updated: speed=%.2f sensitivity=%.3f", camera.MovementSpeed(), camera.MouseSensitivity())

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_CONFIG_RELOADED,
		Data: cfg,
	})
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
	}
	// other listeners may want to know about it as well
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := re.Width
	height := re.Height

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}

	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return true
}
