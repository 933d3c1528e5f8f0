package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/flycam/engine/core"
)

var startTime float64 = 0

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the OS window. The window has no client API attached: it only
// feeds keyboard, mouse and resize events into the core input and event systems.
type Platform struct {
	Window *glfw.Window
}

func New() *Platform {
	return &Platform{
		Window: nil,
	}
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetMouseButtonCallback(mouseButtonCallback)
	p.Window.SetCursorPosCallback(cursorPosCallback)
	p.Window.SetScrollCallback(scrollCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))

	// capture the cursor for mouse look
	p.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		p.Window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	p.Window.Show()

	startTime = glfw.GetTime()
	core.LogDebug("platform window %q created (%dx%d)", applicationName, width, height)

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	if p.Window == nil {
		return false
	}
	glfw.PollEvents()
	return !p.ShouldClose()
}

func (p *Platform) ShouldClose() bool {
	return p.Window == nil || p.Window.ShouldClose()
}

// GetAbsoluteTime returns the seconds elapsed since Startup.
func GetAbsoluteTime() float64 {
	return glfw.GetTime() - startTime
}

var keyTable = map[glfw.Key]core.KeyCode{
	glfw.KeyBackspace:    core.KEY_BACKSPACE,
	glfw.KeyTab:          core.KEY_TAB,
	glfw.KeyEnter:        core.KEY_ENTER,
	glfw.KeyEscape:       core.KEY_ESCAPE,
	glfw.KeySpace:        core.KEY_SPACE,
	glfw.KeyLeft:         core.KEY_LEFT,
	glfw.KeyUp:           core.KEY_UP,
	glfw.KeyRight:        core.KEY_RIGHT,
	glfw.KeyDown:         core.KEY_DOWN,
	glfw.KeyF1:           core.KEY_F1,
	glfw.KeyF2:           core.KEY_F2,
	glfw.KeyF3:           core.KEY_F3,
	glfw.KeyF4:           core.KEY_F4,
	glfw.KeyLeftShift:    core.KEY_LSHIFT,
	glfw.KeyRightShift:   core.KEY_RSHIFT,
	glfw.KeyLeftControl:  core.KEY_LCONTROL,
	glfw.KeyRightControl: core.KEY_RCONTROL,
}

// TranslateKey maps a GLFW key to the engine key code, KEY_UNKNOWN if unmapped.
func TranslateKey(key glfw.Key) core.KeyCode {
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		return core.KEY_A + core.KeyCode(key-glfw.KeyA)
	}
	if code, ok := keyTable[key]; ok {
		return code
	}
	return core.KEY_UNKNOWN
}

// TranslateButton maps a GLFW mouse button; the second value is false for
// buttons the engine does not track.
func TranslateButton(button glfw.MouseButton) (core.Button, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return core.BUTTON_LEFT, true
	case glfw.MouseButtonRight:
		return core.BUTTON_RIGHT, true
	case glfw.MouseButtonMiddle:
		return core.BUTTON_MIDDLE, true
	}
	return core.BUTTON_MAX_BUTTONS, false
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code := TranslateKey(key)
	if code == core.KEY_UNKNOWN {
		return
	}
	if err := core.InputProcessKey(code, action == glfw.Press); err != nil {
		core.LogError(err.Error())
	}
}

func mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := TranslateButton(button)
	if !ok {
		return
	}
	if err := core.InputProcessButton(b, action == glfw.Press); err != nil {
		core.LogError(err.Error())
	}
}

func cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if err := core.InputProcessMouseMove(xpos, ypos); err != nil {
		core.LogError(err.Error())
	}
}

func scrollCallback(w *glfw.Window, xoff, yoff float64) {
	if err := core.InputProcessMouseWheel(yoff); err != nil {
		core.LogError(err.Error())
	}
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.ResizeEvent{
			Width:  uint32(width),
			Height: uint32(height),
		},
	})
}
