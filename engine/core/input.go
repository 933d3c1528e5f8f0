package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_UNKNOWN   KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F2        KeyCode = 0x71
	KEY_F3        KeyCode = 0x72
	KEY_F4        KeyCode = 0x73
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0xFF
)

var keyNames = map[string]KeyCode{
	"backspace": KEY_BACKSPACE, "tab": KEY_TAB, "enter": KEY_ENTER, "escape": KEY_ESCAPE,
	"space": KEY_SPACE, "left": KEY_LEFT, "up": KEY_UP, "right": KEY_RIGHT, "down": KEY_DOWN,
	"f1": KEY_F1, "f2": KEY_F2, "f3": KEY_F3, "f4": KEY_F4,
	"lshift": KEY_LSHIFT, "rshift": KEY_RSHIFT, "lcontrol": KEY_LCONTROL, "rcontrol": KEY_RCONTROL,
}

// KeyCodeFromName resolves config key names: single letters ("w") or the
// names of the special keys above ("space", "lshift").
func KeyCodeFromName(name string) (KeyCode, bool) {
	if len(name) == 1 {
		c := name[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			return KeyCode(c), true
		}
		return KEY_UNKNOWN, false
	}
	code, ok := keyNames[name]
	return code, ok
}

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool // button states (pressed/released)
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS + 1]bool
}

// Input state structure that holds current and previous states for keyboard and mouse
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
	// false until the first cursor sample arrives, so the jump from (0,0)
	// to the real cursor position never reaches the camera.
	mouseSeen bool
	// wheel ticks accumulated during the current frame
	scroll float64
}

var inputState *InputState = nil

func InputInitialize() error {
	inputState = &InputState{}
	LogInfo("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputState = nil
	return nil
}

// InputUpdate rolls the current state into the previous one. Call once at
// the end of every frame, after the camera consumed this frame's input.
func InputUpdate(deltaTime float64) error {
	if inputState == nil {
		return nil
	}

	// Copy current states to previous states.
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	inputState.MousePrevious = inputState.MouseCurrent
	inputState.scroll = 0

	return nil
}

// keyboard input
func InputIsKeyDown(key KeyCode) bool {
	if inputState == nil {
		return false
	}
	return inputState.KeyboardCurrent.Keys[key]
}

func InputIsKeyUp(key KeyCode) bool {
	if inputState == nil {
		return false
	}
	return !inputState.KeyboardCurrent.Keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	if inputState == nil {
		return false
	}
	return inputState.KeyboardPrevious.Keys[key]
}

func InputWasKeyUp(key KeyCode) bool {
	if inputState == nil {
		return false
	}
	return !inputState.KeyboardPrevious.Keys[key]
}

// InputKeyReleased reports a down-to-up transition during this frame.
func InputKeyReleased(key KeyCode) bool {
	return InputIsKeyUp(key) && InputWasKeyDown(key)
}

func InputProcessKey(key KeyCode, pressed bool) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	// Only handle this if the state actually changed.
	if inputState.KeyboardCurrent.Keys[key] != pressed {
		// Update internal state.
		inputState.KeyboardCurrent.Keys[key] = pressed

		code := EVENT_CODE_KEY_RELEASED
		if pressed {
			code = EVENT_CODE_KEY_PRESSED
		}

		// Fire off an event for immediate processing.
		EventFire(EventContext{
			Type: code,
			Data: &KeyEvent{
				KeyCode: key,
			},
		})
	}
	return nil
}

// mouse input
func InputIsButtonDown(button Button) bool {
	if inputState == nil {
		return false
	}
	return inputState.MouseCurrent.Buttons[button]
}

func InputIsButtonUp(button Button) bool {
	if inputState == nil {
		return false
	}
	return !inputState.MouseCurrent.Buttons[button]
}

func InputWasButtonDown(button Button) bool {
	if inputState == nil {
		return false
	}
	return inputState.MousePrevious.Buttons[button]
}

func InputWasButtonUp(button Button) bool {
	if inputState == nil {
		return false
	}
	return !inputState.MousePrevious.Buttons[button]
}

func InputGetMousePosition() (float64, float64) {
	if inputState == nil {
		return 0, 0
	}
	return inputState.MouseCurrent.X, inputState.MouseCurrent.Y
}

func InputGetPreviousMousePosition() (float64, float64) {
	if inputState == nil {
		return 0, 0
	}
	return inputState.MousePrevious.X, inputState.MousePrevious.Y
}

// InputGetMouseDelta returns the cursor movement since the previous frame.
// The y offset is reversed since window coordinates grow downward.
func InputGetMouseDelta() (xoffset, yoffset float64) {
	if inputState == nil {
		return 0, 0
	}
	xoffset = inputState.MouseCurrent.X - inputState.MousePrevious.X
	yoffset = inputState.MousePrevious.Y - inputState.MouseCurrent.Y
	return xoffset, yoffset
}

// InputGetScrollDelta returns the wheel offset accumulated this frame.
func InputGetScrollDelta() float64 {
	if inputState == nil {
		return 0
	}
	return inputState.scroll
}

func InputProcessButton(button Button, pressed bool) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	// If the state changed, fire an event.
	if inputState.MouseCurrent.Buttons[button] != pressed {
		inputState.MouseCurrent.Buttons[button] = pressed

		code := EVENT_CODE_BUTTON_RELEASED
		if pressed {
			code = EVENT_CODE_BUTTON_PRESSED
		}
		EventFire(EventContext{
			Type: code,
			Data: &MouseEvent{
				Button: button,
			},
		})
	}
	return nil
}

func InputProcessMouseMove(x, y float64) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	if !inputState.mouseSeen {
		inputState.mouseSeen = true
		inputState.MousePrevious.X, inputState.MousePrevious.Y = x, y
		inputState.MouseCurrent.X, inputState.MouseCurrent.Y = x, y
		return nil
	}
	// Only process if actually different
	if inputState.MouseCurrent.X != x || inputState.MouseCurrent.Y != y {
		inputState.MouseCurrent.X = x
		inputState.MouseCurrent.Y = y

		EventFire(EventContext{
			Type: EVENT_CODE_MOUSE_MOVED,
			Data: &MouseEvent{
				PosX: x,
				PosY: y,
			},
		})
	}
	return nil
}

func InputProcessMouseWheel(delta float64) error {
	if inputState == nil {
		return ErrNotInitialized
	}
	inputState.scroll += delta
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{
			Scroll: delta,
		},
	})
	return nil
}
