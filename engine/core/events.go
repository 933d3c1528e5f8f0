package core

// EventContext carries the event code and an optional payload. Payload types
// per code are listed next to the code constants.
type EventContext struct {
	Type EventCode
	Data interface{}
}

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame. Data: nil.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data: *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data: *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data: *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data: *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data: *MouseEvent with PosX/PosY.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel scrolled. Data: *MouseEvent with Scroll.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data: *ResizeEvent.
	EVENT_CODE_RESIZED EventCode = 0x08
	// Configuration file reloaded from disk. Data: the new config value.
	EVENT_CODE_CONFIG_RELOADED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	Scroll float64
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES][]*registeredEvent
}

var eventState *eventSystemState = nil

// EventSystemInitialize returns false if the system is already running.
func EventSystemInitialize() bool {
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{}
	return true
}

// EventSystemShutdown drops every registration.
func EventSystemShutdown() {
	eventState = nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener/callback combos will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback function to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if eventState == nil || onEvent == nil {
		return false
	}
	for _, e := range eventState.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 * @param code The event code to stop listening for.
 * @param listener The listener instance passed to EventRegister.
 * @returns TRUE if the event is successfully unregistered; otherwise false.
 */
func EventUnregister(code EventCode, listener interface{}) bool {
	if eventState == nil {
		return false
	}
	events := eventState.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @param context The event code and payload.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	for _, e := range eventState.registered[context.Type] {
		if e.callback(context) {
			return true
		}
	}
	return false
}
