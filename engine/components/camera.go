package components

import (
	"github.com/spaghettifunk/flycam/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

const (
	/** @brief Pitch limit in degrees, strictly inside ±90 so front never aligns with world up. */
	CAMERA_PITCH_LIMIT float32 = 89.9
	/** @brief Smallest zoom (field of view) in degrees. */
	CAMERA_ZOOM_MIN float32 = 1.0
	/** @brief Largest zoom (field of view) in degrees. */
	CAMERA_ZOOM_MAX float32 = 90.0
)

/** @brief Possible camera movements, decoupled from any key binding. */
type CameraMovement uint8

const (
	CameraMovementForward CameraMovement = iota
	CameraMovementBackward
	CameraMovementLeft
	CameraMovementRight
)

func (m CameraMovement) String() string {
	switch m {
	case CameraMovementForward:
		return "forward"
	case CameraMovementBackward:
		return "backward"
	case CameraMovementLeft:
		return "left"
	case CameraMovementRight:
		return "right"
	default:
		return "unknown"
	}
}

/**
 * @brief Tuning values applied at construction. Angles are in degrees.
 */
type CameraConfig struct {
	Yaw              float32
	Pitch            float32
	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
}

/**
 * @brief Returns the default tuning: yaw -90 (looking down -Z), pitch 0,
 * speed 2.5 units/s, sensitivity 0.1 deg/px, zoom 45 deg.
 */
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Yaw:              -90.0,
		Pitch:            0.0,
		MovementSpeed:    2.5,
		MouseSensitivity: 0.1,
		Zoom:             45.0,
	}
}

type CameraOption func(*CameraConfig)

func WithConfig(config CameraConfig) CameraOption {
	return func(c *CameraConfig) {
		*c = config
	}
}

func WithYaw(yaw float32) CameraOption {
	return func(c *CameraConfig) {
		c.Yaw = yaw
	}
}

func WithPitch(pitch float32) CameraOption {
	return func(c *CameraConfig) {
		c.Pitch = pitch
	}
}

func WithMovementSpeed(speed float32) CameraOption {
	return func(c *CameraConfig) {
		c.MovementSpeed = speed
	}
}

func WithMouseSensitivity(sensitivity float32) CameraOption {
	return func(c *CameraConfig) {
		c.MouseSensitivity = sensitivity
	}
}

func WithZoom(zoom float32) CameraOption {
	return func(c *CameraConfig) {
		c.Zoom = zoom
	}
}

/**
 * @brief A free-fly camera driven by yaw/pitch Euler angles.
 * The basis vectors (front, right, up) are derived from yaw, pitch and
 * world up and are never set from outside, so they always stay orthonormal.
 * A Camera is a plain value owned by a single render/input loop.
 */
type Camera struct {
	position math.Vec3
	front    math.Vec3
	up       math.Vec3
	right    math.Vec3
	worldUp  math.Vec3

	yaw   float32
	pitch float32

	movementSpeed    float32
	mouseSensitivity float32
	zoom             float32

	// construction-time values restored by Reset
	initial CameraConfig
}

/**
 * @brief Creates a camera at position using worldUp as the vertical reference.
 *
 * @param position The initial position in world space.
 * @param worldUp The fixed up reference. Must not be parallel to the initial front.
 * @param opts Optional tuning overrides applied on top of DefaultCameraConfig.
 * @return A ready-to-use camera.
 */
func NewCamera(position, worldUp math.Vec3, opts ...CameraOption) Camera {
	config := DefaultCameraConfig()
	for _, opt := range opts {
		opt(&config)
	}

	c := Camera{
		position: position,
		worldUp:  worldUp,
		initial:  config,
	}
	c.applyConfig(config)
	return c
}

// NewCameraFromScalars is NewCamera with the vectors spelled out component-wise.
func NewCameraFromScalars(posX, posY, posZ, upX, upY, upZ, yaw, pitch float32) Camera {
	return NewCamera(
		math.NewVec3(posX, posY, posZ),
		math.NewVec3(upX, upY, upZ),
		WithYaw(yaw),
		WithPitch(pitch),
	)
}

func (c *Camera) applyConfig(config CameraConfig) {
	c.front = math.NewVec3Forward()
	c.yaw = config.Yaw
	c.pitch = config.Pitch
	c.movementSpeed = config.MovementSpeed
	c.mouseSensitivity = config.MouseSensitivity
	c.zoom = config.Zoom
	c.updateCameraVectors()
}

/**
 * @brief Moves the camera back to position and restores the orientation,
 * tuning and zoom it was constructed with. World up is unchanged.
 */
func (c *Camera) Reset(position math.Vec3) {
	c.position = position
	c.applyConfig(c.initial)
}

/**
 * @brief Returns the view matrix looking from the position along front.
 * Pure: calling it twice without a mutation in between yields the same matrix.
 */
func (c *Camera) GetViewMatrix() math.Mat4 {
	return math.NewMat4LookAt(c.position, c.position.Add(c.front), c.up)
}

/**
 * @brief Returns a perspective projection using the current zoom as the
 * vertical field of view.
 */
func (c *Camera) GetProjectionMatrix(aspectRatio, nearClip, farClip float32) math.Mat4 {
	return math.NewMat4Perspective(math.DegToRad(c.zoom), aspectRatio, nearClip, farClip)
}

/**
 * @brief Translates the camera along front or right.
 *
 * @param direction Which way to move.
 * @param deltaTime Seconds elapsed since the previous frame. Zero means no movement.
 */
func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	velocity := c.movementSpeed * deltaTime
	switch direction {
	case CameraMovementForward:
		c.position = c.position.Add(c.front.MulScalar(velocity))
	case CameraMovementBackward:
		c.position = c.position.Sub(c.front.MulScalar(velocity))
	case CameraMovementLeft:
		c.position = c.position.Sub(c.right.MulScalar(velocity))
	case CameraMovementRight:
		c.position = c.position.Add(c.right.MulScalar(velocity))
	}
}

/**
 * @brief Turns the camera by a mouse offset.
 *
 * @param xoffset Horizontal offset, added to yaw after scaling by sensitivity.
 * @param yoffset Vertical offset, added to pitch after scaling by sensitivity.
 * @param constrainPitch Clamp pitch to ±CAMERA_PITCH_LIMIT. Without it the
 * basis degenerates when looking straight up or down.
 */
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.mouseSensitivity
	yoffset *= c.mouseSensitivity

	c.yaw += xoffset
	c.pitch += yoffset

	// keep the camera from flipping over the poles
	if constrainPitch {
		c.pitch = math.Clamp(c.pitch, -CAMERA_PITCH_LIMIT, CAMERA_PITCH_LIMIT)
	}

	c.updateCameraVectors()
}

/**
 * @brief Narrows (positive yoffset) or widens the zoom, clamped to
 * [CAMERA_ZOOM_MIN, CAMERA_ZOOM_MAX].
 */
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.zoom -= yoffset
	c.zoom = math.Clamp(c.zoom, CAMERA_ZOOM_MIN, CAMERA_ZOOM_MAX)
}

// updateCameraVectors derives front from yaw/pitch, then right from front and
// world up, then up from right and front so up stays perpendicular to front.
func (c *Camera) updateCameraVectors() {
	yaw := math.DegToRad(c.yaw)
	pitch := math.DegToRad(c.pitch)

	front := math.Vec3{
		X: math.Cos(yaw) * math.Cos(pitch),
		Y: math.Sin(pitch),
		Z: math.Sin(yaw) * math.Cos(pitch),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

func (c *Camera) Front() math.Vec3 {
	return c.front
}

func (c *Camera) Right() math.Vec3 {
	return c.right
}

func (c *Camera) Up() math.Vec3 {
	return c.up
}

func (c *Camera) WorldUp() math.Vec3 {
	return c.worldUp
}

// Yaw returns the yaw in degrees.
func (c *Camera) Yaw() float32 {
	return c.yaw
}

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float32 {
	return c.pitch
}

// Zoom returns the field of view proxy in degrees.
func (c *Camera) Zoom() float32 {
	return c.zoom
}

func (c *Camera) MovementSpeed() float32 {
	return c.movementSpeed
}

func (c *Camera) MouseSensitivity() float32 {
	return c.mouseSensitivity
}

// SetMovementSpeed retunes the camera at runtime. Negative values become 0.
func (c *Camera) SetMovementSpeed(speed float32) {
	c.movementSpeed = max(speed, 0)
}

// SetMouseSensitivity retunes the camera at runtime. Negative values become 0.
func (c *Camera) SetMouseSensitivity(sensitivity float32) {
	c.mouseSensitivity = max(sensitivity, 0)
}
