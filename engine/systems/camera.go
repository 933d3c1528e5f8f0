package systems

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/flycam/engine/components"
	"github.com/spaghettifunk/flycam/engine/core"
	"github.com/spaghettifunk/flycam/engine/math"
)

/** @brief Marks an unused camera slot. */
const InvalidIDUint16 uint16 = 0xFFFF

type CameraLookup struct {
	ID             uint16
	Handle         uuid.UUID
	ReferenceCount uint16
	Camera         *components.Camera
}

type CameraSystem struct {
	Config  *CameraSystemConfig
	Lookup  map[string]uint16
	Cameras []*CameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system.
	 */
	MaxCameraCount uint16
	/** @brief Where newly acquired cameras start. */
	StartPosition math.Vec3
	/** @brief World up shared by every camera in the system. */
	WorldUp math.Vec3
	/** @brief Tuning applied to every newly created camera. */
	Camera components.CameraConfig
}

/**
 * @brief Initializes the camera system and its default camera.
 *
 * @param config The configuration for this system.
 * @return The camera system, or ErrInvalidConfig.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 || config.MaxCameraCount == InvalidIDUint16 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be in (0, %d): %w", InvalidIDUint16, core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	if config.WorldUp.LengthSquared() == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.WorldUp must not be zero: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	cs := &CameraSystem{
		Config:  config,
		Cameras: make([]*CameraLookup, config.MaxCameraCount),
		Lookup:  make(map[string]uint16, config.MaxCameraCount),
	}
	// Invalidate all cameras in the array.
	for i := uint16(0); i < cs.Config.MaxCameraCount; i++ {
		cs.Cameras[i] = &CameraLookup{
			ID:             InvalidIDUint16,
			ReferenceCount: 0,
		}
	}
	// Setup default camera.
	cs.DefaultCamera = cs.newCamera()
	return cs, nil
}

func (cs *CameraSystem) newCamera() *components.Camera {
	camera := components.NewCamera(cs.Config.StartPosition, cs.Config.WorldUp, components.WithConfig(cs.Config.Camera))
	return &camera
}

/**
 * @brief Shuts down the camera system.
 */
func (cs *CameraSystem) Shutdown() error {
	for _, slot := range cs.Cameras {
		slot.ID = InvalidIDUint16
		slot.ReferenceCount = 0
		slot.Camera = nil
	}
	clear(cs.Lookup)
	return nil
}

/**
 * @brief Acquires a pointer to a camera by name.
 * If one is not found, a new one is created and retuned.
 * Internal reference counter is incremented.
 *
 * @param name The name of the camera to acquire.
 * @return A pointer to a camera, or ErrCameraSystemFull if no slot is free.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}

	id, ok := cs.Lookup[name]
	if !ok {
		// Find free slot
		id = InvalidIDUint16
		for i := uint16(0); i < cs.Config.MaxCameraCount; i++ {
			if cs.Cameras[i].ID == InvalidIDUint16 {
				id = i
				break
			}
		}
		if id == InvalidIDUint16 {
			err := fmt.Errorf("func CameraSystemAcquire failed to acquire new slot for '%s', adjust camera system config to allow more: %w", name, core.ErrCameraSystemFull)
			core.LogError(err.Error())
			return nil, err
		}

		// Create/register the new camera.
		slot := cs.Cameras[id]
		slot.Camera = cs.newCamera()
		slot.ID = id
		slot.Handle = uuid.New()
		core.LogDebug("Creating new camera named '%s' (%s)...", name, slot.Handle)

		// Update the hashtable.
		cs.Lookup[name] = id
	}
	cs.Cameras[id].ReferenceCount++
	return cs.Cameras[id].Camera, nil
}

/**
 * @brief Returns a registered camera without touching its reference count.
 */
func (cs *CameraSystem) Get(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	id, ok := cs.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("camera '%s': %w", name, core.ErrCameraNotFound)
	}
	return cs.Cameras[id].Camera, nil
}

/**
 * @brief Releases a camera with the given name. Intenral reference
 * counter is decremented. If this reaches 0, the slot is freed
 * and is usable by a new camera.
 *
 * @param name The name of the camera to release.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	id, ok := cs.Lookup[name]
	if !ok {
		core.LogWarn("CameraSystemRelease failed lookup for '%s'. Nothing was done.", name)
		return
	}

	slot := cs.Cameras[id]
	slot.ReferenceCount--
	if slot.ReferenceCount < 1 {
		core.LogDebug("Releasing camera named '%s' (%s)", name, slot.Handle)
		slot.Camera = nil
		slot.ID = InvalidIDUint16
		slot.Handle = uuid.Nil
		delete(cs.Lookup, name)
	}
}

/**
 * @brief Gets a pointer to the default camera.
 */
func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}
