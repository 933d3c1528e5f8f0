package systems

type SystemManager struct {
	CameraSystem     *CameraSystem
	CameraController *CameraController
}

func NewSystemManager(cameraConfig *CameraSystemConfig, controllerConfig *CameraControllerConfig) (*SystemManager, error) {
	cs, err := NewCameraSystem(cameraConfig)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:     cs,
		CameraController: NewCameraController(controllerConfig),
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
