package core

import (
	"errors"
)

var (
	ErrInvalidConfig           = errors.New("invalid configuration")
	ErrUnsupportedConfigFormat = errors.New("unsupported configuration format")
	ErrCameraNotFound          = errors.New("camera not found")
	ErrCameraSystemFull        = errors.New("camera system has no free slots")
	ErrNotInitialized          = errors.New("subsystem not initialized")
)
