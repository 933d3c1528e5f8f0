package engine

import (
	"github.com/spaghettifunk/flycam/engine/config"
	"github.com/spaghettifunk/flycam/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// Config file watched for hot reload. Empty disables the watcher.
	ConfigPath string
}

// NewApplicationConfig takes the window settings from a loaded config.
func NewApplicationConfig(cfg *config.Config, configPath string) (*ApplicationConfig, error) {
	level, err := core.ParseLogLevel(cfg.Application.LogLevel)
	if err != nil {
		return nil, err
	}
	return &ApplicationConfig{
		StartPosX:   cfg.Application.PosX,
		StartPosY:   cfg.Application.PosY,
		StartWidth:  cfg.Application.Width,
		StartHeight: cfg.Application.Height,
		Name:        cfg.Application.Name,
		LogLevel:    level,
		ConfigPath:  configPath,
	}, nil
}
