package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/flycam/engine/components"
	"github.com/spaghettifunk/flycam/engine/core"
	"github.com/spaghettifunk/flycam/engine/math"
	"github.com/spaghettifunk/flycam/engine/systems"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Application ApplicationConfig `toml:"application" yaml:"application"`
	Camera      CameraConfig      `toml:"camera" yaml:"camera"`
	Projection  ProjectionConfig  `toml:"projection" yaml:"projection"`
	Controls    ControlsConfig    `toml:"controls" yaml:"controls"`
}

type ApplicationConfig struct {
	Name     string `toml:"name" yaml:"name"`
	PosX     uint32 `toml:"pos_x" yaml:"pos_x"`
	PosY     uint32 `toml:"pos_y" yaml:"pos_y"`
	Width    uint32 `toml:"width" yaml:"width"`
	Height   uint32 `toml:"height" yaml:"height"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

type CameraConfig struct {
	Position         [3]float32 `toml:"position" yaml:"position"`
	WorldUp          [3]float32 `toml:"world_up" yaml:"world_up"`
	Yaw              float32    `toml:"yaw" yaml:"yaw"`
	Pitch            float32    `toml:"pitch" yaml:"pitch"`
	MovementSpeed    float32    `toml:"movement_speed" yaml:"movement_speed"`
	MouseSensitivity float32    `toml:"mouse_sensitivity" yaml:"mouse_sensitivity"`
	Zoom             float32    `toml:"zoom" yaml:"zoom"`
	MaxCameras       uint16     `toml:"max_cameras" yaml:"max_cameras"`
}

type ProjectionConfig struct {
	Near float32 `toml:"near" yaml:"near"`
	Far  float32 `toml:"far" yaml:"far"`
}

// ControlsConfig holds key names as accepted by core.KeyCodeFromName.
type ControlsConfig struct {
	ConstrainPitch bool     `toml:"constrain_pitch" yaml:"constrain_pitch"`
	Forward        []string `toml:"forward" yaml:"forward"`
	Backward       []string `toml:"backward" yaml:"backward"`
	Left           []string `toml:"left" yaml:"left"`
	Right          []string `toml:"right" yaml:"right"`
}

// Default returns the configuration used when no file is given. Loaded
// files are decoded on top of it, so missing keys keep these values.
func Default() *Config {
	camera := components.DefaultCameraConfig()
	return &Config{
		Application: ApplicationConfig{
			Name:     "Flycam",
			PosX:     100,
			PosY:     100,
			Width:    1280,
			Height:   720,
			LogLevel: string(core.LogLevelInfo),
		},
		Camera: CameraConfig{
			Position:         [3]float32{0, 0, 3},
			WorldUp:          [3]float32{0, 1, 0},
			Yaw:              camera.Yaw,
			Pitch:            camera.Pitch,
			MovementSpeed:    camera.MovementSpeed,
			MouseSensitivity: camera.MouseSensitivity,
			Zoom:             camera.Zoom,
			MaxCameras:       16,
		},
		Projection: ProjectionConfig{
			Near: 0.1,
			Far:  100.0,
		},
		Controls: ControlsConfig{
			ConstrainPitch: true,
			Forward:        []string{"w", "up"},
			Backward:       []string{"s", "down"},
			Left:           []string{"a", "left"},
			Right:          []string{"d", "right"},
		},
	}
}

// Load reads path, choosing the decoder from the extension (.toml, .yaml, .yml),
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (with or without the dot).
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document decodes to io.EOF and keeps the defaults
		if err := dec.Decode(cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("extension %q: %w", ext, core.ErrUnsupportedConfigFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func invalid(field string, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", field, fmt.Sprintf(format, args...), core.ErrInvalidConfig)
}

// Validate reports the first out-of-range field, wrapped in core.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Application.Width == 0 || c.Application.Height == 0 {
		return invalid("application.width/height", "must be positive, got %dx%d", c.Application.Width, c.Application.Height)
	}
	if _, err := core.ParseLogLevel(c.Application.LogLevel); err != nil {
		return fmt.Errorf("application.log_level: %w", err)
	}
	if c.Camera.WorldUpVec().LengthSquared() == 0 {
		return invalid("camera.world_up", "must not be zero")
	}
	if c.Camera.MovementSpeed < 0 {
		return invalid("camera.movement_speed", "must not be negative, got %v", c.Camera.MovementSpeed)
	}
	if c.Camera.MouseSensitivity < 0 {
		return invalid("camera.mouse_sensitivity", "must not be negative, got %v", c.Camera.MouseSensitivity)
	}
	if c.Camera.Zoom < components.CAMERA_ZOOM_MIN || c.Camera.Zoom > components.CAMERA_ZOOM_MAX {
		return invalid("camera.zoom", "must be in [%v, %v], got %v", components.CAMERA_ZOOM_MIN, components.CAMERA_ZOOM_MAX, c.Camera.Zoom)
	}
	if c.Camera.MaxCameras == 0 {
		return invalid("camera.max_cameras", "must be positive")
	}
	if c.Projection.Near <= 0 {
		return invalid("projection.near", "must be positive, got %v", c.Projection.Near)
	}
	if c.Projection.Far <= c.Projection.Near {
		return invalid("projection.far", "must be greater than near (%v), got %v", c.Projection.Near, c.Projection.Far)
	}
	if _, err := c.Controls.Bindings(); err != nil {
		return err
	}
	return nil
}

func (c CameraConfig) PositionVec() math.Vec3 {
	return math.NewVec3(c.Position[0], c.Position[1], c.Position[2])
}

func (c CameraConfig) WorldUpVec() math.Vec3 {
	return math.NewVec3(c.WorldUp[0], c.WorldUp[1], c.WorldUp[2])
}

// Tuning converts to the camera's construction-time tuning.
func (c CameraConfig) Tuning() components.CameraConfig {
	return components.CameraConfig{
		Yaw:              c.Yaw,
		Pitch:            c.Pitch,
		MovementSpeed:    c.MovementSpeed,
		MouseSensitivity: c.MouseSensitivity,
		Zoom:             c.Zoom,
	}
}

// CameraSystemConfig builds the camera registry configuration.
func (c *Config) CameraSystemConfig() *systems.CameraSystemConfig {
	return &systems.CameraSystemConfig{
		MaxCameraCount: c.Camera.MaxCameras,
		StartPosition:  c.Camera.PositionVec(),
		WorldUp:        c.Camera.WorldUpVec(),
		Camera:         c.Camera.Tuning(),
	}
}

// Bindings resolves key names into key codes.
func (c ControlsConfig) Bindings() (systems.CameraBindings, error) {
	resolve := func(field string, names []string) ([]core.KeyCode, error) {
		codes := make([]core.KeyCode, 0, len(names))
		for _, n := range names {
			code, ok := core.KeyCodeFromName(strings.ToLower(n))
			if !ok {
				return nil, invalid("controls."+field, "unknown key %q", n)
			}
			codes = append(codes, code)
		}
		return codes, nil
	}

	var b systems.CameraBindings
	var err error
	if b.Forward, err = resolve("forward", c.Forward); err != nil {
		return b, err
	}
	if b.Backward, err = resolve("backward", c.Backward); err != nil {
		return b, err
	}
	if b.Left, err = resolve("left", c.Left); err != nil {
		return b, err
	}
	if b.Right, err = resolve("right", c.Right); err != nil {
		return b, err
	}
	return b, nil
}

// CameraControllerConfig builds the input controller configuration. The
// bindings were checked by Validate.
func (c *Config) CameraControllerConfig() *systems.CameraControllerConfig {
	bindings, err := c.Controls.Bindings()
	if err != nil {
		core.LogWarn("invalid key bindings, falling back to defaults: %s", err)
		bindings = systems.DefaultCameraBindings()
	}
	return &systems.CameraControllerConfig{
		Bindings:       bindings,
		ConstrainPitch: c.Controls.ConstrainPitch,
	}
}
