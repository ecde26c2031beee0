package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	yaml "github.com/goccy/go-yaml"
)

// Config holds every tunable of the demos. Zero-value fields in a YAML file keep
// the defaults from Default.
type Config struct {
	Window   WindowCfg  `yaml:"window"`
	Assets   string     `yaml:"assets"`
	FPSLimit int        `yaml:"fps_limit"`
	LogLevel string     `yaml:"log_level"`
	Game     GameCfg    `yaml:"game"`
	Image    ImageCfg   `yaml:"image"`
	Ripple   RippleCfg  `yaml:"ripple"`
	Skybox   SkyboxCfg  `yaml:"skybox"`
	FreeCam  FreeCamCfg `yaml:"freecam"`
}

// WindowCfg describes the OS window and its GL context.
type WindowCfg struct {
	Title string `yaml:"title"`
	// Negative X or Y centres the window on the primary monitor.
	X         int  `yaml:"x"`
	Y         int  `yaml:"y"`
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	VSync     bool `yaml:"vsync"`
	Wireframe bool `yaml:"wireframe"`
}

// GameCfg seeds the session bookkeeping carried by every demo.
type GameCfg struct {
	Lives       int     `yaml:"lives"`
	Level       int     `yaml:"level"`
	ScrollSpeed float32 `yaml:"scroll_speed"`
}

// ImageCfg configures the textured quad demo.
type ImageCfg struct {
	Path string `yaml:"path"`
}

// OrbitCfg is a starting pose for an orbit camera.
type OrbitCfg struct {
	RX   float32 `yaml:"rx"`
	RY   float32 `yaml:"ry"`
	Dist float32 `yaml:"dist"`
}

// RippleCfg configures the ripple mesh demo.
type RippleCfg struct {
	NumX  int      `yaml:"nx"`
	NumZ  int      `yaml:"nz"`
	SizeX float32  `yaml:"size_x"`
	SizeZ float32  `yaml:"size_z"`
	Speed float32  `yaml:"speed"`
	FOV   float32  `yaml:"fov"`
	Orbit OrbitCfg `yaml:"orbit"`
}

// SkyboxCfg configures the skybox and water demo.
type SkyboxCfg struct {
	// Faces in +X, -X, +Y, -Y, +Z, -Z order.
	Faces      [6]string `yaml:"faces"`
	Scale      float32   `yaml:"scale"`
	WaterNumX  int       `yaml:"water_nx"`
	WaterNumZ  int       `yaml:"water_nz"`
	WaterSizeX float32   `yaml:"water_size_x"`
	WaterSizeZ float32   `yaml:"water_size_z"`
	TimeScale  float32   `yaml:"time_scale"`
	FOV        float32   `yaml:"fov"`
	Orbit      OrbitCfg  `yaml:"orbit"`
}

// FreeCamCfg configures the free camera demo.
type FreeCamCfg struct {
	Speed        float32    `yaml:"speed"`
	FastFactor   float32    `yaml:"fast_factor"`
	FilterWeight float32    `yaml:"filter_weight"`
	Sensitivity  float32    `yaml:"sensitivity"`
	Damping      float32    `yaml:"damping"`
	Epsilon      float32    `yaml:"epsilon"`
	FOV          float32    `yaml:"fov"`
	Start        [3]float32 `yaml:"start"`
}

// Default returns the configuration the demos ship with.
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Title:  "gldemos",
			X:      -1,
			Y:      -1,
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Assets:   "assets",
		LogLevel: "info",
		Game: GameCfg{
			Lives:       3,
			Level:       1,
			ScrollSpeed: 0.8,
		},
		Image: ImageCfg{
			Path: "media/Lenna.png",
		},
		Ripple: RippleCfg{
			NumX:  40,
			NumZ:  40,
			SizeX: 4,
			SizeZ: 4,
			Speed: 2,
			FOV:   45,
			Orbit: OrbitCfg{RX: 25, RY: -40, Dist: -7},
		},
		Skybox: SkyboxCfg{
			Faces: [6]string{
				"media/skybox/ocean/posx.png",
				"media/skybox/ocean/negx.png",
				"media/skybox/ocean/posy.png",
				"media/skybox/ocean/negy.png",
				"media/skybox/ocean/posz.png",
				"media/skybox/ocean/negz.png",
			},
			Scale:      1000,
			WaterNumX:  1000,
			WaterNumZ:  1000,
			WaterSizeX: 1000,
			WaterSizeZ: 1000,
			TimeScale:  0.1,
			FOV:        60,
			Orbit:      OrbitCfg{RX: 20, RY: 64, Dist: -7},
		},
		FreeCam: FreeCamCfg{
			Speed:        5,
			FastFactor:   4,
			FilterWeight: 0.75,
			Sensitivity:  0.2,
			Damping:      0.95,
			Epsilon:      0.001,
			FOV:          45,
			Start:        [3]float32{5, 5, 5},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
// Relative asset directories are resolved against the file's own directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", path, err)
	}
	if !filepath.IsAbs(cfg.Assets) {
		cfg.Assets = filepath.Join(filepath.Dir(absPath), cfg.Assets)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the demos cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.FPSLimit < 0 {
		return fmt.Errorf("fps_limit cannot be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Ripple.NumX < 1 || c.Ripple.NumZ < 1 {
		return fmt.Errorf("ripple grid needs at least one cell per axis")
	}
	if c.Skybox.WaterNumX < 1 || c.Skybox.WaterNumZ < 1 {
		return fmt.Errorf("water grid needs at least one cell per axis")
	}
	for i, face := range c.Skybox.Faces {
		if face == "" {
			return fmt.Errorf("skybox face %d is not set", i)
		}
	}
	// Written as negated ranges so NaN is rejected too.
	fc := c.FreeCam
	if !(fc.Damping >= 0 && fc.Damping <= 1) {
		return fmt.Errorf("freecam damping must be within [0,1], got %g", fc.Damping)
	}
	if !(fc.FilterWeight > 0 && fc.FilterWeight <= 1) {
		return fmt.Errorf("freecam filter_weight must be within (0,1], got %g", fc.FilterWeight)
	}
	if !(fc.Epsilon >= 0) || math.IsInf(float64(fc.Epsilon), 1) {
		return fmt.Errorf("freecam epsilon must be a finite non-negative number, got %g", fc.Epsilon)
	}
	return nil
}

// AssetPath resolves a path relative to the asset directory. Absolute paths are
// returned untouched.
func (c *Config) AssetPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Assets, p)
}

// ShaderPaths returns the vertex and fragment shader paths of a named program.
func (c *Config) ShaderPaths(name string) (string, string) {
	dir := c.AssetPath(filepath.Join("shaders", name))
	return filepath.Join(dir, name+".vert"), filepath.Join(dir, name+".frag")
}
