package conf

import (
	"dragchess/src/logic/anim"
	"dragchess/src/logic/board"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	cfgName   = "dragchess.json"
	cfgFile   = "dragchess/" + cfgName // relative to the XDG config dirs
	envPrefix = "DRAGCHESS"
)

// ConsoleAnimTicks is the console budget: it has no frame clock and
// prints the engine move once the animation is done
const ConsoleAnimTicks = 8

type Config struct {
	EnginePath    string        `mapstructure:"engine_path"`    // external UCI engine
	EngineArgs    []string      `mapstructure:"engine_args"`    //
	EngineLevel   int           `mapstructure:"engine_level"`   // 1..10
	EngineTimeout time.Duration `mapstructure:"engine_timeout"` // per query
	RetryDelay    time.Duration `mapstructure:"retry_delay"`    // after a failed query
	AnimMode      string        `mapstructure:"anim_mode"`      // ticks/duration
	AnimTicks     int           `mapstructure:"anim_ticks"`     // tick mode budget
	AnimDuration  time.Duration `mapstructure:"anim_duration"`  // duration mode length
	AsyncEngine   bool          `mapstructure:"async_engine"`   // query off the game loop
	AssetsDir     string        `mapstructure:"assets_dir"`     // board.png, figures.png
	Debug         bool          `mapstructure:"debug"`          // true/false

	path string
}

func defaultConfig() Config {
	return Config{
		EnginePath:    "stockfish",
		EngineLevel:   5,
		EngineTimeout: 30 * time.Second,
		RetryDelay:    0,
		AnimMode:      "duration",
		AnimTicks:     10000,
		AnimDuration:  400 * time.Millisecond,
		AsyncEngine:   true,
		AssetsDir:     "assets",
		Debug:         false,
	}
}

func setDefaults(v *viper.Viper) {
	def := defaultConfig()
	v.SetDefault("engine_path", def.EnginePath)
	v.SetDefault("engine_args", def.EngineArgs)
	v.SetDefault("engine_level", def.EngineLevel)
	v.SetDefault("engine_timeout", def.EngineTimeout)
	v.SetDefault("retry_delay", def.RetryDelay)
	v.SetDefault("anim_mode", def.AnimMode)
	v.SetDefault("anim_ticks", def.AnimTicks)
	v.SetDefault("anim_duration", def.AnimDuration)
	v.SetDefault("async_engine", def.AsyncEngine)
	v.SetDefault("assets_dir", def.AssetsDir)
	v.SetDefault("debug", def.Debug)
}

// Load reads defaults, then the config file, then DRAGCHESS_* variables.
// With an empty path the file is searched in the XDG config dirs and then
// in the working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetConfigType("json")

	if path == "" {
		path = searchConfig()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %w", err)
	}
	correctableConfig(&c)
	c.path = path
	return &c, nil
}

func searchConfig() string {
	if p, err := xdg.SearchConfigFile(cfgFile); err == nil {
		return p
	}
	if _, err := os.Stat(cfgName); err == nil {
		return cfgName
	}
	return ""
}

// Path is the file the config was read from, empty for defaults
func (c *Config) Path() string { return c.path }

// Save writes the effective config back to where it came from or to the
// XDG config home
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := xdg.ConfigFile(cfgFile)
		if err != nil {
			return err
		}
		path = p
	}
	return c.SaveAs(path)
}

func (c *Config) SaveAs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.Set("engine_path", c.EnginePath)
	v.Set("engine_args", c.EngineArgs)
	v.Set("engine_level", c.EngineLevel)
	v.Set("engine_timeout", c.EngineTimeout.String())
	v.Set("retry_delay", c.RetryDelay.String())
	v.Set("anim_mode", c.AnimMode)
	v.Set("anim_ticks", c.AnimTicks)
	v.Set("anim_duration", c.AnimDuration.String())
	v.Set("async_engine", c.AsyncEngine)
	v.Set("assets_dir", c.AssetsDir)
	v.Set("debug", c.Debug)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error write config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Validate reports settings that cannot be corrected silently
// Animator builds the move animator: the console always counts a few
// ticks, the window follows anim_mode
func (c *Config) Animator(reg *board.Registry, console bool) *anim.Animator {
	if console {
		return anim.NewTicks(reg, ConsoleAnimTicks)
	}
	if mode, ok := anim.ModeFromString(c.AnimMode); ok && mode == anim.ModeTicks {
		return anim.NewTicks(reg, c.AnimTicks)
	}
	return anim.NewDuration(reg, c.AnimDuration)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.EnginePath) == "" {
		return errors.New("engine path is empty")
	}
	return nil
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	c.EnginePath = strings.TrimSpace(c.EnginePath)
	if c.EngineLevel < 1 || c.EngineLevel > 10 {
		c.EngineLevel = def.EngineLevel
	}
	if c.EngineTimeout <= 0 {
		c.EngineTimeout = def.EngineTimeout
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = def.RetryDelay
	}
	c.AnimMode = strings.ToLower(strings.TrimSpace(c.AnimMode))
	if c.AnimMode != "ticks" && c.AnimMode != "duration" {
		c.AnimMode = def.AnimMode
	}
	if c.AnimTicks <= 0 {
		c.AnimTicks = def.AnimTicks
	}
	if c.AnimDuration <= 0 {
		c.AnimDuration = def.AnimDuration
	}
}
