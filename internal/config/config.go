// Package config loads the Configuration JSON of spec.md §6 (A* placer
// search-shaping keys plus code-generator keys) via viper, the way
// perplext/LLMrecon's src/config/config.go loads its own YAML
// configuration: defaults first, then an optional file, then environment
// overrides, with unknown keys warned about and missing keys silently
// defaulted.
package config

import (
	"fmt"
	"strings"

	"github.com/kegliz/naqc/na/astar"
	"github.com/kegliz/naqc/na/codegen"
	"github.com/spf13/viper"
)

// Config is the decoded Configuration JSON of spec.md §6.
type Config struct {
	Placer  PlacerConfig  `mapstructure:"placer"`
	Codegen CodegenConfig `mapstructure:"codegen"`
}

// PlacerConfig mirrors astar.Params field for field and carries the
// mapstructure tags (astar.Params has none) so viper can decode straight
// into it.
type PlacerConfig struct {
	UseWindow      bool    `mapstructure:"use_window"`
	WindowMinWidth uint    `mapstructure:"window_min_width"`
	WindowRatio    float64 `mapstructure:"window_ratio"`
	WindowShare    float64 `mapstructure:"window_share"`

	DeepeningFactor float64 `mapstructure:"deepening_factor"`
	DeepeningValue  float64 `mapstructure:"deepening_value"`
	LookaheadFactor float64 `mapstructure:"lookahead_factor"`
	ReuseLevel      float64 `mapstructure:"reuse_level"`
}

// CodegenConfig mirrors codegen.Config's keys.
type CodegenConfig struct {
	ParkingOffset        uint `mapstructure:"parking_offset"`
	WarnUnsupportedGates bool `mapstructure:"warn_unsupported_gates"`
}

// ToAstarParams converts the decoded placer keys into na/astar's Params.
func (c PlacerConfig) ToAstarParams() astar.Params {
	return astar.Params{
		UseWindow:       c.UseWindow,
		WindowMinWidth:  c.WindowMinWidth,
		WindowRatio:     c.WindowRatio,
		WindowShare:     c.WindowShare,
		DeepeningFactor: c.DeepeningFactor,
		DeepeningValue:  c.DeepeningValue,
		LookaheadFactor: c.LookaheadFactor,
		ReuseLevel:      c.ReuseLevel,
	}
}

// ToCodegenConfig converts the decoded codegen keys into na/codegen's Config.
func (c CodegenConfig) ToCodegenConfig() codegen.Config {
	return codegen.Config{
		ParkingOffset:        int(c.ParkingOffset),
		WarnUnsupportedGates: c.WarnUnsupportedGates,
	}
}

// Default returns the configuration used when no file is given: the A*
// placer's fixed-weight defaults (na/astar.DefaultParams) and a code
// assembler that warns rather than aborts on unsupported gates.
func Default() Config {
	d := astar.DefaultParams()
	return Config{
		Placer: PlacerConfig{
			DeepeningFactor: d.DeepeningFactor,
			DeepeningValue:  d.DeepeningValue,
			LookaheadFactor: d.LookaheadFactor,
		},
		Codegen: CodegenConfig{
			WarnUnsupportedGates: true,
		},
	}
}

// Load reads the Configuration JSON from path (if non-empty) over top of
// Default, then applies NAQC_-prefixed environment variable overrides.
// Missing keys default silently, per spec.md §6; unknown keys are
// reported through warnUnknown (may be nil to discard them).
func Load(path string, warnUnknown func(key string)) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v, cfg)

	v.SetEnvPrefix("NAQC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if warnUnknown != nil {
		reportUnknownKeys(v, warnUnknown)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("placer.use_window", cfg.Placer.UseWindow)
	v.SetDefault("placer.window_min_width", cfg.Placer.WindowMinWidth)
	v.SetDefault("placer.window_ratio", cfg.Placer.WindowRatio)
	v.SetDefault("placer.window_share", cfg.Placer.WindowShare)
	v.SetDefault("placer.deepening_factor", cfg.Placer.DeepeningFactor)
	v.SetDefault("placer.deepening_value", cfg.Placer.DeepeningValue)
	v.SetDefault("placer.lookahead_factor", cfg.Placer.LookaheadFactor)
	v.SetDefault("placer.reuse_level", cfg.Placer.ReuseLevel)
	v.SetDefault("codegen.parking_offset", cfg.Codegen.ParkingOffset)
	v.SetDefault("codegen.warn_unsupported_gates", cfg.Codegen.WarnUnsupportedGates)
}

// knownKeys is the closed set of spec.md §6 configuration keys, namespaced
// the way setDefaults registers them.
var knownKeys = map[string]bool{
	"placer.use_window":              true,
	"placer.window_min_width":        true,
	"placer.window_ratio":            true,
	"placer.window_share":            true,
	"placer.deepening_factor":        true,
	"placer.deepening_value":         true,
	"placer.lookahead_factor":        true,
	"placer.reuse_level":             true,
	"codegen.parking_offset":         true,
	"codegen.warn_unsupported_gates": true,
}

func reportUnknownKeys(v *viper.Viper, warnUnknown func(key string)) {
	for _, key := range v.AllKeys() {
		if !knownKeys[key] {
			warnUnknown(key)
		}
	}
}
