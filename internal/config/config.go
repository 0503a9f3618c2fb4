package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/catalog"
	"farmadvisor/internal/models"
)

// DefaultPath is used when CONFIG_PATH is not set
const DefaultPath = "./config.yaml"

var (
	instance *Config
	loadErr  error
	once     sync.Once
)

// ThresholdSet holds the banding of every reading shown on the dashboards
type ThresholdSet struct {
	SoilMoisture   models.Thresholds `yaml:"soil_moisture"`
	SoilPH         models.Thresholds `yaml:"soil_ph"`
	Nitrogen       models.Thresholds `yaml:"nitrogen"`
	OrganicMatter  models.Thresholds `yaml:"organic_matter"`
	AirTemperature models.Thresholds `yaml:"air_temperature"`
	Humidity       models.Thresholds `yaml:"humidity"`
	WindSpeed      models.Thresholds `yaml:"wind_speed"`
	ScanConfidence models.Thresholds `yaml:"scan_confidence"`
}

// Config is the application configuration. Values missing from the file keep their defaults.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Market struct {
		StableBandPct float64 `yaml:"stable_band_pct"`
	} `yaml:"market"`
	Thresholds ThresholdSet         `yaml:"thresholds"`
	Crops      []models.CropProfile `yaml:"crops"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Log.Level = "info"
	cfg.Market.StableBandPct = 5.0
	cfg.Thresholds = ThresholdSet{
		SoilMoisture:   models.Thresholds{GoodMin: 50, GoodMax: 75, WarnMin: 30, WarnMax: 90},
		SoilPH:         models.Thresholds{GoodMin: 6.0, GoodMax: 6.5, WarnMin: 5.5, WarnMax: 7.5},
		Nitrogen:       models.Thresholds{GoodMin: 40, GoodMax: 100, WarnMin: 20, WarnMax: 140},
		OrganicMatter:  models.Thresholds{GoodMin: 3, GoodMax: 6, WarnMin: 2, WarnMax: 8},
		AirTemperature: models.Thresholds{GoodMin: 18, GoodMax: 30, WarnMin: 10, WarnMax: 35},
		Humidity:       models.Thresholds{GoodMin: 40, GoodMax: 70, WarnMin: 25, WarnMax: 85},
		WindSpeed:      models.Thresholds{GoodMin: 0, GoodMax: 20, WarnMin: 0, WarnMax: 40},
		ScanConfidence: advisory.DefaultOptions().ScanConfidence,
	}
	return cfg
}

// Load reads the config file once. Later calls return the first result,
// including its error.
func Load(configPath string) (*Config, error) {
	once.Do(func() {
		instance, loadErr = read(configPath)
	})

	return instance, loadErr
}

func read(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Server.Addr = getEnv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Get() *Config {
	if instance == nil {
		panic("config not loaded - call config.Load() first")
	}
	return instance
}

// Path returns the config file location from CONFIG_PATH, or DefaultPath
func Path() string {
	return getEnv("CONFIG_PATH", DefaultPath)
}

// AdvisorOptions derives the advisor settings from the config
func (c *Config) AdvisorOptions() advisory.Options {
	return advisory.Options{
		StableBand:     c.Market.StableBandPct,
		ScanConfidence: c.Thresholds.ScanConfidence,
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if math.IsNaN(c.Market.StableBandPct) || math.IsInf(c.Market.StableBandPct, 0) {
		return fmt.Errorf("market.stable_band_pct must be finite")
	}
	if c.Market.StableBandPct < 0 {
		return fmt.Errorf("market.stable_band_pct cannot be negative")
	}

	named := map[string]models.Thresholds{
		"soil_moisture":   c.Thresholds.SoilMoisture,
		"soil_ph":         c.Thresholds.SoilPH,
		"nitrogen":        c.Thresholds.Nitrogen,
		"organic_matter":  c.Thresholds.OrganicMatter,
		"air_temperature": c.Thresholds.AirTemperature,
		"humidity":        c.Thresholds.Humidity,
		"wind_speed":      c.Thresholds.WindSpeed,
		"scan_confidence": c.Thresholds.ScanConfidence,
	}
	for name, t := range named {
		if err := advisory.ValidateThresholds(t); err != nil {
			return fmt.Errorf("thresholds.%s: %w", name, err)
		}
	}

	if len(c.Crops) > 0 {
		if err := catalog.Validate(c.Crops); err != nil {
			return fmt.Errorf("crops: %w", err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
