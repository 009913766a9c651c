package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// ServerConfig defines HTTP server configurations
type ServerConfig struct {
	Port  int `koanf:"port"`
	HTTPS struct {
		Cert string `koanf:"cert"`
		Key  string `koanf:"key"`
	} `koanf:"https"`
	Debug        bool          `koanf:"debug"`
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`
}

// LogConfig defines the logging verbosity
type LogConfig struct {
	Level string `koanf:"level"`
}

// DetectionConfig holds the thresholds applied to every detection request.
type DetectionConfig struct {
	MinScore   float64 `koanf:"minscore"`
	MaxBoxes   int     `koanf:"maxboxes"`
	ScratchDir string  `koanf:"scratchdir"`
}

// MinioConfig related to the object store holding the images
type MinioConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	RootUser string `koanf:"rootuser"`
	RootPwd  string `koanf:"rootpwd"`
	Secure   bool   `koanf:"secure"`
	Region   string `koanf:"region"`
}

// TritonConfig related to the inference server serving the detection model
type TritonConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Model             string        `koanf:"model"`
	Version           string        `koanf:"version"`
	InputName         string        `koanf:"inputname"`
	Timeout           time.Duration `koanf:"timeout"`
	ReadinessInterval time.Duration `koanf:"readinessinterval"`
}

// OTELCollectorConfig related to OpenTelemetry collector
type OTELCollectorConfig struct {
	Enable bool   `koanf:"enable"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
}

// AppConfig defines
type AppConfig struct {
	Server        ServerConfig        `koanf:"server"`
	Log           LogConfig           `koanf:"log"`
	Detection     DetectionConfig     `koanf:"detection"`
	Minio         MinioConfig         `koanf:"minio"`
	Triton        TritonConfig        `koanf:"triton"`
	OTELCollector OTELCollectorConfig `koanf:"otelcollector"`
}

// Config - Global variable to export
var Config AppConfig

// Defaults mirror the values the service ran with before it had a config file.
var defaults = map[string]any{
	"server.port":              8080,
	"log.level":                "debug",
	"detection.minscore":       0.1,
	"detection.maxboxes":       15,
	"detection.scratchdir":     os.TempDir(),
	"minio.host":               "localhost",
	"minio.port":               "9000",
	"minio.region":             "us-east-1",
	"triton.host":              "localhost",
	"triton.port":              8000,
	"triton.model":             "faster_rcnn_openimages_v4",
	"triton.inputname":         "images",
	"triton.readinessinterval": "10s",
	"otelcollector.host":       "localhost",
	"otelcollector.port":       4317,
}

// legacyEnv maps the bare environment variables the service has always honoured.
var legacyEnv = map[string]string{
	"MIN_SCORE": "detection.minscore",
	"MAX_BOXES": "detection.maxboxes",
	"LOG_LEVEL": "log.level",
}

// Init - Assign global config to decoded config struct
func Init(filePath string) error {
	k := koanf.New(".")
	parser := yaml.Parser()

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return err
	}

	if filePath != "" {
		if _, err := os.Stat(filePath); err == nil {
			if err := k.Load(file.Provider(filePath), parser); err != nil {
				return err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if err := k.Load(env.ProviderWithValue("CFG_", ".", func(s string, v string) (string, any) {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "CFG_")), "_", ".")
		if strings.Contains(v, ",") {
			return key, strings.Split(strings.TrimSpace(v), ",")
		}
		return key, v
	}), nil); err != nil {
		return err
	}

	if err := k.Load(env.ProviderWithValue("", ".", func(s string, v string) (string, any) {
		key, ok := legacyEnv[s]
		if !ok || strings.TrimSpace(v) == "" {
			return "", nil
		}
		return key, strings.TrimSpace(v)
	}), nil); err != nil {
		return err
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return err
	}

	Config = cfg
	return nil
}

// ValidateConfig is for custom validation rules for the configuration
func ValidateConfig(cfg *AppConfig) error {
	if cfg.Detection.MinScore < 0 || cfg.Detection.MinScore > 1 {
		return fmt.Errorf("detection.minscore must be within [0, 1], got %v", cfg.Detection.MinScore)
	}
	if cfg.Detection.MaxBoxes < 1 {
		return fmt.Errorf("detection.maxboxes must be positive, got %v", cfg.Detection.MaxBoxes)
	}
	if cfg.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %v", cfg.Server.Port)
	}
	if cfg.Triton.Model == "" {
		return fmt.Errorf("triton.model is required")
	}
	return nil
}

var defaultConfigPath = "config/config.yaml"

// ParseConfigFlag allows clients to specify the relative path to the file from
// which the configuration will be loaded.
func ParseConfigFlag() string {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("file", defaultConfigPath, "configuration file")
	_ = fs.Parse(os.Args[1:])

	return *configPath
}
