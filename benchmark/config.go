package benchmark

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/YuminosukeSato/gdlearn/dataset"
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

const (
	// EnvPrefix prefixes every environment override.
	// Nested keys use a double underscore: GDLEARN_LINEAR__N_ITERS -> linear.n_iters.
	EnvPrefix = "GDLEARN_"

	// ConfigPathEnvVar names the YAML file when no path is passed to LoadConfig.
	ConfigPathEnvVar = "GDLEARN_CONFIG"
)

// Config drives the benchmark command.
type Config struct {
	LogLevel         string  `koanf:"log_level" validate:"oneof=debug info warn error"`
	PrintPredictions bool    `koanf:"print_predictions"`
	MaxPredictions   int     `koanf:"max_predictions" validate:"gte=0"`
	TestSize         float64 `koanf:"test_size" validate:"gt=0,lt=1"`

	// Output paths; empty disables the output.
	ResultsPath string `koanf:"results_path"`
	MetricsPath string `koanf:"metrics_path"`
	PlotPath    string `koanf:"plot_path"`

	KNN      KNNConfig      `koanf:"knn"`
	Linear   LinearConfig   `koanf:"linear"`
	Logistic LogisticConfig `koanf:"logistic"`
}

// KNNConfig configures the nearest-neighbour runs.
type KNNConfig struct {
	ToyK      int     `koanf:"toy_k" validate:"gte=1"`
	IrisK     int     `koanf:"iris_k" validate:"gte=1"`
	IrisPath  string  `koanf:"iris_path"`
	IrisSeed  uint32  `koanf:"iris_seed"`
	IrisSplit float64 `koanf:"iris_split" validate:"gt=0,lt=1"`
}

// LinearConfig configures the synthetic regression run.
type LinearConfig struct {
	Samples      int     `koanf:"samples" validate:"gte=2"`
	Features     int     `koanf:"features" validate:"gte=1"`
	Noise        float64 `koanf:"noise" validate:"gte=0"`
	DataSeed     uint64  `koanf:"data_seed"`
	SplitSeed    uint32  `koanf:"split_seed"`
	LearningRate float64 `koanf:"learning_rate" validate:"gt=0"`
	NIters       int     `koanf:"n_iters" validate:"gte=1"`
}

// LogisticConfig configures the synthetic classification run.
type LogisticConfig struct {
	Samples      int     `koanf:"samples" validate:"gte=2"`
	DataSeed     uint32  `koanf:"data_seed"`
	SplitSeed    uint32  `koanf:"split_seed"`
	LearningRate float64 `koanf:"learning_rate" validate:"gt=0"`
	NIters       int     `koanf:"n_iters" validate:"gte=1"`
	// NJobs is the number of gradient workers; 0 means runtime.NumCPU().
	NJobs int `koanf:"n_jobs" validate:"gte=0"`
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		PrintPredictions: true,
		MaxPredictions:   30,
		TestSize:         0.25,
		ResultsPath:      "results.jsonl",
		KNN: KNNConfig{
			ToyK:      3,
			IrisK:     5,
			IrisPath:  dataset.DefaultIrisPath,
			IrisSeed:  42,
			IrisSplit: 0.2,
		},
		Linear: LinearConfig{
			Samples:      2000,
			Features:     5,
			Noise:        1.0,
			DataSeed:     1234,
			SplitSeed:    99,
			LearningRate: 0.05,
			NIters:       1500,
		},
		Logistic: LogisticConfig{
			Samples:      4000,
			DataSeed:     123,
			SplitSeed:    123,
			LearningRate: 0.1,
			NIters:       2000,
		},
	}
}

// LoadConfig layers defaults, an optional YAML file and GDLEARN_* environment
// variables, in increasing priority, then validates the result.
// An empty path falls back to $GDLEARN_CONFIG.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransformFunc maps GDLEARN_LINEAR__N_ITERS to linear.n_iters.
func envTransformFunc(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	return nil
}
