package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration. With an
// empty path the default locations are searched.
func LoadAppConfig(path string) error {
	paths := []string{"config.yml", "./config/config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	applyDefaults(&Config)
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.VTN.PushTimeoutMS == 0 {
		cfg.VTN.PushTimeoutMS = 10000
	}
	if cfg.Reporting.SamplingRateMS == 0 {
		cfg.Reporting.SamplingRateMS = 10000
	}
	if cfg.Reporting.ReportBackMS == 0 {
		cfg.Reporting.ReportBackMS = 60000
	}
	if cfg.Ops.Port == 0 {
		cfg.Ops.Port = 18080
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 100
	}
}
