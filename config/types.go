package config

// VTNConfig contains the server endpoint configuration
type VTNConfig struct {
	URL           string `yaml:"url" validate:"omitempty,url"`
	PushTimeoutMS int    `yaml:"pushTimeoutMS" validate:"gte=0"`
}

// VENConfig identifies this VEN
type VENConfig struct {
	Name          string `yaml:"name" validate:"required"`
	ID            string `yaml:"id"`
	MarketContext string `yaml:"marketContext" validate:"omitempty,url"`
}

// ReportingConfig contains default sampling and delivery cadences
type ReportingConfig struct {
	SamplingRateMS int `yaml:"samplingRateMS" validate:"gte=0"`
	ReportBackMS   int `yaml:"reportBackMS" validate:"gte=0"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"maxSizeMB" validate:"gte=0"`
	Debug     bool   `yaml:"debug"`
	Console   bool   `yaml:"console"`
}

// OpsConfig configures the operational HTTP endpoint (health, metrics)
type OpsConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	VTN       VTNConfig       `yaml:"vtn"`
	VEN       VENConfig       `yaml:"ven" validate:"required"`
	Reporting ReportingConfig `yaml:"reporting"`
	Logging   LoggingConfig   `yaml:"logging"`
	Ops       OpsConfig       `yaml:"ops"`
}
