package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadAppConfig(t *testing.T) {
	p := writeConfig(t, `
vtn:
  url: https://vtn.example.com
  pushTimeoutMS: 5000
ven:
  name: test-ven
  id: ven-42
reporting:
  samplingRateMS: 2000
  reportBackMS: 30000
`)
	if err := LoadAppConfig(p); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if Config.VTN.URL != "https://vtn.example.com" {
		t.Errorf("vtn url %s", Config.VTN.URL)
	}
	if Config.VEN.ID != "ven-42" {
		t.Errorf("ven id %s", Config.VEN.ID)
	}
	if Config.Reporting.SamplingRateMS != 2000 {
		t.Errorf("sampling rate %d", Config.Reporting.SamplingRateMS)
	}
	// defaults
	if Config.Ops.Port != 18080 {
		t.Errorf("ops port default %d", Config.Ops.Port)
	}
	if Config.Logging.MaxSizeMB != 100 {
		t.Errorf("log max size default %d", Config.Logging.MaxSizeMB)
	}
}

func TestLoadAppConfig_MissingVENName(t *testing.T) {
	p := writeConfig(t, `
vtn:
  url: https://vtn.example.com
ven:
  id: ven-42
`)
	if err := LoadAppConfig(p); err == nil {
		t.Fatal("config without ven.name must fail validation")
	}
}

func TestLoadAppConfig_BadURL(t *testing.T) {
	p := writeConfig(t, `
vtn:
  url: not-a-url
ven:
  name: test-ven
`)
	if err := LoadAppConfig(p); err == nil {
		t.Fatal("invalid vtn url must fail validation")
	}
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	if err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("missing file must return an error")
	}
}
