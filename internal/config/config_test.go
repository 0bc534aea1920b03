package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestApplyConfigFile_DurationString(t *testing.T) {
	path := writeConfigFile(t, `{"Addr":"localhost:9090","TokenTTL":"12h"}`)

	o := &Options{TokenTTL: 24 * time.Hour}
	if err := applyConfigFile(path, o); err != nil {
		t.Fatalf("applyConfigFile returned error: %v", err)
	}

	if o.Addr != "localhost:9090" {
		t.Errorf("expected Addr %q, got %q", "localhost:9090", o.Addr)
	}
	if o.TokenTTL != 12*time.Hour {
		t.Errorf("expected TokenTTL 12h, got %v", o.TokenTTL)
	}
}

func TestApplyConfigFile_DurationNanoseconds(t *testing.T) {
	path := writeConfigFile(t, `{"TokenTTL":3600000000000}`)

	o := &Options{}
	if err := applyConfigFile(path, o); err != nil {
		t.Fatalf("applyConfigFile returned error: %v", err)
	}
	if o.TokenTTL != time.Hour {
		t.Errorf("expected TokenTTL 1h, got %v", o.TokenTTL)
	}
}

func TestApplyConfigFile_DurationOmitted(t *testing.T) {
	path := writeConfigFile(t, `{"Addr":"localhost:9090"}`)

	o := &Options{TokenTTL: 24 * time.Hour}
	if err := applyConfigFile(path, o); err != nil {
		t.Fatalf("applyConfigFile returned error: %v", err)
	}
	if o.TokenTTL != 24*time.Hour {
		t.Errorf("expected TokenTTL to keep its default, got %v", o.TokenTTL)
	}
}

func TestApplyConfigFile_BadDuration(t *testing.T) {
	path := writeConfigFile(t, `{"TokenTTL":"soon"}`)

	if err := applyConfigFile(path, &Options{}); err == nil {
		t.Fatal("expected an error for an unparsable duration")
	}
}
