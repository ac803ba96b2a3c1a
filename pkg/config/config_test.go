package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "FEEDER_PORT", "FEEDER_VERSION", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTPPort != DefaultHTTPPort {
		t.Errorf("HTTPPort = %d, want %d", cfg.HTTPPort, DefaultHTTPPort)
	}
	if cfg.FeederPort != DefaultFeederPort {
		t.Errorf("FeederPort = %d, want %d", cfg.FeederPort, DefaultFeederPort)
	}
	if cfg.FeederVersion != DefaultFeederVersion {
		t.Errorf("FeederVersion = %q, want %q", cfg.FeederVersion, DefaultFeederVersion)
	}
	if cfg.HTTPAddress() != ":3000" {
		t.Errorf("HTTPAddress = %q, want :3000", cfg.HTTPAddress())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8090")
	t.Setenv("FEEDER_DEVICE_ID", "bfb1de061f3a1f7c")
	t.Setenv("FEEDER_LOCAL_KEY", "0123456789abcdef")
	t.Setenv("FEEDER_IP", "192.168.1.40")
	t.Setenv("FEEDER_PORT", "6669")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTPPort != 8090 {
		t.Errorf("HTTPPort = %d, want 8090", cfg.HTTPPort)
	}
	if cfg.FeederPort != 6669 {
		t.Errorf("FeederPort = %d, want 6669", cfg.FeederPort)
	}
	if !cfg.FeederConfigured() {
		t.Error("feeder should be configured with id, key, and ip set")
	}
}

func TestLoad_BadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric PORT")
	}
}

func TestFeederConfigured_PartialCredentials(t *testing.T) {
	t.Setenv("FEEDER_DEVICE_ID", "bfb1de061f3a1f7c")
	t.Setenv("FEEDER_LOCAL_KEY", "")
	t.Setenv("FEEDER_IP", "192.168.1.40")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FeederConfigured() {
		t.Error("missing local key must leave the feeder unconfigured")
	}
}
