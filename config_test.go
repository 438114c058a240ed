package localauth

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults valid",
			mutate:    func(c *Config) {},
			wantValid: true,
		},
		{
			name: "empty registry key",
			mutate: func(c *Config) {
				c.Registry.Key = ""
			},
			wantValid: false,
		},
		{
			name: "empty session key",
			mutate: func(c *Config) {
				c.Session.Key = ""
			},
			wantValid: false,
		},
		{
			name: "colliding keys",
			mutate: func(c *Config) {
				c.Session.Key = c.Registry.Key
			},
			wantValid: false,
		},
		{
			name: "zero min password length",
			mutate: func(c *Config) {
				c.Registry.MinPasswordLength = 0
			},
			wantValid: false,
		},
		{
			name: "custom min password length",
			mutate: func(c *Config) {
				c.Registry.MinPasswordLength = 12
			},
			wantValid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Registry.Key != "users" {
		t.Fatalf("expected registry key users, got %q", cfg.Registry.Key)
	}
	if cfg.Session.Key != "currentUser" {
		t.Fatalf("expected session key currentUser, got %q", cfg.Session.Key)
	}
	if cfg.Registry.MinPasswordLength != 6 {
		t.Fatalf("expected min password length 6, got %d", cfg.Registry.MinPasswordLength)
	}
	if !cfg.Audit.Enabled || !cfg.Metrics.Enabled {
		t.Fatal("expected audit and metrics enabled by default")
	}
}
