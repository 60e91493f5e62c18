package config

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "memory")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr() != ":5000" {
		t.Errorf("addr = %q", c.Addr())
	}
	if c.MongoDatabase != "doctors_portal" {
		t.Errorf("database = %q", c.MongoDatabase)
	}
	if len(c.CORSOrigins) != 1 || c.CORSOrigins[0] != "*" {
		t.Errorf("cors = %v", c.CORSOrigins)
	}
	if c.BookingUniqueIndex {
		t.Error("unique index should be off by default")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"ACCESS_TOKEN_SECRET": "", "STORE_DRIVER": "memory"}},
		{"mongo without uri", map[string]string{"ACCESS_TOKEN_SECRET": "x", "STORE_DRIVER": "mongo", "MONGO_URI": ""}},
		{"unknown driver", map[string]string{"ACCESS_TOKEN_SECRET": "x", "STORE_DRIVER": "sqlite"}},
		{"zero burst", map[string]string{"ACCESS_TOKEN_SECRET": "x", "STORE_DRIVER": "memory", "LOGIN_BURST": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoggerLevel(t *testing.T) {
	c := Config{LogLevel: "debug"}
	if got := c.Logger().GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("level = %v", got)
	}
	c.LogLevel = "nonsense"
	if got := c.Logger().GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("level = %v", got)
	}
}
