package config

import "testing"

func TestValidateReportsMissingKeys(t *testing.T) {
	cfg := Config{DBType: "postgres"}

	missing := cfg.Validate()
	want := map[string]bool{
		"DATABASE_HOST": true,
		"DATABASE_NAME": true,
		"SITE_BASE_URL": true,
	}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %d keys", missing, len(want))
	}
	for _, key := range missing {
		if !want[key] {
			t.Fatalf("unexpected missing key %q", key)
		}
	}
}

func TestValidatePassesWithRequiredSettings(t *testing.T) {
	cfg := Config{
		DBType:      "postgres",
		DBHost:      "localhost",
		DBName:      "invoys",
		SiteBaseURL: "http://localhost:8080",
	}
	if missing := cfg.Validate(); len(missing) != 0 {
		t.Fatalf("expected no missing keys, got %v", missing)
	}
}

func TestValidateSkipsHostForSqlite(t *testing.T) {
	cfg := Config{
		DBType:      "sqlite",
		DBName:      "invoys.db",
		SiteBaseURL: "http://localhost:8080",
	}
	if missing := cfg.Validate(); len(missing) != 0 {
		t.Fatalf("expected no missing keys for sqlite, got %v", missing)
	}
}
