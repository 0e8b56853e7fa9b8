package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "")

	cfg, err := Load("testdata/does-not-exist.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Sheets.Enabled() {
		t.Error("sheets adapter should be disabled without credentials")
	}
	if cfg.MongoDB.Enabled() {
		t.Error("mongodb archive should be disabled without a URI")
	}
	if cfg.Reporting.CronSchedule == "" || cfg.Reporting.Timezone == "" {
		t.Errorf("reporting defaults missing: %+v", cfg.Reporting)
	}
}

func TestValidateInconsistentSheets(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Sheets:    SheetsConfig{CredentialsPath: "/tmp/creds.json"},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("credentials without a spreadsheet id should fail validation")
	}
}

func TestValidateMongoNeedsDBName(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
		MongoDB:   MongoDBConfig{URI: "mongodb://localhost:27017"},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("mongodb uri without a db name should fail validation")
	}
}
