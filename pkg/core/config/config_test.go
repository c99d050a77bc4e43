package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	rairerror "github.com/msto63/rair/foundation/core/error"
)

// clearEnv keeps overrides from the developer's shell out of the tests
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RAIR_CONFIG", "RAIR_DATA_DIR", "RAIR_HISTORY_FILE", "RAIR_HISTORY_LIMIT",
		"RAIR_EDIT_MODE", "RAIR_FRONTEND", "RAIR_MAX_NESTING", "RAIR_LOG_LEVEL",
		"RAIR_LOG_FORMAT", "RAIR_LOG_FILE", "RAIR_COLOR", "RAIR_PALETTE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.toml", `
[general]
data_dir = "/tmp/rair-data"

[shell]
history_limit = 50
edit_mode = "vi"
frontend = "tui"

[log]
level = "debug"
format = "json"

[colors]
mode = "never"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.DataDir != "/tmp/rair-data" {
		t.Errorf("DataDir = %q, want /tmp/rair-data", cfg.General.DataDir)
	}
	if cfg.Shell.HistoryFile != "/tmp/rair-data/history" {
		t.Errorf("HistoryFile = %q, want it under the data dir", cfg.Shell.HistoryFile)
	}
	if cfg.Shell.HistoryLimit != 50 || cfg.Shell.EditMode != "vi" || cfg.Shell.Frontend != "tui" {
		t.Errorf("Shell = %+v", cfg.Shell)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Log.File != "/tmp/rair-data/rair.log" {
		t.Errorf("Log.File = %q, want it under the data dir", cfg.Log.File)
	}
	if cfg.Colors.Mode != "never" {
		t.Errorf("Colors.Mode = %q, want never", cfg.Colors.Mode)
	}
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
shell:
  history_file: /tmp/hist
  max_nesting: 4
colors:
  palette: ["#000000", "#111111", "#222222", "#333333", "#444444", "#555555", "#666666", "#777777", "#888888"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Shell.HistoryFile != "/tmp/hist" {
		t.Errorf("HistoryFile = %q, want /tmp/hist", cfg.Shell.HistoryFile)
	}
	if cfg.Shell.MaxNesting != 4 {
		t.Errorf("MaxNesting = %d, want 4", cfg.Shell.MaxNesting)
	}
	if len(cfg.Colors.Palette) != 9 || cfg.Colors.Palette[8] != "#888888" {
		t.Errorf("Palette = %v", cfg.Colors.Palette)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "empty.toml", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Config{
		General: GeneralConfig{DataDir: DefaultDataDir()},
		Shell: ShellConfig{
			HistoryFile:  filepath.Join(DefaultDataDir(), "history"),
			HistoryLimit: 1000,
			EditMode:     "emacs",
			Frontend:     "readline",
			MaxNesting:   32,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
			File:   filepath.Join(DefaultDataDir(), "rair.log"),
		},
		Colors: ColorsConfig{Mode: "auto"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAIR_LOG_LEVEL", "error")
	t.Setenv("RAIR_COLOR", "always")
	t.Setenv("RAIR_HISTORY_LIMIT", "7")
	t.Setenv("RAIR_PALETTE", "#000000,#111111,#222222,#333333,#444444,#555555,#666666,#777777,#888888")
	path := writeFile(t, "config.toml", `
[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want the environment to win", cfg.Log.Level)
	}
	if cfg.Colors.Mode != "always" {
		t.Errorf("Colors.Mode = %q, want always", cfg.Colors.Mode)
	}
	if cfg.Shell.HistoryLimit != 7 {
		t.Errorf("HistoryLimit = %d, want 7", cfg.Shell.HistoryLimit)
	}
	if len(cfg.Colors.Palette) != 9 {
		t.Errorf("Palette = %v, want 9 colors", cfg.Colors.Palette)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAIR_TEST_ROOT", "/srv/rair")
	path := writeFile(t, "config.toml", `
[general]
data_dir = "${RAIR_TEST_ROOT}/data"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.DataDir != "/srv/rair/data" {
		t.Errorf("DataDir = %q, want /srv/rair/data", cfg.General.DataDir)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode rairerror.Code
	}{
		{"syntax", "bad.toml", "[shell\n", rairerror.CodeConfigError},
		{"yaml syntax", "bad.yaml", "shell: [", rairerror.CodeConfigError},
		{"log level", "c.toml", "[log]\nlevel = \"loud\"\n", rairerror.CodeInvalidConfig},
		{"log format", "c.toml", "[log]\nformat = \"xml\"\n", rairerror.CodeInvalidConfig},
		{"edit mode", "c.toml", "[shell]\nedit_mode = \"ed\"\n", rairerror.CodeInvalidConfig},
		{"frontend", "c.toml", "[shell]\nfrontend = \"gui\"\n", rairerror.CodeInvalidConfig},
		{"history limit", "c.toml", "[shell]\nhistory_limit = -5\n", rairerror.CodeInvalidConfig},
		{"max nesting", "c.toml", "[shell]\nmax_nesting = -1\n", rairerror.CodeInvalidConfig},
		{"color mode", "c.toml", "[colors]\nmode = \"sometimes\"\n", rairerror.CodeInvalidConfig},
		{"short palette", "c.toml", "[colors]\npalette = [\"#000000\"]\n", rairerror.CodeInvalidConfig},
		{"bad color", "c.toml", "[colors]\npalette = [\"#000000\", \"#111111\", \"#222222\", \"#333333\", \"#444444\", \"#555555\", \"#666666\", \"#777777\", \"red\"]\n", rairerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeFile(t, tt.file, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if got := rairerror.GetCode(err); got != tt.wantCode {
				t.Errorf("Load() error code = %v, want %v (%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !rairerror.HasCode(err, rairerror.CodeConfigError) {
		t.Errorf("Load() error = %v, want config error", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "custom.toml", "[shell]\nedit_mode = \"vi\"\n")
		t.Setenv("RAIR_CONFIG", path)

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() error = %v", err)
		}
		if cfg.Shell.EditMode != "vi" {
			t.Errorf("EditMode = %q, want vi", cfg.Shell.EditMode)
		}
	})

	t.Run("working directory", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "rair.toml"), []byte("[shell]\nfrontend = \"tui\"\n"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() error = %v", err)
		}
		if cfg.Shell.Frontend != "tui" {
			t.Errorf("Frontend = %q, want tui", cfg.Shell.Frontend)
		}
	})

	t.Run("user config dir", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if err := os.MkdirAll(filepath.Join(configHome, "rair"), 0o755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(filepath.Join(configHome, "rair", "config.yaml"), []byte("log:\n  level: info\n"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() error = %v", err)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
		}
	})

	t.Run("no file", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() error = %v", err)
		}
		if cfg.Shell.Frontend != "readline" {
			t.Errorf("Frontend = %q, want default readline", cfg.Shell.Frontend)
		}
	})
}
