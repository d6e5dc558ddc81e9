package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Use a temp directory that doesn't have a config file
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", cfg.Mode, DefaultMode)
	}

	if cfg.Action != DefaultAction {
		t.Errorf("Action = %q, want %q", cfg.Action, DefaultAction)
	}

	if cfg.OnConflict != DefaultConflictPolicy {
		t.Errorf("OnConflict = %q, want %q", cfg.OnConflict, DefaultConflictPolicy)
	}

	if cfg.DestName != DefaultDestName {
		t.Errorf("DestName = %q, want %q", cfg.DestName, DefaultDestName)
	}

	if cfg.Recursive != DefaultRecursive {
		t.Errorf("Recursive = %t, want %t", cfg.Recursive, DefaultRecursive)
	}

	if cfg.SkipUnknown {
		t.Error("SkipUnknown = true, want false")
	}

	if cfg.Categories.Path == "" {
		t.Error("Categories.Path is empty")
	}

	if cfg.UndoLog.Path == "" {
		t.Error("UndoLog.Path is empty")
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "tidy")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
mode: date
action: copy
on_conflict: skip
dest_name: Sorted
recursive: true
skip_unknown: true
categories:
  path: /custom/categories.json
undo_log:
  path: /custom/undo.log
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode != "date" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "date")
	}

	if cfg.Action != "copy" {
		t.Errorf("Action = %q, want %q", cfg.Action, "copy")
	}

	if cfg.OnConflict != "skip" {
		t.Errorf("OnConflict = %q, want %q", cfg.OnConflict, "skip")
	}

	if cfg.DestName != "Sorted" {
		t.Errorf("DestName = %q, want %q", cfg.DestName, "Sorted")
	}

	if !cfg.Recursive {
		t.Error("Recursive = false, want true")
	}

	if !cfg.SkipUnknown {
		t.Error("SkipUnknown = false, want true")
	}

	if cfg.Categories.Path != "/custom/categories.json" {
		t.Errorf("Categories.Path = %q, want %q", cfg.Categories.Path, "/custom/categories.json")
	}

	if cfg.UndoLog.Path != "/custom/undo.log" {
		t.Errorf("UndoLog.Path = %q, want %q", cfg.UndoLog.Path, "/custom/undo.log")
	}
}

func TestLoad_XDGConfigHome(t *testing.T) {
	tempDir := t.TempDir()
	xdgConfigDir := filepath.Join(tempDir, "xdg-config", "tidy")
	if err := os.MkdirAll(xdgConfigDir, 0o755); err != nil {
		t.Fatalf("failed to create XDG config dir: %v", err)
	}

	configContent := `mode: size`
	configPath := filepath.Join(xdgConfigDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg-config"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode != "size" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "size")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("TIDY_MODE", "first_letter")
	t.Setenv("TIDY_ON_CONFLICT", "overwrite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode != "first_letter" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "first_letter")
	}

	if cfg.OnConflict != "overwrite" {
		t.Errorf("OnConflict = %q, want %q", cfg.OnConflict, "overwrite")
	}
}

func TestLoad_LoggingDefaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if cfg.Logging.Path != "" {
		t.Errorf("Logging.Path = %q, want empty string", cfg.Logging.Path)
	}

	expectedComponents := map[string]string{
		"organizer": "info",
		"walker":    "warn",
		"category":  "info",
		"undo":      "info",
	}
	for component, level := range expectedComponents {
		if cfg.Logging.Components[component] != level {
			t.Errorf("Logging.Components[%q] = %q, want %q", component, cfg.Logging.Components[component], level)
		}
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}

		expected := "/custom/config/tidy"
		if dir != expected {
			t.Errorf("ConfigDir() = %q, want %q", dir, expected)
		}
	})

	t.Run("uses HOME/.config when XDG_CONFIG_HOME not set", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Setenv("XDG_CONFIG_HOME", "")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}

		expected := filepath.Join(tempDir, ".config", "tidy")
		if dir != expected {
			t.Errorf("ConfigDir() = %q, want %q", dir, expected)
		}
	})
}

func TestEnsureConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}

	expectedDir := filepath.Join(tempDir, ".config", "tidy")
	info, err := os.Stat(expectedDir)
	if err != nil {
		t.Fatalf("os.Stat(%q) error = %v", expectedDir, err)
	}

	if !info.IsDir() {
		t.Errorf("%q is not a directory", expectedDir)
	}
}

func TestWriteDefault(t *testing.T) {
	t.Run("creates default config file", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Setenv("XDG_CONFIG_HOME", "")

		if err := WriteDefault(); err != nil {
			t.Fatalf("WriteDefault() error = %v", err)
		}

		configPath := filepath.Join(tempDir, ".config", "tidy", "config.yaml")
		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("config file not created: %v", err)
		}

		if !strings.Contains(string(content), "mode: "+DefaultMode) {
			t.Error("default config does not carry the default mode")
		}
	})

	t.Run("does not overwrite existing config", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Setenv("XDG_CONFIG_HOME", "")

		configDir := filepath.Join(tempDir, ".config", "tidy")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("failed to create config dir: %v", err)
		}

		configPath := filepath.Join(configDir, "config.yaml")
		existingContent := "# existing config\nmode: date"
		if err := os.WriteFile(configPath, []byte(existingContent), 0o644); err != nil {
			t.Fatalf("failed to write existing config: %v", err)
		}

		if err := WriteDefault(); err != nil {
			t.Fatalf("WriteDefault() error = %v", err)
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}

		if string(content) != existingContent {
			t.Errorf("config file was overwritten: got %q, want %q", string(content), existingContent)
		}
	})
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "expands tilde",
			input: "~/Downloads",
			want:  filepath.Join(homeDir, "Downloads"),
		},
		{
			name:  "leaves absolute path unchanged",
			input: "/srv/files",
			want:  "/srv/files",
		},
		{
			name:  "leaves relative path unchanged",
			input: "files",
			want:  "files",
		},
		{
			name:  "handles tilde only",
			input: "~",
			want:  homeDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDataDir(t *testing.T) {
	// adrg/xdg caches values at init time, so test the structure.
	dir := DataDir()
	if !filepath.IsAbs(dir) {
		t.Errorf("DataDir() = %q, want absolute path", dir)
	}
	if filepath.Base(dir) != "tidy" {
		t.Errorf("DataDir() = %q, want path ending in 'tidy'", dir)
	}
}

func TestStateDir(t *testing.T) {
	dir := StateDir()
	if !filepath.IsAbs(dir) {
		t.Errorf("StateDir() = %q, want absolute path", dir)
	}
	if filepath.Base(dir) != "tidy" {
		t.Errorf("StateDir() = %q, want path ending in 'tidy'", dir)
	}
}

func TestDefaultCategoriesPath(t *testing.T) {
	path := DefaultCategoriesPath()
	if filepath.Base(path) != "categories.json" {
		t.Errorf("DefaultCategoriesPath() = %q, want path ending in 'categories.json'", path)
	}
	if filepath.Dir(path) != DataDir() {
		t.Errorf("DefaultCategoriesPath() dir = %q, want %q", filepath.Dir(path), DataDir())
	}
}

func TestDefaultUndoLogPath(t *testing.T) {
	path := DefaultUndoLogPath()
	if filepath.Base(path) != "undo.log" {
		t.Errorf("DefaultUndoLogPath() = %q, want path ending in 'undo.log'", path)
	}
	if filepath.Dir(path) != DataDir() {
		t.Errorf("DefaultUndoLogPath() dir = %q, want %q", filepath.Dir(path), DataDir())
	}
}
