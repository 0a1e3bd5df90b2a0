package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Database.Path == "" {
		t.Error("expected a default database path")
	}
	if config.Visual.CanvasWidth != 620 || config.Visual.CanvasHeight != 360 {
		t.Errorf("unexpected default canvas: %dx%d", config.Visual.CanvasWidth, config.Visual.CanvasHeight)
	}
	if config.Visual.Steps != 20 || config.Visual.Lift != 30 {
		t.Errorf("unexpected motion defaults: steps=%d lift=%d", config.Visual.Steps, config.Visual.Lift)
	}
	if config.Visual.SpeedDivisor != 700 {
		t.Errorf("unexpected speed divisor: %d", config.Visual.SpeedDivisor)
	}
	if config.Visual.DefaultSpeed < 1 || config.Visual.DefaultSpeed > 100 {
		t.Errorf("default speed outside [1,100]: %d", config.Visual.DefaultSpeed)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := []byte("[database]\npath = \"custom.db\"\n\n[visual]\ncanvas_width = 800\n")
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Database.Path != "custom.db" {
			t.Errorf("expected custom.db, got %s", config.Database.Path)
		}
		if config.Visual.CanvasWidth != 800 {
			t.Errorf("expected canvas width 800, got %d", config.Visual.CanvasWidth)
		}
	})

	t.Run("missing file returns an error", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed toml returns an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed toml")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the embedded defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("written config does not parse: %v", err)
		}
		if config.Visual.CanvasWidth != DefaultConfig().Visual.CanvasWidth {
			t.Error("written config differs from embedded defaults")
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# mine"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}
	})
}

func TestRunMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-running must be a no-op.
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		t.Fatalf("students table missing: %v", err)
	}

	var value int
	if err := db.QueryRow("SELECT value FROM students_sequence WHERE id = 1").Scan(&value); err != nil {
		t.Fatalf("sequence table not seeded: %v", err)
	}
	if value != 0 {
		t.Errorf("expected seeded sequence value 0, got %d", value)
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Error("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected distinct IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected canonical uuid length, got %d", len(a))
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	SetLogLevel(logger, log.DebugLevel)

	child := WithLogger(logger, "component", "test")
	child.Debug("hello")

	out := buf.String()
	if out == "" {
		t.Fatal("expected log output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("component")) {
		t.Errorf("expected structured field in output: %q", out)
	}
}
