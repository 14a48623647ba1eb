package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelWarn {
		t.Errorf("Expected default level %s, got %s", LevelWarn, cfg.Level)
	}
	if cfg.Format != FormatText {
		t.Errorf("Expected default format %s, got %s", FormatText, cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Expected default output 'stderr', got '%s'", cfg.Output)
	}
	if cfg.AddSource {
		t.Error("Expected AddSource to be false by default")
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("stdout text logger", func(t *testing.T) {
		logger, err := New(Config{Level: LevelInfo, Format: FormatText, Output: "stdout"})
		if err != nil {
			t.Fatalf("Failed to create logger: %v", err)
		}
		if logger.config.Level != LevelInfo {
			t.Errorf("Expected level %s, got %s", LevelInfo, logger.config.Level)
		}
	})

	t.Run("file logger", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "scanview.log")

		logger, err := New(Config{Level: LevelDebug, Format: FormatText, Output: logFile})
		if err != nil {
			t.Fatalf("Failed to create file logger: %v", err)
		}
		logger.Info("hello")

		if _, err := os.Stat(logFile); os.IsNotExist(err) {
			t.Error("Log file should have been created")
		}
	})

	t.Run("invalid directory for file logger", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := New(Config{Level: LevelInfo, Format: FormatText, Output: filepath.Join(blocker, "test.log")})
		if err == nil {
			t.Error("Expected error for invalid log file path")
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: LevelWarn, Format: FormatText}, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("Messages below warn should be dropped, got %q", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("Warn and error messages should be logged, got %q", output)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: LogLevel("loud"), Format: FormatText}, &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("Debug should be filtered at the fallback info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Info should be logged at the fallback info level")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: LevelInfo, Format: FormatJSON}, &buf)

	logger.WithSession("abc").InfoFile("parsed", "scan.xml", "hosts", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Output should be a JSON record: %v", err)
	}
	if record["session_id"] != "abc" {
		t.Errorf("Expected session_id 'abc', got %v", record["session_id"])
	}
	if record["file"] != "scan.xml" {
		t.Errorf("Expected file 'scan.xml', got %v", record["file"])
	}
	if record["hosts"] != float64(3) {
		t.Errorf("Expected hosts 3, got %v", record["hosts"])
	}
}

func TestLoggerWithMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: LevelDebug, Format: FormatText}, &buf)

	t.Run("WithComponent", func(t *testing.T) {
		buf.Reset()
		logger.WithComponent("merge").Info("merged")
		if !strings.Contains(buf.String(), "component=merge") {
			t.Errorf("Expected component field, got %q", buf.String())
		}
	})

	t.Run("ErrorFile", func(t *testing.T) {
		buf.Reset()
		logger.ErrorFile("parse failed", "bad.xml", fmt.Errorf("syntax"))
		out := buf.String()
		if !strings.Contains(out, "file=bad.xml") || !strings.Contains(out, "error=syntax") {
			t.Errorf("Expected file and error fields, got %q", out)
		}
	})

	t.Run("ErrorExport", func(t *testing.T) {
		buf.Reset()
		logger.WithFile("a.xml").ErrorExport("copy failed", "clipboard", fmt.Errorf("denied"))
		out := buf.String()
		if !strings.Contains(out, "target=clipboard") || !strings.Contains(out, "component=export") {
			t.Errorf("Expected export fields, got %q", out)
		}
	})
}

func TestDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewWithWriter(Config{Level: LevelDebug, Format: FormatText}, &buf))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	for _, msg := range []string{"msg=d", "msg=i", "msg=w", "msg=e"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("Expected %q in default logger output", msg)
		}
	}

	Discard().Error("dropped")
}
