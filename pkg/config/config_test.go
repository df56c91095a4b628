package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_NoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Counter.Delay != 10*time.Millisecond {
		t.Errorf("Counter.Delay = %v, want 10ms", cfg.Counter.Delay)
	}
	if want := []string{"block_key_figures", "block"}; !reflect.DeepEqual(cfg.Counter.ContainerClasses, want) {
		t.Errorf("Counter.ContainerClasses = %v, want %v", cfg.Counter.ContainerClasses, want)
	}
	if want := []string{"col-number"}; !reflect.DeepEqual(cfg.Counter.NumberClasses, want) {
		t.Errorf("Counter.NumberClasses = %v, want %v", cfg.Counter.NumberClasses, want)
	}
	if cfg.HTTP.Retries != 3 || cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.Logger.Level != "normal" || cfg.Logger.Encoding != "console" {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
}

func TestLoad_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key-figures.yaml")

	content := `counter:
  delay: 25ms
  container_classes: [block_stats, block]
  number_classes: [stat-value]
http:
  timeout: 5s
  retries: 5
logger:
  level: debug
  encoding: json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Counter.Delay != 25*time.Millisecond {
		t.Errorf("Counter.Delay = %v, want 25ms", cfg.Counter.Delay)
	}
	if want := []string{"block_stats", "block"}; !reflect.DeepEqual(cfg.Counter.ContainerClasses, want) {
		t.Errorf("Counter.ContainerClasses = %v, want %v", cfg.Counter.ContainerClasses, want)
	}
	if want := []string{"stat-value"}; !reflect.DeepEqual(cfg.Counter.NumberClasses, want) {
		t.Errorf("Counter.NumberClasses = %v, want %v", cfg.Counter.NumberClasses, want)
	}
	if cfg.HTTP.Timeout != 5*time.Second || cfg.HTTP.Retries != 5 {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.Encoding != "json" {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
}

func TestLoad_SearchPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "key-figures.yaml"), []byte("counter:\n  delay: 1ms\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Counter.Delay != time.Millisecond {
		t.Errorf("Counter.Delay = %v, want 1ms", cfg.Counter.Delay)
	}
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("KEYFIGURES_COUNTER_DELAY", "50ms")
	t.Setenv("KEYFIGURES_LOGGER_LEVEL", "none")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Counter.Delay != 50*time.Millisecond {
		t.Errorf("Counter.Delay = %v, want 50ms", cfg.Counter.Delay)
	}
	if cfg.Logger.Level != "none" {
		t.Errorf("Logger.Level = %q, want none", cfg.Logger.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative delay", "counter:\n  delay: -1s\n", "counter.delay"},
		{"zero delay", "counter:\n  delay: 0s\n", "counter.delay"},
		{"zero retries", "http:\n  retries: 0\n", "http.retries"},
		{"bad level", "logger:\n  level: verbose\n", "logger.level"},
		{"bad encoding", "logger:\n  encoding: xml\n", "logger.encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() with missing explicit file succeeded")
	}
}

func TestLoggerBuild(t *testing.T) {
	var stdout, stderr bytes.Buffer

	log := LoggerConfig{Level: "normal", Encoding: "console"}.build(&stdout, &stderr)
	log.Debug("hidden")
	log.Info("shown")
	log.Error("failed")
	log.Sync()

	if strings.Contains(stdout.String(), "hidden") {
		t.Error("debug message logged at normal level")
	}
	if !strings.Contains(stdout.String(), "shown") {
		t.Errorf("stdout = %q, want info message", stdout.String())
	}
	if strings.Contains(stdout.String(), "failed") || !strings.Contains(stderr.String(), "failed") {
		t.Errorf("error message not routed to stderr: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}

	stdout.Reset()
	debug := LoggerConfig{Level: "debug", Encoding: "json"}.build(&stdout, &stderr)
	debug.Debug("details")
	debug.Sync()
	if !strings.Contains(stdout.String(), `"msg":"details"`) {
		t.Errorf("json debug output = %q", stdout.String())
	}

	stdout.Reset()
	LoggerConfig{Level: "none"}.build(&stdout, &stderr).Info("quiet")
	if stdout.Len() != 0 {
		t.Errorf("none level wrote %q", stdout.String())
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), which the local Go 1.21 toolchain lacks.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
