package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"eepromed/internal/buffer"
	"eepromed/internal/config"
)

// writeImage writes data as a test image and returns its path.
func writeImage(t *testing.T, data ...byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func readImage(t *testing.T, path string) *buffer.Image {
	t.Helper()
	img, err := buffer.Load(path)
	if err != nil {
		t.Fatalf("failed to load %s: %v", path, err)
	}
	return img
}

// resetFlags restores global flag state and points output into a temp dir.
func resetFlags(t *testing.T) string {
	t.Helper()
	quiet = false
	jsonOut = false
	debug = false
	configPath = ""
	replaceFind = ""
	replaceWith = ""
	replaceDry = false
	cfg = config.DefaultConfig()
	outPath = filepath.Join(t.TempDir(), config.DefaultOutputFile)
	return outPath
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}
