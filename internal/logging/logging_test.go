package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "DEBUG", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "", want: LevelInfo},
		{input: "Warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseLevel(tc.input)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	var buffer bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&buffer)
	t.Cleanup(func() {
		log.SetOutput(previous)
		SetLevel(LevelInfo)
	})

	SetLevel(LevelWarn)
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	output := buffer.String()
	if strings.Contains(output, "hidden") {
		t.Fatalf("info line should be filtered: %q", output)
	}
	if !strings.Contains(output, "WARN shown 2") {
		t.Fatalf("expected warn line, got %q", output)
	}
}

func TestSetupWritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	var console bytes.Buffer
	previous := log.Writer()
	t.Cleanup(func() {
		log.SetOutput(previous)
		SetLevel(LevelInfo)
	})

	closer, err := Setup(Options{Level: LevelDebug, File: path, ClearOnStart: true, Console: &console})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	Debugf("tick %d", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "DEBUG tick 3") {
		t.Fatalf("log file missing debug line: %q", data)
	}
	if !strings.Contains(console.String(), "DEBUG tick 3") {
		t.Fatalf("console missing debug line: %q", console.String())
	}
}

func TestSetupFailuresStillUseConsole(t *testing.T) {
	previous := log.Writer()
	t.Cleanup(func() {
		log.SetOutput(previous)
		SetLevel(LevelInfo)
	})

	// A non-empty directory can be neither removed nor opened as a log file.
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.MkdirAll(filepath.Join(path, "keep"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	for _, clear := range []bool{true, false} {
		log.SetOutput(os.Stderr)
		var console bytes.Buffer
		if _, err := Setup(Options{Level: LevelInfo, File: path, ClearOnStart: clear, Console: &console}); err == nil {
			t.Fatalf("clear=%v: expected setup error", clear)
		}
		Infof("after failure")
		if !strings.Contains(console.String(), "INFO after failure") {
			t.Fatalf("clear=%v: console should receive logs, got %q", clear, console.String())
		}
	}
}

func TestTruncateLogKeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	content := strings.Repeat("a", maxLogSize) + strings.Repeat("z", 100)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := truncateLog(path); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), truncMarker) {
		t.Fatalf("expected truncation marker")
	}
	if len(data) != len(truncMarker)+keepLogTail {
		t.Fatalf("expected %d bytes, got %d", len(truncMarker)+keepLogTail, len(data))
	}
	if !strings.HasSuffix(string(data), strings.Repeat("z", 100)) {
		t.Fatalf("expected tail to be preserved")
	}
}

func TestTruncateLogLeavesSmallFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.log")
	if err := os.WriteFile(path, []byte("short"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := truncateLog(path); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "short" {
		t.Fatalf("small file should be untouched, got %q", data)
	}
}
