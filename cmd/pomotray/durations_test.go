package main

import (
	"testing"
	"time"

	"pomotray/internal/core/model"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "15s", want: 15 * time.Second},
		{input: "2m", want: 2 * time.Minute},
		{input: "1h", want: time.Hour},
		{input: "90", want: 90 * time.Second},
		{input: " 5M ", want: 5 * time.Minute},
		{input: "0s", wantErr: true},
		{input: "-3m", wantErr: true},
		{input: "1.5m", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseDuration(tc.input)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("parseDuration(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestQuickConfig(t *testing.T) {
	if _, ok, err := quickConfig(nil); ok || err != nil {
		t.Fatalf("no arguments should keep persistent mode, got ok=%v err=%v", ok, err)
	}

	config, ok, err := quickConfig([]string{"15s", "5s", "3", "10s"})
	if err != nil || !ok {
		t.Fatalf("quickConfig: ok=%v err=%v", ok, err)
	}
	if config.WorkDuration != 15*time.Second || config.ShortBreakDuration != 5*time.Second ||
		config.SessionsUntilLongBreak != 3 || config.LongBreakDuration != 10*time.Second {
		t.Fatalf("unexpected quick config %+v", config)
	}

	partial, ok, err := quickConfig([]string{"2m"})
	if err != nil || !ok {
		t.Fatalf("quickConfig: ok=%v err=%v", ok, err)
	}
	defaults := model.DefaultConfig()
	if partial.WorkDuration != 2*time.Minute || partial.ShortBreakDuration != defaults.ShortBreakDuration {
		t.Fatalf("omitted values should keep defaults, got %+v", partial)
	}
}

func TestQuickConfigRejects(t *testing.T) {
	for _, args := range [][]string{{"soon"}, {"1m", "0s"}, {"1m", "1m", "zero"}, {"1m", "1m", "0"}, {"1m", "1m", "2", "x"}} {
		if _, _, err := quickConfig(args); err == nil {
			t.Fatalf("quickConfig(%q) should fail", args)
		}
	}
}
