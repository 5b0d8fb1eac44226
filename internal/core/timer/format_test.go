package timer

import "testing"

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "00:00"},
		{seconds: 65, want: "01:05"},
		{seconds: 1500, want: "25:00"},
		{seconds: 7261, want: "121:01"},
		{seconds: -3, want: "00:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.seconds); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestStateHelpers(t *testing.T) {
	if !StateWork.Running() || StatePaused.Running() || StateIdle.Running() {
		t.Fatalf("unexpected Running results")
	}
	if !StateLongBreak.Break() || StateWork.Break() {
		t.Fatalf("unexpected Break results")
	}
	if StatePaused.Label() != "Paused" || StateIdle.Label() != "Ready to start" {
		t.Fatalf("unexpected labels")
	}
}
