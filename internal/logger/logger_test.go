package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			log.Debug("debug line")
			log.Info("info line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Fatalf("debug visible=%v, want %v (output %q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Fatalf("info visible=%v, want %v (output %q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelOff, &buf)
	child := root.Named("store").Named("favorites")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output while off, got %q", buf.String())
	}

	root.SetLevel(LevelNormal)
	child.Warn("write failed")
	if !strings.Contains(buf.String(), "[store.favorites] write failed") {
		t.Fatalf("expected tagged line, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelNormal, false},
		{"debug", LevelVerbose, false},
		{"Verbose", LevelVerbose, false},
		{"quiet", LevelOff, false},
		{"loud", LevelNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}
