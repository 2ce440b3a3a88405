package terminal

import (
	"testing"
)

func TestDetect_NoColorFlag(t *testing.T) {
	info := Detect(true)
	if info.ColorEnabled {
		t.Error("expected ColorEnabled=false when noColor=true")
	}
}

func TestDetect_NOCOLOREnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	info := Detect(false)
	if info.ColorEnabled {
		t.Error("expected ColorEnabled=false when NO_COLOR is set")
	}
}

func TestCanPrompt(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{name: "both ttys", info: Info{StdinIsTerminal: true, StderrIsTerminal: true}, want: true},
		{name: "piped stdin", info: Info{StdinIsTerminal: false, StderrIsTerminal: true}, want: false},
		{name: "redirected stderr", info: Info{StdinIsTerminal: true, StderrIsTerminal: false}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.CanPrompt(); got != tt.want {
				t.Errorf("CanPrompt() = %v, want %v", got, tt.want)
			}
		})
	}
}
