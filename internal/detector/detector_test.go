package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		inputFile  string
		wantSystem arch.System
		wantCHIP8  bool
	}{
		{"detect from .ch8 extension", "game.ch8", arch.CHIP8System, true},
		{"detect from .c8 extension", "game.c8", arch.CHIP8System, true},
		{"detect from .rom extension", "games/PONG.ROM", arch.CHIP8System, true},
		{"detect from .nes extension", "game.nes", arch.NES, false},
		{"unknown extension", "game.bin", "", true},
		{"no extension", "PONG", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSystem, d.Detect(tt.inputFile))
			assert.Equal(t, tt.wantCHIP8, d.IsCHIP8(tt.inputFile))
		})
	}
}
