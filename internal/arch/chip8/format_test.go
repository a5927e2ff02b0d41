package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, chip8.ClsInst.Name},
		{0x00EE, chip8.RetInst.Name},
		{0x1200, chip8.JpInst.Name + " $200"},
		{0xB2A0, chip8.JpInst.Name + " V0, $2A0"},
		{0x2345, chip8.CallInst.Name + " $345"},
		{0x3A12, chip8.SeInst.Name + " VA, $12"},
		{0x9AB0, chip8.SneInst.Name + " VA, VB"},
		{0x6005, chip8.LdInst.Name + " V0, $05"},
		{0x8120, chip8.LdInst.Name + " V1, V2"},
		{0xA2F0, chip8.LdInst.Name + " I, $2F0"},
		{0xF307, chip8.LdInst.Name + " V3, DT"},
		{0xF30A, chip8.LdInst.Name + " V3, K"},
		{0xF315, chip8.LdInst.Name + " DT, V3"},
		{0xF318, chip8.LdInst.Name + " ST, V3"},
		{0xF329, chip8.LdInst.Name + " F, V3"},
		{0xF333, chip8.LdInst.Name + " B, V3"},
		{0xF355, chip8.LdInst.Name + " [I], V3"},
		{0xF365, chip8.LdInst.Name + " V3, [I]"},
		{0x7101, chip8.AddInst.Name + " V1, $01"},
		{0x8014, chip8.AddInst.Name + " V0, V1"},
		{0xF21E, chip8.AddInst.Name + " I, V2"},
		{0x8015, chip8.SubInst.Name + " V0, V1"},
		{0x8016, chip8.ShrInst.Name + " V0"},
		{0xC40F, chip8.RndInst.Name + " V4, $0F"},
		{0xD125, chip8.DrwInst.Name + " V1, V2, $5"},
		{0xE59E, chip8.SkpInst.Name + " V5"},
		{0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Disassemble(tt.word))
		})
	}
}
