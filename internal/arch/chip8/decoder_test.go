package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected Fields
	}{
		{"all fields distinct", 0x1234, Fields{Word: 0x1234, Family: 0x1, X: 0x2, Y: 0x3, N: 0x4, NN: 0x34, NNN: 0x234}},
		{"zero word", 0x0000, Fields{}},
		{"all bits set", 0xFFFF, Fields{Word: 0xFFFF, Family: 0xF, X: 0xF, Y: 0xF, N: 0xF, NN: 0xFF, NNN: 0xFFF}},
		{"draw", 0xDAB5, Fields{Word: 0xDAB5, Family: 0xD, X: 0xA, Y: 0xB, N: 0x5, NN: 0xB5, NNN: 0xAB5}},
		{"high family only", 0x8000, Fields{Word: 0x8000, Family: 0x8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.word))
		})
	}
}

// Masking must happen before shifting: word & (0xF000 >> 12) would yield
// the low nibble instead of the family.
func TestDecodeMaskBeforeShift(t *testing.T) {
	fields := Decode(0x6A0F)
	assert.Equal(t, uint8(0x6), fields.Family)
	assert.Equal(t, uint8(0xA), fields.X)
	assert.Equal(t, uint8(0x0), fields.Y)
}

func TestDecodeTotal(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		word := uint16(w)
		fields := Decode(word)

		rebuilt := uint16(fields.Family)<<12 | uint16(fields.X)<<8 | uint16(fields.Y)<<4 | uint16(fields.N)
		if rebuilt != word {
			t.Fatalf("decoding $%04X rebuilt as $%04X", word, rebuilt)
		}
		if uint16(fields.NN) != word&0xFF || fields.NNN != word&0xFFF {
			t.Fatalf("decoding $%04X: unexpected immediates %+v", word, fields)
		}
	}
}

func TestWord(t *testing.T) {
	assert.Equal(t, uint16(0x00E0), Word(0x00, 0xE0))
	assert.Equal(t, uint16(0xA2F0), Word(0xA2, 0xF0))

	word, ok := decodeOpcode([]byte{0x12, 0x00})
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1200), word)

	_, ok = decodeOpcode([]byte{0x12})
	assert.False(t, ok)
}
