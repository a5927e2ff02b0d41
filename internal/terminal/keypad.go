package terminal

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/machine"
)

// DefaultHold is the time a key stays held after its last press. Terminals
// only report key presses, a held key is seen as a stream of repeated
// presses.
const DefaultHold = 150 * time.Millisecond

// keyLayout maps the left hand side of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyLayout = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Keypad tracks keypad state from terminal key presses. It is safe for
// concurrent use.
type Keypad struct {
	hold time.Duration
	now  func() time.Time

	mu      sync.Mutex
	pressed [machine.KeyCount]time.Time // time of the last press per key
}

// NewKeypad returns a keypad that keeps keys held for the given duration
// after each press.
func NewKeypad(hold time.Duration) *Keypad {
	return &Keypad{
		hold: hold,
		now:  time.Now,
	}
}

// MapKey returns the keypad key for a terminal input byte.
func MapKey(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyLayout[b]
	return key, ok
}

// Press registers a press of the terminal input byte. It returns whether the
// byte is mapped to a keypad key.
func (k *Keypad) Press(b byte) bool {
	key, ok := MapKey(b)
	if !ok {
		return false
	}

	k.mu.Lock()
	k.pressed[key] = k.now()
	k.mu.Unlock()
	return true
}

// Keys returns the mask of all keys pressed within the hold duration.
func (k *Keypad) Keys() uint16 {
	now := k.now()

	k.mu.Lock()
	defer k.mu.Unlock()

	var keys uint16
	for key, pressed := range k.pressed {
		if !pressed.IsZero() && now.Sub(pressed) < k.hold {
			keys |= 1 << key
		}
	}
	return keys
}

// Listen reads key presses from the reader until it returns an error or
// io.EOF.
func (k *Keypad) Listen(reader io.Reader) error {
	buf := make([]byte, 32)
	for {
		n, err := reader.Read(buf)
		for _, b := range buf[:n] {
			k.Press(b)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading key input: %w", err)
		}
	}
}
