package machine

import "time"

// TimerFrequency is the rate in Hz at which the delay and sound timers
// count down.
const TimerFrequency = 60

// TimerPeriod is the real-time interval between two timer decrements.
const TimerPeriod = time.Second / TimerFrequency

// DecrementTimers counts both timers down by one, stopping at 0. It has to
// be called TimerFrequency times per second, between ticks.
func (m *Machine) DecrementTimers() {
	if m.DT > 0 {
		m.DT--
	}
	if m.ST > 0 {
		m.ST--
	}
}

// SoundActive returns whether the sound timer is running, a sound
// collaborator should emit a tone while it is.
func (m *Machine) SoundActive() bool {
	return m.ST > 0
}

// TimerClock converts instruction ticks into the number of timer decrements
// that are due when the machine runs in emulated time, for example headless
// without throttling. Every tick lasts 1s / rate of emulated time, fractions
// of a timer period are carried over exactly.
type TimerClock struct {
	rate  int // instruction ticks per second
	phase int // timer periods scaled by rate
}

// NewTimerClock returns a clock for an instruction rate of hz ticks per
// second. A non positive rate is treated as TimerFrequency.
func NewTimerClock(hz int) *TimerClock {
	if hz <= 0 {
		hz = TimerFrequency
	}
	return &TimerClock{
		rate: hz,
	}
}

// Advance adds the given number of instruction ticks to the clock and
// returns the number of timer periods that completed.
func (c *TimerClock) Advance(ticks int) int {
	c.phase += ticks * TimerFrequency
	due := c.phase / c.rate
	c.phase -= due * c.rate
	return due
}

// Period returns the duration of a single instruction tick, at least one
// nanosecond.
func (c *TimerClock) Period() time.Duration {
	return max(time.Second/time.Duration(c.rate), time.Nanosecond)
}
