package machine

// Option configures a machine at creation.
type Option func(*Machine)

// Quirks select behavior variations for instructions whose semantics differ
// between interpreters. The zero value keeps the reference behavior of this
// machine: 5XY0 skips if the registers differ and FX33 writes its digits to
// I+1..I+3.
type Quirks struct {
	SkipEqualRegisters bool // 5XY0 skips if VX equals VY
	BCDAtI             bool // FX33 writes its digits to I..I+2
}

// CompatQuirks returns the quirks matching the behavior of common
// interpreters, as expected by most existing program images.
func CompatQuirks() Quirks {
	return Quirks{
		SkipEqualRegisters: true,
		BCDAtI:             true,
	}
}

// WithRandom sets the random byte source used by CXNN.
func WithRandom(random RandomSource) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// WithTracer sets a tracer that receives execution events.
func WithTracer(tracer Tracer) Option {
	return func(m *Machine) {
		m.tracer = tracer
	}
}

// WithQuirks sets the instruction behavior variations.
func WithQuirks(quirks Quirks) Option {
	return func(m *Machine) {
		m.quirks = quirks
	}
}
