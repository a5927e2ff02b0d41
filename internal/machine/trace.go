package machine

// EventKind identifies the type of a trace event.
type EventKind uint8

const (
	// EventExecuted is sent after an instruction was executed.
	EventExecuted EventKind = iota
	// EventKeyWait is sent when execution suspends waiting for a key.
	EventKeyWait
	// EventKeyResolved is sent when a pressed key resumes execution.
	EventKeyResolved
)

// Event describes a single step of the machine.
type Event struct {
	Kind     EventKind
	Cycle    uint64 // executed instruction count after the event
	PC       uint16 // address of the instruction
	Opcode   uint16
	Register uint8 // key wait target register
	Key      uint8 // resolved key
}

// Tracer receives execution events. It is called synchronously from the
// executor and must not modify the machine.
type Tracer interface {
	Trace(event Event)
}

func (m *Machine) trace(event Event) {
	if m.tracer != nil {
		m.tracer.Trace(event)
	}
}
