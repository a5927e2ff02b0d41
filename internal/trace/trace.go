// Package trace implements a machine tracer that writes execution events to
// the structured logger.
package trace

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// Compile-time check to ensure Logger implements machine.Tracer.
var _ machine.Tracer = (*Logger)(nil)

// Logger logs every machine event at debug level.
type Logger struct {
	logger *log.Logger
}

// New returns a tracer writing to the given logger.
func New(logger *log.Logger) *Logger {
	return &Logger{
		logger: logger,
	}
}

// Trace logs a machine event.
func (l *Logger) Trace(event machine.Event) {
	switch event.Kind {
	case machine.EventExecuted:
		l.logger.Debug("Opcode executed",
			log.Hex("pc", event.PC),
			log.Hex("opcode", event.Opcode),
			log.String("instruction", chip8.Disassemble(event.Opcode)),
			log.Int("cycle", int(event.Cycle)),
		)

	case machine.EventKeyWait:
		l.logger.Debug("Waiting for key",
			log.Hex("pc", event.PC),
			log.Uint8("register", event.Register),
		)

	case machine.EventKeyResolved:
		l.logger.Debug("Key pressed",
			log.Uint8("register", event.Register),
			log.Uint8("key", event.Key),
		)
	}
}
