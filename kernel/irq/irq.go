// Package irq controls whether the executing core admits maskable
// interrupts.
//
// The admission state is a property of the core, not of a goroutine or a
// task. Suppressing interrupts protects a block of code from being preempted
// by an interrupt handler running on the same core; it provides no mutual
// exclusion against other cores.
//
// All functions read or write the hardware flag directly; nothing in this
// package caches it.
package irq

import (
	"github.com/CraftSpider/x86-64/kernel"
	"github.com/CraftSpider/x86-64/kernel/gate"
	"github.com/CraftSpider/x86-64/kernel/kfmt"
)

var (
	errUnbalancedToggle  = &kernel.Error{Module: "irq", Message: "interrupts enabled inside a section that suppresses them"}
	errStaleState        = &kernel.Error{Module: "irq", Message: "Restore called with a zero or already restored State"}
	errDestructiveVector = &kernel.Error{Module: "irq", Message: "software interrupt requested for a destructive vector"}

	// debugChecks enables misuse detection. It is turned on by building
	// with the irqdebug tag and toggled directly by tests.
	debugChecks = debugBuild

	// panicFn is mocked by tests.
	panicFn = kfmt.Panic
)

// AreEnabled returns true if the executing core currently admits maskable
// interrupts.
func AreEnabled() bool {
	return activeBackend.InterruptsEnabled()
}

// Enable admits maskable interrupts (STI). It must run at a privilege level
// that allows it; otherwise the CPU raises a general protection fault.
func Enable() {
	activeBackend.SetInterrupts(true)
}

// Disable suppresses maskable interrupts (CLI). It must run at a privilege
// level that allows it; otherwise the CPU raises a general protection fault.
func Disable() {
	activeBackend.SetInterrupts(false)
}

// State records whether interrupts were admitted when Save was called. A
// State is only valid when obtained from Save and can be restored once.
type State struct {
	wasEnabled bool
	valid      bool
}

// Save suppresses interrupts if they are admitted and returns a State that
// must be passed to Restore to end the suppressed section.
func Save() State {
	enabled := AreEnabled()
	if enabled {
		Disable()
	}

	return State{wasEnabled: enabled, valid: true}
}

// Restore ends a section started by Save. Interrupts are re-admitted only if
// they were admitted when Save was called, so sections nest as long as they
// are closed in reverse order. Restore invalidates s; restoring it again has
// no effect.
//
// Calling Enable or Disable between Save and Restore is not supported. When
// built with the irqdebug tag, Restore panics if it finds interrupts admitted
// on exit or is handed an invalid State.
func Restore(s *State) {
	if debugChecks {
		switch {
		case !s.valid:
			panicFn(errStaleState)
			return
		case AreEnabled():
			panicFn(errUnbalancedToggle)
			return
		}
	}

	if s.valid && s.wasEnabled {
		Enable()
	}
	s.valid = false
}

// WithoutInterrupts runs work with interrupts suppressed and returns its
// result. If interrupts were admitted on entry they are admitted again once
// work returns or panics; if they were already suppressed the call is a
// plain pass-through.
//
//	// interrupts are admitted
//	irq.WithoutInterrupts(func() int {
//		// interrupts are suppressed
//		irq.WithoutInterrupts(func() int {
//			// interrupts are suppressed
//			return 0
//		})
//		// interrupts are still suppressed
//		return 0
//	})
//	// interrupts are admitted again
//
// work must not call Enable or Disable.
func WithoutInterrupts[R any](work func() R) R {
	state := Save()
	defer Restore(&state)

	return work()
}

// RunWithoutInterrupts is WithoutInterrupts for work that returns nothing.
func RunWithoutInterrupts(work func()) {
	state := Save()
	defer Restore(&state)

	work()
}

// EnableAndHalt admits interrupts and halts the core until the next
// interrupt arrives, without a window in between. STI delays interrupt
// delivery until the instruction after it has run, so the pattern
//
//	irq.Disable()
//	if nothingToDo() {
//		irq.EnableAndHalt()
//	}
//
// cannot miss an interrupt that fires after the check: the interrupt stays
// pending until HLT takes effect and then wakes the core immediately.
//
// Some CPUs deliver NMIs inside the STI shadow. If an NMI handler returns to
// the HLT, the core sleeps even though an interrupt may have been serviced
// in the meantime. NMI handlers that care must detect a saved RIP pointing at
// the HLT and advance it past the instruction.
func EnableAndHalt() {
	activeBackend.EnableAndHalt()
}

// Breakpoint raises a breakpoint exception (INT3).
func Breakpoint() {
	activeBackend.RaiseTrap(gate.Breakpoint)
}

// SoftwareInterrupt synchronously raises the given vector (INT imm8).
//
// Raising a vector whose default handling is irrecoverable, such as
// gate.DoubleFault or gate.MachineCheck, may reset the machine. The handler
// for vector may also expect arguments in registers that Go code cannot set
// up. Both are the caller's responsibility; only builds using the irqdebug
// tag reject destructive vectors.
func SoftwareInterrupt(vector gate.InterruptNumber) {
	if debugChecks && vector.Destructive() {
		panicFn(errDestructiveVector)
		return
	}

	activeBackend.RaiseTrap(vector)
}
