package irq

import "github.com/CraftSpider/x86-64/kernel/gate"

// Backend executes the privileged instructions behind the functions in this
// package. Exactly one backend is active at a time; which one is selected at
// build time:
//
//	default      the cpu package's assembly routines (STI, CLI, STI;HLT, INT)
//	-tags irqemu an emulated core from the emu package
//
// Every call site in this package goes through the active backend so no
// caller needs to know which one is in use.
type Backend interface {
	// InterruptsEnabled returns the live value of the interrupt flag.
	InterruptsEnabled() bool

	// SetInterrupts sets or clears the interrupt flag.
	SetInterrupts(enabled bool)

	// EnableAndHalt sets the interrupt flag and halts as one indivisible
	// sequence.
	EnableAndHalt()

	// RaiseTrap synchronously raises the given vector.
	RaiseTrap(vector gate.InterruptNumber)
}

// SetBackend replaces the active backend and returns the previous one.
// Hosted tools use it to drive the package against an emulated core; kernel
// code never needs to call it.
func SetBackend(b Backend) Backend {
	prev := activeBackend
	activeBackend = b
	return prev
}

// ActiveBackend returns the backend currently in use.
func ActiveBackend() Backend {
	return activeBackend
}
