// Package gate defines the vocabulary shared by the interrupt control code and
// its collaborators: interrupt vector numbers and the register snapshot that
// is handed to an interrupt handler.
package gate

import (
	"io"

	"github.com/CraftSpider/x86-64/kernel/kfmt"
)

// Registers contains a snapshot of the register state when an interrupt or
// exception is delivered. Handlers may modify RIP and RFlags; the modified
// values are restored when the handler returns (IRETQ semantics).
type Registers struct {
	// Info contains the vector number that caused the handler to run.
	Info uint64

	// The return frame used by IRETQ
	RIP    uint64
	CS     uint64
	RFlags uint64
	RSP    uint64
	SS     uint64
}

// DumpTo outputs the frame contents to w.
func (r *Registers) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "VEC = %16x\n", r.Info)
	kfmt.Fprintf(w, "RIP = %16x CS  = %16x\n", r.RIP, r.CS)
	kfmt.Fprintf(w, "RSP = %16x SS  = %16x\n", r.RSP, r.SS)
	kfmt.Fprintf(w, "RFL = %16x\n", r.RFlags)
}

// InterruptNumber describes an x86 interrupt/exception/trap slot.
type InterruptNumber uint8

const (
	// DivideByZero occurs when dividing any number by 0 using the DIV or
	// IDIV instruction.
	DivideByZero = InterruptNumber(0)

	// Debug is raised by single-step traps and hardware breakpoints.
	Debug = InterruptNumber(1)

	// NMI (non-maskable-interrupt) is a hardware interrupt that indicates
	// issues with RAM or unrecoverable hardware problems. It may also be
	// raised by the CPU when a watchdog timer is enabled. NMIs ignore the
	// interrupt flag.
	NMI = InterruptNumber(2)

	// Breakpoint is raised by the INT3 instruction.
	Breakpoint = InterruptNumber(3)

	// Overflow occurs when the INTO instruction runs with OF set.
	Overflow = InterruptNumber(4)

	// InvalidOpcode occurs when the CPU attempts to execute an invalid or
	// undefined instruction opcode.
	InvalidOpcode = InterruptNumber(6)

	// DoubleFault occurs when an unhandled exception occurs or when an
	// exception occurs within a running exception handler.
	DoubleFault = InterruptNumber(8)

	// GPFException occurs when a general protection fault occurs, e.g.
	// when STI, CLI or HLT run without sufficient privilege.
	GPFException = InterruptNumber(13)

	// PageFaultException occurs when a page directory table (PDT) or one
	// of its entries is not present or when a privilege and/or RW
	// protection check fails.
	PageFaultException = InterruptNumber(14)

	// MachineCheck occurs when the CPU detects internal errors such as
	// memory-, bus- or cache-related errors.
	MachineCheck = InterruptNumber(18)

	// FirstIRQ is the first vector available to external interrupts once
	// the legacy PIC has been remapped.
	FirstIRQ = InterruptNumber(32)
)

// Destructive returns true for vectors whose architectural handling cannot
// be recovered from when raised through INT n. Raising them is a caller
// error that is documented rather than checked on release builds.
func (n InterruptNumber) Destructive() bool {
	return n == DoubleFault || n == MachineCheck
}

// IsException returns true for the vectors reserved by the architecture for
// CPU exceptions.
func (n InterruptNumber) IsException() bool {
	return n < FirstIRQ
}
