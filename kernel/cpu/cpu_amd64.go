package cpu

//go:generate go run ../../tools/gensoftint -pkg cpu -out .

// EnableInterrupts enables interrupt handling. It is implemented as a single
// STI instruction.
func EnableInterrupts()

// DisableInterrupts disables interrupt handling. It is implemented as a single
// CLI instruction.
func DisableInterrupts()

// Halt stops instruction execution until the next interrupt arrives.
func Halt()

// EnableInterruptsAndHalt executes STI immediately followed by HLT. STI keeps
// interrupts masked until the instruction after it has completed, so an
// interrupt that is already pending when this function is entered wakes the
// HLT instead of being serviced before it.
//
// Some CPUs deliver NMIs inside the STI shadow. An NMI handler that cares
// must check whether the saved RIP points at the HLT and skip over it.
func EnableInterruptsAndHalt()

// ReadFlags returns the contents of the RFLAGS register.
func ReadFlags() uint64

// Breakpoint raises a breakpoint exception using the one-byte INT3 encoding.
func Breakpoint()

// SoftwareInterrupt raises the interrupt with the requested vector using
// INT imm8. The caller must not request vectors whose default handling is
// irrecoverable (double fault, machine check) and must satisfy whatever
// register state the installed handler expects.
func SoftwareInterrupt(vector uint8) {
	softIntTable[vector]()
}
