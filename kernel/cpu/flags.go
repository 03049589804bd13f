package cpu

// RFLAGS bits consulted by the interrupt control code. Only the bits that
// affect interrupt admission are listed here.
const (
	// FlagReserved is always set by the CPU.
	FlagReserved = uint64(1) << 1

	// FlagTrap enables single-step debug traps.
	FlagTrap = uint64(1) << 8

	// FlagInterrupt is set when maskable interrupts are admitted.
	FlagInterrupt = uint64(1) << 9

	// FlagIOPLMask selects the two I/O privilege level bits. STI and CLI
	// raise a general protection fault when CPL > IOPL.
	FlagIOPLMask = uint64(3) << 12

	flagIOPLShift = 12
)

// IOPL extracts the I/O privilege level from an RFLAGS value.
func IOPL(flags uint64) uint8 {
	return uint8((flags & FlagIOPLMask) >> flagIOPLShift)
}

// InterruptsAdmitted reports whether the interrupt flag is set in flags.
func InterruptsAdmitted(flags uint64) bool {
	return flags&FlagInterrupt != 0
}
