package emu

import (
	"github.com/CraftSpider/x86-64/kernel"
	"github.com/CraftSpider/x86-64/kernel/cpu"
	"github.com/CraftSpider/x86-64/kernel/gate"
	"golang.org/x/arch/x86/x86asm"
)

// Exec loads code at the configured code base and executes it until the end
// of the buffer or a RET instruction. Pending interrupts are delivered at
// instruction boundaries according to the architectural rules. The end of
// the buffer counts as an instruction boundary outside of any STI shadow:
// whatever the caller does between two Exec calls takes at least one
// instruction on real hardware.
//
// Exec returns an error if the code cannot be decoded, contains an
// instruction the core does not implement, or if the core shuts down.
func (c *Core) Exec(code []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shutdown != nil {
		return errShutdown
	}

	// Handlers may call Exec themselves; restore the outer stream on exit.
	prevCode, prevBase := c.code, c.base
	c.code, c.base = code, c.cfg.CodeBase
	defer func() { c.code, c.base = prevCode, prevBase }()

	end := c.base + uint64(len(code))
	for rip := c.base; ; {
		if err := c.runLocked(rip, end); err != nil {
			return err
		}

		// The boundary after the last instruction is never shadowed. A
		// handler delivered there may redirect execution back into code.
		c.shadow = false
		if rip = c.deliverPendingLocked(end); rip == end || c.shutdown != nil {
			break
		}
	}

	if c.shutdown != nil {
		return c.shutdown
	}
	return nil
}

// runLocked executes instructions starting at rip until it reaches end or a
// RET instruction.
func (c *Core) runLocked(rip, end uint64) error {
	for rip != end {
		if rip < c.base || rip > end {
			return c.shutdownLocked(errBadReturnFrame)
		}

		inst, ok := decode(c.code[rip-c.base:])
		if !ok {
			c.tracef("%16x  (bad)\n", rip)
			return errDecode
		}

		c.rip = rip
		c.tracef("%16x  %s\n", rip, x86asm.GoSyntax(inst, rip, nil))

		next, stop, kerr := c.step(inst, rip, rip+uint64(inst.Len))
		if kerr != nil {
			return kerr
		}

		if stop {
			break
		}
		rip = next
	}

	return nil
}

// decode decodes the 64-bit instruction at the start of code. x86asm reports
// truncated input as an instruction with a zero Op rather than an error.
func decode(code []byte) (x86asm.Inst, bool) {
	inst, err := x86asm.Decode(code, 64)
	if err != nil || inst.Op == 0 {
		return x86asm.Inst{}, false
	}
	return inst, true
}

// step executes a single instruction located at rip. It returns the address
// of the next instruction and whether execution should stop.
func (c *Core) step(inst x86asm.Inst, rip, next uint64) (uint64, bool, *kernel.Error) {
	// STI only shadows the instruction immediately after it.
	c.shadow = false

	switch inst.Op {
	case x86asm.NOP:
	case x86asm.STI:
		if !c.ioPrivilegedLocked() {
			return c.faultLocked(gate.GPFException, rip)
		}
		if c.rflags&cpu.FlagInterrupt == 0 {
			c.shadow = true
		}
		c.rflags |= cpu.FlagInterrupt
	case x86asm.CLI:
		if !c.ioPrivilegedLocked() {
			return c.faultLocked(gate.GPFException, rip)
		}
		c.rflags &^= cpu.FlagInterrupt
	case x86asm.HLT:
		if c.cpl != 0 {
			return c.faultLocked(gate.GPFException, rip)
		}
		return c.haltLocked(next)
	case x86asm.INT:
		imm, ok := inst.Args[0].(x86asm.Imm)
		if !ok {
			return next, true, errDecode
		}

		vector := gate.InterruptNumber(imm)
		if vector.Destructive() {
			return next, true, c.shutdownLocked(errDestructive)
		}

		// Software interrupts are traps: the saved RIP points past
		// the INT instruction and no boundary check is needed before
		// the handler runs.
		next = c.deliverLocked(vector, next)
		if err := c.shutdownErr(); err != nil {
			return next, true, err
		}
	case x86asm.RET:
		c.deliverPendingLocked(next)
		return next, true, c.shutdownErr()
	default:
		c.tracef("unsupported instruction at %x\n", rip)
		return next, true, errUnsupported
	}

	next = c.deliverPendingLocked(next)
	return next, false, c.shutdownErr()
}

// haltLocked suspends the core until an interrupt can be delivered. The
// interrupt frame records the address after HLT so the handler returns past
// it.
func (c *Core) haltLocked(next uint64) (uint64, bool, *kernel.Error) {
	c.halted = true
	c.tracef("halted\n")
	c.cond.Broadcast()

	for !c.deliverableLocked() {
		if c.shutdown != nil {
			return next, true, c.shutdown
		}
		c.cond.Wait()
	}

	c.halted = false
	next = c.deliverPendingLocked(next)
	return next, false, c.shutdownErr()
}

// faultLocked raises an exception for the instruction at rip. Exceptions are
// faults: the handler sees RIP pointing at the faulting instruction and
// execution resumes wherever the handler leaves it.
func (c *Core) faultLocked(vector gate.InterruptNumber, rip uint64) (uint64, bool, *kernel.Error) {
	c.tracef("fault: vector %d at %x\n", uint8(vector), rip)
	next := c.deliverLocked(vector, rip)
	if err := c.shutdownErr(); err != nil {
		return next, true, err
	}
	return next, false, nil
}

// deliverableLocked reports whether an interrupt can be delivered at the
// current instruction boundary.
func (c *Core) deliverableLocked() bool {
	if c.nmiPending && !c.nmiActive && (!c.shadow || c.cfg.NMIBypassesShadow) {
		return true
	}

	return !c.shadow && c.rflags&cpu.FlagInterrupt != 0 && len(c.pending) != 0
}

// deliverPendingLocked delivers every interrupt that is deliverable at the
// boundary before rip and returns the address where execution resumes.
func (c *Core) deliverPendingLocked(rip uint64) uint64 {
	for c.shutdown == nil && c.deliverableLocked() {
		var vector gate.InterruptNumber
		if c.nmiPending && !c.nmiActive && (!c.shadow || c.cfg.NMIBypassesShadow) {
			c.nmiPending = false
			vector = gate.NMI
		} else {
			vector = c.pending[0]
			c.pending = c.pending[1:]
		}

		rip = c.deliverLocked(vector, rip)
	}

	return rip
}

// deliverLocked enters the handler for vector through an interrupt gate and
// emulates IRETQ once the handler returns. The core mutex is released while
// the handler runs.
func (c *Core) deliverLocked(vector gate.InterruptNumber, rip uint64) uint64 {
	handler := c.handlers[vector]
	if handler == nil {
		c.shutdownLocked(errUnhandled)
		return rip
	}

	frame := gate.Registers{
		Info:   uint64(vector),
		RIP:    rip,
		CS:     kernelCS,
		RFlags: c.rflags,
	}
	if c.cpl == 3 {
		frame.CS = userCS
	}

	kind := "interrupt"
	if vector.IsException() {
		kind = "exception"
	}
	c.tracef("deliver %s vector %d, return to %x\n", kind, uint8(vector), rip)
	if c.trace != nil {
		frame.DumpTo(c.trace)
	}
	c.delivered = append(c.delivered, vector)
	c.rflags &^= cpu.FlagInterrupt | cpu.FlagTrap
	c.cpl = 0
	c.shadow = false
	if vector == gate.NMI {
		c.nmiActive = true
	}

	c.mu.Unlock()
	handler(&frame)
	c.mu.Lock()

	// IRETQ
	c.rflags = frame.RFlags | cpu.FlagReserved
	c.cpl = uint8(frame.CS & 3)
	if vector == gate.NMI {
		c.nmiActive = false
	}
	c.tracef("iretq to %x\n", frame.RIP)

	return frame.RIP
}

// ioPrivilegedLocked reports whether STI and CLI may run at the current
// privilege level.
func (c *Core) ioPrivilegedLocked() bool {
	return c.cpl <= cpu.IOPL(c.rflags)
}

func (c *Core) shutdownErr() *kernel.Error {
	return c.shutdown
}

// DecodeAt decodes the instruction at rip in the stream currently being
// executed. NMI handlers use it to detect that they interrupted the HLT
// that follows an STI.
func (c *Core) DecodeAt(rip uint64) (x86asm.Inst, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rip < c.base || rip >= c.base+uint64(len(c.code)) {
		return x86asm.Inst{}, false
	}

	return decode(c.code[rip-c.base:])
}
