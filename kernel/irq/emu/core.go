// Package emu implements a single emulated x86-64 core that executes the
// interrupt control instructions (STI, CLI, HLT, INT3, INT imm8) from their
// real machine encodings. It models the parts of the architecture that make
// interrupt admission subtle: the interrupt flag, the one-instruction STI
// shadow, HLT wakeups, NMIs, interrupt-gate entry and IRETQ.
//
// A Core satisfies the irq.Backend interface and is selected as the active
// backend when the kernel is built with the irqemu tag. Tests use it directly
// to reproduce interrupt races deterministically.
package emu

import (
	"io"
	"sync"

	"github.com/CraftSpider/x86-64/kernel"
	"github.com/CraftSpider/x86-64/kernel/cpu"
	"github.com/CraftSpider/x86-64/kernel/gate"
	"github.com/CraftSpider/x86-64/kernel/kfmt"
)

const (
	// DefaultCodeBase is the address at which executed code is assumed to
	// be loaded when Config.CodeBase is not set.
	DefaultCodeBase = uint64(0x100000)

	kernelCS = uint64(0x08)
	userCS   = uint64(0x1b)
)

var (
	errShutdown       = &kernel.Error{Module: "emu", Message: "core is shut down"}
	errUnhandled      = &kernel.Error{Module: "emu", Message: "no handler installed for delivered vector; triple fault"}
	errDestructive    = &kernel.Error{Module: "emu", Message: "software interrupt raised a destructive vector; machine reset"}
	errDecode         = &kernel.Error{Module: "emu", Message: "unable to decode instruction"}
	errUnsupported    = &kernel.Error{Module: "emu", Message: "unsupported instruction"}
	errBadReturnFrame = &kernel.Error{Module: "emu", Message: "handler returned to an address outside the executing code"}
)

// Handler is invoked when the core delivers an interrupt. Modifications to
// the supplied frame are restored when the handler returns.
type Handler func(*gate.Registers)

// Config tunes the behavior of a Core.
type Config struct {
	// NMIBypassesShadow makes NMIs deliverable between STI and the
	// instruction that follows it, as some CPU implementations do.
	NMIBypassesShadow bool

	// InitialFlags is the RFLAGS value the core starts with. If zero,
	// the core starts with interrupts admitted.
	InitialFlags uint64

	// CodeBase is the virtual address at which code passed to Exec is
	// loaded. It defaults to DefaultCodeBase.
	CodeBase uint64

	// Trace receives a disassembly of every executed instruction and a
	// line for every delivered interrupt. Tracing is disabled when nil.
	Trace io.Writer

	// FaultHandler is invoked when a fault cannot be delivered through a
	// handler and the core shuts down while being driven through the
	// irq.Backend methods. It defaults to a Go panic with the error as its
	// value, so hosted callers can recover it.
	FaultHandler func(*kernel.Error)
}

// Core is an emulated x86-64 core. All methods are safe for concurrent use;
// Inject and InjectNMI are meant to be called from goroutines that play the
// role of devices or other cores. Exec must only be driven by one goroutine
// at a time, which plays the role of the code running on the core.
type Core struct {
	mu   sync.Mutex
	cond *sync.Cond
	cfg  Config

	trace io.Writer

	rflags uint64
	rip    uint64
	cpl    uint8

	// code and base describe the instruction stream being executed.
	code []byte
	base uint64

	pending    []gate.InterruptNumber
	nmiPending bool
	nmiActive  bool
	shadow     bool
	halted     bool
	shutdown   *kernel.Error

	handlers  [256]Handler
	delivered []gate.InterruptNumber
}

// NewCore creates a core running at CPL 0 using the supplied configuration.
func NewCore(cfg Config) *Core {
	if cfg.CodeBase == 0 {
		cfg.CodeBase = DefaultCodeBase
	}
	if cfg.InitialFlags == 0 {
		cfg.InitialFlags = cpu.FlagInterrupt
	}
	if cfg.FaultHandler == nil {
		cfg.FaultHandler = func(err *kernel.Error) { panic(err) }
	}

	c := &Core{
		cfg:    cfg,
		rflags: cfg.InitialFlags | cpu.FlagReserved,
		rip:    cfg.CodeBase,
	}
	c.cond = sync.NewCond(&c.mu)

	if cfg.Trace != nil {
		c.trace = &kfmt.PrefixWriter{Sink: cfg.Trace, Prefix: []byte("[emu] ")}
	}

	return c
}

// HandleInterrupt installs handler for the given vector. Passing a nil
// handler removes any installed handler.
func (c *Core) HandleInterrupt(vector gate.InterruptNumber, handler Handler) {
	c.mu.Lock()
	c.handlers[vector] = handler
	c.mu.Unlock()
}

// Inject raises an asynchronous interrupt. Maskable vectors stay pending until
// the core reaches an instruction boundary with interrupts admitted; injecting
// gate.NMI is equivalent to calling InjectNMI.
func (c *Core) Inject(vector gate.InterruptNumber) {
	if vector == gate.NMI {
		c.InjectNMI()
		return
	}

	c.mu.Lock()
	c.pending = append(c.pending, vector)
	c.tracef("inject vector %d\n", uint8(vector))
	c.cond.Broadcast()
	c.mu.Unlock()
}

// InjectNMI latches a non-maskable interrupt. NMIs ignore the interrupt flag
// and are blocked only while another NMI handler runs.
func (c *Core) InjectNMI() {
	c.mu.Lock()
	c.nmiPending = true
	c.tracef("inject NMI\n")
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Flags returns the current RFLAGS value.
func (c *Core) Flags() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rflags
}

// RIP returns the address of the last instruction the core started to
// execute.
func (c *Core) RIP() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rip
}

// SetPrivilege changes the current privilege level. Only the two levels used
// by x86-64 kernels are meaningful: 0 (kernel) and 3 (user).
func (c *Core) SetPrivilege(cpl uint8) {
	c.mu.Lock()
	c.cpl = cpl & 3
	c.mu.Unlock()
}

// Halted reports whether the core is currently suspended by HLT.
func (c *Core) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// WaitHalted blocks until the core executes HLT or shuts down.
func (c *Core) WaitHalted() {
	c.mu.Lock()
	for !c.halted && c.shutdown == nil {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// Pending returns the number of maskable interrupts waiting for delivery.
func (c *Core) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Delivered returns the vectors delivered so far, in delivery order.
func (c *Core) Delivered() []gate.InterruptNumber {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]gate.InterruptNumber(nil), c.delivered...)
}

// Err returns the error that caused the core to shut down or nil if the core
// is still running.
func (c *Core) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shutdown == nil {
		return nil
	}
	return c.shutdown
}

func (c *Core) tracef(format string, args ...interface{}) {
	if c.trace != nil {
		kfmt.Fprintf(c.trace, format, args...)
	}
}

// shutdownLocked stops the core; any halted Exec call returns err.
func (c *Core) shutdownLocked(err *kernel.Error) *kernel.Error {
	if c.shutdown == nil {
		c.shutdown = err
		c.tracef("shutdown: %s\n", err.Message)
	}
	c.halted = false
	c.cond.Broadcast()
	return c.shutdown
}
