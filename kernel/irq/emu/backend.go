package emu

import (
	"github.com/CraftSpider/x86-64/kernel"
	"github.com/CraftSpider/x86-64/kernel/cpu"
	"github.com/CraftSpider/x86-64/kernel/gate"
)

// Machine code run by the irq.Backend methods; the same bytes the assembly
// routines in the cpu package consist of.
var (
	codeSTI    = []byte{0xFB}
	codeCLI    = []byte{0xFA}
	codeHLT    = []byte{0xF4}
	codeSTIHLT = []byte{0xFB, 0xF4}
	codeINT3   = []byte{0xCC}
	opcodeINT  = byte(0xCD)
)

// InterruptsEnabled reports whether the interrupt flag is set.
func (c *Core) InterruptsEnabled() bool {
	return cpu.InterruptsAdmitted(c.Flags())
}

// SetInterrupts executes STI or CLI.
func (c *Core) SetInterrupts(enabled bool) {
	if enabled {
		c.run(codeSTI)
		return
	}
	c.run(codeCLI)
}

// EnableAndHalt executes STI immediately followed by HLT.
func (c *Core) EnableAndHalt() {
	c.run(codeSTIHLT)
}

// Halt executes a lone HLT.
func (c *Core) Halt() {
	c.run(codeHLT)
}

// RaiseTrap executes INT3 for the breakpoint vector and INT imm8 for any
// other vector.
func (c *Core) RaiseTrap(vector gate.InterruptNumber) {
	if vector == gate.Breakpoint {
		c.run(codeINT3)
		return
	}
	c.run([]byte{opcodeINT, byte(vector)})
}

// run executes code and routes any failure to the configured fault handler,
// the emulated counterpart of the platform's fault delivery path.
func (c *Core) run(code []byte) {
	err := c.Exec(code)
	if err == nil {
		return
	}

	kerr, ok := err.(*kernel.Error)
	if !ok {
		kerr = &kernel.Error{Module: "emu", Message: err.Error()}
	}
	c.cfg.FaultHandler(kerr)
}
