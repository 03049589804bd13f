//go:build amd64 && !irqemu

package kfmt

import (
	"github.com/CraftSpider/x86-64/kernel"
	"github.com/CraftSpider/x86-64/kernel/cpu"
)

// haltCPU masks interrupts before halting so that nothing can resume
// execution after a panic. NMIs can still wake the core, hence the loop.
func haltCPU(_ *kernel.Error) {
	cpu.DisableInterrupts()
	for {
		cpu.Halt()
	}
}
