//go:build amd64 && !irqemu

package irq

import (
	"github.com/CraftSpider/x86-64/kernel/cpu"
	"github.com/CraftSpider/x86-64/kernel/gate"
)

var activeBackend Backend = nativeBackend{}

// nativeBackend runs the instructions on the executing core.
type nativeBackend struct{}

func (nativeBackend) InterruptsEnabled() bool {
	return cpu.InterruptsAdmitted(cpu.ReadFlags())
}

func (nativeBackend) SetInterrupts(enabled bool) {
	if enabled {
		cpu.EnableInterrupts()
		return
	}
	cpu.DisableInterrupts()
}

func (nativeBackend) EnableAndHalt() {
	cpu.EnableInterruptsAndHalt()
}

func (nativeBackend) RaiseTrap(vector gate.InterruptNumber) {
	if vector == gate.Breakpoint {
		cpu.Breakpoint()
		return
	}
	cpu.SoftwareInterrupt(uint8(vector))
}
