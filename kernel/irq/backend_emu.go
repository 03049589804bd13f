//go:build irqemu || !amd64

package irq

import "github.com/CraftSpider/x86-64/kernel/irq/emu"

// activeBackend starts out as a core with interrupts admitted, mirroring the
// state the kernel runs in once its IDT is loaded.
var activeBackend Backend = emu.NewCore(emu.Config{})
