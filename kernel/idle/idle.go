// Package idle parks the executing core while it has nothing to do.
package idle

import "github.com/CraftSpider/x86-64/kernel/irq"

// Park checks for pending work with interrupts suppressed and, if there is
// none, halts the core until the next interrupt. It returns the result of
// pending. Interrupts are admitted when Park returns.
//
// pending runs with interrupts suppressed, so an interrupt handler that
// queues work either runs before the check, or stays pending until the core
// halts and then wakes it up. No wakeup is lost in between.
func Park(pending func() bool) bool {
	irq.Disable()
	if pending() {
		irq.Enable()
		return true
	}

	irq.EnableAndHalt()
	return false
}

// WaitFor parks the core until ready returns true.
func WaitFor(ready func() bool) {
	for !Park(ready) {
	}
}
