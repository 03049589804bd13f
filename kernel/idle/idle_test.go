package idle

import (
	"testing"
	"time"

	"github.com/CraftSpider/x86-64/kernel/gate"
	"github.com/CraftSpider/x86-64/kernel/irq"
	"github.com/CraftSpider/x86-64/kernel/irq/emu"
)

const timerVector = gate.FirstIRQ

func TestPark(t *testing.T) {
	core := emu.NewCore(emu.Config{})
	defer irq.SetBackend(irq.SetBackend(core))

	var queued int
	core.HandleInterrupt(timerVector, func(_ *gate.Registers) { queued++ })

	t.Run("work already pending", func(t *testing.T) {
		queued = 1
		if !Park(func() bool { return queued != 0 }) {
			t.Fatal("expected Park to report pending work")
		}

		if core.Halted() || !irq.AreEnabled() {
			t.Fatal("expected Park to return with interrupts admitted and without halting")
		}
	})

	t.Run("interrupt after the check", func(t *testing.T) {
		queued = 0

		done := make(chan bool, 1)
		go func() {
			done <- Park(func() bool {
				// The device raises its interrupt right after the
				// queue was found empty.
				core.Inject(timerVector)
				return queued != 0
			})
		}()

		select {
		case gotWork := <-done:
			if gotWork {
				t.Fatal("expected the check itself to find no work")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Park slept through an interrupt raised after the check")
		}

		if queued != 1 {
			t.Fatalf("expected the handler to queue work; queued=%d", queued)
		}
	})
}

func TestWaitFor(t *testing.T) {
	core := emu.NewCore(emu.Config{})
	defer irq.SetBackend(irq.SetBackend(core))

	var ticks int
	core.HandleInterrupt(timerVector, func(_ *gate.Registers) { ticks++ })

	done := make(chan struct{})
	go func() {
		WaitFor(func() bool { return ticks >= 3 })
		close(done)
	}()

	for i := 0; i < 3; i++ {
		core.WaitHalted()
		core.Inject(timerVector)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitFor did not return after 3 interrupts")
	}

	if ticks != 3 {
		t.Fatalf("expected 3 ticks; got %d", ticks)
	}
}
