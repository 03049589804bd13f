package main

import (
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/CraftSpider/x86-64/kernel"
	"github.com/CraftSpider/x86-64/kernel/cpu"
	"github.com/CraftSpider/x86-64/kernel/gate"
	"github.com/CraftSpider/x86-64/kernel/irq"
	"github.com/CraftSpider/x86-64/kernel/irq/emu"
	"golang.org/x/arch/x86/x86asm"
)

const timerVector = gate.FirstIRQ

// simConfig holds the settings shared by all scenarios.
type simConfig struct {
	timeout   time.Duration
	nmiBypass bool
	trace     io.Writer
}

// result describes the outcome of a scenario. ok is true when the core
// behaved the way the scenario expects it to.
type result struct {
	ok     bool
	detail string
	flags  uint64
	faults []*kernel.Error
}

type scenario struct {
	name  string
	descr string
	run   func(simConfig) result
}

var scenarios = []scenario{
	{"fused", "STI;HLT as one routine wakes on an interrupt raised after the idle check", runFused},
	{"split", "STI and HLT as separate routines sleep through that interrupt", runSplit},
	{"nmi", "an NMI inside the STI shadow, with and without the HLT skip in the NMI handler", runNMI},
	{"trap", "INT3 and INT 0x80 reach their handlers synchronously", runTrap},
	{"nested", "nested suppressed sections restore admission only at the outermost exit", runNested},
}

// findScenarios resolves a comma-separated list of scenario names. The name
// "all" selects every scenario.
func findScenarios(names string) ([]scenario, bool) {
	if names == "all" {
		return scenarios, true
	}

	var selected []scenario
	for _, name := range strings.Split(names, ",") {
		found := false
		for _, s := range scenarios {
			if s.name == strings.TrimSpace(name) {
				selected = append(selected, s)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return selected, true
}

// simCore wraps an emulated core that counts timer ticks and records faults
// instead of panicking.
type simCore struct {
	*emu.Core
	ticks  int32
	faults []*kernel.Error
}

func newSimCore(cfg simConfig, nmiBypass bool) *simCore {
	sc := &simCore{}
	sc.Core = emu.NewCore(emu.Config{
		NMIBypassesShadow: nmiBypass,
		InitialFlags:      cpu.FlagReserved,
		Trace:             cfg.trace,
		FaultHandler:      func(err *kernel.Error) { sc.faults = append(sc.faults, err) },
	})
	sc.HandleInterrupt(timerVector, func(_ *gate.Registers) {
		atomic.AddInt32(&sc.ticks, 1)
	})
	return sc
}

func (sc *simCore) tickCount() int32 {
	return atomic.LoadInt32(&sc.ticks)
}

func (sc *simCore) result(ok bool, detail string) result {
	return result{ok: ok, detail: detail, flags: sc.Flags(), faults: sc.faults}
}

// runWithin runs fn on a separate goroutine and reports whether it returned
// within timeout. If it did not, release is called to unblock fn and
// runWithin waits for it to finish.
func runWithin(timeout time.Duration, fn, release func()) bool {
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		release()
		<-done
		return false
	}
}

func runFused(cfg simConfig) result {
	sc := newSimCore(cfg, false)
	defer irq.SetBackend(irq.SetBackend(sc.Core))

	irq.Disable()
	// idle check found nothing; the device fires right after it
	sc.Inject(timerVector)

	woke := runWithin(cfg.timeout, irq.EnableAndHalt, func() { sc.Inject(timerVector) })
	if !woke {
		return sc.result(false, "core slept through the pending interrupt")
	}
	return sc.result(sc.tickCount() == 1, "pending interrupt woke HLT immediately")
}

func runSplit(cfg simConfig) result {
	sc := newSimCore(cfg, false)
	defer irq.SetBackend(irq.SetBackend(sc.Core))

	irq.Disable()
	sc.Inject(timerVector)
	irq.Enable()

	woke := runWithin(cfg.timeout, sc.Halt, func() { sc.Inject(timerVector) })
	if woke {
		return sc.result(false, "HLT returned although the interrupt was serviced before it")
	}
	return sc.result(sc.tickCount() == 2, "interrupt serviced between STI and HLT; woken only by the next one")
}

func runNMI(cfg simConfig) result {
	sleepsWithoutSkip, _ := nmiSleeps(cfg, false)
	sleepsWithSkip, sc := nmiSleeps(cfg, true)

	switch {
	case sleepsWithSkip:
		return sc.result(false, "core slept although the NMI handler skipped HLT")
	case sleepsWithoutSkip && cfg.nmiBypass:
		return sc.result(true, "NMI in the shadow made HLT sleep; skipping HLT in the handler fixes it")
	case cfg.nmiBypass:
		return sc.result(false, "expected the NMI in the shadow to make HLT sleep")
	default:
		return sc.result(!sleepsWithoutSkip, "NMI honored the shadow; HLT woke without help")
	}
}

// nmiSleeps reports whether EnableAndHalt sleeps through a pending timer
// interrupt when an NMI is pending as well.
func nmiSleeps(cfg simConfig, skipHLT bool) (bool, *simCore) {
	sc := newSimCore(cfg, cfg.nmiBypass)
	defer irq.SetBackend(irq.SetBackend(sc.Core))

	sc.HandleInterrupt(gate.NMI, func(frame *gate.Registers) {
		if !skipHLT {
			return
		}
		if inst, ok := sc.DecodeAt(frame.RIP); ok && inst.Op == x86asm.HLT {
			frame.RIP += uint64(inst.Len)
		}
	})

	irq.Disable()
	sc.InjectNMI()
	sc.Inject(timerVector)

	woke := runWithin(cfg.timeout, irq.EnableAndHalt, func() { sc.Inject(timerVector) })
	return !woke, sc
}

func runTrap(cfg simConfig) result {
	sc := newSimCore(cfg, false)
	defer irq.SetBackend(irq.SetBackend(sc.Core))

	var got []gate.InterruptNumber
	record := func(frame *gate.Registers) {
		got = append(got, gate.InterruptNumber(frame.Info))
	}
	sc.HandleInterrupt(gate.Breakpoint, record)
	sc.HandleInterrupt(gate.InterruptNumber(0x80), record)

	irq.Breakpoint()
	irq.SoftwareInterrupt(gate.InterruptNumber(0x80))

	ok := len(got) == 2 && got[0] == gate.Breakpoint && got[1] == 0x80 && len(sc.faults) == 0
	return sc.result(ok, "traps delivered in program order regardless of IF")
}

func runNested(cfg simConfig) result {
	sc := newSimCore(cfg, false)
	defer irq.SetBackend(irq.SetBackend(sc.Core))

	irq.Enable()

	var inner, afterInner bool
	irq.RunWithoutInterrupts(func() {
		irq.RunWithoutInterrupts(func() {
			inner = irq.AreEnabled()
		})
		afterInner = irq.AreEnabled()
	})

	ok := !inner && !afterInner && irq.AreEnabled()
	return sc.result(ok, "inner exit kept interrupts suppressed; outer exit admitted them")
}
