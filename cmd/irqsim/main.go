package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/CraftSpider/x86-64/kernel/cpu"
	"github.com/CraftSpider/x86-64/kernel/kfmt"
	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	flagColor = color.New(color.FgCyan)
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[irqsim] error: %s\n", err.Error())
	os.Exit(1)
}

// dumpFlags prints the RFLAGS bits that matter for interrupt admission.
func dumpFlags(w io.Writer, flags uint64) {
	s := "RFLAGS="
	if flags&cpu.FlagTrap != 0 {
		s += "TF "
	}
	if flags&cpu.FlagInterrupt != 0 {
		s += "IF "
	}
	s += fmt.Sprintf("IOPL=%d\n", cpu.IOPL(flags))
	flagColor.Fprint(w, s)
}

// report prints the outcome of a scenario and returns true if it passed.
func report(w io.Writer, s scenario, res result) bool {
	verdict := passColor.Sprint("PASS")
	if !res.ok {
		verdict = failColor.Sprint("FAIL")
	}

	fmt.Fprintf(w, "%s %-7s %s\n", verdict, s.name, s.descr)
	fmt.Fprintf(w, "       %s\n       ", res.detail)
	dumpFlags(w, res.flags)
	for _, fault := range res.faults {
		fmt.Fprintf(w, "       fault [%s] %s\n", fault.Module, fault.Message)
	}

	return res.ok
}

func runTool() error {
	names := flag.String("scenario", "all", "comma-separated scenarios to run: fused, split, nmi, trap, nested or all")
	nmiBypass := flag.Bool("nmi-bypass", true, "emulate a CPU that delivers NMIs inside the STI shadow")
	timeout := flag.Duration("timeout", 200*time.Millisecond, "how long to wait before declaring a halted core asleep")
	trace := flag.Bool("trace", false, "print the instructions executed by the emulated core")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "irqsim: exercise interrupt admission control on an emulated x86-64 core\n\n")
		fmt.Fprint(os.Stderr, "Usage: irqsim [options]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	selected, ok := findScenarios(*names)
	if !ok {
		return fmt.Errorf("unknown scenario in %q", *names)
	}

	cfg := simConfig{timeout: *timeout, nmiBypass: *nmiBypass}
	if *trace {
		cfg.trace = os.Stdout
	}
	kfmt.SetOutputSink(os.Stderr)

	var failed []string
	for _, s := range selected {
		if !report(os.Stdout, s, s.run(cfg)) {
			failed = append(failed, s.name)
		}
	}

	if len(failed) != 0 {
		return errors.New("failed scenarios: " + strings.Join(failed, ", "))
	}
	return nil
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
