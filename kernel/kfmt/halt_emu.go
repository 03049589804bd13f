//go:build irqemu || !amd64

package kfmt

import "github.com/CraftSpider/x86-64/kernel"

// haltCPU stops the calling goroutine when the kernel runs on top of the
// emulated core. The error is re-raised as a Go panic so hosted callers can
// observe it.
func haltCPU(err *kernel.Error) {
	if err == nil {
		err = errRuntimePanic
	}
	panic(err)
}
