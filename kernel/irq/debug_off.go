//go:build !irqdebug

package irq

const debugBuild = false
