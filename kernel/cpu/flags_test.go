package cpu

import "testing"

func TestIOPL(t *testing.T) {
	specs := []struct {
		flags uint64
		exp   uint8
	}{
		{0x2, 0},
		{0x202, 0},
		{0x1202, 1},
		{0x2202, 2},
		{0x3202, 3},
		{FlagIOPLMask | FlagInterrupt | FlagTrap, 3},
	}

	for specIndex, spec := range specs {
		if got := IOPL(spec.flags); got != spec.exp {
			t.Errorf("[spec %d] expected IOPL(%x) to return %d; got %d", specIndex, spec.flags, spec.exp, got)
		}
	}
}

func TestInterruptsAdmitted(t *testing.T) {
	specs := []struct {
		flags uint64
		exp   bool
	}{
		{0x2, false},
		{0x202, true},
		{FlagTrap | FlagReserved, false},
		{^FlagInterrupt, false},
		{^uint64(0), true},
	}

	for specIndex, spec := range specs {
		if got := InterruptsAdmitted(spec.flags); got != spec.exp {
			t.Errorf("[spec %d] expected InterruptsAdmitted(%x) to return %t; got %t", specIndex, spec.flags, spec.exp, got)
		}
	}
}
