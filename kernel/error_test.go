package kernel

import "testing"

func TestKernelError(t *testing.T) {
	specs := []*Error{
		{Module: "irq", Message: "interrupts re-enabled inside a suppressed section"},
		{Module: "emu", Message: ""},
	}

	for specIndex, err := range specs {
		var asErr error = err
		if got := asErr.Error(); got != err.Message {
			t.Errorf("[spec %d] expected err.Error() to return %q; got %q", specIndex, err.Message, got)
		}
	}
}
