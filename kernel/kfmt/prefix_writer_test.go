package kfmt

import (
	"bytes"
	"errors"
	"testing"
)

func TestPrefixWriter(t *testing.T) {
	specs := []struct {
		input string
		exp   string
	}{
		{
			"",
			"",
		},
		{
			"\n",
			"[emu] \n",
		},
		{
			"no line break anywhere",
			"[emu] no line break anywhere",
		},
		{
			"line feed at the end\n",
			"[emu] line feed at the end\n",
		},
		{
			"\nsti\nhlt\ndeliver vector 32\niretq",
			"[emu] \n[emu] sti\n[emu] hlt\n[emu] deliver vector 32\n[emu] iretq",
		},
	}

	var (
		buf bytes.Buffer
		w   = PrefixWriter{
			Sink:   &buf,
			Prefix: []byte("[emu] "),
		}
	)

	for specIndex, spec := range specs {
		buf.Reset()
		w.midLine = false

		wrote, err := w.Write([]byte(spec.input))
		if err != nil {
			t.Errorf("[spec %d] unexpected error: %v", specIndex, err)
		}

		if expLen := len(spec.input); expLen != wrote {
			t.Errorf("[spec %d] expected writer to write %d bytes; wrote %d", specIndex, expLen, wrote)
		}

		if got := buf.String(); got != spec.exp {
			t.Errorf("[spec %d] expected output:\n%q\ngot:\n%q", specIndex, spec.exp, got)
		}
	}
}

func TestPrefixWriterAcrossWrites(t *testing.T) {
	var (
		buf bytes.Buffer
		w   = PrefixWriter{Sink: &buf, Prefix: []byte("> ")}
	)

	w.Write([]byte("partial "))
	w.Write([]byte("line\nnext"))

	if exp, got := "> partial line\n> next", buf.String(); got != exp {
		t.Fatalf("expected output:\n%q\ngot:\n%q", exp, got)
	}
}

type errWriter struct{ err error }

func (w errWriter) Write(_ []byte) (int, error) { return 0, w.err }

func TestPrefixWriterErrors(t *testing.T) {
	expErr := errors.New("write failed")
	w := PrefixWriter{Sink: errWriter{expErr}, Prefix: []byte("> ")}

	if _, err := w.Write([]byte("foo")); err != expErr {
		t.Fatalf("expected to get error %v; got %v", expErr, err)
	}
}
