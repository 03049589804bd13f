package main

import (
	"bufio"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/arch/x86/x86asm"
)

// stubBytes extracts the raw bytes emitted by every stub in the generated
// assembly source, keyed by stub name.
func stubBytes(t *testing.T, src string) map[string][]byte {
	var (
		stubs   = make(map[string][]byte)
		curStub string
		scanner = bufio.NewScanner(strings.NewReader(src))
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "TEXT ·"):
			curStub = strings.TrimPrefix(line, "TEXT ·")
			curStub = curStub[:strings.Index(curStub, "(SB)")]
		case strings.HasPrefix(line, "BYTE"):
			for _, field := range strings.Split(line, ";") {
				field = strings.TrimPrefix(strings.TrimSpace(field), "BYTE $")
				b, err := strconv.ParseUint(field, 0, 8)
				if err != nil {
					t.Fatalf("malformed BYTE directive %q: %v", line, err)
				}
				stubs[curStub] = append(stubs[curStub], byte(b))
			}
		case line == "RET":
			stubs[curStub] = append(stubs[curStub], 0xC3)
		}
	}

	return stubs
}

func TestGenAsmFile(t *testing.T) {
	src := genAsmFile()
	if !strings.HasPrefix(src, genHeader) {
		t.Fatal("expected generated assembly to start with the generated-code header")
	}

	stubs := stubBytes(t, src)
	if got := len(stubs); got != numVectors {
		t.Fatalf("expected %d stubs; got %d", numVectors, got)
	}

	for vector := 0; vector < numVectors; vector++ {
		code, ok := stubs[stubName(vector)]
		if !ok {
			t.Errorf("missing stub for vector %d", vector)
			continue
		}

		inst, err := x86asm.Decode(code, 64)
		if err != nil {
			t.Errorf("[vector %d] decode failed: %v", vector, err)
			continue
		}

		if inst.Op != x86asm.INT || inst.Len != 2 {
			t.Errorf("[vector %d] expected a 2-byte INT instruction; got %s (len %d)", vector, inst, inst.Len)
			continue
		}

		if imm, ok := inst.Args[0].(x86asm.Imm); !ok || int(imm) != vector {
			t.Errorf("[vector %d] expected INT operand %d; got %v", vector, vector, inst.Args[0])
		}

		ret, err := x86asm.Decode(code[inst.Len:], 64)
		if err != nil || ret.Op != x86asm.RET {
			t.Errorf("[vector %d] expected INT to be followed by RET", vector)
		}
	}
}

func TestGenGoFile(t *testing.T) {
	src := genGoFile("cpu")

	fSet := token.NewFileSet()
	astFile, err := parser.ParseFile(fSet, "", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}

	if astFile.Name.Name != "cpu" {
		t.Fatalf("expected package name cpu; got %s", astFile.Name.Name)
	}

	// one declaration per stub plus the table
	if exp, got := numVectors+1, len(astFile.Decls); got != exp {
		t.Fatalf("expected %d declarations; got %d", exp, got)
	}

	for _, name := range []string{"softInt0", "softInt3", "softInt255"} {
		if astFile.Scope.Lookup(name) == nil {
			t.Errorf("expected generated file to declare %s", name)
		}
	}
}
