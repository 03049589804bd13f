package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
)

const (
	// numVectors is the number of slots in the x86 interrupt descriptor table.
	numVectors = 256

	// opcodeINT is the opcode for INT imm8.
	opcodeINT = 0xCD

	genHeader = "// Code generated by gensoftint; DO NOT EDIT."
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[gensoftint] error: %s\n", err.Error())
	os.Exit(1)
}

// stubName returns the symbol name of the stub that raises vector.
func stubName(vector int) string {
	return fmt.Sprintf("softInt%d", vector)
}

// genAsmFile emits one NOSPLIT routine per vector. Each routine consists of
// an INT imm8 instruction followed by RET. The instruction is emitted as raw
// bytes so the assembler cannot substitute the one-byte INT3 form for
// vector 3.
func genAsmFile() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n\n#include \"textflag.h\"\n", genHeader)
	for vector := 0; vector < numVectors; vector++ {
		fmt.Fprintf(&buf, "\nTEXT ·%s(SB),NOSPLIT,$0\n", stubName(vector))
		fmt.Fprintf(&buf, "\tBYTE $0x%02X; BYTE $0x%02X\n", opcodeINT, vector)
		fmt.Fprint(&buf, "\tRET\n")
	}

	return buf.String()
}

// genGoFile emits the declarations for the assembly stubs and a lookup table
// indexed by vector.
func genGoFile(pkgName string) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n\npackage %s\n\n", genHeader, pkgName)
	for vector := 0; vector < numVectors; vector++ {
		fmt.Fprintf(&buf, "func %s()\n", stubName(vector))
	}

	fmt.Fprint(&buf, "\n// softIntTable maps each interrupt vector to the stub that raises it.\n")
	fmt.Fprintf(&buf, "var softIntTable = [%d]func(){\n", numVectors)
	for vector := 0; vector < numVectors; vector++ {
		fmt.Fprintf(&buf, "%s,", stubName(vector))
		if vector%8 == 7 {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
	}
	fmt.Fprint(&buf, "}\n")

	return buf.String()
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

func runTool() error {
	pkgName := flag.String("pkg", "cpu", "the package name for the generated Go file")
	outDir := flag.String("out", ".", "the directory where the generated files are written")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "gensoftint: generate INT imm8 stubs for all interrupt vectors\n\n")
		fmt.Fprint(os.Stderr, "Usage: gensoftint [options]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Pretty-print generated Go file using go/printer
	fSet := token.NewFileSet()
	astFile, err := parser.ParseFile(fSet, "", genGoFile(*pkgName), parser.ParseComments)
	if err != nil {
		return err
	}

	var goSrc bytes.Buffer
	if err = printer.Fprint(&goSrc, fSet, astFile); err != nil {
		return err
	}

	if err = writeFile(filepath.Join(*outDir, "softint_amd64.go"), goSrc.Bytes()); err != nil {
		return err
	}

	return writeFile(filepath.Join(*outDir, "softint_amd64.s"), []byte(genAsmFile()))
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
