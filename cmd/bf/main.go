// Command bf runs a Brainfuck source file under one of three execution
// tiers. Grounded on original_source/bf_main.cpp: the manual
// "--flag=value" argument scan below (rather than the standard flag
// package) mirrors that file's loop exactly, including its
// unexpected-argument and usage-on-error behaviour, which Go's flag
// package does not reproduce without extra glue.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/compiler"
	"github.com/yurii-vyrovyi/tieredbf/internal/diag"
	"github.com/yurii-vyrovyi/tieredbf/interp"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
	"github.com/yurii-vyrovyi/tieredbf/jit"
	"github.com/yurii-vyrovyi/tieredbf/pacer"
)

const usage = `Usage: %s [options] <Brainfuck file>
Execute the Brainfuck code in the given file, e.g.
%s examples/hello.b

Options:
--mode=i   : Run using the interpreter (default)
--mode=cag : Run using the ahead-of-time compiler
--mode=jit : Run using the hot-loop JIT
--fps=N    : Limit output pacing to N frames per second
--fps-log  : Log frame timing info to stderr
`

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(args []string, usageOut io.Writer) int {
	prog := args[0]

	for _, a := range args[1:] {
		if a == "-h" || a == "-help" || a == "--help" || a == "-?" {
			fmt.Fprintf(usageOut, usage, prog, prog)
			return 0
		}
	}

	mode := "i"
	fpsLimit := 0
	fpsLog := false
	var files []string

	for _, arg := range args[1:] {
		switch {
		case strings.HasPrefix(arg, "--mode="):
			mode = strings.TrimPrefix(arg, "--mode=")
			if mode != "i" && mode != "cag" && mode != "jit" {
				fmt.Fprintf(os.Stderr, "Unexpected mode: %s\n", arg)
				return 1
			}

		case strings.HasPrefix(arg, "--fps="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--fps="))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Unexpected fps: %s\n", arg)
				break
			}
			fpsLimit = n

		case arg == "--fps-log":
			fpsLog = true

		case strings.HasPrefix(arg, "--"):
			fmt.Fprintf(os.Stderr, "Unexpected argument: %s\n", arg)
			return 1

		default:
			files = append(files, arg)
		}
	}

	if len(files) != 1 {
		fmt.Fprintln(os.Stderr, "You need to specify exactly one Brainfuck file")
		fmt.Fprintf(os.Stderr, usage, prog, prog)
		return 1
	}

	return runProgram(mode, files[0], fpsLimit, fpsLog)
}

func runProgram(mode, path string, fpsLimit int, fpsLog bool) int {
	logger := diag.New("bf")

	source, err := os.ReadFile(path)
	if err != nil {
		logger.Printf("could not open file %q: %v", path, err)
		return 1
	}

	executor, err := newExecutor(mode)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	if err := executor.Init(source); err != nil {
		logger.Printf("%v", err)
		return 1
	}
	if closer, ok := executor.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	std, err := ioadapter.NewStd()
	if err != nil {
		logger.Printf("could not initialize terminal: %v", err)
		return 1
	}
	defer func() { _ = std.Close() }()

	var io ioadapter.IOAdapter = std
	if fpsLimit > 0 {
		var pacerLogger *log.Logger
		if fpsLog {
			pacerLogger = diag.New("fps")
		}
		io = pacer.New(std, fpsLimit, pacerLogger)
	}

	tape := bf.NewTape(0)
	if _, err := executor.Run(io, nil, nil, 0, tape); err != nil {
		logger.Printf("%v", err)
		return 1
	}

	return 0
}

func newExecutor(mode string) (bf.Executor, error) {
	switch mode {
	case "i":
		return &interp.Interpreter{}, nil
	case "cag":
		return &compiler.AheadOfTime{}, nil
	case "jit":
		return &jit.Coordinator{}, nil
	default:
		return nil, fmt.Errorf("unexpected mode: %s", mode)
	}
}
