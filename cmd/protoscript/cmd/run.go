package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ppyne/protoscript/internal/builtins"
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/lexer"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a ProtoScript file or expression",
	Long: `Execute a ProtoScript program from a file, stdin, or an inline
expression.

Examples:
  # Run a script file
  protoscript run script.js

  # Read from stdin
  protoscript run -

  # Evaluate an inline expression
  protoscript run -e "println('Hello, World!');"

  # Run with AST dump (for debugging)
  protoscript run --dump-ast script.js

  # Run with an execution trace (for debugging)
  protoscript run --trace script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace call-frame pushes/pops (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(filename, input)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	vm := interp.New()
	builtins.Register(vm)
	vm.Output = os.Stdout
	if trace {
		vm.CallStack.Trace = os.Stderr
	}

	completion := vm.Run(program)
	if completion.DidThrow {
		reportUncaught(vm, completion.ThrowValue)
		return fmt.Errorf("execution failed")
	}
	return nil
}

func readSource(args []string) (input, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path, \"-\" for stdin, or use -e for inline code")
	}
}

// reportUncaught prints an uncaught exception the way the host reports any
// other CompilerError: name/message plus the captured stack, to stderr.
func reportUncaught(vm *interp.Interp, v object.Value) {
	if v.IsObject() {
		if stack, ok := v.Object().Get("stack"); ok && stack.Kind() == object.StringKind {
			fmt.Fprintln(os.Stderr, "Uncaught "+stack.String())
			return
		}
	}
	fmt.Fprintln(os.Stderr, "Uncaught "+v.DebugString())
}
