// Command jyaml validates JYAML documents from files or stdin,
// rendering diagnostics with a colored source snippet on failure.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "charm.land/log/v2"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	jyaml "github.com/masinc/jyaml-go"
	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/printer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	maxDepth int
	noColor  bool
	quiet    bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "jyaml [flags] [file.jyaml|-]",
		Short:         "Validate JYAML documents",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			return run(f, path)
		},
	}
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (0 = library default)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colored diagnostics")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "print nothing on success")
	return cmd
}

func run(f *flags, path string) error {
	logger := charmlog.New(os.Stderr)
	logger.SetLevel(charmlog.ErrorLevel)

	src, err := readInput(path)
	if err != nil {
		wrapped := errors.Wrapf(err, "reading %q", path)
		logger.Error("failed to read input", "path", path, "err", wrapped)
		return wrapped
	}

	var opts []jyaml.Option
	if f.maxDepth > 0 {
		opts = append(opts, jyaml.WithMaxDepth(f.maxDepth))
	}

	if err := jyaml.Validate(src, opts...); err != nil {
		printDiagnostic(err, !f.noColor)
		return err
	}

	if !f.quiet {
		fmt.Println("ok")
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// printDiagnostic renders a colored source snippet for jerr when it
// carries a token, falling back to a plain message otherwise.
func printDiagnostic(err error, colored bool) {
	var out io.Writer = os.Stderr
	if colored {
		out = colorable.NewColorableStderr()
	}
	fmt.Fprint(out, renderDiagnostic(err, colored))
}

// renderDiagnostic builds the text printDiagnostic writes out, split
// out so it can be exercised without capturing os.Stderr.
func renderDiagnostic(err error, colored bool) string {
	jerr, ok := errors.As(err)
	if !ok {
		return err.Error() + "\n"
	}

	p := &printer.Printer{}
	var b strings.Builder
	b.WriteString(p.PrintErrorMessage(fmt.Sprintf("%s: %s", jerr.Kind, jerr.Message), colored))
	b.WriteByte('\n')
	if jerr.Token != nil {
		b.WriteString(p.PrintErrorToken(jerr.Token, colored))
	}
	return b.String()
}
