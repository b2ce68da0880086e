// Command layoutc compiles message schemas into wire layouts, exports the
// plans, generates typed flyweights and dumps binary messages.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/alexhholmes/flyweight/compiler"
	"github.com/alexhholmes/flyweight/internal/codegen"
)

// config collects every flag; each subcommand registers the ones it reads.
type config struct {
	verbose bool
	format  string
	out     string
	pkg     string
	runtime string
	plan    string
	message string
	offset  int
	args    []string
}

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: layoutc inspect [-v] <schema.go|schema.json>")
	fmt.Fprintln(w, "       layoutc plan [-format json|msgpack] [-o out] <schema>")
	fmt.Fprintln(w, "       layoutc gen [-pkg name] [-runtime module] [-o out.go] [-plan plans.msgpack | <schema>]")
	fmt.Fprintln(w, "       layoutc dump [-message Name] [-offset N] <schema> <data.bin>")
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}
	cmd, args := args[0], args[1:]

	var cfg config
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose logging")

	var exec func(cfg config, stdout, stderr io.Writer) error
	switch cmd {
	case "inspect":
		exec = runInspect
	case "plan":
		fs.StringVar(&cfg.format, "format", "json", "Plan format: json or msgpack")
		fs.StringVar(&cfg.out, "o", "", "Output file (default stdout)")
		exec = runPlan
	case "gen":
		fs.StringVar(&cfg.pkg, "pkg", "", "Package name of the generated file")
		fs.StringVar(&cfg.out, "o", "", "Output file (default stdout)")
		fs.StringVar(&cfg.plan, "plan", "", "Read plans from a file written by 'layoutc plan'")
		fs.StringVar(&cfg.runtime, "runtime", codegen.DefaultRuntime, "Module path of the flyweight runtime")
		exec = runGen
	case "dump":
		fs.StringVar(&cfg.message, "message", "", "Message to decode (default: chosen by header protocol id)")
		fs.IntVar(&cfg.offset, "offset", 0, "Byte offset of the message in the data file")
		exec = runDump
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	cfg.args = fs.Args()

	logger, err := newLogger(cfg.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()
	compiler.SetLogger(logger.Named("compiler"))
	codegen.SetLogger(logger.Named("codegen"))

	return exec(cfg, stdout, stderr)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
