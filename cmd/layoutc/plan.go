package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/alexhholmes/flyweight/plan"
)

// writeOutput runs write against path, or stdout when path is empty.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return write(f)
}

func runPlan(cfg config, stdout, stderr io.Writer) error {
	path, err := oneArg(cfg, "schema")
	if err != nil {
		return err
	}

	var encode func(io.Writer, *plan.Set) error
	switch cfg.format {
	case "json":
		encode = plan.WriteJSON
	case "msgpack":
		encode = plan.WriteMsgpack
	default:
		return fmt.Errorf("unknown plan format %q, want json or msgpack", cfg.format)
	}

	set, err := compileSchema(path, stderr, newStyles(stderr))
	if err != nil {
		return err
	}

	return writeOutput(cfg.out, stdout, func(w io.Writer) error {
		return encode(w, set)
	})
}

// readPlans loads a plan set written by runPlan. Files ending in .json are
// read as JSON, anything else as msgpack.
func readPlans(path string) (*plan.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if filepath.Ext(path) == ".json" {
		return plan.ReadJSON(f)
	}
	return plan.ReadMsgpack(f)
}
