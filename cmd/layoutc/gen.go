package main

import (
	"fmt"
	"go/token"
	"io"
	"path/filepath"

	"github.com/alexhholmes/flyweight/internal/codegen"
	"github.com/alexhholmes/flyweight/plan"
)

func runGen(cfg config, stdout, stderr io.Writer) error {
	var set *plan.Set
	var err error

	switch {
	case cfg.plan != "" && len(cfg.args) > 0:
		return fmt.Errorf("-plan and a schema argument are mutually exclusive")
	case cfg.plan != "":
		set, err = readPlans(cfg.plan)
		if err != nil {
			return fmt.Errorf("read plans: %w", err)
		}
	default:
		var path string
		if path, err = oneArg(cfg, "schema"); err != nil {
			return err
		}
		set, err = compileSchema(path, stderr, newStyles(stderr))
		if err != nil {
			return err
		}
	}

	pkg := cfg.pkg
	if pkg == "" {
		pkg = packageFromPath(cfg.out)
	}
	if pkg == "" {
		return fmt.Errorf("-pkg is required when the output directory does not name a package")
	}

	src, err := codegen.NewGenerator(set, codegen.Options{Package: pkg, Runtime: cfg.runtime}).Generate()
	if err != nil {
		return err
	}

	return writeOutput(cfg.out, stdout, func(w io.Writer) error {
		_, err := w.Write(src)
		return err
	})
}

// packageFromPath guesses a package name from the directory of out.
func packageFromPath(out string) string {
	if out == "" {
		return ""
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return ""
	}
	name := filepath.Base(filepath.Dir(abs))
	if !token.IsIdentifier(name) {
		return ""
	}
	return name
}
