// Command runtime-fmt-gen emits rtfmt descriptor tables for struct types.
//
// Usage:
//
//	runtime-fmt-gen -package ./models -types User,Order
//	runtime-fmt-gen -config runtime-fmt.yaml
//
// The generated file is written into the scanned package and contains, per
// type, one zero-sized accessor per field plus a lazily built descriptor
// exposed as <Type>Descriptor().
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smith61/runtime-fmt/internal/codegen"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file; overrides the other flags")
		pkgPattern = flag.String("package", ".", "package pattern to scan")
		typeList   = flag.String("types", "", "comma-separated struct type names")
		output     = flag.String("output", codegen.DefaultOutput, "output file name, relative to the scanned package")
	)
	flag.Parse()

	if err := run(*configPath, *pkgPattern, *typeList, *output); err != nil {
		fmt.Fprintln(os.Stderr, "runtime-fmt-gen:", err)
		os.Exit(1)
	}
}

func run(configPath, pkgPattern, typeList, output string) error {
	cfg := &codegen.Config{
		Package: pkgPattern,
		Output:  output,
		Types:   splitTypes(typeList),
	}
	if configPath != "" {
		loaded, err := codegen.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if len(cfg.Types) == 0 {
		return errors.New("no types requested; use -types or a config file")
	}

	pkg, err := codegen.Load(cfg.Package)
	if err != nil {
		return err
	}
	structs, imports, err := codegen.Scan(pkg.Fset, pkg.Syntax, cfg.Types)
	if err != nil {
		return err
	}
	src, err := codegen.Emit(pkg.Name, imports, structs)
	if err != nil {
		return err
	}

	out := cfg.Output
	if !filepath.IsAbs(out) {
		dir := "."
		if len(pkg.GoFiles) > 0 {
			dir = filepath.Dir(pkg.GoFiles[0])
		}
		out = filepath.Join(dir, out)
	}
	return os.WriteFile(out, src, 0o644)
}

func splitTypes(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
