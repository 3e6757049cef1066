package codegen

import (
	"fmt"

	"golang.org/x/tools/go/packages"
)

// Load parses the single package named by pattern, syntax only. Type
// checking is not needed: applicability is resolved at run time by the
// descriptor builder, so the generator only has to reproduce field names and
// type expressions.
func Load(pattern string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, err
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want exactly 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("load %s: %v", pkg.PkgPath, pkg.Errors[0])
	}
	return pkg, nil
}
