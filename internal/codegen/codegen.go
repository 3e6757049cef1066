// Package codegen scans struct declarations and emits rtfmt descriptor
// tables: one zero-sized accessor type per field plus a lazily built
// package-level descriptor per struct. The cmd/runtime-fmt-gen command is a
// thin CLI over this package.
package codegen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"slices"
	"strconv"
	"strings"
)

// Struct describes one container type the generator emits a descriptor for.
type Struct struct {
	Name   string
	Fields []Field
}

// Field is one named struct field, in declaration order.
type Field struct {
	Name string
	Type string // type expression as written in the source
}

// Import is an import the emitted file needs because a field type refers to
// another package.
type Import struct {
	Name string // explicit import name, or ""
	Path string
}

// Scan collects the requested struct types from parsed files, along with the
// imports their field types depend on. Embedded fields are skipped; they are
// not projections of their own. Every requested type must be found and must
// be a plain struct.
func Scan(fset *token.FileSet, files []*ast.File, typeNames []string) ([]Struct, []Import, error) {
	wanted := make(map[string]bool, len(typeNames))
	for _, n := range typeNames {
		wanted[n] = true
	}
	var out []Struct
	pkgRefs := map[string]bool{}
	imports := map[string]Import{}
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, sp := range gd.Specs {
				ts, ok := sp.(*ast.TypeSpec)
				if !ok || !wanted[ts.Name.Name] {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return nil, nil, fmt.Errorf("type %s is not a struct", ts.Name.Name)
				}
				s := Struct{Name: ts.Name.Name}
				for _, fld := range st.Fields.List {
					if len(fld.Names) == 0 {
						continue
					}
					typ, err := exprString(fset, fld.Type)
					if err != nil {
						return nil, nil, fmt.Errorf("field type of %s: %w", ts.Name.Name, err)
					}
					collectPkgRefs(fld.Type, pkgRefs)
					for _, name := range fld.Names {
						s.Fields = append(s.Fields, Field{Name: name.Name, Type: typ})
					}
				}
				resolveImports(f, pkgRefs, imports)
				clear(pkgRefs)
				delete(wanted, ts.Name.Name)
				out = append(out, s)
			}
		}
	}
	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for n := range wanted {
			missing = append(missing, n)
		}
		slices.Sort(missing)
		return nil, nil, fmt.Errorf("types not found: %s", strings.Join(missing, ", "))
	}
	paths := make([]string, 0, len(imports))
	for p := range imports {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	imp := make([]Import, 0, len(paths))
	for _, p := range paths {
		imp = append(imp, imports[p])
	}
	return out, imp, nil
}

func exprString(fset *token.FileSet, expr ast.Expr) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// collectPkgRefs records package qualifiers (the time in time.Duration) used
// by a field type expression.
func collectPkgRefs(expr ast.Expr, refs map[string]bool) {
	ast.Inspect(expr, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				refs[id.Name] = true
				return false
			}
		}
		return true
	})
}

// resolveImports matches collected package qualifiers against the file's
// import specs, by explicit import name first, then by path base.
func resolveImports(f *ast.File, refs map[string]bool, imports map[string]Import) {
	for name := range refs {
		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			switch {
			case spec.Name != nil && spec.Name.Name == name:
				imports[path] = Import{Name: name, Path: path}
			case spec.Name == nil && pathBase(path) == name:
				imports[path] = Import{Path: path}
			}
		}
	}
}

func pathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
