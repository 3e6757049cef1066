package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
	"unicode"
	"unicode/utf8"
)

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"accName":    accessorName,
	"lowerFirst": lowerFirst,
}).Parse(`// Code generated by runtime-fmt-gen; DO NOT EDIT.

package {{.Package}}

import (
	"sync"

	rtfmt "github.com/smith61/runtime-fmt"
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Structs}}{{$s := .}}
{{- range .Fields}}
type {{accName $s .}} struct{}

func ({{accName $s .}}) Get(v *{{$s.Name}}) *{{.Type}} { return &v.{{.Name}} }
{{end}}
var {{lowerFirst .Name}}DescriptorOnce = sync.OnceValue(func() *rtfmt.Descriptor[{{.Name}}] {
	b := rtfmt.NewBuilder[{{.Name}}]()
{{- range .Fields}}
	rtfmt.AddField[{{$s.Name}}, {{.Type}}](b, "{{.Name}}", {{accName $s .}}{})
{{- end}}
	return b.Build()
})

// {{.Name}}Descriptor returns the field format descriptor for [{{.Name}}].
// It is built on first use and is immutable afterwards.
func {{.Name}}Descriptor() *rtfmt.Descriptor[{{.Name}}] {
	return {{lowerFirst .Name}}DescriptorOnce()
}
{{end}}`))

type fileData struct {
	Package string
	Imports []Import
	Structs []Struct
}

// Emit renders the descriptor file for structs into package pkgName and
// gofmts the result.
func Emit(pkgName string, imports []Import, structs []Struct) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, fileData{Package: pkgName, Imports: imports, Structs: structs}); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %w", err)
	}
	return src, nil
}

func accessorName(s Struct, f Field) string {
	return lowerFirst(s.Name) + upperFirst(f.Name) + "Accessor"
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
