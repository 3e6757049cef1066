package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `package models

import (
	"time"

	str "strings"
)

// User is a sample container.
type User struct {
	Name   string
	Age    int
	Score  float64
	Joined time.Time
	notes  str.Builder
}

type Order struct {
	ID, Seq int
	inner
}

type inner struct{ hidden bool }

type Alias int
`

func scanSample(t *testing.T, types ...string) ([]Struct, []Import, error) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "models.go", sampleSource, parser.ParseComments)
	require.NoError(t, err)
	return Scan(fset, []*ast.File{file}, types)
}

func TestScanFields(t *testing.T) {
	t.Parallel()
	structs, imports, err := scanSample(t, "User")
	require.NoError(t, err)
	require.Len(t, structs, 1)
	u := structs[0]
	assert.Equal(t, "User", u.Name)
	assert.Equal(t, []Field{
		{Name: "Name", Type: "string"},
		{Name: "Age", Type: "int"},
		{Name: "Score", Type: "float64"},
		{Name: "Joined", Type: "time.Time"},
		{Name: "notes", Type: "str.Builder"},
	}, u.Fields)
	assert.Equal(t, []Import{
		{Name: "str", Path: "strings"},
		{Path: "time"},
	}, imports)
}

func TestScanMultipleNamesAndEmbedded(t *testing.T) {
	t.Parallel()
	structs, imports, err := scanSample(t, "Order")
	require.NoError(t, err)
	require.Len(t, structs, 1)
	assert.Equal(t, []Field{
		{Name: "ID", Type: "int"},
		{Name: "Seq", Type: "int"},
	}, structs[0].Fields, "embedded fields are skipped")
	assert.Empty(t, imports)
}

func TestScanMissingType(t *testing.T) {
	t.Parallel()
	_, _, err := scanSample(t, "User", "Nope", "AlsoNope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AlsoNope, Nope")
}

func TestScanNonStruct(t *testing.T) {
	t.Parallel()
	_, _, err := scanSample(t, "Alias")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a struct")
}

func TestEmit(t *testing.T) {
	t.Parallel()
	structs, imports, err := scanSample(t, "User")
	require.NoError(t, err)
	src, err := Emit("models", imports, structs)
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "// Code generated by runtime-fmt-gen; DO NOT EDIT.")
	assert.Contains(t, out, "package models")
	assert.Contains(t, out, `rtfmt "github.com/smith61/runtime-fmt"`)
	assert.Contains(t, out, "type userNameAccessor struct{}")
	assert.Contains(t, out, "func (userNameAccessor) Get(v *User) *string { return &v.Name }")
	assert.Contains(t, out, "func (userJoinedAccessor) Get(v *User) *time.Time { return &v.Joined }")
	assert.Contains(t, out, `rtfmt.AddField[User, int](b, "Age", userAgeAccessor{})`)
	assert.Contains(t, out, "func UserDescriptor() *rtfmt.Descriptor[User]")
	assert.Contains(t, out, `str "strings"`)
}

func TestEmitIsDeterministic(t *testing.T) {
	t.Parallel()
	structs, imports, err := scanSample(t, "User", "Order")
	require.NoError(t, err)
	first, err := Emit("models", imports, structs)
	require.NoError(t, err)
	second, err := Emit("models", imports, structs)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "runtime-fmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: ./models\ntypes:\n  - User\n  - Order\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./models", cfg.Package)
	assert.Equal(t, []string{"User", "Order"}, cfg.Types)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadConfigRejectsEmpty(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "runtime-fmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: ./models\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
