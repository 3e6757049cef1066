package rtfmt_test

import (
	"bytes"
	"testing"

	rtfmt "github.com/smith61/runtime-fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test types: dynamic width and precision ---

type cell struct {
	Text  string
	Num   int
	Width int
	Prec  int
}

type cellText struct{}

func (cellText) Get(c *cell) *string { return &c.Text }

type cellNum struct{}

func (cellNum) Get(c *cell) *int { return &c.Num }

type cellWidth struct{}

func (cellWidth) Get(c *cell) *int { return &c.Width }

type cellPrec struct{}

func (cellPrec) Get(c *cell) *int { return &c.Prec }

func cellDescriptor() *rtfmt.Descriptor[cell] {
	b := rtfmt.NewBuilder[cell]()
	rtfmt.AddField[cell, string](b, "text", cellText{})
	rtfmt.AddField[cell, int](b, "num", cellNum{})
	rtfmt.AddField[cell, int](b, "width", cellWidth{})
	rtfmt.AddField[cell, int](b, "prec", cellPrec{})
	return b.Build()
}

func formatPoint(t *testing.T, tmpl string, p point) string {
	t.Helper()
	out, err := rtfmt.Format(pointDescriptor(), tmpl, &p)
	require.NoError(t, err)
	return out
}

// --- Rendering ---

func TestTemplateLiteralsAndEscapes(t *testing.T) {
	t.Parallel()
	p := point{X: 42, Y: 3.5}
	assert.Equal(t, "plain text", formatPoint(t, "plain text", p))
	assert.Equal(t, "a{b}c", formatPoint(t, "a{{b}}c", p))
	assert.Equal(t, "{42}", formatPoint(t, "{{{x}}}", p))
}

func TestTemplateFieldReferences(t *testing.T) {
	t.Parallel()
	p := point{X: 42, Y: 3.5}
	assert.Equal(t, "42", formatPoint(t, "{x}", p))
	assert.Equal(t, "3.5", formatPoint(t, "{y}", p))
	assert.Equal(t, "42 3.5", formatPoint(t, "{0} {1}", p))
	assert.Equal(t, "42-3.5", formatPoint(t, "{}-{}", p))
	assert.Equal(t, "3.5/42", formatPoint(t, "{1}/{0}", p))
}

func TestTemplateVerbs(t *testing.T) {
	t.Parallel()
	p := point{X: 42, Y: 3.5}
	assert.Equal(t, "2a", formatPoint(t, "{x:x}", p))
	assert.Equal(t, "2A", formatPoint(t, "{x:X}", p))
	assert.Equal(t, "52", formatPoint(t, "{x:o}", p))
	assert.Equal(t, "101010", formatPoint(t, "{x:b}", p))
	assert.Equal(t, "3.500000e+00", formatPoint(t, "{y:e}", p))
	assert.Equal(t, "3.500000E+00", formatPoint(t, "{y:E}", p))
	assert.Equal(t, "(int)42", formatPoint(t, "{x:?}", p))
}

func TestTemplateFlags(t *testing.T) {
	t.Parallel()
	p := point{X: 42, Y: 3.5}
	assert.Equal(t, "0x2a", formatPoint(t, "{x:#x}", p))
	assert.Equal(t, "0b101010", formatPoint(t, "{x:#b}", p))
	assert.Equal(t, "0o52", formatPoint(t, "{x:#o}", p))
	assert.Equal(t, "+52", formatPoint(t, "{x:+o}", p))
	assert.Equal(t, "0000002a", formatPoint(t, "{x:08x}", p))
	assert.Equal(t, "0x0000002a", formatPoint(t, "{x:#010x}", p))
}

func TestTemplateWidthAndAlign(t *testing.T) {
	t.Parallel()
	p := point{X: 42, Y: 3.5}
	// Human-readable output is left-aligned by default, numeric verbs are
	// right-aligned.
	assert.Equal(t, "42   ", formatPoint(t, "{x:5}", p))
	assert.Equal(t, "   2a", formatPoint(t, "{x:5x}", p))
	assert.Equal(t, "   42", formatPoint(t, "{x:>5}", p))
	assert.Equal(t, "  42  ", formatPoint(t, "{x:^6}", p))
	assert.Equal(t, "42***", formatPoint(t, "{x:*<5}", p))
	assert.Equal(t, "--42", formatPoint(t, "{x:->4}", p))
}

func TestTemplateWideRunesPadByDisplayWidth(t *testing.T) {
	t.Parallel()
	d := cellDescriptor()
	c := cell{Text: "你好"}
	out, err := rtfmt.Format(d, "{text:>6}", &c)
	require.NoError(t, err)
	assert.Equal(t, "  你好", out, "full-width runes count as two columns")
}

func TestTemplateDynamicWidth(t *testing.T) {
	t.Parallel()
	d := cellDescriptor()
	c := cell{Num: 255, Width: 6}
	out, err := rtfmt.Format(d, "{num:width$x}", &c)
	require.NoError(t, err)
	assert.Equal(t, "    ff", out)

	// Same thing by field index: width is field 2.
	out, err = rtfmt.Format(d, "{num:2$x}", &c)
	require.NoError(t, err)
	assert.Equal(t, "    ff", out)
}

func TestTemplateDynamicPrecision(t *testing.T) {
	t.Parallel()
	d := cellDescriptor()
	c := cell{Text: "héllo", Prec: 3}
	out, err := rtfmt.Format(d, "{text:.prec$}", &c)
	require.NoError(t, err)
	assert.Equal(t, "hél", out)
}

func TestTemplateConstantPrecision(t *testing.T) {
	t.Parallel()
	d := cellDescriptor()
	c := cell{Text: "hello world"}
	out, err := rtfmt.Format(d, "{text:.5}", &c)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestTemplateNegativeDynamicWidth(t *testing.T) {
	t.Parallel()
	d := cellDescriptor()
	c := cell{Num: 1, Width: -1}
	_, err := rtfmt.Format(d, "{num:width$x}", &c)
	assert.ErrorIs(t, err, rtfmt.ErrNegativeCount)
}

func TestTemplateBoundReuse(t *testing.T) {
	t.Parallel()
	tmpl, err := rtfmt.Parse("({x}, {y:e})")
	require.NoError(t, err)
	bound, err := rtfmt.Resolve(tmpl, pointDescriptor())
	require.NoError(t, err)

	var buf bytes.Buffer
	p := point{X: 1, Y: 2}
	require.NoError(t, bound.Execute(&buf, &p))
	assert.Equal(t, "(1, 2.000000e+00)", buf.String())

	buf.Reset()
	p = point{X: 9, Y: 0.5}
	require.NoError(t, bound.Execute(&buf, &p))
	assert.Equal(t, "(9, 5.000000e-01)", buf.String())
}

// --- Template errors ---

func TestTemplateParseErrors(t *testing.T) {
	t.Parallel()
	for _, tmpl := range []string{"{x", "a}b", "{x:.}", "{-bad}"} {
		_, err := rtfmt.Parse(tmpl)
		assert.ErrorIs(t, err, rtfmt.ErrInvalidTemplate, "template %q", tmpl)
	}
	for _, tmpl := range []string{"{x:q}", "{x:1.2.3}"} {
		_, err := rtfmt.Parse(tmpl)
		assert.ErrorIs(t, err, rtfmt.ErrUnknownVerb, "template %q", tmpl)
	}
}

func TestTemplateResolveErrors(t *testing.T) {
	t.Parallel()
	d := pointDescriptor()
	p := point{}

	_, err := rtfmt.Format(d, "{z}", &p)
	assert.ErrorIs(t, err, rtfmt.ErrUnknownField)

	_, err = rtfmt.Format(d, "{2}", &p)
	assert.ErrorIs(t, err, rtfmt.ErrBadFieldIndex)

	_, err = rtfmt.Format(d, "{y:x}", &p)
	assert.ErrorIs(t, err, rtfmt.ErrUnsupportedVerb)

	_, err = rtfmt.Format(d, "{x:y$}", &p)
	assert.ErrorIs(t, err, rtfmt.ErrNotIndexField)

	// Flag and precision combinations that cannot work are template errors.
	_, err = rtfmt.Format(d, "{x:+}", &p)
	assert.ErrorIs(t, err, rtfmt.ErrInvalidTemplate)
	_, err = rtfmt.Format(d, "{x:#}", &p)
	assert.ErrorIs(t, err, rtfmt.ErrInvalidTemplate)
	_, err = rtfmt.Format(d, "{y:.3e}", &p)
	assert.ErrorIs(t, err, rtfmt.ErrInvalidTemplate)
}

func TestFexecWritesToSink(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := point{X: 7, Y: 1.5}
	require.NoError(t, rtfmt.Fexec(&buf, pointDescriptor(), "x={x:#x} y={y}", &p))
	assert.Equal(t, "x=0x7 y=1.5", buf.String())
}
