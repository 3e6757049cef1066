package rtfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Template syntax follows the classic curly-brace format string:
//
//	literal text {ref:spec} more text {{escaped braces}}
//
// ref is a field name, a decimal field index, or empty for the next implicit
// position. spec is [[fill]align][+][#][0][width][.precision][verb] where
// align is one of < ^ >, width and precision are either a decimal or a ref$
// reference to an int-typed field, and verb is one of the tokens accepted by
// [ParseVerb].
//
// A parsed Template knows nothing about any container type; [Resolve] binds
// it to a [Descriptor], rejecting unknown fields, unsupported verbs, and
// width/precision sources that are not int fields.

// Template is a parsed format string, not yet bound to a container type.
type Template struct {
	parts []part
}

type part struct {
	lit string
	arg *argument
}

type argument struct {
	ref  fieldRef
	spec spec
}

// fieldRef names a field either by registered name or by index.
type fieldRef struct {
	name  string // "" when positional
	index int
}

func refString(r fieldRef) string {
	if r.name != "" {
		return strconv.Quote(r.name)
	}
	return strconv.Itoa(r.index)
}

type countKind int

const (
	countNone countKind = iota
	countConst
	countRef
)

// count is a width or precision: absent, a literal, or a field reference.
type count struct {
	kind countKind
	n    int
	ref  fieldRef
}

type spec struct {
	fill  rune
	align byte // 0, '<', '^' or '>'
	plus  bool
	alt   bool
	zero  bool
	width count
	prec  count
	verb  Verb
}

// Parse parses a format string. Syntax errors are reported via
// [ErrInvalidTemplate] or [ErrUnknownVerb].
func Parse(s string) (*Template, error) {
	t := &Template{}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{lit: lit.String()})
			lit.Reset()
		}
	}
	next := 0 // implicit positional counter
	for i := 0; i < len(s); {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unmatched '{' at byte %d", ErrInvalidTemplate, i)
			}
			arg, err := parseArgument(s[i+1:i+end], &next)
			if err != nil {
				return nil, err
			}
			flush()
			t.parts = append(t.parts, part{arg: arg})
			i += end + 1
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("%w: unmatched '}' at byte %d", ErrInvalidTemplate, i)
		default:
			lit.WriteByte(s[i])
			i++
		}
	}
	flush()
	return t, nil
}

func parseArgument(content string, next *int) (*argument, error) {
	refStr, specStr, hasSpec := strings.Cut(content, ":")
	ref, err := parseRef(refStr, next)
	if err != nil {
		return nil, err
	}
	sp := spec{fill: ' ', verb: Display}
	if hasSpec {
		if sp, err = parseSpec(specStr); err != nil {
			return nil, err
		}
	}
	return &argument{ref: ref, spec: sp}, nil
}

func parseRef(s string, next *int) (fieldRef, error) {
	if s == "" {
		r := fieldRef{index: *next}
		*next++
		return r, nil
	}
	digits := true
	for _, r := range s {
		if !isDigit(r) {
			digits = false
			break
		}
	}
	if digits {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fieldRef{}, fmt.Errorf("%w: field index %q", ErrInvalidTemplate, s)
		}
		return fieldRef{index: n}, nil
	}
	for i, r := range s {
		if i == 0 && !isNameStart(r) || i > 0 && !isNameRune(r) {
			return fieldRef{}, fmt.Errorf("%w: field reference %q", ErrInvalidTemplate, s)
		}
	}
	return fieldRef{name: s}, nil
}

func parseSpec(s string) (spec, error) {
	sp := spec{fill: ' ', verb: Display}
	rs := []rune(s)
	i := 0
	switch {
	case len(rs) >= 2 && isAlign(rs[1]):
		sp.fill = rs[0]
		sp.align = byte(rs[1])
		i = 2
	case len(rs) >= 1 && isAlign(rs[0]):
		sp.align = byte(rs[0])
		i = 1
	}
	if i < len(rs) && rs[i] == '+' {
		sp.plus = true
		i++
	}
	if i < len(rs) && rs[i] == '#' {
		sp.alt = true
		i++
	}
	if i < len(rs) && rs[i] == '0' {
		sp.zero = true
		i++
	}
	width, n, err := parseCount(rs[i:])
	if err != nil {
		return spec{}, err
	}
	sp.width = width
	i += n
	if i < len(rs) && rs[i] == '.' {
		i++
		prec, n, err := parseCount(rs[i:])
		if err != nil {
			return spec{}, err
		}
		if prec.kind == countNone {
			return spec{}, fmt.Errorf("%w: missing precision after '.'", ErrInvalidTemplate)
		}
		sp.prec = prec
		i += n
	}
	verb, err := ParseVerb(string(rs[i:]))
	if err != nil {
		return spec{}, err
	}
	sp.verb = verb
	return sp, nil
}

// parseCount parses a width or precision: digits, digits$, or name$. A bare
// name is not a count; it is left in place for the verb token.
func parseCount(rs []rune) (count, int, error) {
	if len(rs) == 0 {
		return count{}, 0, nil
	}
	if isDigit(rs[0]) {
		j := 1
		for j < len(rs) && isDigit(rs[j]) {
			j++
		}
		n, err := strconv.Atoi(string(rs[:j]))
		if err != nil {
			return count{}, 0, fmt.Errorf("%w: count %q", ErrInvalidTemplate, string(rs[:j]))
		}
		if j < len(rs) && rs[j] == '$' {
			return count{kind: countRef, ref: fieldRef{index: n}}, j + 1, nil
		}
		return count{kind: countConst, n: n}, j, nil
	}
	if isNameStart(rs[0]) {
		j := 1
		for j < len(rs) && isNameRune(rs[j]) {
			j++
		}
		if j < len(rs) && rs[j] == '$' {
			return count{kind: countRef, ref: fieldRef{name: string(rs[:j])}}, j + 1, nil
		}
	}
	return count{}, 0, nil
}

func isAlign(r rune) bool     { return r == '<' || r == '^' || r == '>' }
func isDigit(r rune) bool     { return '0' <= r && r <= '9' }
func isNameStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isNameRune(r rune) bool  { return isNameStart(r) || unicode.IsDigit(r) }

// Bound is a template resolved against one container type's descriptor.
// Resolution validated every field reference and capability once; executing
// a Bound cannot fail on lookups, only on sink errors and negative dynamic
// counts.
type Bound[This any] struct {
	parts []boundPart[This]
}

type boundPart[This any] struct {
	lit string
	arg *boundArg[This]
}

type boundArg[This any] struct {
	label  string
	format FormatFunc[This]
	spec   spec
	width  boundCount[This]
	prec   boundCount[This]
}

type boundCount[This any] struct {
	kind countKind
	n    int
	fn   IndexFunc[This]
}

// Resolve binds t to d, checking every argument against the descriptor.
// Failures are user-facing template errors: [ErrUnknownField],
// [ErrBadFieldIndex], [ErrUnsupportedVerb], [ErrNotIndexField], or
// [ErrInvalidTemplate] for flag/verb combinations that cannot work.
func Resolve[This any](t *Template, d *Descriptor[This]) (*Bound[This], error) {
	b := &Bound[This]{parts: make([]boundPart[This], 0, len(t.parts))}
	for _, p := range t.parts {
		if p.arg == nil {
			b.parts = append(b.parts, boundPart[This]{lit: p.lit})
			continue
		}
		ba, err := resolveArgument(p.arg, d)
		if err != nil {
			return nil, err
		}
		b.parts = append(b.parts, boundPart[This]{arg: ba})
	}
	return b, nil
}

func resolveArgument[This any](a *argument, d *Descriptor[This]) (*boundArg[This], error) {
	sp := a.spec
	if sp.plus && !sp.verb.numeric() {
		return nil, fmt.Errorf("%w: '+' requires a numeric verb, have %v", ErrInvalidTemplate, sp.verb)
	}
	if sp.zero && !sp.verb.numeric() {
		return nil, fmt.Errorf("%w: '0' requires a numeric verb, have %v", ErrInvalidTemplate, sp.verb)
	}
	if sp.alt && !sp.verb.radix() {
		return nil, fmt.Errorf("%w: '#' requires a radix verb, have %v", ErrInvalidTemplate, sp.verb)
	}
	if sp.prec.kind != countNone && !sp.verb.textual() {
		return nil, fmt.Errorf("%w: precision applies to human-readable and debug output only, have %v", ErrInvalidTemplate, sp.verb)
	}
	i, err := resolveRef(a.ref, d)
	if err != nil {
		return nil, err
	}
	format, ok := d.Formatter(i, sp.verb)
	if !ok {
		return nil, fmt.Errorf("%w: field %s has no %v representation", ErrUnsupportedVerb, refString(a.ref), sp.verb)
	}
	ba := &boundArg[This]{label: refString(a.ref), format: format, spec: sp}
	if ba.width, err = resolveCount(sp.width, d); err != nil {
		return nil, err
	}
	if ba.prec, err = resolveCount(sp.prec, d); err != nil {
		return nil, err
	}
	return ba, nil
}

func resolveRef[This any](r fieldRef, d *Descriptor[This]) (int, error) {
	if r.name != "" {
		i, ok := d.NameIndex(r.name)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownField, refString(r))
		}
		return i, nil
	}
	if !d.ValidIndex(r.index) {
		return 0, fmt.Errorf("%w: %d (container has %d fields)", ErrBadFieldIndex, r.index, d.NumFields())
	}
	return r.index, nil
}

func resolveCount[This any](c count, d *Descriptor[This]) (boundCount[This], error) {
	switch c.kind {
	case countConst:
		return boundCount[This]{kind: countConst, n: c.n}, nil
	case countRef:
		i, err := resolveRef(c.ref, d)
		if err != nil {
			return boundCount[This]{}, err
		}
		fn, ok := d.IndexValue(i)
		if !ok {
			return boundCount[This]{}, fmt.Errorf("%w: %s", ErrNotIndexField, refString(c.ref))
		}
		return boundCount[This]{kind: countRef, fn: fn}, nil
	}
	return boundCount[This]{}, nil
}

// Execute renders this to w. The sink is only used for the duration of the
// call; Bound retains no state between calls and may be executed concurrently
// for different containers.
func (b *Bound[This]) Execute(w io.Writer, this *This) error {
	var buf bytes.Buffer
	for i := range b.parts {
		p := &b.parts[i]
		if p.arg == nil {
			if _, err := io.WriteString(w, p.lit); err != nil {
				return err
			}
			continue
		}
		if err := p.arg.write(w, this, &buf); err != nil {
			return err
		}
	}
	return nil
}

func (a *boundArg[This]) write(w io.Writer, this *This, buf *bytes.Buffer) error {
	sp := a.spec
	if !sp.plus && !sp.alt && !sp.zero && sp.width.kind == countNone && sp.prec.kind == countNone {
		// Nothing to post-process; hand the sink straight to the formatter.
		return a.format(this, w)
	}
	width, err := a.evalCount(a.width, this, "width")
	if err != nil {
		return err
	}
	prec, err := a.evalCount(a.prec, this, "precision")
	if err != nil {
		return err
	}
	buf.Reset()
	if err := a.format(this, buf); err != nil {
		return err
	}
	s := buf.String()
	if sp.prec.kind != countNone {
		s = truncateGraphemes(s, prec)
	}
	if sp.alt {
		s = altPrefix(s, sp.verb)
	}
	if sp.plus && !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	if sp.width.kind != countNone {
		if sp.zero && sp.align == 0 {
			s = zeroPad(s, width)
		} else {
			align := sp.align
			if align == 0 {
				align = '<'
				if sp.verb.numeric() {
					align = '>'
				}
			}
			s = pad(s, width, sp.fill, align)
		}
	}
	_, err = io.WriteString(w, s)
	return err
}

func (a *boundArg[This]) evalCount(c boundCount[This], this *This, what string) (int, error) {
	switch c.kind {
	case countConst:
		return c.n, nil
	case countRef:
		n := c.fn(this)
		if n < 0 {
			return 0, fmt.Errorf("%w: %s %d for field %s", ErrNegativeCount, what, n, a.label)
		}
		return n, nil
	}
	return 0, nil
}

func altPrefix(s string, v Verb) string {
	var p string
	switch v {
	case Octal:
		p = "0o"
	case Binary:
		p = "0b"
	case LowerHex:
		p = "0x"
	case UpperHex:
		p = "0X"
	default:
		return s
	}
	if strings.HasPrefix(s, "-") {
		return "-" + p + s[1:]
	}
	return p + s
}

// Fexec parses tmpl, resolves it against d, and renders this to w. Callers
// formatting the same template repeatedly should [Parse] and [Resolve] once
// and reuse the [Bound].
func Fexec[This any](w io.Writer, d *Descriptor[This], tmpl string, this *This) error {
	t, err := Parse(tmpl)
	if err != nil {
		return err
	}
	b, err := Resolve(t, d)
	if err != nil {
		return err
	}
	return b.Execute(w, this)
}

// Format is [Fexec] into a string.
func Format[This any](d *Descriptor[This], tmpl string, this *This) (string, error) {
	var buf bytes.Buffer
	if err := Fexec(&buf, d, tmpl, this); err != nil {
		return "", err
	}
	return buf.String(), nil
}
