package rtfmt

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidTemplate = errors.New("invalid template")
	ErrUnknownVerb     = errors.New("unknown format verb")
	ErrUnsupportedVerb = errors.New("unsupported format verb")
	ErrUnknownField    = errors.New("unknown field")
	ErrBadFieldIndex   = errors.New("field index out of range")
	ErrNotIndexField   = errors.New("field cannot supply a width or precision")
	ErrNegativeCount   = errors.New("negative width or precision")
)

//go:generate go tool stringer -type=Verb -output=verb_string.go

// Verb is one representation kind a field's type may or may not support.
// The set is closed; there is no way to register additional verbs.
type Verb int

const (
	Display Verb = iota // human-readable
	Debug               // Go-syntax value dump
	LowerExp            // scientific notation, lowercase e
	UpperExp            // scientific notation, uppercase E
	Octal
	Pointer // address of the referenced data
	Binary
	LowerHex
	UpperHex

	// numVerbs is the total number of verbs defined.
	numVerbs = int(iota)
)

var verbs = []Verb{Display, Debug, LowerExp, UpperExp, Octal, Pointer, Binary, LowerHex, UpperHex}

// Verbs returns all verbs in the fixed set.
func Verbs() []Verb {
	out := make([]Verb, len(verbs))
	copy(out, verbs)
	return out
}

// Token returns the template token that selects v. The human-readable verb
// has the empty token.
func (v Verb) Token() string {
	switch v {
	case Display:
		return ""
	case Debug:
		return "?"
	case LowerExp:
		return "e"
	case UpperExp:
		return "E"
	case Octal:
		return "o"
	case Pointer:
		return "p"
	case Binary:
		return "b"
	case LowerHex:
		return "x"
	case UpperHex:
		return "X"
	}
	return "?" + v.String() + "?"
}

// ParseVerb parses a template verb token. The empty token selects the
// human-readable verb.
func ParseVerb(token string) (Verb, error) {
	switch token {
	case "":
		return Display, nil
	case "?":
		return Debug, nil
	case "e":
		return LowerExp, nil
	case "E":
		return UpperExp, nil
	case "o":
		return Octal, nil
	case "p":
		return Pointer, nil
	case "b":
		return Binary, nil
	case "x":
		return LowerHex, nil
	case "X":
		return UpperHex, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVerb, token)
}

// radix reports whether v renders an integer in a non-decimal base. Radix
// verbs accept the # flag and zero padding.
func (v Verb) radix() bool {
	switch v {
	case Octal, Binary, LowerHex, UpperHex:
		return true
	}
	return false
}

// numeric reports whether v only ever renders numbers. Numeric output is
// right-aligned by default and accepts the + and 0 flags.
func (v Verb) numeric() bool {
	return v.radix() || v == LowerExp || v == UpperExp
}

// textual reports whether v renders free-form text, which is what precision
// truncation applies to.
func (v Verb) textual() bool {
	return v == Display || v == Debug
}

// Applicable reports whether verb v applies to type T. The decision depends
// only on the static type: interface conformance (fmt.Stringer and error
// unlock the human-readable verb) and the type's kind (integer kinds unlock
// the radix verbs, float and complex kinds the exponential verbs, reference
// kinds the pointer verb). The debug verb applies to every type.
func Applicable[T any](v Verb) bool {
	_, ok := resolve[T](v)
	return ok
}

// Apply renders *val to w using verb v.
//
// Apply must only be called when Applicable[T](v) holds; calling it for an
// inapplicable pair is a contract violation and panics. Formatters produced
// by [BindFormatter] never violate this.
func Apply[T any](v Verb, val *T, w io.Writer) error {
	op, ok := resolve[T](v)
	if !ok {
		panic(fmt.Sprintf("rtfmt: verb %v is not applicable to %T", v, *val))
	}
	return op(val, w)
}
