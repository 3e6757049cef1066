// Package rtfmt formats struct fields through templates chosen at run time,
// while deciding per field type, not per call, which representations are
// available.
//
// The package is built around a closed set of format capabilities ([Verb]):
// human-readable, debug, exponential, octal, binary, hexadecimal, and
// pointer representations. For any type, [Applicable] answers whether a verb
// is supported, and [Apply] performs it. There is no general-purpose
// reflection at format time: support is resolved once, when a field is
// bound, from the type's kind and its interface conformance.
//
// # Binding fields
//
// A field is reached through an [Accessor], a zero-sized projection from a
// container to one of its fields:
//
//	type userAge struct{}
//
//	func (userAge) Get(u *User) *int { return &u.Age }
//
// [BindFormatter] turns an accessor plus a verb into a type-erased
// [FormatFunc], but only when the field's type supports that verb.
// [BindIndex] narrows an accessor to the int type used for dynamic widths
// and precisions, with no conversion from other integer types.
//
// # Descriptors
//
// A [Descriptor] is the immutable per-container table of field names,
// indexes, and bound formatters. It is assembled once through a [Builder],
// normally by code emitted by runtime-fmt-gen, and queried any number of
// times after that, concurrently if desired:
//
//	b := rtfmt.NewBuilder[User]()
//	rtfmt.AddField[User, string](b, "name", userName{})
//	rtfmt.AddField[User, int](b, "age", userAge{})
//	desc := b.Build()
//
// # Templates
//
// [Parse], [Resolve], and [Bound.Execute] interpret curly-brace templates
// against a descriptor:
//
//	out, err := rtfmt.Format(desc, "{name}: {age:>4} ({age:#x})", &user)
//
// Field lookups, verb support, and width/precision sources are all validated
// during [Resolve]; the sentinel errors ([ErrUnknownField],
// [ErrUnsupportedVerb], [ErrNotIndexField], ...) identify what a template
// got wrong. Execution after a successful resolve can only fail on sink
// errors and negative dynamic counts.
//
// # Errors and contract violations
//
// Ordinary outcomes such as a verb a type does not support or a name that is
// not registered are reported as false returns or wrapped sentinel errors.
// Violations of the package's trusted contracts (a stateful accessor, an
// unvalidated out-of-range index, applying an inapplicable verb) panic.
package rtfmt
