package rtfmt

import "io"

// BindFormatter converts an accessor from This to Value into a type-erased
// formatter that renders the projected field with verb v. It returns false
// when Value does not support v.
//
// The container and field type arguments are spelled explicitly; Go cannot
// infer them from the accessor's method set:
//
//	f, ok := rtfmt.BindFormatter[User, string](rtfmt.Display, userName{})
//
// The accessor must be zero-sized (see [Accessor]); a is never retained, and
// the returned function materializes a fresh accessor on every call. Its
// output is byte-identical to calling [Apply] on the field value directly.
func BindFormatter[This, Value any, A Accessor[This, Value]](v Verb, a A) (FormatFunc[This], bool) {
	mustStateless(a)
	op, ok := resolve[Value](v)
	if !ok {
		return nil, false
	}
	return func(this *This, w io.Writer) error {
		var acc A
		return op(acc.Get(this), w)
	}, true
}

// BindIndex converts an accessor from This to Value into an accessor for the
// width/precision type. It returns false unless Value is exactly int, the
// type Go uses for widths, precisions, and indexing. There is no coercion:
// sized integers, unsigned integers, and named integer types all fail.
func BindIndex[This, Value any, A Accessor[This, Value]](a A) (IndexFunc[This], bool) {
	mustStateless(a)
	if _, ok := any((*Value)(nil)).(*int); !ok {
		return nil, false
	}
	return func(this *This) int {
		var acc A
		return *any(acc.Get(this)).(*int)
	}, true
}
