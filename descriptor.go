package rtfmt

import "fmt"

type fieldSlot[This any] struct {
	name    string
	formats [numVerbs]FormatFunc[This]
	index   IndexFunc[This]
}

// Builder assembles a [Descriptor] one field at a time. It is what generated
// registration code drives; see [AddField].
type Builder[This any] struct {
	names  map[string]int
	fields []fieldSlot[This]
}

// NewBuilder returns an empty descriptor builder for container type This.
func NewBuilder[This any]() *Builder[This] {
	return &Builder[This]{names: make(map[string]int)}
}

// AddField registers the next field in declaration order under name, bound
// through accessor a. Every verb is resolved against the field's type here,
// once, along with the int narrowing for dynamic widths. Field names must be
// unique; a duplicate is a generator bug and panics.
func AddField[This, Value any, A Accessor[This, Value]](b *Builder[This], name string, a A) {
	if _, dup := b.names[name]; dup {
		panic(fmt.Sprintf("rtfmt: duplicate field name %q", name))
	}
	slot := fieldSlot[This]{name: name}
	for _, v := range verbs {
		if f, ok := BindFormatter[This, Value](v, a); ok {
			slot.formats[v] = f
		}
	}
	if ix, ok := BindIndex[This, Value](a); ok {
		slot.index = ix
	}
	b.names[name] = len(b.fields)
	b.fields = append(b.fields, slot)
}

// Build seals the descriptor. The builder must not be used afterwards.
func (b *Builder[This]) Build() *Descriptor[This] {
	d := &Descriptor[This]{names: b.names, fields: b.fields}
	b.names = nil
	b.fields = nil
	return d
}

// Descriptor is the immutable lookup table for one container type: which
// names exist, which verbs each field supports, and which fields can supply
// a dynamic width or precision. Build it once per type and share it freely;
// it has no mutable state, so concurrent readers need no synchronization.
type Descriptor[This any] struct {
	names  map[string]int
	fields []fieldSlot[This]
}

// NameIndex returns the index of the field registered under name. When it
// reports true, the index is valid for every other Descriptor method.
func (d *Descriptor[This]) NameIndex(name string) (int, bool) {
	i, ok := d.names[name]
	return i, ok
}

// ValidIndex reports whether i is within [0, NumFields).
func (d *Descriptor[This]) ValidIndex(i int) bool {
	return 0 <= i && i < len(d.fields)
}

// NumFields returns the number of registered fields.
func (d *Descriptor[This]) NumFields() int { return len(d.fields) }

// FieldNames returns the registered field names in declaration order.
func (d *Descriptor[This]) FieldNames() []string {
	out := make([]string, len(d.fields))
	for i, f := range d.fields {
		out[i] = f.name
	}
	return out
}

// Formatter returns the formatter for field i rendered with verb v, or false
// when the field's type does not support v. The index must have been
// validated with [Descriptor.ValidIndex] or [Descriptor.NameIndex] first;
// an out-of-range index panics.
func (d *Descriptor[This]) Formatter(i int, v Verb) (FormatFunc[This], bool) {
	d.mustValid(i)
	if v < 0 || int(v) >= numVerbs {
		panic(fmt.Sprintf("rtfmt: invalid verb %v", v))
	}
	f := d.fields[i].formats[v]
	return f, f != nil
}

// IndexValue returns the accessor reading field i as an int, or false when
// the field cannot supply a width or precision. Same index contract as
// [Descriptor.Formatter].
func (d *Descriptor[This]) IndexValue(i int) (IndexFunc[This], bool) {
	d.mustValid(i)
	ix := d.fields[i].index
	return ix, ix != nil
}

func (d *Descriptor[This]) mustValid(i int) {
	if !d.ValidIndex(i) {
		panic(fmt.Sprintf("rtfmt: field index %d out of range [0, %d); validate it first", i, len(d.fields)))
	}
}
