package rtfmt

import (
	"fmt"
	"io"
	"reflect"
)

// Accessor projects one field out of a container. Implementations must be
// pure and carry no per-instance state: the concrete type must be zero-sized,
// so that any two accessors for the same field are indistinguishable and a
// fresh one can be materialized from the type alone. [BindFormatter] and
// [BindIndex] assert this and panic on violation.
//
// The canonical implementation is an empty struct returning a field address:
//
//	type userName struct{}
//
//	func (userName) Get(u *User) *string { return &u.Name }
type Accessor[This, Value any] interface {
	Get(*This) *Value
}

// FormatFunc renders one bound field of this to w with one bound verb. It is
// pure: the same container state always produces the same output.
type FormatFunc[This any] func(this *This, w io.Writer) error

// IndexFunc reads one bound int-typed field of this. Templates use it to let
// a field supply another field's dynamic width or precision.
type IndexFunc[This any] func(this *This) int

// mustStateless enforces the Accessor zero-size invariant. Accessors come
// from generated code, so a violation is a generator bug, not an input error.
func mustStateless(a any) {
	if size := reflect.TypeOf(a).Size(); size != 0 {
		panic(fmt.Sprintf("rtfmt: accessor %T must be stateless (zero-sized), instead size was %d", a, size))
	}
}
