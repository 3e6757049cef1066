package rtfmt

import (
	"fmt"
	"io"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

type applyFunc[T any] func(*T, io.Writer) error

// resolve decides whether verb v applies to type T and returns the operation
// that performs it. The decision is made once, when a formatter is bound, and
// the returned function carries it; formatting calls never inspect the type
// again.
func resolve[T any](v Verb) (applyFunc[T], bool) {
	switch v {
	case Display:
		return resolveDisplay[T]()
	case Debug:
		// Every type has a Go-syntax dump.
		return func(t *T, w io.Writer) error {
			_, err := spew.Fprintf(w, "%#v", *t)
			return err
		}, true
	case LowerExp:
		return resolveFloat[T]("%e")
	case UpperExp:
		return resolveFloat[T]("%E")
	case Octal:
		return resolveInteger[T]("%o")
	case Pointer:
		return resolvePointer[T]()
	case Binary:
		return resolveInteger[T]("%b")
	case LowerHex:
		return resolveInteger[T]("%x")
	case UpperHex:
		return resolveInteger[T]("%X")
	}
	return nil, false
}

// kindOf returns the kind of T's static type. This is the one reflect lookup
// in the package, and it happens at bind time only.
func kindOf[T any]() reflect.Kind {
	return reflect.TypeOf((*T)(nil)).Elem().Kind()
}

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// conformsTo reports whether T or *T implements iface. Interface-typed T
// counts too: a field declared as error knows how to print itself.
func conformsTo[T any](iface reflect.Type) bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

func resolveDisplay[T any]() (applyFunc[T], bool) {
	// Conformance first: a type that says how to print itself wins over its
	// kind.
	if conformsTo[T](stringerType) {
		return func(t *T, w io.Writer) error {
			if s, ok := any(t).(fmt.Stringer); ok {
				_, err := io.WriteString(w, s.String())
				return err
			}
			if s, ok := any(*t).(fmt.Stringer); ok {
				_, err := io.WriteString(w, s.String())
				return err
			}
			// Interface-typed field holding nil.
			_, err := io.WriteString(w, "<nil>")
			return err
		}, true
	}
	if conformsTo[T](errorType) {
		return func(t *T, w io.Writer) error {
			if e, ok := any(t).(error); ok {
				_, err := io.WriteString(w, e.Error())
				return err
			}
			if e, ok := any(*t).(error); ok {
				_, err := io.WriteString(w, e.Error())
				return err
			}
			_, err := io.WriteString(w, "<nil>")
			return err
		}, true
	}
	switch kindOf[T]() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return fprintfApply[T]("%v"), true
	}
	return nil, false
}

func resolveInteger[T any](verb string) (applyFunc[T], bool) {
	switch kindOf[T]() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fprintfApply[T](verb), true
	}
	return nil, false
}

func resolveFloat[T any](verb string) (applyFunc[T], bool) {
	switch kindOf[T]() {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return fprintfApply[T](verb), true
	}
	return nil, false
}

func resolvePointer[T any]() (applyFunc[T], bool) {
	switch kindOf[T]() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return fprintfApply[T]("%p"), true
	}
	return nil, false
}

func fprintfApply[T any](verb string) applyFunc[T] {
	return func(t *T, w io.Writer) error {
		_, err := fmt.Fprintf(w, verb, *t)
		return err
	}
}
