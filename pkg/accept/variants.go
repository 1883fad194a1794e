package accept

import (
	"fmt"
	"reflect"
)

// TypeSet is a classifier derived from a sealed interface sum type.
// Every dynamic type tagged at derivation is accepting.
type TypeSet[S any] struct {
	accepting map[reflect.Type]struct{}
}

// Variants derives a classifier for the interface type S. Each tagged value
// names its variant by dynamic type; the value itself is otherwise ignored.
//
// Variants panics if S is not an interface type, if a tag is nil, if a tagged
// variant carries data (anything but a struct without fields), or if a
// variant is tagged twice.
func Variants[S any](accepting ...S) *TypeSet[S] {
	st := reflect.TypeFor[S]()
	if st.Kind() != reflect.Interface {
		panic(fmt.Sprintf("accept: Variants is only defined for sealed interface types, got %s", st))
	}

	ts := &TypeSet[S]{accepting: make(map[reflect.Type]struct{}, len(accepting))}
	for _, v := range accepting {
		vt := reflect.TypeOf(v)
		if vt == nil {
			panic("accept: cannot tag a nil variant")
		}
		if vt.Kind() != reflect.Struct || vt.NumField() != 0 {
			panic(fmt.Sprintf("accept: variant %s carries data and cannot be tagged", vt))
		}
		if _, dup := ts.accepting[vt]; dup {
			panic(fmt.Sprintf("accept: variant %s tagged more than once", vt))
		}
		ts.accepting[vt] = struct{}{}
	}
	return ts
}

// Accepts reports whether the dynamic type of s is a tagged variant.
// A nil state is never accepting.
func (ts *TypeSet[S]) Accepts(s S) bool {
	vt := reflect.TypeOf(s)
	if vt == nil {
		return false
	}
	_, ok := ts.accepting[vt]
	return ok
}
