package accept

import (
	"fmt"
	"reflect"
)

// Table is a classifier derived from a constant enumeration.
type Table[S comparable] struct {
	variants  map[S]struct{}
	accepting map[S]struct{}
}

// Enum derives a classifier for the enumeration made of variants, accepting
// exactly the tagged values.
//
// S must be an integer, string or bool kind. Enum panics if S is any other
// kind, if a variant is declared twice, if a tagged value is not a declared
// variant, or if a variant is tagged twice.
func Enum[S comparable](variants []S, accepting ...S) *Table[S] {
	if !isEnumKind(reflect.TypeFor[S]().Kind()) {
		panic(fmt.Sprintf("accept: Enum is only defined for enumerations, got %s", reflect.TypeFor[S]()))
	}

	t := &Table[S]{
		variants:  make(map[S]struct{}, len(variants)),
		accepting: make(map[S]struct{}, len(accepting)),
	}
	for _, v := range variants {
		if _, dup := t.variants[v]; dup {
			panic(fmt.Sprintf("accept: variant %v declared more than once", v))
		}
		t.variants[v] = struct{}{}
	}
	for _, v := range accepting {
		if _, ok := t.variants[v]; !ok {
			panic(fmt.Sprintf("accept: %v is not a variant of %s", v, reflect.TypeFor[S]()))
		}
		if _, dup := t.accepting[v]; dup {
			panic(fmt.Sprintf("accept: variant %v tagged more than once", v))
		}
		t.accepting[v] = struct{}{}
	}
	return t
}

// Accepts reports whether s is one of the tagged variants.
func (t *Table[S]) Accepts(s S) bool {
	_, ok := t.accepting[s]
	return ok
}

// Has reports whether s is a declared variant.
func (t *Table[S]) Has(s S) bool {
	_, ok := t.variants[s]
	return ok
}

// Len returns the number of declared variants.
func (t *Table[S]) Len() int {
	return len(t.variants)
}

func isEnumKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}
