package graph

import (
	"fmt"
	"reflect"
)

// Kind identifies which variant a GraphData value holds.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindIntVec
	KindFloatVec
	KindList
	KindMap
	KindForeign
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindString:
		return "Str"
	case KindIntVec:
		return "IntVec"
	case KindFloatVec:
		return "FloatVec"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindForeign:
		return "Foreign"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// handle is the shared payload behind GraphData's large variants. A
// GraphData never copies a handle's contents; Clone (a plain struct
// copy of GraphData) only copies the pointer, so sharing a large
// payload across many consumers costs one allocation regardless of
// fan-out. The payload is never mutated after a handle is constructed.
type handle struct {
	str      string
	intVec   []int64
	floatVec []float64
	list     []GraphData
	m        map[string]GraphData
	foreign  any
}

// GraphData is a tagged value passed between nodes over the broadcast
// context. The zero value is Null.
type GraphData struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	h    *handle
}

// TypeError is returned by a typed accessor when the value does not
// hold the requested Kind.
type TypeError struct {
	Requested Kind
	Actual    Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("graphdata: requested %s accessor on a %s value", e.Requested, e.Actual)
}

// Null is the zero-value GraphData.
var Null = GraphData{kind: KindNull}

// NewInt constructs an Int GraphData.
func NewInt(v int64) GraphData { return GraphData{kind: KindInt, i: v} }

// NewFloat constructs a Float GraphData.
func NewFloat(v float64) GraphData { return GraphData{kind: KindFloat, f: v} }

// NewBool constructs a Bool GraphData.
func NewBool(v bool) GraphData { return GraphData{kind: KindBool, b: v} }

// NewString constructs a Str GraphData. The string is shared, not
// copied, by any Clone of the returned value.
func NewString(v string) GraphData {
	return GraphData{kind: KindString, h: &handle{str: v}}
}

// NewIntVec constructs an IntVec GraphData over v. The caller must not
// mutate v after this call; the slice becomes a shared, immutable
// payload.
func NewIntVec(v []int64) GraphData {
	return GraphData{kind: KindIntVec, h: &handle{intVec: v}}
}

// NewFloatVec constructs a FloatVec GraphData over v, with the same
// immutability contract as NewIntVec.
func NewFloatVec(v []float64) GraphData {
	return GraphData{kind: KindFloatVec, h: &handle{floatVec: v}}
}

// NewList constructs a List GraphData over items, with the same
// immutability contract as NewIntVec.
func NewList(items []GraphData) GraphData {
	return GraphData{kind: KindList, h: &handle{list: items}}
}

// NewMap constructs a Map GraphData over m, with the same immutability
// contract as NewIntVec.
func NewMap(m map[string]GraphData) GraphData {
	return GraphData{kind: KindMap, h: &handle{m: m}}
}

// NewForeign wraps an opaque value the core never inspects; it only
// forwards the handle between nodes. Intended for use by
// language-binding layers outside this package.
func NewForeign(v any) GraphData {
	return GraphData{kind: KindForeign, h: &handle{foreign: v}}
}

// Kind reports which variant the value holds.
func (d GraphData) Kind() Kind { return d.kind }

// IsNull reports whether d is the Null variant.
func (d GraphData) IsNull() bool { return d.kind == KindNull }

// Clone returns a structurally-shared copy of d: for the shared
// variants this copies only the handle pointer, never the underlying
// payload, so it is O(1) regardless of payload size.
func (d GraphData) Clone() GraphData { return d }

func (d GraphData) typeErr(want Kind) error {
	return &TypeError{Requested: want, Actual: d.kind}
}

// AsInt returns the Int payload, or a *TypeError if d is not an Int.
func (d GraphData) AsInt() (int64, error) {
	if d.kind != KindInt {
		return 0, d.typeErr(KindInt)
	}
	return d.i, nil
}

// AsFloat returns the Float payload, or a *TypeError if d is not a Float.
func (d GraphData) AsFloat() (float64, error) {
	if d.kind != KindFloat {
		return 0, d.typeErr(KindFloat)
	}
	return d.f, nil
}

// AsBool returns the Bool payload, or a *TypeError if d is not a Bool.
func (d GraphData) AsBool() (bool, error) {
	if d.kind != KindBool {
		return false, d.typeErr(KindBool)
	}
	return d.b, nil
}

// AsString returns the Str payload, or a *TypeError if d is not a Str.
func (d GraphData) AsString() (string, error) {
	if d.kind != KindString {
		return "", d.typeErr(KindString)
	}
	return d.h.str, nil
}

// AsIntVec returns a read-only view of the IntVec payload. Callers must
// not mutate the returned slice; it is shared with every other
// GraphData cloned from the same value.
func (d GraphData) AsIntVec() ([]int64, error) {
	if d.kind != KindIntVec {
		return nil, d.typeErr(KindIntVec)
	}
	return d.h.intVec, nil
}

// AsFloatVec returns a read-only view of the FloatVec payload, with the
// same sharing contract as AsIntVec.
func (d GraphData) AsFloatVec() ([]float64, error) {
	if d.kind != KindFloatVec {
		return nil, d.typeErr(KindFloatVec)
	}
	return d.h.floatVec, nil
}

// AsList returns a read-only view of the List payload, with the same
// sharing contract as AsIntVec.
func (d GraphData) AsList() ([]GraphData, error) {
	if d.kind != KindList {
		return nil, d.typeErr(KindList)
	}
	return d.h.list, nil
}

// AsMap returns a read-only view of the Map payload, with the same
// sharing contract as AsIntVec.
func (d GraphData) AsMap() (map[string]GraphData, error) {
	if d.kind != KindMap {
		return nil, d.typeErr(KindMap)
	}
	return d.h.m, nil
}

// AsForeign returns the opaque Foreign payload, or a *TypeError if d is
// not a Foreign value. The core never inspects the returned value.
func (d GraphData) AsForeign() (any, error) {
	if d.kind != KindForeign {
		return nil, d.typeErr(KindForeign)
	}
	return d.h.foreign, nil
}

// SameHandle reports whether d and other are shared variants backed by
// the identical underlying handle — i.e. one was produced by cloning
// the other (directly or transitively) rather than by constructing a
// fresh payload. Used to observe that large payloads are not copied on
// fan-out (see testable property 6 in the specification this package
// implements).
func (d GraphData) SameHandle(other GraphData) bool {
	return d.h != nil && d.h == other.h
}

// Equal reports whether d and other hold the same Kind and an
// equivalent value. Intended for tests; it is not used on any hot path.
func (d GraphData) Equal(other GraphData) bool {
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case KindNull:
		return true
	case KindInt:
		return d.i == other.i
	case KindFloat:
		return d.f == other.f
	case KindBool:
		return d.b == other.b
	case KindString:
		return d.h.str == other.h.str
	case KindIntVec:
		return reflect.DeepEqual(d.h.intVec, other.h.intVec)
	case KindFloatVec:
		return reflect.DeepEqual(d.h.floatVec, other.h.floatVec)
	case KindList:
		if len(d.h.list) != len(other.h.list) {
			return false
		}
		for i := range d.h.list {
			if !d.h.list[i].Equal(other.h.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(d.h.m) != len(other.h.m) {
			return false
		}
		for k, v := range d.h.m {
			ov, ok := other.h.m[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	case KindForeign:
		return reflect.DeepEqual(d.h.foreign, other.h.foreign)
	default:
		return false
	}
}
