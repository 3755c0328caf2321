package value

import (
	"fmt"
	"reflect"
	"strings"
)

// Record exposes a Go struct through the object protocol. Its keys are fixed
// when the record is created: one per exported field and one per exported
// method of the pointer type. Fields are writable data properties; methods are
// read-only callables bound to the struct.
//
// The key of a field can be renamed with a `moxy:"name"` tag; `moxy:"-"` hides
// the field.
type Record struct {
	ptr     reflect.Value
	fields  map[PropertyKey][]int
	methods map[PropertyKey]*Function
	keys    []PropertyKey
	proto   Object
}

// FromStruct builds a Record over ptr, which must be a non-nil pointer to a
// struct. Writes through the record land in the struct.
func FromStruct(ptr any) (*Record, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("value.FromStruct: want a non-nil struct pointer, got %T", ptr)
	}
	r := &Record{
		ptr:     rv,
		fields:  make(map[PropertyKey][]int),
		methods: make(map[PropertyKey]*Function),
	}
	st := rv.Elem().Type()
	for _, f := range reflect.VisibleFields(st) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("moxy"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		k := Key(name)
		if _, dup := r.fields[k]; dup {
			continue
		}
		r.fields[k] = f.Index
		r.keys = append(r.keys, k)
	}
	pt := rv.Type()
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		k := Key(m.Name)
		if _, clash := r.fields[k]; clash {
			continue
		}
		// Methods are lifted once so repeated reads return the same function.
		r.methods[k] = FromFunc(m.Name, rv.Method(i).Interface())
		r.keys = append(r.keys, k)
	}
	return r, nil
}

// MustFromStruct is FromStruct that panics on error, for test fixtures.
func MustFromStruct(ptr any) *Record {
	r, err := FromStruct(ptr)
	if err != nil {
		panic(err)
	}
	return r
}

// Struct returns the wrapped struct pointer.
func (r *Record) Struct() any { return r.ptr.Interface() }

func (r *Record) GetPrototypeOf() Object { return r.proto }

func (r *Record) SetPrototypeOf(proto Object) bool {
	r.proto = proto
	return true
}

func (r *Record) GetOwnProperty(key PropertyKey) (*Descriptor, bool) {
	if idx, ok := r.fields[key]; ok {
		fv := r.ptr.Elem().FieldByIndex(idx)
		return &Descriptor{Value: fv.Interface(), Writable: fv.CanSet(), Enumerable: true}, true
	}
	if fn, ok := r.methods[key]; ok {
		return &Descriptor{Value: fn}, true
	}
	return nil, false
}

// DefineOwnProperty only accepts new values for existing fields; a record
// cannot grow new keys.
func (r *Record) DefineOwnProperty(key PropertyKey, desc Descriptor) bool {
	idx, ok := r.fields[key]
	if !ok || desc.IsAccessor() {
		return false
	}
	fv := r.ptr.Elem().FieldByIndex(idx)
	if !fv.CanSet() {
		return false
	}
	v, err := convertArg(desc.Value, fv.Type())
	if err != nil {
		return false
	}
	fv.Set(v)
	return true
}

func (r *Record) Has(key PropertyKey) bool {
	if _, ok := r.fields[key]; ok {
		return true
	}
	if _, ok := r.methods[key]; ok {
		return true
	}
	return r.proto != nil && r.proto.Has(key)
}

func (r *Record) Get(key PropertyKey, receiver Value) (Value, error) {
	return OrdinaryGet(r, key, receiver)
}

func (r *Record) Set(key PropertyKey, v Value, receiver Value) (bool, error) {
	return OrdinarySet(r, key, v, receiver)
}

func (r *Record) Delete(key PropertyKey) bool {
	_, isField := r.fields[key]
	_, isMethod := r.methods[key]
	return !isField && !isMethod
}

func (r *Record) OwnKeys() []PropertyKey {
	return append([]PropertyKey(nil), r.keys...)
}
