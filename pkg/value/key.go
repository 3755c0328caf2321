package value

import (
	"fmt"
	"strconv"
)

type KeyKind uint8

const (
	KeyKindString KeyKind = iota
	KeyKindSymbol
)

// Symbol is an unforgeable property key token. Two symbols are the same key
// only if they are the same pointer, whatever their descriptions.
type Symbol struct {
	description string
}

// NewSymbol creates a fresh symbol.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

func (s *Symbol) Description() string { return s.description }

func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.description)
}

// PropertyKey identifies a property: a string name or a symbol. Numeric indexes
// are string keys in canonical form, as in ECMAScript. PropertyKey is comparable
// and can be used as a map key.
type PropertyKey struct {
	kind KeyKind
	name string  // for string keys
	sym  *Symbol // for symbol keys
}

// Key constructs a string-named PropertyKey.
func Key(name string) PropertyKey { return PropertyKey{kind: KeyKindString, name: name} }

// IndexKey constructs the canonical key of an array index.
func IndexKey(i int) PropertyKey { return Key(strconv.Itoa(i)) }

// SymbolKey constructs a symbol-named PropertyKey.
func SymbolKey(sym *Symbol) PropertyKey { return PropertyKey{kind: KeyKindSymbol, sym: sym} }

func (k PropertyKey) Kind() KeyKind   { return k.kind }
func (k PropertyKey) IsString() bool  { return k.kind == KeyKindString }
func (k PropertyKey) IsSymbol() bool  { return k.kind == KeyKindSymbol }
func (k PropertyKey) Name() string    { return k.name }
func (k PropertyKey) Symbol() *Symbol { return k.sym }

// IsIndex reports whether k is a canonical array index ("0", "1", ... but not
// "01" or "-1").
func (k PropertyKey) IsIndex() bool {
	if k.kind != KeyKindString || k.name == "" {
		return false
	}
	if len(k.name) > 1 && k.name[0] == '0' {
		return false
	}
	n, err := strconv.ParseUint(k.name, 10, 32)
	if err != nil {
		return false
	}
	return n < 1<<32-1
}

func (k PropertyKey) String() string {
	if k.kind == KeyKindSymbol {
		if k.sym == nil {
			return "Symbol()"
		}
		return k.sym.String()
	}
	return k.name
}

// ToKey converts a string, *Symbol, int or PropertyKey to a PropertyKey.
func ToKey(v Value) (PropertyKey, bool) {
	switch x := v.(type) {
	case PropertyKey:
		return x, true
	case string:
		return Key(x), true
	case *Symbol:
		return SymbolKey(x), true
	case int:
		return IndexKey(x), true
	default:
		return PropertyKey{}, false
	}
}
