package mock

import (
	"slices"

	"moxy/pkg/value"
)

// Call is one recorded interaction with a double: a function call, a
// construction, a property read or a property write.
//
// When IsThrown is set, Result holds the error the operation returned.
type Call struct {
	Args          []value.Value
	Result        value.Value
	Instance      value.Value // receiver of a call, or the constructed instance
	IsThrown      bool
	IsConstructor bool
}

func (c Call) clone() Call {
	c.Args = slices.Clone(c.Args)
	return c
}

// Err returns the thrown error of the call, or nil.
func (c Call) Err() error {
	if !c.IsThrown {
		return nil
	}
	err, _ := c.Result.(error)
	return err
}
