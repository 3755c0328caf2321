package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeError(t *testing.T) {
	err := NewTypeError(ErrInvalidTarget, "Cannot create a proxy with %s", "42")

	assert.Equal(t, "TypeError: Cannot create a proxy with 42", err.Error())
	assert.Equal(t, "Type", err.Kind())
	assert.Equal(t, "Cannot create a proxy with 42", err.Message())
	assert.True(t, Is(err, ErrInvalidTarget))
	assert.False(t, Is(err, ErrNotCallable))

	wrapped := fmt.Errorf("setup: %w", err)
	var te *TypeError
	require.True(t, As(wrapped, &te))
	assert.Same(t, err, te)
}

func TestMissingTrap(t *testing.T) {
	err := MissingTrap(2, "dropGet", "get")

	assert.Equal(t, `Middleware Error in #2 (dropGet): handler returned by the middleware has no "get" trap`, err.Error())
	assert.Equal(t, "Middleware", err.Kind())
	assert.Equal(t, "get", err.Trap)
	assert.True(t, stderrors.Is(err, ErrIncompleteMiddleware))

	var me MoxyError = err
	assert.Equal(t, ErrIncompleteMiddleware, me.Unwrap())
}

func TestCausedBy(t *testing.T) {
	cause := stderrors.New("root")
	err := (&TypeError{Msg: "outer"}).CausedBy(cause)
	assert.Same(t, cause, err.Unwrap())
}
