package moxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moxy/pkg/config"
	"moxy/pkg/errors"
	"moxy/pkg/mock"
	"moxy/pkg/value"
)

func TestNewEmptyTarget(t *testing.T) {
	fn, err := New(nil)
	require.NoError(t, err)
	require.True(t, value.IsCallable(fn))

	res, err := value.Call(fn, nil, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, res)

	m, ok := mock.Of(fn)
	require.True(t, ok)
	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []value.Value{1, 2}, calls[0].Args)
}

func TestNewFakeEmptyTarget(t *testing.T) {
	fn := MustNew(nil)
	m, _ := mock.Of(fn)
	m.FakeReturnValue("faked")

	res, err := value.Call(fn, nil)
	require.NoError(t, err)
	assert.Equal(t, "faked", res)
}

func TestNewInvalidTarget(t *testing.T) {
	_, err := New(42)
	assert.ErrorIs(t, err, errors.ErrInvalidTarget)
	assert.Panics(t, func() { MustNew("str") })
}

func TestFactoryDefaults(t *testing.T) {
	reg := config.NewRegistry(mock.WithAccessKey("spy"), mock.WithRecordGetter(true))
	proxify := Factory(reg)

	obj := value.NewObject(nil)
	obj.SetOwn("x", 1)
	d, err := proxify(obj, mock.WithRecordGetter(false))
	require.NoError(t, err)

	spy, err := value.Get(d, value.Key("spy"))
	require.NoError(t, err)
	m, ok := spy.(*mock.Mock)
	require.True(t, ok)
	assert.False(t, m.Options().RecordGetter)

	reg.ResetDefaults()
	d2, err := proxify(obj)
	require.NoError(t, err)
	m2, _ := mock.Of(d2)
	assert.Equal(t, value.Key(mock.DefaultAccessKey), m2.Options().AccessKey)
}

func TestFactoryIdempotent(t *testing.T) {
	proxify := Factory(config.NewRegistry())
	d, err := proxify(nil)
	require.NoError(t, err)
	again, err := proxify(d)
	require.NoError(t, err)
	assert.Same(t, d, again)
}
