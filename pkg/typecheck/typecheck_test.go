package typecheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nanos float64

func TestCheck_Primitives(t *testing.T) {
	tests := []struct {
		name    string
		check   func(any, string) error
		value   any
		wantErr bool
	}{
		{"string ok", String, "spotify:track:1", false},
		{"string rejects int", String, 1234, true},
		{"string rejects nil", String, nil, true},
		{"int ok", Int, -1, false},
		{"int accepts int64", Int, int64(3), false},
		{"int rejects float", Int, 3.0, true},
		{"int rejects bool", Int, true, true},
		{"float ok", Float, 0.25, false},
		{"float accepts float32", Float, float32(0.5), false},
		{"float rejects int", Float, 0, true},
		{"bool ok", Bool, false, false},
		{"bool rejects string", Bool, "true", true},
		{"time ok", Time, 1.5e9, false},
		{"time accepts named float", Time, nanos(10), false},
		{"time rejects int", Time, 1234, true},
		{"time rejects string", Time, "10s", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.value, "prop")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTypeMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheck_Lists(t *testing.T) {
	assert.NoError(t, FloatList([]float64{100, 1000}, "cutoffs"))
	assert.NoError(t, FloatList([]float64{}, "cutoffs"))
	assert.NoError(t, FloatList([]any{100.0, 2000.5}, "cutoffs"))
	assert.NoError(t, StringList([]string{"a", "b"}, "names"))
	assert.NoError(t, IntList([3]int{1, 2, 3}, "counts"))
	assert.NoError(t, BoolList([]bool{true}, "flags"))
	assert.NoError(t, TimeList([]nanos{0, 1e9}, "marks"))

	assert.ErrorIs(t, FloatList([]any{100.0, "x"}, "cutoffs"), ErrTypeMismatch)
	assert.ErrorIs(t, FloatList([]int{1}, "cutoffs"), ErrTypeMismatch)
	assert.ErrorIs(t, FloatList(1.0, "cutoffs"), ErrTypeMismatch)
	assert.ErrorIs(t, FloatList(nil, "cutoffs"), ErrTypeMismatch)
	assert.ErrorIs(t, StringList([]any{nil}, "names"), ErrTypeMismatch)
}

func TestTypeMismatchError_Message(t *testing.T) {
	err := String(1234, "file")
	require.Error(t, err)

	var mismatch *TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "string", mismatch.Expected)
	assert.Equal(t, "file", mismatch.Property)
	assert.Equal(t, "int", mismatch.Got)
	assert.Equal(t, "type mismatch: expected file to be a string kind, got int", err.Error())

	err = FloatList([]any{"a"}, "")
	assert.Contains(t, err.Error(), "expected value to be a list(float) kind")
}

func TestKind_Elem(t *testing.T) {
	assert.Equal(t, KindFloat, KindFloatList.Elem())
	assert.Equal(t, KindTime, KindTimeList.Elem())
	assert.Equal(t, KindString, KindString.Elem())
	assert.True(t, KindBoolList.IsList())
	assert.False(t, KindTime.IsList())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
