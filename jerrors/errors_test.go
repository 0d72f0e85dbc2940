package jerrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.appointy.com/gqlclientgen/jerrors"
)

func TestErrorFormatting(t *testing.T) {
	bare := jerrors.New(jerrors.SchemaError, "boom", nil)
	require.Equal(t, "SchemaError: boom", bare.Error())

	withPath := jerrors.New(jerrors.SchemaError, "boom", []string{"Query", "everything"})
	require.Equal(t, "SchemaError: boom (at Query.everything)", withPath.Error())
}

func TestWithPathPrependsInUnwindOrder(t *testing.T) {
	err := jerrors.Namedf(jerrors.UnknownFieldError, "isGoodDog", nil, "unknown field %q", "isGoodDog")
	err = err.WithPath("on Dog")
	err = err.WithPath("everything[]")
	err = err.WithPath("Everything")

	require.Equal(t, []string{"Everything", "everything[]", "on Dog"}, err.Path)
}

func TestIsMatchesByCode(t *testing.T) {
	a := jerrors.New(jerrors.CycleError, "a", nil)
	b := jerrors.New(jerrors.CycleError, "b", []string{"x"})
	c := jerrors.New(jerrors.SchemaError, "c", nil)

	require.True(t, errors.Is(a, b))
	require.False(t, errors.Is(a, c))
}
