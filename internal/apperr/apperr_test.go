package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("rating fuera de rango")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("show %d", 1)))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicado")))
	assert.Equal(t, KindPermission, KindOf(Permission("ajeno")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("cualquiera")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestSentinelsWithErrorsIs(t *testing.T) {
	err := NotFound("lista %s no existe", "abc")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))

	// también a través de wrapping
	wrapped := fmt.Errorf("al borrar: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestFromStoreDeadline(t *testing.T) {
	err := FromStore("shows.get", context.DeadlineExceeded)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFromStorePassthrough(t *testing.T) {
	assert.NoError(t, FromStore("op", nil))

	orig := Conflict("concurrente")
	assert.Equal(t, orig, FromStore("op", orig))

	other := errors.New("io roto")
	got := FromStore("op", other)
	assert.Equal(t, KindUnknown, KindOf(got))
	assert.True(t, errors.Is(got, other))
}
