package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/parkwatch/pkg/core/cerr"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("listing: %w", cerr.Unavailable(model.ErrNoSnapshot))
	var ce *cerr.Error
	require.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, http.StatusServiceUnavailable, ce.HTTPStatusCode)
	assert.ErrorIs(t, wrapped, model.ErrNoSnapshot)
	assert.Equal(t, "[404] x", cerr.NotFound(errors.New("x")).Error())
}

func TestMismatchingSemVerError(t *testing.T) {
	err := &cerr.MismatchingSemVerError{{1, 2, 0}, {2, 0, 1}}
	assert.Equal(t, "expected v1.x (up to v1.2), but got v2.0.1", err.Error())
}
