package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorKindsClassifyThroughWrapping(t *testing.T) {
	kinds := []error{
		ErrNotFound,
		ErrConflict,
		ErrValidation,
		ErrPersistence,
		ErrUpstream,
		ErrUpstreamData,
		ErrSerialization,
		ErrInvalidAssetKind,
	}

	for _, kind := range kinds {
		wrapped := errors.Wrapf(kind, "product %d", 42)
		assert.True(t, errors.Is(wrapped, kind), "%v should classify through wrapping", kind)
	}

	// kinds are distinct from each other
	wrapped := errors.Wrap(ErrNotFound, "category 7")
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.False(t, errors.Is(wrapped, ErrValidation))
}
