package domain

import "errors"

// Error kinds raised by the catalog services. Call sites wrap these with
// pkg/errors to attach context; callers classify with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
	ErrPersistence      = errors.New("persistence failed")
	ErrUpstream         = errors.New("upstream provider failed")
	ErrUpstreamData     = errors.New("upstream data unusable")
	ErrSerialization    = errors.New("serialization failed")
	ErrInvalidAssetKind = errors.New("invalid asset kind")
)
