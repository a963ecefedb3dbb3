package batch

import "errors"

// Validation errors raised by the batch layout resolver. All of them are
// precondition violations: they abort the whole batch call before any
// matrix work starts, so a failed call never produces partial output.
var (
	ErrBatchSizeMismatch    = errors.New("hypothesis and reference descriptors delimit different pair counts")
	ErrOffsetsEmpty         = errors.New("offset descriptor must contain at least one boundary")
	ErrOffsetsNotMonotonic  = errors.New("offset descriptor must be monotonically non-decreasing")
	ErrOffsetsOutOfRange    = errors.New("offset descriptor exceeds token array bounds")
	ErrEmptyReference       = errors.New("reference sequence has zero length")
	ErrInvalidNormalization = errors.New("normalization undefined for zero-length reference")
)
