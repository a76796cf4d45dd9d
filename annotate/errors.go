package annotate

import "errors"

var (
	// ErrShortInput is returned by a primitive reader that needs more
	// bytes than remain in the span.
	ErrShortInput = errors.New("annotate: not enough input remaining")

	// ErrVerifyFailed is returned by Verify when its predicate rejects
	// the parsed value.
	ErrVerifyFailed = errors.New("annotate: verification predicate failed")

	// ErrResidualBytes marks the one core-specific failure mode beyond
	// plain parser failure: a decoder's parser succeeded but did not
	// consume every byte of the candidate binary. The decoder registry
	// treats this identically to a parser failure (see package decode).
	ErrResidualBytes = errors.New("annotate: parser left unconsumed bytes")
)
