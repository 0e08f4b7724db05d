package errs

import "errors"

// Error taxonomy shared by use cases and adapters. Producers wrap these with
// fmt.Errorf("...: %w", ErrX); adapters classify with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrComputation      = errors.New("computation failed")
	ErrIngestion        = errors.New("ingestion failed")
)
