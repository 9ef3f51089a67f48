package txn

// ValidationError is a malformed or out-of-range intent field. Recoverable at
// the request boundary, never fatal to the process.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PreconditionError is an intent that references state which does not exist,
// e.g. withdrawing from an absent position.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }
