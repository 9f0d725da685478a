package services

// The service layer surfaces four error families. Controllers map them to
// HTTP statuses; everything else is treated as an infrastructure failure.

// ValidationError reports malformed or unusable caller input
// (empty cart at checkout, bad part token, malformed date range)
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports an operation blocked by existing state
// (deleting a product that order lines still reference)
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError reports a missing record lookup
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// AuthError reports invalid credentials or insufficient privilege
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
