package core

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError indicates missing/invalid fields or a violated business rule.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError indicates that a referenced record does not exist.
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{message: msg}
}

func (err NotFoundError) Error() string {
	return err.message
}

// ConflictError indicates a uniqueness or duplicate-assignment violation.
type ConflictError struct {
	message string
}

func NewConflictError(msg string) error {
	return &ConflictError{message: msg}
}

func (err ConflictError) Error() string {
	return err.message
}

// AmbiguousMatchError indicates that a name lookup matched more than one record.
type AmbiguousMatchError struct {
	message string
}

func NewAmbiguousMatchError(msg string) error {
	return &AmbiguousMatchError{message: msg}
}

func (err AmbiguousMatchError) Error() string {
	return err.message
}

// CredentialsError indicates an authentication failure. The message is uniform
// whether the account exists or not, to avoid account enumeration.
type CredentialsError struct {
	message string
}

func NewCredentialsError(msg string) error {
	return &CredentialsError{message: msg}
}

func (err CredentialsError) Error() string {
	return err.message
}
