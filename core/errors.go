package core

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string
	Error string
}

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

// FieldText returns the message attached to the given field, if any.
func (err ValidationError) FieldText(field string) string {
	for _, fe := range err.Fields {
		if fe.Field == field {
			return fe.Error
		}
	}
	return ""
}
