package itinerary

// MalformedResponseError reports model output that could not be coerced into
// an Itinerary. Field is the dotted path of the first missing or mistyped
// field, if any; Cause is empty when the field is missing.
type MalformedResponseError struct {
	Field string
	Cause string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	msg := "malformed model response"
	if e.Field != "" {
		if e.Cause == "" {
			return msg + ": missing required field " + e.Field
		}
		msg += ": field " + e.Field
	}
	if e.Cause != "" {
		msg += ": " + e.Cause
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
