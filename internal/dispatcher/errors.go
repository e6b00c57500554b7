package dispatcher

// errors that occur when sending the report email.  Fatal to the invocation;
// the findings for this run are lost and the trigger layer alerts.
type DispatchError struct {
	Message string
}

func (e DispatchError) Error() string {
	return e.Message
}
