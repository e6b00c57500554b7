package shared

// errors that occur while loading the startup configuration.  Fatal; the
// audit never runs when one is raised.
type ConfigurationError struct {
	Message string
}

func (e ConfigurationError) Error() string {
	return e.Message
}
