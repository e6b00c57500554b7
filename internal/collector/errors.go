package collector

// errors that occur while listing security groups.  Fatal to the invocation;
// the trigger layer owns retry and alerting.
type CollectionError struct {
	Message string
}

func (e CollectionError) Error() string {
	return e.Message
}
