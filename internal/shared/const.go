package shared

const (
	EnvSESSender    EnvVar = "SES_SENDER"
	EnvSESRecipient EnvVar = "SES_RECIPIENT"

	// OpenCidr is the source range matching any address.
	OpenCidr = "0.0.0.0/0"
	// UnnamedGroup substitutes for a missing security group name.
	UnnamedGroup = "Unnamed"

	ReportSubject = "Security Group Audit Alert"
	ReportHeader  = "Security Group Audit Report:"
)
