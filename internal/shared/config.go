package shared

import "os"

// Config carries the report addressing.  It is read from the environment once
// at startup and threaded through to the dispatcher; nothing reads the
// environment after init.
type Config struct {
	SenderEmail    string `json:"senderEmail"`
	RecipientEmail string `json:"recipientEmail"`
}

// NewConfigFromEnv loads and validates the report addressing from the process
// environment.  A missing or malformed value is a ConfigurationError and no
// audit runs.
func NewConfigFromEnv() (Config, error) {
	sender := os.Getenv(string(EnvSESSender))
	if sender == "" {
		return Config{}, ConfigurationError{Message: "env var [" + string(EnvSESSender) + "] not set"}
	}
	recipient := os.Getenv(string(EnvSESRecipient))
	if recipient == "" {
		return Config{}, ConfigurationError{Message: "env var [" + string(EnvSESRecipient) + "] not set"}
	}
	if !IsValidEmail(sender) {
		return Config{}, ConfigurationError{Message: "invalid sender address [" + sender + "]"}
	}
	if !IsValidEmail(recipient) {
		return Config{}, ConfigurationError{Message: "invalid recipient address [" + recipient + "]"}
	}
	return Config{
		SenderEmail:    sender,
		RecipientEmail: recipient,
	}, nil
}
