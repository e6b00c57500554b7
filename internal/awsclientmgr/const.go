package awsclientmgr

type AWSServiceName string

const (
	EC2 AWSServiceName = "EC2"
	SES AWSServiceName = "SES"
	STS AWSServiceName = "STS"
)
