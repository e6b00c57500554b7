package metricmgr

type Metric string

const (
	TotalSecurityGroups     Metric = "totalSecurityGroups"
	TotalInboundPermissions Metric = "totalInboundPermissions"
	TotalViolations         Metric = "totalViolations"

	TotalReportsSent    Metric = "totalReportsSent"
	TotalReportsSkipped Metric = "totalReportsSkipped"
	TotalFailedSends    Metric = "totalFailedSends"
)
