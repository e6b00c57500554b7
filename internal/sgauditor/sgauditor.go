package sgauditor

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/sg-audit/internal/awsclientmgr"
	"github.com/outofoffice3/sg-audit/internal/collector"
	"github.com/outofoffice3/sg-audit/internal/dispatcher"
	"github.com/outofoffice3/sg-audit/internal/metricmgr"
	"github.com/outofoffice3/sg-audit/internal/shared"
)

type SGAuditor interface {

	// ###############################################################################################################
	// AUDIT METHODS
	// ###############################################################################################################

	// run one audit pass: list groups, collect violations, dispatch report
	RunAudit(ctx context.Context) (shared.AuditReport, error)

	// ###############################################################################################################
	// GETTER METHODS
	// ###############################################################################################################

	// get aws client mgr
	GetAWSClientMgr() awsclientmgr.AWSClientMgr
	// get rule collector
	GetRuleCollector() collector.RuleCollector
	// get report dispatcher
	GetReportDispatcher() dispatcher.ReportDispatcher
	// get metric mgr
	GetMetricMgr() metricmgr.MetricMgr
	// get logger
	GetLogger() logger.Logger
	// get account id
	GetAccountId() string
}

type _SGAuditor struct {
	accountId        string
	awsClientMgr     awsclientmgr.AWSClientMgr
	ruleCollector    collector.RuleCollector
	reportDispatcher dispatcher.ReportDispatcher
	metricMgr        metricmgr.MetricMgr
	logger           logger.Logger
}

type SGAuditorInitConfig struct {
	Cfg    aws.Config
	Config shared.Config
	Ctx    context.Context
	Logger logger.Logger
}

// returns an instance of security group auditor
func Init(config SGAuditorInitConfig) (SGAuditor, error) {
	// create aws client mgr
	awsClientMgr, err := awsclientmgr.Init(awsclientmgr.AWSClientMgrInitConfig{
		Ctx: config.Ctx,
		Cfg: config.Cfg,
	})
	// return errors
	if err != nil {
		return nil, err
	}

	// create rule collector
	ruleCollector, err := collector.Init(collector.RuleCollectorInitConfig{
		AwsClientMgr: awsClientMgr,
		Logger:       config.Logger,
	})
	// return errors
	if err != nil {
		return nil, err
	}

	// create report dispatcher
	reportDispatcher, err := dispatcher.Init(dispatcher.ReportDispatcherInitConfig{
		AwsClientMgr: awsClientMgr,
		Config:       config.Config,
		Logger:       config.Logger,
	})
	// return errors
	if err != nil {
		return nil, err
	}

	mm := metricmgr.Init()

	// create sg auditor
	sgAuditor := NewSGAuditor(SGAuditorInput{
		AccountId:        awsClientMgr.GetAccountId(),
		AwsClientMgr:     awsClientMgr,
		RuleCollector:    ruleCollector,
		ReportDispatcher: reportDispatcher,
		MetricMgr:        mm,
		Logger:           config.Logger,
	})

	return sgAuditor, nil
}

type SGAuditorInput struct {
	AccountId        string
	AwsClientMgr     awsclientmgr.AWSClientMgr
	RuleCollector    collector.RuleCollector
	ReportDispatcher dispatcher.ReportDispatcher
	MetricMgr        metricmgr.MetricMgr
	Logger           logger.Logger
}

func NewSGAuditor(input SGAuditorInput) SGAuditor {
	return &_SGAuditor{
		accountId:        input.AccountId,
		awsClientMgr:     input.AwsClientMgr,
		ruleCollector:    input.RuleCollector,
		reportDispatcher: input.ReportDispatcher,
		metricMgr:        input.MetricMgr,
		logger:           input.Logger,
	}
}

// RunAudit is synchronous and holds no state across invocations; every run
// fetches fresh data.  Collection and dispatch failures propagate to the
// caller unretried.
func (a *_SGAuditor) RunAudit(ctx context.Context) (shared.AuditReport, error) {
	sos := a.GetLogger()
	mm := a.GetMetricMgr()

	groups, err := a.ruleCollector.ListSecurityGroups(ctx)
	// return errors
	if err != nil {
		return shared.AuditReport{}, err
	}
	mm.IncrementMetric(metricmgr.TotalSecurityGroups, int32(len(groups)))
	for _, group := range groups {
		mm.IncrementMetric(metricmgr.TotalInboundPermissions, int32(len(group.IpPermissions)))
	}

	result := shared.AuditResult{}
	for _, violation := range a.ruleCollector.FindViolations(groups) {
		result.Add(violation)
	}
	mm.IncrementMetric(metricmgr.TotalViolations, int32(result.Count()))
	sos.Infof("found [%v] violations across [%v] security groups", result.Count(), len(groups))

	status, err := a.reportDispatcher.SendReport(ctx, result.Violations)
	// return errors
	if err != nil {
		mm.IncrementMetric(metricmgr.TotalFailedSends, 1)
		return shared.AuditReport{}, err
	}
	switch status {
	case dispatcher.Sent:
		mm.IncrementMetric(metricmgr.TotalReportsSent, 1)
	case dispatcher.Skipped:
		mm.IncrementMetric(metricmgr.TotalReportsSkipped, 1)
	}

	a.logMetrics()

	return shared.AuditReport{
		StatusCode: 200,
		Body:       fmt.Sprintf("Audit complete. %d insecure rules found.", result.Count()),
	}, nil
}

// log run counters
func (a *_SGAuditor) logMetrics() {
	sos := a.GetLogger()
	mm := a.GetMetricMgr()
	for _, metric := range []metricmgr.Metric{
		metricmgr.TotalSecurityGroups,
		metricmgr.TotalInboundPermissions,
		metricmgr.TotalViolations,
		metricmgr.TotalReportsSent,
		metricmgr.TotalReportsSkipped,
		metricmgr.TotalFailedSends,
	} {
		value, ok := mm.GetMetric(metric)
		if !ok {
			continue
		}
		sos.Infof("[%s] : [%v]", string(metric), value)
	}
}

// get aws client mgr
func (a *_SGAuditor) GetAWSClientMgr() awsclientmgr.AWSClientMgr {
	return a.awsClientMgr
}

// get rule collector
func (a *_SGAuditor) GetRuleCollector() collector.RuleCollector {
	return a.ruleCollector
}

// get report dispatcher
func (a *_SGAuditor) GetReportDispatcher() dispatcher.ReportDispatcher {
	return a.reportDispatcher
}

// get metric mgr
func (a *_SGAuditor) GetMetricMgr() metricmgr.MetricMgr {
	return a.metricMgr
}

// get logger
func (a *_SGAuditor) GetLogger() logger.Logger {
	return a.logger
}

// get account id
func (a *_SGAuditor) GetAccountId() string {
	return a.accountId
}
