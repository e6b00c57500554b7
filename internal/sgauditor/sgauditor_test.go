package sgauditor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/sg-audit/internal/awsclientmgr"
	"github.com/outofoffice3/sg-audit/internal/collector"
	"github.com/outofoffice3/sg-audit/internal/dispatcher"
	"github.com/outofoffice3/sg-audit/internal/metricmgr"
	"github.com/outofoffice3/sg-audit/internal/shared"
	"github.com/stretchr/testify/assert"
)

type mockEc2Client struct {
	output *ec2.DescribeSecurityGroupsOutput
	err    error
	calls  int
}

func (m *mockEc2Client) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

type mockSesClient struct {
	err   error
	calls int
	input *ses.SendEmailInput
}

func (m *mockSesClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

func newTestAuditor(t *testing.T, ec2Client *mockEc2Client, sesClient *mockSesClient) SGAuditor {
	assertion := assert.New(t)
	sos := logger.NewConsoleLogger(logger.LogLevelDebug)

	mgr := awsclientmgr.NewAWSClientMgr()
	err := mgr.SetSDKClient(awsclientmgr.EC2, ec2Client)
	assertion.NoError(err)
	err = mgr.SetSDKClient(awsclientmgr.SES, sesClient)
	assertion.NoError(err)

	ruleCollector, err := collector.Init(collector.RuleCollectorInitConfig{
		AwsClientMgr: mgr,
		Logger:       sos,
	})
	assertion.NoError(err)

	reportDispatcher, err := dispatcher.Init(dispatcher.ReportDispatcherInitConfig{
		AwsClientMgr: mgr,
		Config: shared.Config{
			SenderEmail:    "audit@example.com",
			RecipientEmail: "secops@example.com",
		},
		Logger: sos,
	})
	assertion.NoError(err)

	sgAuditor := NewSGAuditor(SGAuditorInput{
		AccountId:        "012345678901",
		AwsClientMgr:     mgr,
		RuleCollector:    ruleCollector,
		ReportDispatcher: reportDispatcher,
		MetricMgr:        metricmgr.Init(),
		Logger:           sos,
	})
	assertion.NotNil(sgAuditor)
	return sgAuditor
}

func TestRunAudit(t *testing.T) {
	assertion := assert.New(t)

	// ####################################
	// ONE OPEN GROUP, ONE CLOSED GROUP
	// ####################################
	ec2Client := &mockEc2Client{
		output: &ec2.DescribeSecurityGroupsOutput{
			SecurityGroups: []ec2Types.SecurityGroup{
				{
					GroupId:   aws.String("sg-1"),
					GroupName: aws.String("web"),
					IpPermissions: []ec2Types.IpPermission{
						{IpRanges: []ec2Types.IpRange{{CidrIp: aws.String("0.0.0.0/0")}}},
					},
				},
				{
					GroupId:   aws.String("sg-2"),
					GroupName: aws.String("db"),
					IpPermissions: []ec2Types.IpPermission{
						{IpRanges: []ec2Types.IpRange{{CidrIp: aws.String("10.0.0.0/16")}}},
					},
				},
			},
		},
	}
	sesClient := &mockSesClient{}
	sgAuditor := newTestAuditor(t, ec2Client, sesClient)

	report, err := sgAuditor.RunAudit(context.Background())
	assertion.NoError(err)
	assertion.Equal(200, report.StatusCode)
	assertion.Equal("Audit complete. 1 insecure rules found.", report.Body)
	assertion.Equal(1, ec2Client.calls)
	assertion.Equal(1, sesClient.calls)

	body := aws.ToString(sesClient.input.Message.Body.Text.Data)
	assertion.Contains(body, "sg-1")
	assertion.NotContains(body, "sg-2")

	// ####################################
	// METRICS
	// ####################################
	mm := sgAuditor.GetMetricMgr()
	totalGroups, ok := mm.GetMetric(metricmgr.TotalSecurityGroups)
	assertion.True(ok)
	assertion.Equal(int32(2), totalGroups)
	totalViolations, ok := mm.GetMetric(metricmgr.TotalViolations)
	assertion.True(ok)
	assertion.Equal(int32(1), totalViolations)
	totalSent, ok := mm.GetMetric(metricmgr.TotalReportsSent)
	assertion.True(ok)
	assertion.Equal(int32(1), totalSent)
}

func TestRunAuditNoViolations(t *testing.T) {
	assertion := assert.New(t)
	ec2Client := &mockEc2Client{
		output: &ec2.DescribeSecurityGroupsOutput{
			SecurityGroups: []ec2Types.SecurityGroup{
				{
					GroupId:   aws.String("sg-2"),
					GroupName: aws.String("db"),
					IpPermissions: []ec2Types.IpPermission{
						{IpRanges: []ec2Types.IpRange{{CidrIp: aws.String("10.0.0.0/16")}}},
					},
				},
			},
		},
	}
	sesClient := &mockSesClient{}
	sgAuditor := newTestAuditor(t, ec2Client, sesClient)

	report, err := sgAuditor.RunAudit(context.Background())
	assertion.NoError(err)
	assertion.Equal(200, report.StatusCode)
	assertion.Equal("Audit complete. 0 insecure rules found.", report.Body)
	assertion.Equal(0, sesClient.calls)

	totalSkipped, ok := sgAuditor.GetMetricMgr().GetMetric(metricmgr.TotalReportsSkipped)
	assertion.True(ok)
	assertion.Equal(int32(1), totalSkipped)
}

func TestRunAuditEmptyAccount(t *testing.T) {
	assertion := assert.New(t)
	ec2Client := &mockEc2Client{output: &ec2.DescribeSecurityGroupsOutput{}}
	sesClient := &mockSesClient{}
	sgAuditor := newTestAuditor(t, ec2Client, sesClient)

	report, err := sgAuditor.RunAudit(context.Background())
	assertion.NoError(err)
	assertion.Equal("Audit complete. 0 insecure rules found.", report.Body)
	assertion.Equal(0, sesClient.calls)
}

func TestRunAuditCollectionFailure(t *testing.T) {
	assertion := assert.New(t)
	ec2Client := &mockEc2Client{err: errors.New("UnauthorizedOperation")}
	sesClient := &mockSesClient{}
	sgAuditor := newTestAuditor(t, ec2Client, sesClient)

	report, err := sgAuditor.RunAudit(context.Background())
	assertion.Error(err)
	assertion.IsType(collector.CollectionError{}, err)
	assertion.Equal(shared.AuditReport{}, report)
	assertion.Equal(0, sesClient.calls)
}

func TestRunAuditDispatchFailure(t *testing.T) {
	assertion := assert.New(t)
	ec2Client := &mockEc2Client{
		output: &ec2.DescribeSecurityGroupsOutput{
			SecurityGroups: []ec2Types.SecurityGroup{
				{
					GroupId:   aws.String("sg-1"),
					GroupName: aws.String("web"),
					IpPermissions: []ec2Types.IpPermission{
						{IpRanges: []ec2Types.IpRange{{CidrIp: aws.String("0.0.0.0/0")}}},
					},
				},
			},
		},
	}
	sesClient := &mockSesClient{err: errors.New("Throttling")}
	sgAuditor := newTestAuditor(t, ec2Client, sesClient)

	report, err := sgAuditor.RunAudit(context.Background())
	assertion.Error(err)
	assertion.IsType(dispatcher.DispatchError{}, err)
	assertion.Equal(shared.AuditReport{}, report)

	totalFailed, ok := sgAuditor.GetMetricMgr().GetMetric(metricmgr.TotalFailedSends)
	assertion.True(ok)
	assertion.Equal(int32(1), totalFailed)

	// the send was attempted once with the findings before failing
	assertion.Equal(1, sesClient.calls)
	body := aws.ToString(sesClient.input.Message.Body.Text.Data)
	assertion.True(strings.Contains(body, "sg-1"))
}
