package dispatcher

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sesTypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/sg-audit/internal/awsclientmgr"
	"github.com/outofoffice3/sg-audit/internal/shared"
)

type DispatchStatus string

const (
	Sent    DispatchStatus = "SENT"
	Skipped DispatchStatus = "SKIPPED"
	Failed  DispatchStatus = "FAILED"
)

type ReportDispatcher interface {

	// ###############################################################################################################
	// REPORT DISPATCH METHODS
	// ###############################################################################################################

	// email the violation report; skips when there is nothing to report
	SendReport(ctx context.Context, violations []shared.Violation) (DispatchStatus, error)

	// ###############################################################################################################
	// GETTER METHODS
	// ###############################################################################################################

	// get logger
	GetLogger() logger.Logger
}

type _ReportDispatcher struct {
	sesClient awsclientmgr.SESSendEmailAPI
	config    shared.Config
	logger    logger.Logger
}

type ReportDispatcherInitConfig struct {
	AwsClientMgr awsclientmgr.AWSClientMgr
	Config       shared.Config
	Logger       logger.Logger
}

// returns an instance of report dispatcher
func Init(config ReportDispatcherInitConfig) (ReportDispatcher, error) {
	client, ok := config.AwsClientMgr.GetSDKClient(awsclientmgr.SES)
	if !ok {
		return nil, DispatchError{Message: "ses client not loaded"}
	}
	sesClient, ok := client.(awsclientmgr.SESSendEmailAPI)
	if !ok {
		return nil, DispatchError{Message: "ses client does not implement SendEmail"}
	}
	return &_ReportDispatcher{
		sesClient: sesClient,
		config:    config.Config,
		logger:    config.Logger,
	}, nil
}

// SendReport sends one email per invocation.  An empty violation list is the
// normal quiet path and makes no network call.
func (d *_ReportDispatcher) SendReport(ctx context.Context, violations []shared.Violation) (DispatchStatus, error) {
	sos := d.GetLogger()
	if len(violations) == 0 {
		sos.Infof("no violations found, skipping report")
		return Skipped, nil
	}

	body := buildReportBody(violations)
	_, err := d.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(d.config.SenderEmail),
		Destination: &sesTypes.Destination{
			ToAddresses: []string{d.config.RecipientEmail},
		},
		Message: &sesTypes.Message{
			Subject: &sesTypes.Content{
				Data: aws.String(shared.ReportSubject),
			},
			Body: &sesTypes.Body{
				Text: &sesTypes.Content{
					Data: aws.String(body),
				},
			},
		},
	})
	if err != nil {
		sos.Errorf("error sending report, %v", err)
		return Failed, DispatchError{Message: "error sending report : [" + err.Error() + "]"}
	}
	sos.Infof("report with [%v] violations sent to [%s]", len(violations), d.config.RecipientEmail)
	return Sent, nil
}

// get logger
func (d *_ReportDispatcher) GetLogger() logger.Logger {
	return d.logger
}

// buildReportBody renders the header followed by one line per violation in
// input order.
func buildReportBody(violations []shared.Violation) string {
	lines := make([]string, 0, len(violations))
	for _, violation := range violations {
		lines = append(lines, violation.String())
	}
	return shared.ReportHeader + "\n\n" + strings.Join(lines, "\n")
}
