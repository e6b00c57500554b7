package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/sg-audit/handle"
	"github.com/outofoffice3/sg-audit/internal/sgauditor"
	"github.com/outofoffice3/sg-audit/internal/shared"
)

func main() {
	sos := logger.NewConsoleLogger(logger.LogLevelDebug)
	sos.Infof("main init started")

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		sos.Errorf("failed to load SDK config, %v", err)
		panic("failed to load sdk config")
	}
	sos.Infof("SDK config loaded")

	// report addressing is read from the environment exactly once, here
	auditConfig, err := shared.NewConfigFromEnv()
	if err != nil {
		sos.Errorf("failed to load audit config, %v", err)
		panic("failed to load audit config : " + err.Error())
	}
	sos.Debugf("report sender [%s]", auditConfig.SenderEmail)
	sos.Debugf("report recipient [%s]", auditConfig.RecipientEmail)

	sgAuditor, err := sgauditor.Init(sgauditor.SGAuditorInitConfig{
		Cfg:    cfg,
		Config: auditConfig,
		Ctx:    ctx,
		Logger: sos,
	})
	if err != nil {
		sos.Errorf("failed to init sg auditor, %v", err)
		panic("failed to init sg auditor : " + err.Error())
	}
	sos.Infof("sg auditor initialized for account [%s]", sgAuditor.GetAccountId())

	lambda.Start(func(ctx context.Context, event events.CloudWatchEvent) (shared.AuditReport, error) {
		return handle.HandleScheduledEvent(ctx, event, sgAuditor)
	})
}
