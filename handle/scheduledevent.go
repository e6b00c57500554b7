package handle

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/outofoffice3/sg-audit/internal/sgauditor"
	"github.com/outofoffice3/sg-audit/internal/shared"
)

// HandleScheduledEvent runs one audit pass for a scheduled trigger.  The
// event payload carries no input for the audit and is logged for
// traceability only.
func HandleScheduledEvent(ctx context.Context, event events.CloudWatchEvent, sgAuditor sgauditor.SGAuditor) (shared.AuditReport, error) {
	log.Printf("scheduled event source [%s] id [%s]\n", event.Source, event.ID)
	log.Printf("auditing account [%s]\n", sgAuditor.GetAccountId())
	report, err := sgAuditor.RunAudit(ctx)
	if err != nil {
		return shared.AuditReport{}, err
	}
	log.Printf("audit completed : [%s]\n", report.Body)
	return report, nil
}
