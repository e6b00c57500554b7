package shared

import "fmt"

type EnvVar string

// SecurityGroup is one virtual-firewall rule set with its inbound rules.
// GroupName is empty when the group carries no name.
type SecurityGroup struct {
	GroupId       string         `json:"groupId"`
	GroupName     string         `json:"groupName"`
	IpPermissions []IpPermission `json:"ipPermissions"`
}

// IpPermission is a single inbound rule with its allowed source ranges.
type IpPermission struct {
	IpRanges []IpRange `json:"ipRanges"`
}

type IpRange struct {
	CidrIp string `json:"cidrIp"`
}

// Violation records one inbound rule open to the world.  Violations are
// derived fresh on every run and never persisted.
type Violation struct {
	GroupId   string `json:"groupId"`
	GroupName string `json:"groupName"`
	CidrIp    string `json:"cidrIp"`
}

func (v Violation) String() string {
	return fmt.Sprintf("Security Group '%s' (%s) allows inbound access from %s.", v.GroupName, v.GroupId, v.CidrIp)
}

// AuditResult holds violations in input traversal order.
type AuditResult struct {
	Violations []Violation `json:"violations"`
}

// add violation
func (r *AuditResult) Add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// violation count
func (r *AuditResult) Count() int {
	return len(r.Violations)
}

// AuditReport is the lambda response shape returned to the trigger.
type AuditReport struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
