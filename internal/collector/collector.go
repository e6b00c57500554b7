package collector

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/sg-audit/internal/awsclientmgr"
	"github.com/outofoffice3/sg-audit/internal/shared"
)

type RuleCollector interface {

	// ###############################################################################################################
	// RULE COLLECTION METHODS
	// ###############################################################################################################

	// list security groups for the current account/region
	ListSecurityGroups(ctx context.Context) ([]shared.SecurityGroup, error)
	// find inbound rules open to the world
	FindViolations(groups []shared.SecurityGroup) []shared.Violation

	// ###############################################################################################################
	// GETTER METHODS
	// ###############################################################################################################

	// get logger
	GetLogger() logger.Logger
}

type _RuleCollector struct {
	ec2Client awsclientmgr.EC2DescribeSecurityGroupsAPI
	logger    logger.Logger
}

type RuleCollectorInitConfig struct {
	AwsClientMgr awsclientmgr.AWSClientMgr
	Logger       logger.Logger
}

// returns an instance of rule collector
func Init(config RuleCollectorInitConfig) (RuleCollector, error) {
	client, ok := config.AwsClientMgr.GetSDKClient(awsclientmgr.EC2)
	if !ok {
		return nil, CollectionError{Message: "ec2 client not loaded"}
	}
	ec2Client, ok := client.(awsclientmgr.EC2DescribeSecurityGroupsAPI)
	if !ok {
		return nil, CollectionError{Message: "ec2 client does not implement DescribeSecurityGroups"}
	}
	return &_RuleCollector{
		ec2Client: ec2Client,
		logger:    config.Logger,
	}, nil
}

// ListSecurityGroups issues a single DescribeSecurityGroups call and converts
// the SDK shapes to domain records.  Pagination is the collaborator's
// concern; accounts at this scale fit one listing.
func (c *_RuleCollector) ListSecurityGroups(ctx context.Context) ([]shared.SecurityGroup, error) {
	sos := c.GetLogger()
	output, err := c.ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{})
	if err != nil {
		sos.Errorf("error describing security groups, %v", err)
		return nil, CollectionError{Message: "error describing security groups : [" + err.Error() + "]"}
	}
	groups := make([]shared.SecurityGroup, 0, len(output.SecurityGroups))
	for _, sg := range output.SecurityGroups {
		groups = append(groups, fromSDK(sg))
	}
	sos.Debugf("listed [%v] security groups", len(groups))
	return groups, nil
}

// FindViolations walks group order, then permission order, then range order
// and emits one violation per open range.  No deduplication: a group with
// two qualifying ranges yields two violations.
func (c *_RuleCollector) FindViolations(groups []shared.SecurityGroup) []shared.Violation {
	violations := []shared.Violation{}
	for _, group := range groups {
		groupName := group.GroupName
		if groupName == "" {
			groupName = shared.UnnamedGroup
		}
		for _, permission := range group.IpPermissions {
			for _, ipRange := range permission.IpRanges {
				if ipRange.CidrIp == shared.OpenCidr {
					violations = append(violations, shared.Violation{
						GroupId:   group.GroupId,
						GroupName: groupName,
						CidrIp:    ipRange.CidrIp,
					})
				}
			}
		}
	}
	return violations
}

// get logger
func (c *_RuleCollector) GetLogger() logger.Logger {
	return c.logger
}

// missing optional fields degrade to zero values rather than failing
func fromSDK(sg ec2Types.SecurityGroup) shared.SecurityGroup {
	permissions := make([]shared.IpPermission, 0, len(sg.IpPermissions))
	for _, permission := range sg.IpPermissions {
		ranges := make([]shared.IpRange, 0, len(permission.IpRanges))
		for _, ipRange := range permission.IpRanges {
			ranges = append(ranges, shared.IpRange{
				CidrIp: aws.ToString(ipRange.CidrIp),
			})
		}
		permissions = append(permissions, shared.IpPermission{
			IpRanges: ranges,
		})
	}
	return shared.SecurityGroup{
		GroupId:       aws.ToString(sg.GroupId),
		GroupName:     aws.ToString(sg.GroupName),
		IpPermissions: permissions,
	}
}
