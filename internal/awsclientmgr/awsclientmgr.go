package awsclientmgr

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// EC2DescribeSecurityGroupsAPI is the narrow EC2 surface the collector needs.
type EC2DescribeSecurityGroupsAPI interface {
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
}

// SESSendEmailAPI is the narrow SES surface the dispatcher needs.
type SESSendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// STSGetCallerIdentityAPI is the narrow STS surface used by the init probe.
type STSGetCallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type AWSClientMgr interface {
	// set aws sdk client
	SetSDKClient(name AWSServiceName, client interface{}) error
	// get aws sdk client
	GetSDKClient(name AWSServiceName) (interface{}, bool)
	// get account id resolved at init
	GetAccountId() string
}

type _AWSClientMgr struct {
	ec2Client EC2DescribeSecurityGroupsAPI
	sesClient SESSendEmailAPI
	stsClient STSGetCallerIdentityAPI
	accountId string
}

type AWSClientMgrInitConfig struct {
	Ctx context.Context
	Cfg aws.Config
}

func Init(pkgConfig AWSClientMgrInitConfig) (AWSClientMgr, error) {
	log.Printf("init aws clients")
	mgr := &_AWSClientMgr{}
	sdkConfig := pkgConfig.Cfg.Copy()

	// the caller identity probe validates credentials before any audit work
	// and resolves the account id the findings belong to
	stsClient := sts.NewFromConfig(sdkConfig)
	identity, err := stsClient.GetCallerIdentity(pkgConfig.Ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		log.Printf("error loading sts client: %v", err)
		return nil, errors.New("error loading sts client : [" + err.Error() + "]")
	}
	mgr.SetSDKClient(STS, stsClient)
	mgr.accountId = aws.ToString(identity.Account)
	log.Printf("sts client loaded for account id [%s]\n", mgr.accountId)

	ec2Client := ec2.NewFromConfig(sdkConfig)
	mgr.SetSDKClient(EC2, ec2Client)
	log.Printf("ec2 client loaded for account id [%s]\n", mgr.accountId)

	sesClient := ses.NewFromConfig(sdkConfig)
	mgr.SetSDKClient(SES, sesClient)
	log.Printf("ses client loaded for account id [%s]\n", mgr.accountId)

	log.Printf("sdk clients loaded successfully")
	return mgr, nil
}

func NewAWSClientMgr() AWSClientMgr {
	return &_AWSClientMgr{}
}

// set aws sdk client
func (a *_AWSClientMgr) SetSDKClient(serviceName AWSServiceName, client interface{}) error {
	log.Printf("setting [%s] client", serviceName)
	if client == nil {
		return errors.New("client is nil")
	}
	switch serviceName {
	case EC2: // EC2 - Elastic Compute Cloud
		{
			clientAssert, ok := client.(EC2DescribeSecurityGroupsAPI)
			if !ok {
				return errors.New("client does not implement DescribeSecurityGroups")
			}
			a.ec2Client = clientAssert
		}
	case SES: // SES - Simple Email Service
		{
			clientAssert, ok := client.(SESSendEmailAPI)
			if !ok {
				return errors.New("client does not implement SendEmail")
			}
			a.sesClient = clientAssert
		}
	case STS: // STS - Security Token Service
		{
			clientAssert, ok := client.(STSGetCallerIdentityAPI)
			if !ok {
				return errors.New("client does not implement GetCallerIdentity")
			}
			a.stsClient = clientAssert
		}
	default:
		{
			return errors.New("invalid service name")
		}
	}
	return nil
}

// get aws sdk client
func (a *_AWSClientMgr) GetSDKClient(serviceName AWSServiceName) (interface{}, bool) {
	log.Printf("getting [%s] client", serviceName)
	switch serviceName {
	case EC2: // EC2 - Elastic Compute Cloud
		{
			if a.ec2Client == nil {
				return nil, false
			}
			return a.ec2Client, true
		}
	case SES: // SES - Simple Email Service
		{
			if a.sesClient == nil {
				return nil, false
			}
			return a.sesClient, true
		}
	case STS: // STS - Security Token Service
		{
			if a.stsClient == nil {
				return nil, false
			}
			return a.stsClient, true
		}
	default:
		{
			log.Printf("default service name case")
		}
	}
	return nil, false
}

// get account id
func (a *_AWSClientMgr) GetAccountId() string {
	return a.accountId
}
