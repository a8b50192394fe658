package sts

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Api is the subset of the STS client used to assume roles.
type Api interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

type ServiceWrapper struct {
	Client Api
}

func Client(ctx context.Context, region string) (*sts.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return sts.NewFromConfig(cfg), nil
}

// AssumeRole exchanges roleArn for temporary credentials and returns them as a
// static provider.
func (wrapper ServiceWrapper) AssumeRole(ctx context.Context, roleArn string, sessionName string) (aws.CredentialsProvider, error) {
	log.Printf("assuming role %s with session name %s", roleArn, sessionName)
	result, err := wrapper.Client.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleArn),
		RoleSessionName: aws.String(sessionName),
	})
	if err != nil {
		return nil, fmt.Errorf("assume role %s: %w", roleArn, err)
	}
	creds := result.Credentials
	if creds == nil {
		return nil, fmt.Errorf("assume role %s: no credentials returned", roleArn)
	}
	return credentials.NewStaticCredentialsProvider(
		aws.ToString(creds.AccessKeyId),
		aws.ToString(creds.SecretAccessKey),
		aws.ToString(creds.SessionToken),
	), nil
}
