package lambda

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/a-pavithraa/lambda-build/artifact"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// Same limits as the function_updated_v2 waiter of the other AWS SDKs.
const (
	DefaultMaxWait  = 5 * time.Minute
	DefaultMinDelay = time.Second
)

type FunctionApi interface {
	lambda.GetFunctionAPIClient
	UpdateFunctionCode(ctx context.Context, params *lambda.UpdateFunctionCodeInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error)
}

type ServiceWrapper struct {
	Client FunctionApi

	// Waiter tuning, zero values use the defaults above.
	MaxWait  time.Duration
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Client loads the default AWS config. A non-empty region and a non-nil
// credentials provider replace the ambient ones.
func Client(ctx context.Context, region string, credentials aws.CredentialsProvider) (*lambda.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if credentials != nil {
		opts = append(opts, config.WithCredentialsProvider(credentials))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return lambda.NewFromConfig(cfg), nil
}

func (wrapper ServiceWrapper) UpdateFunctionCode(ctx context.Context, name string, contents []byte) error {
	_, err := wrapper.Client.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(name),
		ZipFile:      contents,
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return fmt.Errorf("function %s does not exist: %w", name, err)
		}
		return fmt.Errorf("update function code %s: %w", name, err)
	}
	return nil
}

// WaitForUpdate blocks until the function's last update status is Successful.
// A Failed status or an exhausted wait is an error.
func (wrapper ServiceWrapper) WaitForUpdate(ctx context.Context, name string) error {
	waiter := lambda.NewFunctionUpdatedV2Waiter(wrapper.Client, func(o *lambda.FunctionUpdatedV2WaiterOptions) {
		o.MinDelay = DefaultMinDelay
		if wrapper.MinDelay > 0 {
			o.MinDelay = wrapper.MinDelay
		}
		if wrapper.MaxDelay > 0 {
			o.MaxDelay = wrapper.MaxDelay
		}
	})
	maxWait := wrapper.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	if err := waiter.Wait(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(name)}, maxWait); err != nil {
		return fmt.Errorf("wait for function %s to be updated: %w", name, err)
	}
	return nil
}

// UpdateAndWait uploads archive to every function, then waits on every
// function. Functions updated before a failure keep their new code.
func (wrapper ServiceWrapper) UpdateAndWait(ctx context.Context, functions []string, archive string) error {
	contents, err := artifact.Read(archive)
	if err != nil {
		return err
	}

	for _, name := range functions {
		log.Printf("updating function %s with %s", name, archive)
		if err := wrapper.UpdateFunctionCode(ctx, name, contents); err != nil {
			return err
		}
	}

	for _, name := range functions {
		log.Printf("waiting for function %s to be updated", name)
		if err := wrapper.WaitForUpdate(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
