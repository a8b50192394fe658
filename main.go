package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/a-pavithraa/lambda-build/artifact"
	"github.com/a-pavithraa/lambda-build/common"
	"github.com/a-pavithraa/lambda-build/gobuild"
	"github.com/a-pavithraa/lambda-build/lambda"
	"github.com/a-pavithraa/lambda-build/sts"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

func main() {
	log.SetOutput(os.Stdout)

	app := newApp(Deployer{
		Builder:    gobuild.Builder{},
		Package:    artifact.Zip,
		NewUpdater: newLambdaUpdater,
	})

	if err := app.Run(normalizeArgs(os.Args)); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			log.Fatalf("AWS request failed with %s: %s", apiErr.ErrorCode(), err)
		}
		log.Fatalf("Not able to run the command. The reason is %s", err.Error())
	}
}

func newApp(deployer Deployer) *cli.App {
	envVars := &common.EnvVars{}
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "yaml config file providing defaults for the other flags",
		},
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "assume-role",
				Usage: "Role ARN to assume for the credentials used to update functions",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "role-session-name",
				Value: common.DefaultSessionName,
				Usage: "Session name used with --assume-role",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "region",
				Usage: "AWS region, overrides the shared config and AWS_REGION",
			},
		),
		&cli.BoolFlag{
			Name:    "build",
			Aliases: []string{"b"},
			Usage:   "Always run go build. Without -u, stop after the build",
		},
		&cli.BoolFlag{
			Name:    "update",
			Aliases: []string{"u"},
			Usage:   "Update the functions. Implies -b if there is no build output yet",
		},
		altsrc.NewStringSliceFlag(
			&cli.StringSliceFlag{
				Name:    "function",
				Aliases: []string{"f"},
				Usage:   "Name, ARN or partial ARN of a function to update, may be repeated (default: base name of main_package)",
			},
		),
		altsrc.NewBoolFlag(
			&cli.BoolFlag{
				Name:    "delete",
				Aliases: []string{"d"},
				Usage:   "Delete the built executable after a successful update, only if this command built it",
			},
		),
		&cli.StringFlag{
			Name:  "load-dotenv",
			Usage: "Load environment variables from a .env file without overriding existing ones",
		},
		&cli.StringFlag{
			Name:  "load-dotenv-override",
			Usage: "Load environment variables from a .env file, overriding existing ones",
		},
		&cli.GenericFlag{
			Name:    "env-var",
			Aliases: []string{"e"},
			Value:   envVars,
			Usage:   "KEY=value environment variable for the build and update steps, may be repeated; overrides every other source",
		},
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "tags",
				Value: common.DefaultTags,
				Usage: "Comma-separated build tags passed to go build. Give --tags without a value to pass no tags",
			},
		),
		altsrc.NewStringFlag(
			&cli.StringFlag{
				Name:  "bin-dir",
				Value: common.DefaultBinDir,
				Usage: "Output directory for the executable and the archive",
			},
		),
	}

	return &cli.App{
		Name:                   "lambda-build",
		Usage:                  "Build a Lambda Go handler and update the associated functions with the compressed build artifact",
		ArgsUsage:              "main_package",
		Description:            "main_package is the directory of an executable Go package. If it is a .zip archive, -u is implied, -b must not be given and the archive is uploaded as-is.",
		UseShortOptionHandling: true,
		Flags:                  flags,
		Before: func(cCtx *cli.Context) error {
			if err := altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc("config"))(cCtx); err != nil {
				return err
			}
			return setupEnvironment(cCtx, envVars)
		},
		Action: func(cCtx *cli.Context) error {
			params, err := SetBuildParams(cCtx)
			if err != nil {
				return err
			}
			return deployer.Run(cCtx.Context, *params)
		},
	}
}

// setupEnvironment loads dotenv files, then applies -e pairs so they win over
// both dotenv files and the shell.
func setupEnvironment(cCtx *cli.Context, envVars *common.EnvVars) error {
	if cCtx.IsSet("load-dotenv") {
		if err := common.LoadDotEnv(cCtx.String("load-dotenv"), false); err != nil {
			return err
		}
	}
	if cCtx.IsSet("load-dotenv-override") {
		if err := common.LoadDotEnv(cCtx.String("load-dotenv-override"), true); err != nil {
			return err
		}
	}
	if envVars.Len() > 0 {
		log.Printf("setting %d environment variable(s) from --env-var", envVars.Len())
	}
	return envVars.Apply()
}

func SetBuildParams(cCtx *cli.Context) (*common.BuildParams, error) {
	if cCtx.NArg() != 1 {
		return nil, &common.InputError{
			Message: "exactly one main_package argument is required",
		}
	}
	params := common.BuildParams{
		MainPackage:     cCtx.Args().First(),
		Functions:       cCtx.StringSlice("function"),
		RoleArn:         cCtx.String("assume-role"),
		RoleSessionName: cCtx.String("role-session-name"),
		Region:          cCtx.String("region"),
		Build:           cCtx.Bool("build"),
		Update:          cCtx.Bool("update"),
		Delete:          cCtx.Bool("delete"),
		Tags:            cCtx.String("tags"),
		BinDir:          cCtx.String("bin-dir"),
	}
	if common.TrimAndCheckEmptyString(&params.MainPackage) {
		return nil, &common.InputError{
			Message: "main_package cannot be empty",
		}
	}
	if common.TrimAndCheckEmptyString(&params.RoleSessionName) {
		params.RoleSessionName = common.DefaultSessionName
	}
	return &params, nil
}

func newLambdaUpdater(ctx context.Context, params common.BuildParams) (Updater, error) {
	var credentials aws.CredentialsProvider
	if !common.TrimAndCheckEmptyString(&params.RoleArn) {
		stsClient, err := sts.Client(ctx, params.Region)
		if err != nil {
			return nil, err
		}
		stsWrapper := sts.ServiceWrapper{Client: stsClient}
		credentials, err = stsWrapper.AssumeRole(ctx, params.RoleArn, params.RoleSessionName)
		if err != nil {
			return nil, err
		}
	}

	client, err := lambda.Client(ctx, params.Region, credentials)
	if err != nil {
		return nil, err
	}
	return lambda.ServiceWrapper{Client: client}, nil
}
