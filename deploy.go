package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/a-pavithraa/lambda-build/common"
	"github.com/a-pavithraa/lambda-build/gobuild"
)

type Builder interface {
	Build(ctx context.Context, mainPackage, output, tags string) error
}

type Updater interface {
	UpdateAndWait(ctx context.Context, functions []string, archive string) error
}

// Deployer runs the build, package, update and cleanup phases.
type Deployer struct {
	Builder Builder
	Package func(binary, archive string) error
	// NewUpdater is only called when an update actually happens, so role
	// assumption and AWS config loading are skipped for build-only runs.
	NewUpdater func(ctx context.Context, params common.BuildParams) (Updater, error)
}

func (d Deployer) Run(ctx context.Context, params common.BuildParams) error {
	plan, err := ResolvePlan(params, fileExists)
	if err != nil {
		return err
	}
	functions := params.TargetFunctions()

	if plan.FromArchive {
		return d.update(ctx, params, functions, params.MainPackage)
	}

	output := params.OutputPath()
	if plan.Build {
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := d.Builder.Build(ctx, params.MainPackage, output, params.Tags); err != nil {
			var buildErr *gobuild.BuildError
			if errors.As(err, &buildErr) {
				log.Println(buildErr.Error())
				if buildErr.Output != "" {
					log.Println(buildErr.Output)
				}
			}
			return err
		}
	}

	if !plan.Update {
		return nil
	}

	archive := params.ArchivePath()
	if err := d.Package(output, archive); err != nil {
		return fmt.Errorf("package %s: %w", output, err)
	}
	if err := d.update(ctx, params, functions, archive); err != nil {
		return err
	}

	// Only remove binaries this invocation produced.
	if params.Delete && plan.Build {
		log.Printf("deleting %s", output)
		if err := os.Remove(output); err != nil {
			return err
		}
	}
	return nil
}

func (d Deployer) update(ctx context.Context, params common.BuildParams, functions []string, archive string) error {
	updater, err := d.NewUpdater(ctx, params)
	if err != nil {
		return err
	}
	return updater.UpdateAndWait(ctx, functions, archive)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
