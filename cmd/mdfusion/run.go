package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	mdfusion "github.com/alnah/go-mdfusion"
	"github.com/alnah/go-mdfusion/internal/config"
)

// Sentinel errors for CLI validation.
var (
	ErrPresentationOutput = errors.New("presentation output must be an .html file")
)

// Fuser is the interface for the fuse-and-render service.
type Fuser interface {
	Run(ctx context.Context, input mdfusion.Input) (string, error)
}

// Compile-time interface implementation check.
var _ Fuser = (*mdfusion.Service)(nil)

// run resolves the layered configuration, validates it, and drives one
// pipeline run. rawArgs are the CLI tokens after the program name, used for
// early config path discovery.
func run(ctx context.Context, rawArgs []string, flags *cliFlags, svc Fuser, env *Environment) error {
	// The default-file fallback anchors to the injected working directory.
	baseDir, err := env.Getwd()
	if err != nil {
		baseDir = ""
	}
	configPath := config.DiscoverConfigPath(rawArgs, baseDir)

	merged, err := config.Merge(flags.toConfig(), configPath)
	if err != nil {
		return err
	}

	input, err := buildInput(merged, configPath)
	if err != nil {
		return err
	}

	if err := checkRequirements(env, input.Presentation != nil); err != nil {
		return err
	}

	output, err := svc.Run(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Wrote %s\n", output)
	if input.Presentation != nil {
		pdf := strings.TrimSuffix(output, filepath.Ext(output)) + ".pdf"
		fmt.Fprintf(env.Stdout, "Wrote %s\n", pdf)
	}
	return nil
}

// buildInput converts the merged configuration into the pipeline input,
// applying the CLI-level defaults and validations that the library does not
// own.
func buildInput(merged *config.Config, configPath config.Path) (mdfusion.Input, error) {
	presentation := config.BoolValue(merged.Presentation.Enabled)

	output := config.StringValue(merged.Output)
	if presentation && output != "" && !strings.EqualFold(filepath.Ext(output), ".html") {
		return mdfusion.Input{}, fmt.Errorf("%w: got %q", ErrPresentationOutput, output)
	}

	// When the root dir comes from neither CLI nor file, a discovered config
	// file anchors the run to its own directory.
	rootDir := config.PathValue(merged.RootDir)
	if rootDir == "" && configPath != "" {
		rootDir = filepath.Dir(string(configPath))
	}

	pandocArgs := merged.PandocArgs
	if config.BoolValue(merged.Verbose) && !slices.Contains(pandocArgs, "--verbose") {
		pandocArgs = append(pandocArgs, "--verbose")
	}

	input := mdfusion.Input{
		RootDir:        rootDir,
		Output:         output,
		Title:          config.StringValue(merged.Title),
		Author:         config.StringValue(merged.Author),
		TitlePage:      config.BoolValue(merged.TitlePage),
		TOC:            config.BoolValue(merged.TOC),
		Verbose:        config.BoolValue(merged.Verbose),
		PandocArgs:     pandocArgs,
		HeaderTex:      config.PathValue(merged.HeaderTex),
		MergedDir:      config.PathValue(merged.MergedDir),
		RemoveAltTexts: merged.RemoveAltTexts,
	}
	if presentation {
		input.Presentation = &mdfusion.Presentation{
			FooterText:      config.StringValue(merged.Presentation.FooterText),
			AnimateAllLines: config.BoolValue(merged.Presentation.AnimateAllLines),
			ChromiumPath:    config.PathValue(merged.Presentation.ChromiumPath),
		}
	}
	return input, nil
}
