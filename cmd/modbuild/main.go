package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/systemstart/modbuild/pkg/api"
	"github.com/systemstart/modbuild/pkg/build"
	"github.com/systemstart/modbuild/pkg/logging"
	"github.com/systemstart/modbuild/pkg/manifest"
	"github.com/systemstart/modbuild/pkg/scm"
	"github.com/systemstart/modbuild/pkg/steps"
	"github.com/systemstart/modbuild/pkg/version"
	"gopkg.in/yaml.v3"
)

var binaryVersion = "dev"

const (
	exitStepFailed = iota + 1
	exitDotenvError
	exitLoggingError
	exitBadArguments
	exitLoadOptionsFailed
	exitDescribeFailed
)

const defaultSteps = "Build,Test"

var (
	stepList    string
	releaseType string
	describe    bool
	passthru    bool
	quiet       bool
	optionsFile string
	loggingType string
	logLevel    string
	showVersion bool
)

func init() {
	flag.StringVar(
		&stepList,
		"steps",
		defaultSteps,
		"comma-separated step or preset names")
	flag.StringVar(
		&releaseType,
		"release-type",
		string(api.ReleaseTypeBuild),
		"release type: Build, Minor or Major")
	flag.BoolVar(
		&describe,
		"describe",
		false,
		"resolve and print the build context without executing steps")
	flag.BoolVar(
		&passthru,
		"passthru",
		false,
		"emit each step result as a JSON line on stdout")
	flag.BoolVar(
		&quiet,
		"quiet",
		false,
		"suppress per-step console lines and banners")
	flag.StringVar(
		&optionsFile,
		"options-file",
		".modbuild.yaml",
		"options file")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text, tint or discard")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(binaryVersion)
		os.Exit(0)
	}

	if err := logging.Initialize(loggingType, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitLoggingError)
	}

	includeEnv()

	rt, err := api.ParseReleaseType(releaseType)
	if err != nil {
		slog.Error("invalid -release-type", "error", err)
		os.Exit(exitBadArguments)
	}

	opts, err := api.LoadOptions(optionsFile)
	if err != nil {
		slog.Error("failed to load options", "file", optionsFile, "error", err)
		os.Exit(exitLoadOptionsFailed)
	}

	rawSteps := splitSteps(stepList)
	if len(rawSteps) == 0 {
		slog.Error("-steps is empty")
		os.Exit(exitBadArguments)
	}

	orch := newOrchestrator(opts)

	if describe {
		describeRun(orch, rawSteps, rt)
		return
	}

	report, runErr := orch.RunBuild(rawSteps, rt)
	if report == nil {
		slog.Error("build did not start", "error", runErr)
		os.Exit(exitStepFailed)
	}

	if !quiet {
		console := &build.Console{Out: os.Stdout}
		console.Banner(report, runErr)
	}
	if runErr != nil {
		slog.Error("build failed", "error", runErr)
	}
	os.Exit(report.ExitStatus)
}

func newOrchestrator(opts api.Options) *build.Orchestrator {
	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("could not determine working directory", "error", err)
		os.Exit(exitBadArguments)
	}

	resolver := &version.Resolver{
		SCM:      &scm.Tags{Dir: cwd},
		Manifest: manifest.Store{},
	}

	registry := steps.DefaultRegistry(steps.Collaborators{
		Manifest: manifest.Store{},
		Syntax:   steps.PwshSyntaxChecker{},
		Compiler: steps.DotnetCompiler{},
		Tests:    steps.PesterRunner{},
	})

	var (
		progress build.ProgressSink = build.NopProgress{}
		logSinks []build.LogSink
	)
	if !quiet {
		console := &build.Console{Out: os.Stdout}
		progress = console
		logSinks = append(logSinks, console)
	}
	if passthru {
		logSinks = append(logSinks, build.NewRecordWriter(os.Stdout))
	}

	return &build.Orchestrator{
		Runner:      build.NewRunner(registry, progress, build.MultiLog(logSinks...)),
		Versions:    resolver,
		Options:     opts,
		WorkDir:     cwd,
		ProjectRoot: scm.FindRepoRoot(cwd),
	}
}

func describeRun(orch *build.Orchestrator, rawSteps []string, rt api.ReleaseType) {
	info, err := orch.Describe(rawSteps, rt)
	if err != nil {
		slog.Error("describe failed", "error", err)
		os.Exit(exitDescribeFailed)
	}

	out, err := yaml.Marshal(info)
	if err != nil {
		slog.Error("could not render build context", "error", err)
		os.Exit(exitDescribeFailed)
	}
	fmt.Print(string(out))
}

func splitSteps(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
