package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toyz/fielder/internal/cli"
	"github.com/toyz/fielder/internal/utils"
)

func main() {
	var (
		debuggableFlag = flag.String("debuggable", "", "Debug scaffolding option; the exact value \"false\" disables it")
		outputFlag     = flag.String("output", "", "Write all generated files under this directory instead of next to their sources")
		configFlag     = flag.String("config", "", "Path to a .fielder.yaml config file")
		verboseFlag    = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag      = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag      = flag.Bool("clean", false, "Delete all *_fielder_gen.go files from the specified directories")
		helpFlag       = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fielder Code Generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for structs with //fielder::fieldable annotations and generates\n")
		fmt.Fprintf(os.Stderr, "a companion type per struct exposing its transitive field names.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated structs\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                              # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --debuggable false ./internal/...  # Generate without debug scaffolding\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --output ./gen ./models            # Collect generated files under ./gen\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                      # Delete all generated files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Fielder Code Generator")

	if *cleanFlag {
		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			cli.NewDiagnosticReporter(*verboseFlag).ReportError(err)
			os.Exit(1)
		}
		diagnostics.Success("Removed %d generated files", len(removed))
		return
	}

	config := cli.Config{
		Directories: args,
		Debuggable:  cli.ParseDebuggableOption(*debuggableFlag),
		OutputDir:   *outputFlag,
		Verbose:     *verboseFlag,
	}

	// Track explicitly set flags so the config file cannot override them
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	if *configFlag != "" {
		fileConfig, err := cli.LoadConfigFile(*configFlag)
		if err != nil {
			cli.NewDiagnosticReporter(*verboseFlag).ReportError(err)
			os.Exit(1)
		}
		fileConfig.Apply(&config, setFlags)
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		diagnostics.List("Debuggable: %v", config.Debuggable)
		if config.OutputDir != "" {
			diagnostics.List("Output directory: %s", config.OutputDir)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	result, err := generator.Run(config)
	if err != nil {
		cli.NewDiagnosticReporter(*verboseFlag).ReportError(err)
		os.Exit(1)
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete", map[string]interface{}{
		"Types discovered":  summary.TypesDiscovered,
		"Types skipped":     summary.TypesSkipped,
		"Artifacts emitted": summary.ArtifactsEmitted,
		"Errors":            summary.ErrorCount,
	})

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	if result.Failed() {
		diagnostics.Error("Round completed with errors")
		os.Exit(1)
	}

	diagnostics.Success("All fielders are up to date")
}
