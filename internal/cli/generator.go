package cli

import (
	"github.com/google/uuid"

	"github.com/toyz/fielder/internal/builder"
	"github.com/toyz/fielder/internal/collector"
	"github.com/toyz/fielder/internal/emitter"
	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
	"github.com/toyz/fielder/internal/parser"
	"github.com/toyz/fielder/internal/utils"
)

// Generator coordinates one processing round: discovery, collection,
// artifact building, collision scanning and emission. Discovery and emission
// are injected so host build tools can substitute their own.
type Generator struct {
	scanner     *DirectoryScanner
	discoverer  parser.Discoverer
	collector   *collector.FieldCollector
	builder     *builder.ArtifactBuilder
	backend     emitter.Backend
	gomod       *utils.GoModParser
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// GenerationSummary collects statistics for the final report
type GenerationSummary struct {
	TypesDiscovered  int
	TypesSkipped     int
	ArtifactsEmitted int
	GeneratedFiles   []string
	ErrorCount       int
}

// NewGenerator creates a new round generator with the default AST discoverer
// and file emitter
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:     NewDirectoryScanner(),
		discoverer:  parser.NewParser(),
		collector:   collector.NewFieldCollector(),
		builder:     builder.NewArtifactBuilder(),
		backend:     emitter.NewFileEmitter(),
		gomod:       utils.NewGoModParser(),
		diagnostics: diagnostics,
		summary:     GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// NewGeneratorWithBackend creates a generator with a custom discoverer and
// emission backend, for hosts and tests
func NewGeneratorWithBackend(diagnostics *utils.DiagnosticSystem, discoverer parser.Discoverer, backend emitter.Backend) *Generator {
	g := NewGenerator(diagnostics)
	if discoverer != nil {
		g.discoverer = discoverer
	}
	if backend != nil {
		g.backend = backend
	}
	return g
}

// GetSummary returns the generation summary for the last round
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes one complete round. Per-type failures become diagnostics on
// the returned result and never abort the remaining types; the returned
// error covers only round-level infrastructure failures (bad arguments,
// unreadable directories). The caller decides whether result.Failed() fails
// the build.
func (g *Generator) Run(config Config) (*models.CollectionResult, error) {
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	result := &models.CollectionResult{RoundID: uuid.New()}
	g.diagnostics.Verbose("Starting round %s", result.RoundID)

	if modPath, err := g.resolveModulePath(); err == nil {
		g.diagnostics.Verbose("Module: %s", modPath)
	}

	dirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, errors.New(errors.ConfigurationErrorCode, "no Go packages found in specified directories").
			WithSuggestions(
				"Ensure the directories contain Go files",
				"Try the './...' pattern for recursive scanning",
			)
	}
	g.diagnostics.Info("Found %d packages to scan", len(dirs))

	discovery, err := g.discoverer.Discover(dirs)
	if err != nil {
		return nil, err
	}

	result.Diagnostics = append(result.Diagnostics, discovery.Diagnostics...)
	result.Diagnostics = append(result.Diagnostics,
		models.NoteDiag("", "discovered %d annotated types", len(discovery.Types)))
	g.summary.TypesDiscovered = len(discovery.Types)

	// Collect and build for every discovered type. Entries keep discovery
	// order; a failed type keeps its slot with a nil artifact.
	for _, desc := range discovery.Types {
		entry := models.CollectionEntry{Type: desc}

		names, err := g.collector.Collect(desc)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics,
				models.ErrorDiag(desc.QualifiedName(), "%v", err))
			result.Entries = append(result.Entries, entry)
			g.summary.TypesSkipped++
			continue
		}

		result.Diagnostics = append(result.Diagnostics,
			models.NoteDiag(desc.QualifiedName(), "collected %d field names: %s", names.Len(), names))

		artifact, err := g.builder.Build(desc, names, config.Debuggable)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics,
				models.ErrorDiag(desc.QualifiedName(), "%v", err))
			result.Entries = append(result.Entries, entry)
			g.summary.TypesSkipped++
			continue
		}

		entry.Artifact = artifact
		result.Entries = append(result.Entries, entry)
	}

	// All artifacts exist before any emission, so collision detection is
	// deterministic no matter how the per-type work was ordered
	rejected, collisionErrs := builder.DetectCollisions(result.Entries, config.OutputDir)
	for _, collisionErr := range collisionErrs {
		result.Diagnostics = append(result.Diagnostics,
			models.ErrorDiag("", "%v", collisionErr))
	}

	for _, entry := range result.Entries {
		if entry.Artifact == nil || rejected[entry.Artifact] {
			continue
		}

		path, err := g.backend.Emit(entry.Artifact, config.OutputDir)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics,
				models.ErrorDiag(entry.Type.QualifiedName(), "%v", err))
			continue
		}

		result.GeneratedFiles = append(result.GeneratedFiles, path)
		g.summary.ArtifactsEmitted++
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
		g.diagnostics.Progress("Generated %s", path)
	}

	g.report(result)
	return result, nil
}

// report mirrors the round's structured diagnostics to the console
func (g *Generator) report(result *models.CollectionResult) {
	for _, diag := range result.Diagnostics {
		switch diag.Severity {
		case models.SeverityError:
			g.diagnostics.Error("%s", diag.String())
			g.summary.ErrorCount++
		case models.SeverityWarning:
			g.diagnostics.Warn("%s", diag.String())
		default:
			g.diagnostics.Verbose("%s", diag.String())
		}
	}
}

// resolveModulePath reads the module path of the working tree, for verbose
// output only
func (g *Generator) resolveModulePath() (string, error) {
	goModPath, err := g.gomod.FindGoModFile(".")
	if err != nil {
		return "", err
	}
	return g.gomod.ParseModuleName(goModPath)
}
