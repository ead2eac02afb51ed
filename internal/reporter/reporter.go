package reporter

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/snapdiff/snapdiff/internal/common"
	"github.com/snapdiff/snapdiff/internal/compare"
	"github.com/snapdiff/snapdiff/internal/config"

	"github.com/rs/zerolog"
)

// Reporter writes comparison reports in the configured format.
type Reporter struct {
	config       *config.ReporterConfig
	logger       zerolog.Logger
	fileManager  *common.FileManager
	textRenderer *TextRenderer
	htmlReporter *HtmlReporter
}

// ReporterBuilder provides a fluent interface for creating Reporter
type ReporterBuilder struct {
	config *config.ReporterConfig
	logger zerolog.Logger
}

// NewReporterBuilder creates a new ReporterBuilder
func NewReporterBuilder(logger zerolog.Logger) *ReporterBuilder {
	return &ReporterBuilder{
		logger: logger.With().Str("component", "Reporter").Logger(),
	}
}

// WithReporterConfig sets the reporter configuration
func (b *ReporterBuilder) WithReporterConfig(cfg *config.ReporterConfig) *ReporterBuilder {
	b.config = cfg
	return b
}

// Build creates a new Reporter instance
func (b *ReporterBuilder) Build() (*Reporter, error) {
	if b.config == nil {
		return nil, common.NewValidationError("config", b.config, "reporter config cannot be nil")
	}

	htmlReporter, err := NewHtmlReporter(b.config, b.logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to initialize HTML reporter")
	}

	return &Reporter{
		config:       b.config,
		logger:       b.logger,
		fileManager:  common.NewFileManager(b.logger),
		textRenderer: NewTextRenderer(),
		htmlReporter: htmlReporter,
	}, nil
}

// GenerateReport writes the comparison report to the output directory and
// returns the path of the written file. An empty outputPath derives the file
// name from the session ID.
func (r *Reporter) GenerateReport(result *compare.CompareResult, outputPath string) (string, error) {
	if result == nil {
		return "", common.NewValidationError("result", result, "comparison result cannot be nil")
	}

	if outputPath == "" {
		outputPath = filepath.Join(r.config.OutputDir, fmt.Sprintf("compare-%s.%s", result.SessionID, r.fileExtension()))
	}

	if err := r.fileManager.EnsureDirectory(filepath.Dir(outputPath), 0755); err != nil {
		return "", common.WrapError(err, "failed to create report output directory")
	}

	switch r.config.Format {
	case "html":
		if err := r.htmlReporter.WriteReport(result, outputPath); err != nil {
			return "", err
		}
	case "json":
		content, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", common.WrapError(err, "failed to marshal comparison result")
		}
		if err := r.fileManager.WriteFile(outputPath, content, 0644); err != nil {
			return "", common.WrapError(err, "failed to write json report")
		}
	case "text", "":
		content := r.textRenderer.RenderResult(result)
		if err := r.fileManager.WriteFile(outputPath, []byte(content), 0644); err != nil {
			return "", common.WrapError(err, "failed to write text report")
		}
	default:
		return "", common.NewValidationError("format", r.config.Format, "unsupported report format")
	}

	r.logger.Info().Str("path", outputPath).Str("format", r.config.Format).Msg("Report generated")
	return outputPath, nil
}

// RenderText renders the result as plain text without writing a file.
func (r *Reporter) RenderText(result *compare.CompareResult) string {
	return r.textRenderer.RenderResult(result)
}

func (r *Reporter) fileExtension() string {
	switch r.config.Format {
	case "html":
		return "html"
	case "json":
		return "json"
	default:
		return "txt"
	}
}
