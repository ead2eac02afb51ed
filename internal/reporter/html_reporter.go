package reporter

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/snapdiff/snapdiff/internal/compare"
	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/differ"

	"github.com/rs/zerolog"
)

//go:embed templates/*
var templateFS embed.FS

// HtmlReporter renders a comparison result as a standalone HTML report.
type HtmlReporter struct {
	config   *config.ReporterConfig
	logger   zerolog.Logger
	template *template.Template
}

// NewHtmlReporter creates an HtmlReporter with the embedded report template parsed.
func NewHtmlReporter(cfg *config.ReporterConfig, logger zerolog.Logger) (*HtmlReporter, error) {
	tmpl, err := template.New("").Funcs(GetReportTemplateFunctions()).ParseFS(templateFS, "templates/compare_report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML report template: %w", err)
	}

	return &HtmlReporter{
		config:   cfg,
		logger:   logger.With().Str("component", "HtmlReporter").Logger(),
		template: tmpl,
	}, nil
}

// reportPageData is the root object handed to the report template.
type reportPageData struct {
	ReportTitle   string
	SessionID     string
	BaseID        string
	TargetID      string
	GeneratedAt   string
	FilesAdded    int
	FilesRemoved  int
	FilesModified int
	Warnings      []differ.WalkWarning
	Outcomes      []compare.FileOutcome
}

// WriteReport renders the result and writes it to outputPath.
func (r *HtmlReporter) WriteReport(result *compare.CompareResult, outputPath string) error {
	pageData := reportPageData{
		ReportTitle:   r.config.ReportTitle,
		SessionID:     result.SessionID,
		BaseID:        result.BaseID,
		TargetID:      result.TargetID,
		GeneratedAt:   time.Now().Format(time.RFC1123),
		FilesAdded:    result.FilesAdded,
		FilesRemoved:  result.FilesRemoved,
		FilesModified: result.FilesModified,
		Warnings:      result.Warnings,
		Outcomes:      result.Outcomes,
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", outputPath, err)
	}
	defer file.Close()

	if err := r.template.ExecuteTemplate(file, "compare_report.html.tmpl", pageData); err != nil {
		r.logger.Error().Err(err).Msg("Failed to execute report template")
		return fmt.Errorf("failed to execute report template: %w", err)
	}

	r.logger.Info().Str("path", outputPath).Msg("HTML report written")
	return nil
}
