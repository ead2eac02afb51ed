package config

// ReporterConfig defines configuration for rendering comparison reports
type ReporterConfig struct {
	Format      string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,reportformat"`
	OutputDir   string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ReportTitle string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Format:      DefaultReporterFormat,
		OutputDir:   DefaultReporterOutputDir,
		ReportTitle: "Snapshot Comparison Report",
	}
}
