package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Diff Defaults
	DefaultDiffContextLines      = 3
	DefaultDiffMaxFileSizeMB     = 10
	DefaultDiffSemanticCleanup   = false
	DefaultDiffMaxConcurrentFile = 4

	// Reporter Defaults
	DefaultReporterOutputDir = "reports/compare"
	DefaultReporterFormat    = "text"

	// Storage Defaults
	DefaultStorageParquetBasePath  = "database"
	DefaultStorageCompressionCodec = "zstd"
	DefaultStorageSQLiteDBPath     = "database/compare_history.db"

	// Batch Defaults
	DefaultBatchSize           = 64
	DefaultBatchTimeoutMinutes = 10
)
