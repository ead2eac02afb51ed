package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/snapdiff/snapdiff/internal/compare"
	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/logger"
	"github.com/snapdiff/snapdiff/internal/reporter"
	"github.com/snapdiff/snapdiff/internal/snapshot"
)

func main() {
	// Flags
	baseRef := flag.String("base", "", "Base snapshot to compare from (commit hash, branch, tag or any revision).")
	baseRefAlias := flag.String("b", "", "Alias for -base")

	targetRef := flag.String("target", "HEAD", "Target snapshot to compare against.")
	targetRefAlias := flag.String("t", "", "Alias for -target")

	repoPath := flag.String("repo", ".", "Path to the repository holding the snapshots.")
	repoPathAlias := flag.String("r", "", "Alias for -repo")

	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	contextLines := flag.Int("context", -1, "Number of unchanged context lines around each hunk (overrides config file if set).")
	format := flag.String("format", "", "Report format: text, html or json (overrides config file if set).")
	outputPath := flag.String("out", "", "Report output path. Defaults to a session-named file in the report directory.")
	printStdout := flag.Bool("print", false, "Also print the text rendering of the comparison to stdout.")
	noHistory := flag.Bool("no-history", false, "Skip persisting the comparison to the history store.")
	listHistoryFlag := flag.Bool("list-history", false, "List recorded comparison sessions, newest first, and exit.")
	showSessionID := flag.String("show-session", "", "Print the stored per-file records of a comparison session and exit.")
	flag.Parse()

	// Consolidate alias flags; an explicitly set primary flag always wins
	*baseRef = preferPrimary(flag.CommandLine, "base", *baseRef, *baseRefAlias)
	*targetRef = preferPrimary(flag.CommandLine, "target", *targetRef, *targetRefAlias)
	*repoPath = preferPrimary(flag.CommandLine, "repo", *repoPath, *repoPathAlias)
	*configFile = preferPrimary(flag.CommandLine, "config", *configFile, *configFileAlias)

	gCfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", *configFile, err)
	}

	// Flag overrides take precedence over the config file.
	if *contextLines >= 0 {
		gCfg.DiffConfig.ContextLines = *contextLines
	}
	if *format != "" {
		gCfg.ReporterConfig.Format = *format
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Configuration validation failed: %v", err)
	}

	if *listHistoryFlag || *showSessionID != "" {
		runHistoryQuery(gCfg, *listHistoryFlag, *showSessionID)
		return
	}

	if *baseRef == "" {
		log.Fatalln("[FATAL] -base argument is required")
	}

	sessionID := compare.NewSessionID()
	zLogger, err := logger.NewWithCompareID(gCfg.LogConfig, sessionID)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Str("session_id", sessionID).Msg("snapdiff starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Warn().Str("signal", sig.String()).Msg("Interrupt received, cancelling comparison")
		cancel()
	}()

	resolver, err := snapshot.NewResolver(*repoPath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Str("repo", *repoPath).Msg("Failed to open repository")
	}

	base, err := resolver.Resolve(*baseRef)
	if err != nil {
		zLogger.Fatal().Err(err).Str("ref", *baseRef).Msg("Failed to resolve base snapshot")
	}
	target, err := resolver.Resolve(*targetRef)
	if err != nil {
		zLogger.Fatal().Err(err).Str("ref", *targetRef).Msg("Failed to resolve target snapshot")
	}

	service, err := compare.NewServiceBuilder(zLogger).
		WithSource(snapshot.NewGitSource(zLogger)).
		WithGlobalConfig(gCfg).
		WithSessionID(sessionID).
		Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build compare service")
	}

	result, err := service.Compare(ctx, base, target)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Comparison failed")
	}

	rep, err := reporter.NewReporterBuilder(zLogger).
		WithReporterConfig(&gCfg.ReporterConfig).
		Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build reporter")
	}

	reportPath, err := rep.GenerateReport(result, *outputPath)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to generate report")
	}

	if *printStdout {
		fmt.Print(rep.RenderText(result))
	}

	if !*noHistory {
		persistHistory(gCfg, zLogger, result, reportPath, *baseRef, *targetRef)
	}

	zLogger.Info().
		Str("report", reportPath).
		Int("added", result.FilesAdded).
		Int("removed", result.FilesRemoved).
		Int("modified", result.FilesModified).
		Msg("snapdiff finished")
}

// runHistoryQuery serves the -list-history and -show-session modes
func runHistoryQuery(gCfg *config.GlobalConfig, listSessions bool, sessionID string) {
	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if listSessions {
		if err := listHistory(os.Stdout, gCfg, zLogger); err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to list comparison history")
		}
		return
	}

	if err := showSession(os.Stdout, gCfg, zLogger, sessionID); err != nil {
		zLogger.Fatal().Err(err).Str("session_id", sessionID).Msg("Failed to read comparison session")
	}
}

// preferPrimary resolves a flag and its short alias: the alias applies only
// when the primary flag was not set explicitly on the command line.
func preferPrimary(fs *flag.FlagSet, primaryName, primary, alias string) string {
	if alias != "" && !flagWasSet(fs, primaryName) {
		return alias
	}
	return primary
}

// flagWasSet reports whether the named flag was provided on the command line
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
