package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/referral-matcher/internal/config"
	"github.com/jonathan/referral-matcher/internal/enrich"
	"github.com/jonathan/referral-matcher/internal/logger"
	"github.com/jonathan/referral-matcher/internal/match"
	"github.com/jonathan/referral-matcher/internal/observability"
	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank candidates against a job description",
	Long:  "Rank a pool of candidates against a job description, printing the ranked list and location buckets as JSON.",
	RunE:  runMatch,
}

var (
	matchConfigFile       string
	matchJobFile          string
	matchCandidatesFile   string
	matchOutputFile       string
	matchDataDir          string
	matchTopN             int
	matchDesiredLocation  string
	matchAcceptableList   []string
	matchPreferredComps   []string
	matchPreferredInds    []string
	matchRoleOverride     string
	matchEnableEnrichment bool
	matchTimeoutSeconds   int
	matchVerbose          bool
	matchJSONLogs         bool
)

func init() {
	matchCmd.Flags().StringVar(&matchConfigFile, "config", "", "Path to JSON config file")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job description text file (required)")
	matchCmd.Flags().StringVarP(&matchCandidatesFile, "candidates", "c", "", "Path to candidates JSON file (required)")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	matchCmd.Flags().StringVar(&matchDataDir, "data-dir", "", "Directory overriding embedded reference data")
	matchCmd.Flags().IntVar(&matchTopN, "top-n", 0, "Number of ranked candidates to return (default 10)")
	matchCmd.Flags().StringVar(&matchDesiredLocation, "desired-location", "", "Desired work location for bucket grouping")
	matchCmd.Flags().StringSliceVar(&matchAcceptableList, "acceptable-location", nil, "Additional acceptable cities (repeatable)")
	matchCmd.Flags().StringSliceVar(&matchPreferredComps, "preferred-company", nil, "Preferred companies (repeatable)")
	matchCmd.Flags().StringSliceVar(&matchPreferredInds, "preferred-industry", nil, "Preferred industries (repeatable)")
	matchCmd.Flags().StringVar(&matchRoleOverride, "role", "", "Explicit role override, skips detection")
	matchCmd.Flags().BoolVar(&matchEnableEnrichment, "enrich", false, "Enable external location enrichment")
	matchCmd.Flags().IntVar(&matchTimeoutSeconds, "timeout", 120, "Overall match timeout in seconds")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed progress information")
	matchCmd.Flags().BoolVar(&matchJSONLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	cfg := buildMatchConfig()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Job == "" {
		return fmt.Errorf("job description file is required (--job or config 'job')")
	}
	if cfg.Candidates == "" {
		return fmt.Errorf("candidates file is required (--candidates or config 'candidates')")
	}

	log, err := logger.New(matchJSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tables, err := refdata.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	jobText, err := os.ReadFile(cfg.Job)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	candidates, err := loadCandidates(cfg.Candidates)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(matchTimeoutSeconds)*time.Second)
	defer cancel()

	var enricher *enrich.Enricher
	if cfg.EnableEnrichment {
		enricher, err = buildEnricher(ctx, cfg, tables, log)
		if err != nil {
			return err
		}
	}

	matcher := match.New(tables, enricher, log)
	result, err := matcher.Match(ctx, string(jobText), candidates, types.MatchOptions{
		TopN:                     cfg.TopN,
		PreferredCompanies:       cfg.PreferredCompanies,
		PreferredIndustries:      cfg.PreferredIndustries,
		DesiredLocation:          cfg.DesiredLocation,
		AcceptableLocations:      cfg.AcceptableLocations,
		EnableLocationEnrichment: cfg.EnableEnrichment,
		RoleOverride:             cfg.RoleOverride,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintRequirement(&result.Requirement)
		printer.PrintRanked(result.Ranked)
		printer.PrintBuckets(result.Buckets)
	}

	return writeResult(result, matchOutputFile)
}

// buildMatchConfig merges CLI flags over the optional config file. Flags win;
// the file fills anything left empty.
func buildMatchConfig() *config.Config {
	flags := config.Config{
		Job:                 matchJobFile,
		Candidates:          matchCandidatesFile,
		DataDir:             matchDataDir,
		TopN:                matchTopN,
		PreferredCompanies:  matchPreferredComps,
		PreferredIndustries: matchPreferredInds,
		DesiredLocation:     matchDesiredLocation,
		AcceptableLocations: matchAcceptableList,
		RoleOverride:        matchRoleOverride,
		EnableEnrichment:    matchEnableEnrichment,
		Verbose:             matchVerbose,
	}
	if matchConfigFile == "" {
		return &flags
	}
	fileCfg, err := config.LoadConfig(matchConfigFile)
	if err != nil {
		// A bad config path surfaces in Validate; flags alone still work.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return &flags
	}
	merged := flags.MergeWithDefaults(*fileCfg)
	return &merged
}

func buildEnricher(ctx context.Context, cfg *config.Config, tables *refdata.Tables, log *zap.Logger) (*enrich.Enricher, error) {
	enrichCfg := enrich.DefaultConfig()
	if ttl := cfg.CacheTTL(); ttl > 0 {
		enrichCfg.TTL = ttl
	}
	if ttl := cfg.NotFoundTTL(); ttl > 0 {
		enrichCfg.NotFoundTTL = ttl
	}
	if timeout := cfg.LookupTimeout(); timeout > 0 {
		enrichCfg.LookupTimeout = timeout
	}
	if cfg.MaxLookupAttempts > 0 {
		enrichCfg.MaxAttempts = cfg.MaxLookupAttempts
	}

	var providers []enrich.Provider
	if cfg.GoogleAPIKey != "" && cfg.GoogleCX != "" {
		google, err := enrich.NewGoogleProvider(ctx, cfg.GoogleAPIKey, cfg.GoogleCX)
		if err != nil {
			return nil, fmt.Errorf("failed to create google provider: %w", err)
		}
		providers = append(providers, google)
	}
	if cfg.BraveAPIKey != "" {
		providers = append(providers, enrich.NewBraveProvider(cfg.BraveAPIKey, enrichCfg.LookupTimeout))
	}
	providers = append(providers, enrich.NewDuckDuckGoProvider(enrichCfg.LookupTimeout))

	return enrich.New(tables, providers, enrichCfg, log), nil
}

func loadCandidates(path string) ([]types.CandidateRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}
	var candidates []types.CandidateRecord
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse candidates JSON: %w", err)
	}
	return candidates, nil
}

func writeResult(result *types.MatchResult, outPath string) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if outPath == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(outPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
