package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/referral-matcher/internal/parsing"
	"github.com/jonathan/referral-matcher/internal/refdata"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured requirement from a job description",
	Long:  "Parse a job description text file into a structured requirement (role, confidence, skills, platforms, seniority, company) without scoring any candidates.",
	RunE:  runExtract,
}

var (
	extractJobFile      string
	extractOutputFile   string
	extractDataDir      string
	extractRoleOverride string
)

func init() {
	extractCmd.Flags().StringVarP(&extractJobFile, "job", "j", "", "Path to job description text file (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVar(&extractDataDir, "data-dir", "", "Directory overriding embedded reference data")
	extractCmd.Flags().StringVar(&extractRoleOverride, "role", "", "Explicit role override, skips detection")
	_ = extractCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	tables, err := refdata.Load(extractDataDir)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	jobText, err := os.ReadFile(extractJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	if strings.TrimSpace(string(jobText)) == "" {
		return fmt.Errorf("job description is empty: %s", extractJobFile)
	}

	req := parsing.ExtractRequirements(tables, string(jobText), extractRoleOverride)

	jsonBytes, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal requirement: %w", err)
	}
	if extractOutputFile == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(extractOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
