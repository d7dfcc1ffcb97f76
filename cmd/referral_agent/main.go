// Package main provides the entry point for the referral matcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "referral_agent",
	Short: "Referral candidate matcher",
	Long:  "Referral matcher ranks a pool of professional contacts against a job description, with deterministic weighted scoring and optional location enrichment.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
