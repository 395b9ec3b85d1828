package report

import "os"

// ShowHelp prints usage information for the report tool.
func ShowHelp() {
	os.Stdout.WriteString(`Fairway Ranking Report
======================

Renders reporting views from a ranked course table produced by the fairway
pipeline.

Usage:
  go run cmd/report/main.go [options]

Options:
  -input string
        Ranked CSV to read (default "data/course_rankings.csv")
  -top int
        Number of rows in each view (default 10)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Report on the default output location
  go run cmd/report/main.go

  # Report on a custom file with larger views
  go run cmd/report/main.go -input out/ranked.csv -top 25
`)
}
