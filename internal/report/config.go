package report

// Default report configuration constants.
const (
	DefaultInputPath = "data/course_rankings.csv"
	DefaultTopN      = 10
)

// Config holds configuration for a report run.
type Config struct {
	InputPath string // Ranked CSV produced by the pipeline
	TopN      int    // Number of rows in each view
	Verbose   bool   // Enable verbose logging
}
