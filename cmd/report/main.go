package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/fairway/internal/report"
	"github.com/okian/fairway/pkg/logger"
)

func main() {
	input := flag.String("input", report.DefaultInputPath, "ranked CSV to read")
	top := flag.Int("top", report.DefaultTopN, "number of rows in each view")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	help := flag.Bool("help", false, "show help message")
	flag.Parse()

	if *help {
		report.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	cfg := report.Config{
		InputPath: *input,
		TopN:      *top,
		Verbose:   *verbose,
	}

	if err := report.Run(cfg, os.Stdout); err != nil {
		logger.Get().Error(context.Background(), "report failed", logger.String("input", cfg.InputPath), logger.Error(err))
		os.Exit(1)
	}
}
