// Command extract performs a one-shot section extraction from the terminal.
//
//	extract -ticker AAPL -year 2024
//	extract -ticker MSFT -year 2023 -section 1A
//	extract -ticker F -year 2024 -compare-year 2023 -section 7
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"edgar_sections/pkg/config"
	"edgar_sections/pkg/core/compare"
	"edgar_sections/pkg/core/edgar"
	"edgar_sections/pkg/core/pipeline"
	"edgar_sections/pkg/logger"
)

var (
	ticker      = flag.String("ticker", "", "Ticker symbol, e.g. AAPL")
	year        = flag.Int("year", 0, "Year the 10-K was filed")
	section     = flag.String("section", "", "Section item number or heading (default: Item 1. Business)")
	compareYear = flag.Int("compare-year", 0, "Second filing year; diffs the section against -year")
	outFile     = flag.String("out", "", "Write output to this file instead of stdout")
)

func main() {
	godotenv.Load()
	flag.Parse()

	if *ticker == "" || *year == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.New("edgar-sections-cli")
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	client := edgar.NewClientWith(cfg.HTTPTimeout, cfg.SECUserAgent)
	pipe := pipeline.New(client, log)

	var output string
	if *compareYear != 0 {
		cmp, err := compare.Sections(pipe, *ticker, *year, *compareYear, *section)
		if err != nil {
			fmt.Fprintf(os.Stderr, "comparison failed: %v\n", err)
			os.Exit(1)
		}
		output = renderComparison(cmp)
	} else {
		res := pipe.Run(edgar.Query{Ticker: *ticker, FiscalYear: *year, Section: *section})
		if res.Status != pipeline.StatusSuccess {
			fmt.Fprintln(os.Stderr, res.Reason)
			os.Exit(1)
		}
		output = renderResult(res)
	}

	if *outFile != "" {
		if err := os.WriteFile(*outFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outFile, err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(output)
}

func renderResult(res pipeline.Result) string {
	return fmt.Sprintf("%s - %s\n\n%s\n", res.CompanyName, res.Section, res.Text)
}

func renderComparison(cmp *compare.Comparison) string {
	return fmt.Sprintf("%s - %s (%d vs %d)\n\n%s\n", cmp.CompanyName, cmp.Section, cmp.YearA, cmp.YearB, cmp.DiffText)
}
