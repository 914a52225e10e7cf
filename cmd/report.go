package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/hashdos/diffcrypt/collections"
	"github.com/hashdos/diffcrypt/diffcrypt"
)

// Color Logger
// -------------------------------------------------------------------------------------

var (
	Yellow = color.New(color.FgHiYellow)
	Green  = color.New(color.FgHiGreen)
	Red    = color.New(color.FgRed)
)

func CLog(c *color.Color, str string) string {
	return c.Sprint(str)
}

// isTerminal is true when out is a terminal we can redraw a progress line on.
func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func formatPairs(pairs []diffcrypt.Pair) []string {
	return collections.TransformSlice(pairs, func(pair diffcrypt.Pair) string {
		return "  " + pair.String()
	})
}

func printSummary(out io.Writer, result *diffcrypt.SearchResult, quiet bool) {
	fmt.Fprintf(out, "\n=== Summary ===\n")
	fmt.Fprintf(out, "Total successful differences found: %d\n", len(result.Pairs))
	if result.StopReason != diffcrypt.StopMaxPairs {
		fmt.Fprintf(out, "Search stopped (%s) after %d candidates\n", result.StopReason, result.Candidates)
	}

	if quiet {
		return
	}
	fmt.Fprintf(out, "Successful (diff1, diff2) pairs:\n")
	for _, line := range formatPairs(result.Pairs) {
		fmt.Fprintln(out, line)
	}
}

// printReport prints the tally of a ConfirmReport. Failures are listed by D1 so
// reports over the same pairs compare line for line.
func printReport(out io.Writer, report *diffcrypt.ConfirmReport) {
	fmt.Fprintf(out, "\n=== Running Verification Test ===\n")
	failures := collections.SortStable(report.Failures, func(aa, bb diffcrypt.Failure) bool {
		return aa.Pair.D1 < bb.Pair.D1
	})
	for _, failure := range failures {
		fmt.Fprintln(out, CLog(Red, fmt.Sprintf("  FAILED: Diff %s -> Hash: 0x%x != 0x%x",
			failure.Pair, failure.Hash, report.Expected)))
	}

	fmt.Fprintf(out, "\n=== Test Results ===\n")
	fmt.Fprintf(out, "Passed: %d/%d\n", report.Passed, report.Total())
	fmt.Fprintf(out, "Failed: %d/%d\n", len(report.Failures), report.Total())
	if report.OK() {
		fmt.Fprintln(out, CLog(Green, "TEST PASSED: All differentials produce collisions"))
	} else {
		fmt.Fprintln(out, CLog(Red, "TEST FAILED: Some differentials did not produce collisions"))
	}
}
