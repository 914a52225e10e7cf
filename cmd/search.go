package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hashdos/diffcrypt/diffcrypt"
)

var searchCmd = &cobra.Command{
	Use:   "search [max_pairs]",
	Short: "Search for differential pairs that collide with a baseline message",
	Long: `Enumerates first differentials d1, solves the matching d2 and keeps every
pair that collides for all sampled messages and seeds. The baseline is random
unless --message is given. With --test every pair is checked against the
baseline's full digest and any failure makes the command exit nonzero.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error { return bindFlags(cmd) },
	RunE:    RunSearch,
}

func init() {
	SetupSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func RunSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		maxPairs, err := parseMaxPairs(args[0])
		if err != nil {
			return err
		}
		viper.Set("max-pairs", maxPairs)
	}

	// Parse the configuration (can use CLI flags, environment variables, or config file)
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	setupLogging(config)
	config.Print()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Search(ctx, config, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Search runs one search with config and prints the results to out. The progress
// bar goes to errOut when it is a terminal.
func Search(ctx context.Context, config *Config, out io.Writer, errOut io.Writer) error {
	baseline, err := config.Baseline()
	if err != nil {
		return errors.Wrapf(err, "Search: ")
	}

	var reporters diffcrypt.MultiReporter
	showProgress := !config.Quiet && isTerminal(errOut)
	if showProgress {
		reporters = append(reporters, diffcrypt.NewProgressBar(errOut))
	}
	if config.StatsdAddr != "" {
		stats, err := NewSearchStats(config.StatsdAddr)
		if err != nil {
			return errors.Wrapf(err, "Search: ")
		}
		reporters = append(reporters, stats)
		stats.Start()
		defer stats.Stop()
	}

	oracle := diffcrypt.XXH32Oracle{}
	searcher, err := diffcrypt.NewSearcher(oracle, config.SearchConfig(), reporters)
	if err != nil {
		return errors.Wrapf(err, "Search: ")
	}

	fmt.Fprintf(out, "Searching for up to %d differential pairs...\n", config.MaxPairs)
	fmt.Fprintf(out, "Original array: %s\n", baseline)

	result, err := searcher.Search(ctx, baseline, uint32(config.MaxPairs))
	if err != nil {
		return errors.Wrapf(err, "Search: ")
	}
	if showProgress {
		fmt.Fprintln(errOut)
	}
	if result.StopReason == diffcrypt.StopCancelled {
		glog.Warningf("Search: Interrupted after %d candidates, printing partial results", result.Candidates)
	}
	if glog.V(2) {
		glog.Infof("Search: Result %s", spew.Sdump(result))
	}

	printSummary(out, result, config.Quiet)

	report := diffcrypt.Confirm(oracle, baseline, result.Pairs, config.HashSeed)
	fmt.Fprintf(out, "\nOriginal hash: 0x%x\n", report.Expected)
	if !config.Test {
		return nil
	}
	printReport(out, report)
	if !report.OK() {
		return errors.Wrapf(diffcrypt.ErrVerificationFailed, "Search: %d of %d pairs",
			len(report.Failures), report.Total())
	}
	return nil
}

func SetupSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("max-pairs", diffcrypt.DefaultMaxPairs,
		"The most pairs to find. The positional max_pairs argument takes precedence. "+
			"Values above 2^32-1 are clamped.")
	cmd.Flags().Bool("test", false,
		"Check every found pair against the baseline's full digest and exit nonzero on any failure.")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print the individual pairs or the progress bar.")
	cmd.Flags().Int("trials", diffcrypt.DefaultTrials,
		"Each candidate is checked on trials^2 random messages and seeds before it is kept.")
	cmd.Flags().Int("threads", 1,
		"The number of search workers. 0 uses every CPU. Results do not depend on this value.")
	cmd.Flags().Uint64("rng-seed", 0,
		"Seeds the baseline and all verification sampling. 0 picks a random seed, which is logged.")
	cmd.Flags().String("message", "", "The baseline message as 16 hex digits. Random when unset.")
	cmd.Flags().Uint32("hash-seed", 0, "The XXH32 seed the pairs must collide under.")
	cmd.Flags().Uint32("search-start", 1, "The first d1 candidate.")
	cmd.Flags().Uint32("search-end", math.MaxUint32, "The last d1 candidate, inclusive.")
	cmd.Flags().Uint64("max-iterations", 0, "Stop after this many candidates. 0 scans the whole range.")
	cmd.Flags().Uint64("progress-interval", diffcrypt.DefaultProgressInterval,
		"Report progress every this many candidates.")
	cmd.Flags().String("statsd-addr", "",
		"When set, push DIFFCRYPT.CANDIDATES and DIFFCRYPT.FOUND gauges to this DogStatsD address.")
}
