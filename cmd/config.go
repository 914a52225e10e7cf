package cmd

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hashdos/diffcrypt/diffcrypt"
)

type Config struct {
	// Search
	MaxPairs         int64
	Trials           int
	Threads          int
	RngSeed          uint64
	Message          string
	HashSeed         uint32
	SearchStart      uint32
	SearchEnd        uint32
	MaxIterations    uint64
	ProgressInterval uint64
	Test             bool
	Quiet            bool

	// Verify and check
	Pairs []string

	// Metrics
	StatsdAddr string

	// Logging
	LogDirectory string
	GlogV        uint64
	GlogVmodule  string
}

func setConfigDefaults() {
	viper.SetDefault("max-pairs", diffcrypt.DefaultMaxPairs)
	viper.SetDefault("trials", diffcrypt.DefaultTrials)
	viper.SetDefault("threads", 1)
	viper.SetDefault("search-start", 1)
	viper.SetDefault("search-end", uint32(math.MaxUint32))
	viper.SetDefault("progress-interval", diffcrypt.DefaultProgressInterval)
}

// LoadConfig reads flags, DIFFCRYPT_* environment variables and the config file.
// A zero rng seed is replaced by a random one so the run can be reproduced from
// the logged value.
func LoadConfig() (*Config, error) {
	setConfigDefaults()
	config := Config{}

	// Search
	config.MaxPairs = viper.GetInt64("max-pairs")
	config.Trials = viper.GetInt("trials")
	config.Threads = viper.GetInt("threads")
	config.RngSeed = viper.GetUint64("rng-seed")
	config.Message = viper.GetString("message")
	config.HashSeed = viper.GetUint32("hash-seed")
	config.SearchStart = viper.GetUint32("search-start")
	config.SearchEnd = viper.GetUint32("search-end")
	config.MaxIterations = viper.GetUint64("max-iterations")
	config.ProgressInterval = viper.GetUint64("progress-interval")
	config.Test = viper.GetBool("test")
	config.Quiet = viper.GetBool("quiet")

	// Verify and check
	config.Pairs = viper.GetStringSlice("pair")

	// Metrics
	config.StatsdAddr = viper.GetString("statsd-addr")

	// Logging
	config.LogDirectory = viper.GetString("log-dir")
	config.GlogV = viper.GetUint64("glog-v")
	config.GlogVmodule = viper.GetString("glog-vmodule")

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "LoadConfig: ")
	}
	if config.RngSeed == 0 {
		config.RngSeed = rand.Uint64()
	}
	return &config, nil
}

// Validate rejects values no search can run with and clamps the rest.
func (config *Config) Validate() error {
	if config.MaxPairs <= 0 {
		return errors.Wrapf(diffcrypt.ErrInvalidMaxPairs, "Config.Validate: got %d", config.MaxPairs)
	}
	if config.MaxPairs > diffcrypt.MaxPairsLimit {
		config.MaxPairs = diffcrypt.MaxPairsLimit
	}
	if config.Trials <= 0 {
		return errors.Wrapf(diffcrypt.ErrInvalidTrials, "Config.Validate: got %d", config.Trials)
	}
	if config.Threads <= 0 {
		config.Threads = runtime.NumCPU()
	}
	if config.SearchStart == 0 {
		config.SearchStart = 1
	}
	if config.SearchEnd < config.SearchStart {
		return errors.Wrapf(diffcrypt.ErrInvalidRange, "Config.Validate: end %#x is below start %#x",
			config.SearchEnd, config.SearchStart)
	}
	if config.ProgressInterval == 0 {
		config.ProgressInterval = diffcrypt.DefaultProgressInterval
	}
	if config.Message != "" {
		if _, err := diffcrypt.ParseMessage(config.Message); err != nil {
			return errors.Wrapf(err, "Config.Validate: ")
		}
	}
	return nil
}

// Baseline is the message given with --message, or one drawn from the rng seed on
// a stream no search chunk uses.
func (config *Config) Baseline() (diffcrypt.Message, error) {
	if config.Message != "" {
		return diffcrypt.ParseMessage(config.Message)
	}
	return diffcrypt.RandomMessage(rand.New(rand.NewPCG(config.RngSeed, math.MaxUint64))), nil
}

func (config *Config) SearchConfig() diffcrypt.SearchConfig {
	searchConfig := diffcrypt.DefaultSearchConfig()
	searchConfig.Seed = config.HashSeed
	searchConfig.Trials = config.Trials
	searchConfig.Start = config.SearchStart
	searchConfig.End = config.SearchEnd
	searchConfig.MaxIterations = config.MaxIterations
	searchConfig.Threads = config.Threads
	searchConfig.ProgressInterval = config.ProgressInterval
	searchConfig.RngSeed = config.RngSeed
	return searchConfig
}

// ParsePairs parses every --pair value.
func (config *Config) ParsePairs() ([]diffcrypt.Pair, error) {
	pairs := make([]diffcrypt.Pair, 0, len(config.Pairs))
	for _, str := range config.Pairs {
		pair, err := diffcrypt.ParsePair(str)
		if err != nil {
			return nil, errors.Wrapf(err, "Config.ParsePairs: ")
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func (config *Config) Print() {
	if config.LogDirectory != "" {
		glog.Infof("Logging to directory %s", config.LogDirectory)
	}
	glog.Infof("Max Pairs: %d", config.MaxPairs)
	glog.Infof("Trials: %d", config.Trials)
	glog.Infof("Threads: %d", config.Threads)
	glog.Infof("Rng Seed: %d", config.RngSeed)
	glog.Infof("Hash Seed: %#x", config.HashSeed)
	glog.Infof("Search Range: [%#x, %#x]", config.SearchStart, config.SearchEnd)

	if config.MaxIterations > 0 {
		glog.Infof("Max Iterations: %d", config.MaxIterations)
	}

	if config.Message != "" {
		glog.Infof("Message: %s", config.Message)
	}

	if config.StatsdAddr != "" {
		glog.Infof("Statsd: %s", config.StatsdAddr)
	}

	if config.Test {
		glog.Infof("TEST MODE")
	}
}

// parseMaxPairs reads the positional max_pairs argument. Values past the int64
// range are clamped later along with everything above 2^32-1.
func parseMaxPairs(arg string) (int64, error) {
	maxPairs, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange && !strings.HasPrefix(strings.TrimSpace(arg), "-") {
			return math.MaxInt64, nil
		}
		return 0, errors.Wrapf(diffcrypt.ErrInvalidMaxPairs, "parseMaxPairs: %q", arg)
	}
	return maxPairs, nil
}

func SetupLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-dir", "", "The directory where logs are written. "+
		"When unset, logs go to stderr only.")
	cmd.PersistentFlags().Uint64("glog-v", 0, "The log level. 0 = INFO, 1 = DEBUG, 2 = TRACE. Defaults to zero")
	cmd.PersistentFlags().String("glog-vmodule", "", "The syntax of the argument is a comma-separated list of pattern=N, "+
		"where pattern is a literal file name (minus the \".go\" suffix) or \"glob\" "+
		"pattern and N is a V level. For instance, -vmodule=search*=2 sets the V "+
		"level to 2 in all Go files whose names begin \"search\".")

	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}

// bindFlags binds the flags of the command that is about to run. Subcommands share
// flag names, so binding them all up front would let the last one registered win.
func bindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if err := viper.BindPFlag(flag.Name, flag); err != nil && bindErr == nil {
			bindErr = errors.Wrapf(err, "bindFlags: %s", flag.Name)
		}
	})
	return bindErr
}

func setupLogging(config *Config) {
	// glog registers its flags on the standard flag set.
	if config.LogDirectory != "" {
		flag.Set("log_dir", config.LogDirectory)
		flag.Set("alsologtostderr", "true")
	} else {
		flag.Set("logtostderr", "true")
	}
	flag.Set("v", fmt.Sprintf("%d", config.GlogV))
	flag.Set("vmodule", config.GlogVmodule)
	flag.CommandLine.Parse([]string{})
	glog.CopyStandardLogTo("INFO")
}
