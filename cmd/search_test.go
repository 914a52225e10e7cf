package cmd

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/hashdos/diffcrypt/diffcrypt"
)

func init() {
	color.NoColor = true
}

func testConfig() *Config {
	return &Config{
		MaxPairs:         5,
		Trials:           diffcrypt.DefaultTrials,
		Threads:          2,
		RngSeed:          1,
		Message:          "0102030405060708",
		SearchStart:      1,
		SearchEnd:        math.MaxUint32,
		ProgressInterval: diffcrypt.DefaultProgressInterval,
		Test:             true,
	}
}

func TestSearchBaselineScenario(t *testing.T) {
	require := require.New(t)

	var out, errOut bytes.Buffer
	require.NoError(Search(context.Background(), testConfig(), &out, &errOut))

	output := out.String()
	require.Contains(output, "Searching for up to 5 differential pairs...\n")
	require.Contains(output, "Original array: 01 02 03 04 05 06 07 08\n")
	require.Contains(output, "Total successful differences found: 5\n")
	require.Contains(output, "Successful (diff1, diff2) pairs:\n")
	require.Equal(5, strings.Count(output, "\n  (0x"))
	require.Contains(output, "Original hash: 0x143a0d68\n")
	require.Contains(output, "Passed: 5/5\n")
	require.Contains(output, "Failed: 0/5\n")
	require.Contains(output, "TEST PASSED: All differentials produce collisions\n")
	require.NotContains(output, "Search stopped")

	// Not a terminal, so no progress bar.
	require.Empty(errOut.String())
}

func TestSearchQuiet(t *testing.T) {
	require := require.New(t)

	config := testConfig()
	config.Quiet = true
	config.Test = false

	var out, errOut bytes.Buffer
	require.NoError(Search(context.Background(), config, &out, &errOut))

	output := out.String()
	require.Contains(output, "Total successful differences found: 5\n")
	require.NotContains(output, "Successful (diff1, diff2) pairs:")
	require.NotContains(output, "  (0x")
	require.NotContains(output, "Running Verification Test")
	require.Contains(output, "Original hash: 0x143a0d68\n")
}

func TestSearchWindowExhausted(t *testing.T) {
	require := require.New(t)

	config := testConfig()
	config.MaxPairs = 100
	config.SearchStart = 0x6c8a0000
	config.SearchEnd = 0x6c8bffff

	var out, errOut bytes.Buffer
	require.NoError(Search(context.Background(), config, &out, &errOut))

	output := out.String()
	require.Contains(output, "Search stopped (exhausted) after 131072 candidates\n")
	require.Contains(output, "  (0x6c8a8000, 0x412bde25)\n")
	require.Contains(output, "TEST PASSED")
}

func TestSearchHashSeed(t *testing.T) {
	require := require.New(t)

	config := testConfig()
	config.HashSeed = 12345
	config.MaxPairs = 2
	config.SearchStart = 0x6c8a8000

	var out, errOut bytes.Buffer
	require.NoError(Search(context.Background(), config, &out, &errOut))
	require.Contains(out.String(), "Original hash: 0x5c32b958\n")
	require.Contains(out.String(), "Passed: 2/2\n")
}

func TestSearchRandomBaselineIsReproducible(t *testing.T) {
	require := require.New(t)

	config := testConfig()
	config.Message = ""
	config.MaxPairs = 2
	config.RngSeed = 99
	config.SearchStart = 0x6c8a0000
	config.SearchEnd = 0x6c8bffff

	var first, second, errOut bytes.Buffer
	require.NoError(Search(context.Background(), config, &first, &errOut))
	require.NoError(Search(context.Background(), config, &second, &errOut))
	require.Equal(first.String(), second.String())

	baseline, err := config.Baseline()
	require.NoError(err)
	require.Contains(first.String(), "Original array: "+baseline.String()+"\n")
}

func TestSearchCancelled(t *testing.T) {
	require := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := testConfig()
	config.Test = false

	var out, errOut bytes.Buffer
	require.NoError(Search(ctx, config, &out, &errOut))
	require.Contains(out.String(), "Search stopped (cancelled)")
}

func TestVerifyInjectedFailure(t *testing.T) {
	require := require.New(t)

	config := &Config{
		Message: "0102030405060708",
		Pairs: []string{
			"0x6c8a8000:0x412bde25",
			"0x6c8a8000:0x412bde26",
			"0x93758000:0xbed421db",
		},
	}

	var out bytes.Buffer
	err := Verify(config, &out)
	require.ErrorIs(err, diffcrypt.ErrVerificationFailed)

	output := out.String()
	require.Contains(output, "Original hash: 0x143a0d68\n")
	require.Equal(1, strings.Count(output, "FAILED: Diff"))
	require.Contains(output, "  FAILED: Diff (0x6c8a8000, 0x412bde26) -> Hash: 0x6029ce62 != 0x143a0d68\n")
	require.Contains(output, "Passed: 2/3\n")
	require.Contains(output, "Failed: 1/3\n")
	require.Contains(output, "TEST FAILED: Some differentials did not produce collisions\n")
}

func TestVerifyPasses(t *testing.T) {
	require := require.New(t)

	config := &Config{
		Message: "01:02:03:04:05:06:07:08",
		Pairs:   []string{"0x6c8a8000:0x412bde25", "0x93758000:0xbed421db"},
	}

	var out bytes.Buffer
	require.NoError(Verify(config, &out))
	require.Contains(out.String(), "Passed: 2/2\n")
	require.Contains(out.String(), "TEST PASSED")
	require.NotContains(out.String(), "FAILED: Diff")
}

func TestVerifyBadInput(t *testing.T) {
	var out bytes.Buffer

	err := Verify(&Config{Pairs: []string{"1:2"}}, &out)
	require.ErrorIs(t, err, diffcrypt.ErrInvalidMessage)

	err = Verify(&Config{Message: "0102030405060708", Pairs: []string{"1-2"}}, &out)
	require.ErrorIs(t, err, diffcrypt.ErrInvalidPair)
}

func TestCheck(t *testing.T) {
	require := require.New(t)

	config := &Config{
		Trials:  8,
		RngSeed: 1,
		Pairs:   []string{"0x6c8a8000:0x412bde25", "0x1:0x887edd99"},
	}

	var out bytes.Buffer
	require.NoError(Check(config, &out))
	require.Equal(
		"(0x6c8a8000, 0x412bde25) holds for 64 samples\n"+
			"(0x1, 0x887edd99) does not hold\n",
		out.String())

	config.Pairs = nil
	require.ErrorIs(Check(config, &out), diffcrypt.ErrInvalidPair)
}

func TestExecuteReportsErrorOnce(t *testing.T) {
	require := require.New(t)
	resetViper(t)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"search", "0"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	// Execute hands the error to cobra.CheckErr, which prints it; cobra itself stays quiet.
	err := rootCmd.Execute()
	require.ErrorIs(err, diffcrypt.ErrInvalidMaxPairs)
	require.NotContains(errOut.String(), "Error:")
	require.NotContains(errOut.String(), "Usage:")
	require.NotContains(out.String(), "Searching for up to")
}
