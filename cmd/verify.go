package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hashdos/diffcrypt/diffcrypt"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check differential pairs against a message's full digest",
	Long: `Applies every --pair to --message and compares the XXH32 digest of the
result with the message's own. Exits nonzero if any pair fails.`,
	Args:    cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error { return bindFlags(cmd) },
	RunE:    RunVerify,
}

func init() {
	verifyCmd.Flags().String("message", "", "The message as 16 hex digits.")
	verifyCmd.Flags().StringArray("pair", []string{}, "A pair as D1:D2. Repeat for more pairs.")
	verifyCmd.Flags().Uint32("hash-seed", 0, "The XXH32 seed to hash with.")
	rootCmd.AddCommand(verifyCmd)
}

func RunVerify(cmd *cobra.Command, args []string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	setupLogging(config)
	return Verify(config, cmd.OutOrStdout())
}

func Verify(config *Config, out io.Writer) error {
	if config.Message == "" {
		return errors.Wrapf(diffcrypt.ErrInvalidMessage, "Verify: --message is required")
	}
	baseline, err := config.Baseline()
	if err != nil {
		return errors.Wrapf(err, "Verify: ")
	}
	pairs, err := config.ParsePairs()
	if err != nil {
		return errors.Wrapf(err, "Verify: ")
	}

	report := diffcrypt.Confirm(diffcrypt.XXH32Oracle{}, baseline, pairs, config.HashSeed)
	fmt.Fprintf(out, "Original array: %s\n", baseline)
	fmt.Fprintf(out, "Original hash: 0x%x\n", report.Expected)
	printReport(out, report)
	if !report.OK() {
		return errors.Wrapf(diffcrypt.ErrVerificationFailed, "Verify: %d of %d pairs",
			len(report.Failures), report.Total())
	}
	return nil
}
