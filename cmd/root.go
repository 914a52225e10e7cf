package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diffcrypt",
	Short: "Differential collision search for XXH32",
	Long: `diffcrypt searches for pairs of 32-bit differences that, added to the two
4-byte chunks of an 8-byte message, leave the XXH32 digest unchanged.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line. Errors are printed once, by cobra.CheckErr.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.diffcrypt/diffcrypt.yaml)")
	SetupLoggingFlags(rootCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Expand("~/.diffcrypt")
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigName("diffcrypt")
	}

	// Environment variable support
	viper.SetEnvPrefix("DIFFCRYPT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
