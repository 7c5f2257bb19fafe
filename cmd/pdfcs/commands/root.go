// Package commands implements the pdfcs CLI commands.
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags.
	debugLevel int
)

// debugLevelFlag is a pflag.Value rejecting a negative debug level at
// flag-parse time rather than letting Options.Validate catch it later.
type debugLevelFlag struct{ v *int }

func (f debugLevelFlag) String() string { return strconv.Itoa(*f.v) }
func (f debugLevelFlag) Type() string   { return "int" }
func (f debugLevelFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("debug level must be >= 0, got %d", n)
	}
	*f.v = n
	return nil
}

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "pdfcs",
	Short: "Drive the content-stream interpreter over a raw content-stream file",
	Long: `pdfcs feeds a raw, already-decoded content-stream file through the
interpreter and a choice of sink.

Examples:
  pdfcs dump stream.txt
  pdfcs preview stream.txt out.png --width 612 --height 792`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	var flagSet *pflag.FlagSet = rootCmd.PersistentFlags()
	flagSet.VarP(debugLevelFlag{&debugLevel}, "debug", "d", "interpreter debug level (0 disables)")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(previewCmd)
}
