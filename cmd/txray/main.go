// Command txray annotates a Bitcoin or Lightning binary blob, given either
// directly as a string argument or as a file, printing the first candidate
// interpretation's annotation tree (every candidate's with --all).
package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/lightningnetwork/lnd/build"
	"github.com/spf13/cobra"

	_ "github.com/txray/txray/decoders/bolt12"
	_ "github.com/txray/txray/decoders/btc"

	"github.com/txray/txray/decode"
)

const version = "0.1.0"

var (
	logWriter = build.NewRotatingLogWriter()
	log       = build.NewSubLogger("TXRY", genSubLogger(logWriter))

	debugLevel string
)

var rootCmd = &cobra.Command{
	Use:     "txray",
	Short:   "Annotate Bitcoin and Lightning binary blobs",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	DisableAutoGenTag: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(
		&debugLevel, "debuglevel", "info", "logging level for all "+
			"subsystems ({trace, debug, info, warn, error, "+
			"critical, off})",
	)

	rootCmd.AddCommand(newDecodeCommand())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging() {
	logWriter.RegisterSubLogger("TXRY", log)
	decode.UseLogger(log)

	err := build.ParseAndSetDebugLevels(debugLevel, logWriter)
	if err != nil {
		panic(err)
	}
}

func genSubLogger(logWriter *build.RotatingLogWriter) func(string) btclog.Logger {
	return func(s string) btclog.Logger {
		return logWriter.GenSubLogger(s, func() {})
	}
}
