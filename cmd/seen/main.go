package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seen",
	Short: "Compiler for the Seen programming language",
	Long: "seen compiles Seen sources, written in the English or the Arabic\n" +
		"dialect, into a Rust crate and drives cargo over the result.",
	SilenceUsage: true,
}

func main() {
	// .env may set SEEN_LOG for debug dumps
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
