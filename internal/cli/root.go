package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the rscodec command tree. level is raised to
// debug when --verbose is given.
func NewRootCommand(version string, level *slog.LevelVar) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rscodec",
		Short: "Reed-Solomon error correction for short byte messages",
		Long: `rscodec encodes messages into Reed-Solomon codewords over GF(2^8) and
repairs corrupted codewords.

A codeword is the message followed by nsym parity bytes; up to nsym/2
corrupted bytes anywhere in the codeword can be corrected, and message plus
parity may be at most 255 bytes.

Features:
- Systematic encoding (the message stays readable at the front)
- Error location and correction with the Euclidean decoder
- Simulated corruption with 'decode --flip' and 'corrupt'
- Concurrent corruption sweeps to check correction limits`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && level != nil {
				level.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.AddCommand(
		NewEncodeCommand(),
		NewDecodeCommand(),
		NewCorruptCommand(),
		NewSweepCommand(),
		NewInfoCommand(),
		NewConfigCommand(),
		NewExampleCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	return rootCmd
}
