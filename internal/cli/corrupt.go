package cli

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/spf13/cobra"
)

type CorruptResult struct {
	Positions []int  `json:"positions"`
	Bit       int    `json:"bit"`
	Hex       string `json:"hex"`
	Base64    string `json:"base64"`
}

func NewCorruptCommand() *cobra.Command {
	var (
		positions string
		bit       int
		format    string
	)

	cmd := &cobra.Command{
		Use:   "corrupt [codeword]",
		Short: "Flip bits in a codeword to simulate transmission errors",
		Long: `Flip one bit in each of the given byte positions of a codeword and print
the result, ready to be passed to 'rscodec decode'.`,
		Example: `  # Damage bytes 0 and 3
  rscodec corrupt --positions 0,3 48656c6c6f9298cb83`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			codeword, err := validation.ParseCodewordAs(args[0], format)
			if err != nil {
				return err
			}
			if err := validation.ValidateBit(bit); err != nil {
				return err
			}
			pos, err := validation.ParsePositions(positions, len(codeword))
			if err != nil {
				return err
			}

			for _, p := range pos {
				codeword[p] ^= 1 << bit
			}

			result := CorruptResult{
				Positions: pos,
				Bit:       bit,
				Hex:       hex.EncodeToString(codeword),
				Base64:    base64.StdEncoding.EncodeToString(codeword),
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			writeEncodings(cmd.OutOrStdout(), result.Hex, result.Base64, cm.GetConfig().Defaults.Format, "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&positions, "positions", "p", "0", "Comma separated byte positions to corrupt")
	cmd.Flags().IntVarP(&bit, "bit", "b", 0, "Bit (0-7) flipped in each position")
	cmd.Flags().StringVar(&format, "format", validation.FormatAuto, "Codeword input format: auto, hex or base64")

	return cmd
}
