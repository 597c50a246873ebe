package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/spf13/cobra"
)

type InfoResult struct {
	Nsym             int    `json:"nsym"`
	Capacity         int    `json:"capacity"`
	MaxMessageLength int    `json:"max_message_length"`
	MessageLength    int    `json:"message_length,omitempty"`
	CodewordLength   int    `json:"codeword_length,omitempty"`
	Overhead         string `json:"overhead,omitempty"`
	Generator        string `json:"generator_hex"`
}

func NewInfoCommand() *cobra.Command {
	var (
		nsym   int
		length int
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show code parameters for a given nsym",
		Long:  `Show the correction capacity, size limits and generator polynomial for nsym parity symbols.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("nsym") {
				nsym = cm.GetConfig().Defaults.Nsym
			}
			if err := validation.ValidateNsym(nsym); err != nil {
				return err
			}

			gen, err := rs.Generator(nsym)
			if err != nil {
				return err
			}

			result := InfoResult{
				Nsym:             nsym,
				Capacity:         rs.Capacity(nsym),
				MaxMessageLength: rs.MaxCodewordLength - nsym,
				Generator:        hex.EncodeToString(gen),
			}
			if length > 0 {
				if err := validation.ValidateMessageLength(length, nsym); err != nil {
					return err
				}
				result.MessageLength = length
				result.CodewordLength = length + nsym
				result.Overhead = fmt.Sprintf("%.1f%%", 100*float64(nsym)/float64(length))
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			w := cmd.OutOrStdout()
			yellow.Fprintf(w, "Reed-Solomon over GF(2^8), nsym = %d\n", nsym)
			fmt.Fprintf(w, "  Corrects:           %d byte errors\n", result.Capacity)
			fmt.Fprintf(w, "  Max message length: %d bytes\n", result.MaxMessageLength)
			if result.CodewordLength > 0 {
				fmt.Fprintf(w, "  Codeword length:    %d bytes (%s overhead)\n", result.CodewordLength, result.Overhead)
			}
			fmt.Fprintf(w, "  Generator:          %s\n", result.Generator)
			return nil
		},
	}

	cmd.Flags().IntVarP(&nsym, "nsym", "n", 4, "Number of parity symbols")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "Message length to size a codeword for")

	return cmd
}
