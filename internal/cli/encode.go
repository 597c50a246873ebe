package cli

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/Davincible/rscodec/pkg/secure"
	"github.com/Davincible/rscodec/pkg/storage"
	"github.com/spf13/cobra"
)

type EncodeResult struct {
	Message  string `json:"message,omitempty"`
	Nsym     int    `json:"nsym"`
	Capacity int    `json:"capacity"`
	Length   int    `json:"length"`
	Hex      string `json:"hex"`
	Base64   string `json:"base64"`
	Parity   string `json:"parity_hex"`
	Saved    string `json:"saved,omitempty"`
}

func NewEncodeCommand() *cobra.Command {
	var (
		nsym     int
		useStdin bool
		isHex    bool
		save     bool
		encrypt  bool
	)

	cmd := &cobra.Command{
		Use:   "encode [message]",
		Short: "Encode a message into a Reed-Solomon codeword",
		Long: `Encode a message into a systematic Reed-Solomon codeword over GF(2^8).

The codeword is the message followed by nsym parity bytes and can have up
to nsym/2 corrupted bytes repaired. Message and parity together may not
exceed 255 bytes.`,
		Example: `  # Encode a message with 4 parity bytes
  rscodec encode --nsym 4 Hello

  # Encode raw bytes given as hex and keep the codeword for 'decode --session'
  rscodec encode --hex --save 48656c6c6f

  # Read the message from stdin
  echo "sensor frame" | rscodec encode --stdin -n 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := cm.GetConfig()
			if !cmd.Flags().Changed("nsym") {
				nsym = cfg.Defaults.Nsym
			}

			message, err := readMessage(cmd, args, useStdin, isHex)
			if err != nil {
				return fmt.Errorf("failed to read message: %w", err)
			}
			if err := validation.ValidateMessageLength(len(message), nsym); err != nil {
				return err
			}

			codeword, err := rs.Encode(message, nsym)
			if err != nil {
				return fmt.Errorf("failed to encode message: %w", err)
			}
			slog.Debug("Encoded message", "length", len(message), "nsym", nsym)

			result := EncodeResult{
				Nsym:     nsym,
				Capacity: rs.Capacity(nsym),
				Length:   len(codeword),
				Hex:      hex.EncodeToString(codeword),
				Base64:   base64.StdEncoding.EncodeToString(codeword),
				Parity:   hex.EncodeToString(codeword[len(message):]),
			}
			if text, ok := printable(message); ok {
				result.Message = text
			}

			if save || encrypt || cfg.Storage.RequirePassphrase {
				var pass []byte
				if encrypt || cfg.Storage.RequirePassphrase {
					pass, err = readPassphrase(cmd, "Session passphrase: ")
					if err != nil {
						return fmt.Errorf("failed to read passphrase: %w", err)
					}
					defer secure.Zero(pass)
				}

				store := sessionStore(cm)
				err := store.Save(&storage.Session{
					Codeword:  codeword,
					Nsym:      nsym,
					CreatedAt: time.Now().UTC(),
				}, pass)
				if err != nil {
					return fmt.Errorf("failed to save session: %w", err)
				}
				result.Saved = store.Path()
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return outputEncodeText(cmd, result, codeword, cfg.Defaults.Format)
		},
	}

	cmd.Flags().IntVarP(&nsym, "nsym", "n", 4, "Number of parity symbols (corrects nsym/2 byte errors)")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read message from stdin")
	cmd.Flags().BoolVar(&isHex, "hex", false, "Message is given as hex bytes")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "Keep the codeword as the current session")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "Encrypt the saved session with a passphrase")

	return cmd
}

func outputEncodeText(cmd *cobra.Command, result EncodeResult, codeword []byte, format string) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	yellow.Fprintln(w, "=== REED-SOLOMON CODEWORD ===")
	fmt.Fprintln(w)

	green.Fprintf(w, "%d message bytes + %d parity bytes = %d bytes\n",
		result.Length-result.Nsym, result.Nsym, result.Length)
	fmt.Fprintf(w, "Corrects up to %d corrupted bytes\n\n", result.Capacity)

	cyan.Fprint(w, "  Bytes:  ")
	fmt.Fprintln(w, formatCodeword(codeword, result.Nsym, nil))
	writeEncodings(w, result.Hex, result.Base64, format, "  ")

	if result.Saved != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Session saved to %s\n", result.Saved)
	}
	return nil
}
