package cli

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"unicode"
	"unicode/utf8"

	"github.com/Davincible/rscodec/pkg/config"
	"github.com/Davincible/rscodec/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// passphraseEnv lets scripts supply the session passphrase without a prompt.
const passphraseEnv = "RSCODEC_PASSPHRASE"

var (
	yellow = color.New(color.FgYellow, color.Bold)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	blue   = color.New(color.FgBlue, color.Bold)
)

// loadConfig loads the user configuration and applies its UI settings.
func loadConfig(cmd *cobra.Command) (*config.ConfigManager, error) {
	cm, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor || !cm.GetConfig().UI.UseColor {
		color.NoColor = true
	}
	return cm, nil
}

// writeEncodings prints the hex and base64 forms of a codeword, the
// configured format first.
func writeEncodings(w io.Writer, hexStr, b64Str, format, indent string) {
	hexLine := func() {
		cyan.Fprint(w, indent+"Hex:    ")
		fmt.Fprintln(w, hexStr)
	}
	b64Line := func() {
		blue.Fprint(w, indent+"Base64: ")
		fmt.Fprintln(w, b64Str)
	}

	if format == "base64" {
		b64Line()
		hexLine()
		return
	}
	hexLine()
	b64Line()
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func sessionStore(cm *config.ConfigManager) *storage.SessionStore {
	return storage.NewSessionStore(cm.SessionPath())
}

// readPassphrase reads a passphrase from the environment or the terminal
func readPassphrase(cmd *cobra.Command, prompt string) ([]byte, error) {
	if pass, ok := os.LookupEnv(passphraseEnv); ok {
		return []byte(pass), nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		return pass, nil
	}

	// Fallback for non-terminal
	reader := bufio.NewReader(cmd.InOrStdin())
	pass, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return []byte(strings.TrimSpace(pass)), nil
}

// readMessage takes the message from args, stdin, or an interactive prompt.
func readMessage(cmd *cobra.Command, args []string, useStdin, isHex bool) ([]byte, error) {
	var text string

	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case useStdin:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		text = strings.TrimRight(string(data), "\r\n")
	default:
		fmt.Fprint(cmd.ErrOrStderr(), "Enter message: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		text = strings.TrimRight(line, "\r\n")
	}

	if isHex {
		data, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid hex message: %w", err)
		}
		return data, nil
	}
	return []byte(text), nil
}

// printable returns the message as text when it is readable UTF-8.
func printable(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	for _, r := range string(data) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return "", false
		}
	}
	return string(data), true
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatCodeword renders bytes as spaced hex with the parity highlighted.
func formatCodeword(codeword []byte, nsym int, marked map[int]bool) string {
	var sb strings.Builder
	for i, b := range codeword {
		if i > 0 {
			sb.WriteByte(' ')
		}
		cell := fmt.Sprintf("%02x", b)
		switch {
		case marked[i]:
			cell = red.Sprint(cell)
		case i >= len(codeword)-nsym:
			cell = blue.Sprint(cell)
		}
		sb.WriteString(cell)
	}
	return sb.String()
}
