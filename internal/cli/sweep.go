package cli

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/Davincible/rscodec/internal/validation"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/Davincible/rscodec/pkg/sweep"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type SweepResult struct {
	Codeword     string `json:"codeword_hex"`
	Nsym         int    `json:"nsym"`
	Errors       int    `json:"errors_per_trial"`
	Capacity     int    `json:"capacity"`
	Trials       int    `json:"trials"`
	Recovered    int    `json:"recovered"`
	Detected     int    `json:"detected"`
	Miscorrected int    `json:"miscorrected"`
	Failures     int    `json:"failures"`
}

func NewSweepCommand() *cobra.Command {
	var (
		nsym     int
		errs     int
		samples  int
		workers  int
		seed     int64
		useStdin bool
		isHex    bool
	)

	cmd := &cobra.Command{
		Use:   "sweep [message]",
		Short: "Corrupt a codeword many ways and check every decode",
		Long: `Encode a message, corrupt the codeword in many ways and decode each
variant concurrently.

With --errors 1 (the default) every bit of every byte is flipped once. With
more errors per trial, --samples random patterns are drawn. Patterns within
the correction capacity must always be recovered; beyond it the decoder
should report the codeword as uncorrectable.`,
		Example: `  # Flip every bit of every byte of the "Hello" codeword
  rscodec sweep -n 4 Hello

  # 5000 random patterns of 3 byte errors, beyond what nsym 4 can fix
  rscodec sweep -n 4 --errors 3 --samples 5000 Hello`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := cm.GetConfig()
			if !cmd.Flags().Changed("nsym") {
				nsym = cfg.Defaults.Nsym
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Sweep.Workers
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Sweep.Seed
			}
			if !cmd.Flags().Changed("samples") && errs > 1 {
				samples = cfg.Sweep.Samples
			}

			message, err := readMessage(cmd, args, useStdin, isHex)
			if err != nil {
				return fmt.Errorf("failed to read message: %w", err)
			}
			if err := validation.ValidateMessageLength(len(message), nsym); err != nil {
				return err
			}

			opts := sweep.Options{
				Nsym:    nsym,
				Errors:  errs,
				Samples: samples,
				Workers: workers,
				Seed:    seed,
			}

			if cfg.UI.ProgressBar && !jsonOutput(cmd) {
				trials, err := sweep.Trials(len(message)+nsym, opts)
				if err != nil {
					return err
				}
				bar := progressbar.NewOptions(len(trials),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("decoding"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				opts.Progress = func() { _ = bar.Add(1) }
				defer bar.Finish()
			}

			report, err := sweep.Run(cmd.Context(), message, opts)
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}
			slog.Debug("Sweep finished", "trials", report.Trials, "failures", len(report.Failures))

			result := SweepResult{
				Codeword:     hex.EncodeToString(report.Codeword),
				Nsym:         report.Nsym,
				Errors:       report.Errors,
				Capacity:     rs.Capacity(report.Nsym),
				Trials:       report.Trials,
				Recovered:    report.Recovered,
				Detected:     report.Detected,
				Miscorrected: report.Miscorrected,
				Failures:     len(report.Failures),
			}

			if jsonOutput(cmd) {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				outputSweepText(cmd, result)
			}

			if len(report.Failures) > 0 {
				return fmt.Errorf("%d correctable patterns were not recovered", len(report.Failures))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&nsym, "nsym", "n", 4, "Number of parity symbols")
	cmd.Flags().IntVarP(&errs, "errors", "e", 1, "Corrupted bytes per trial")
	cmd.Flags().IntVar(&samples, "samples", 0, "Random trials to run (0 with --errors 1 flips every bit)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Concurrent decoders")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Seed for random corruption patterns")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read message from stdin")
	cmd.Flags().BoolVar(&isHex, "hex", false, "Message is given as hex bytes")

	return cmd
}

func outputSweepText(cmd *cobra.Command, r SweepResult) {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	yellow.Fprintln(w, "=== CORRUPTION SWEEP ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Codeword:        %s\n", r.Codeword)
	fmt.Fprintf(w, "Errors/trial:    %d (capacity %d)\n", r.Errors, r.Capacity)
	fmt.Fprintf(w, "Trials:          %d\n", r.Trials)
	green.Fprintf(w, "Recovered:       %d\n", r.Recovered)
	cyan.Fprintf(w, "Detected:        %d\n", r.Detected)
	if r.Miscorrected > 0 {
		red.Fprintf(w, "Miscorrected:    %d\n", r.Miscorrected)
	} else {
		fmt.Fprintf(w, "Miscorrected:    %d\n", r.Miscorrected)
	}

	fmt.Fprintln(w)
	if r.Failures > 0 {
		red.Fprintf(w, "✗ %d patterns within capacity were not recovered\n", r.Failures)
	} else if r.Errors <= r.Capacity {
		green.Fprintln(w, "✓ Every pattern within capacity was recovered")
	}
}
