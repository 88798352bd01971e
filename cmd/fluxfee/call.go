package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var errActionFailed = errors.New("action returned an error result")

var callCmd = &cobra.Command{
	Use:   "call <action> [input]",
	Short: "Run one action and print its JSON result",
	Long: `Runs an action once against the configured network.

The input is the action's JSON text. When it is omitted or "-", it is read from stdin.
The JSON result goes to stdout unchanged; a status line goes to stderr.
The command exits non-zero when the result status is "error".`,
	Example: `  fluxfee call solana_submit_fee_claim '{"payer":"9Wz...","mint":"EPj...","priorityFee":5000}'
  cat quote.json | fluxfee call solana_submit_fee_payment`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		out, err := rt.toolkit.Invoke(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)

		result, err := domain.ParseResult(out)
		if err != nil {
			return fmt.Errorf("unreadable action result: %w", err)
		}
		printStatus(cmd.ErrOrStderr(), result)
		if !result.IsSuccess() {
			cmd.SilenceErrors = true
			return errActionFailed
		}
		return nil
	},
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 1 && args[1] != "-" {
		return args[1], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// printStatus writes a one-line summary, coloured when w is a terminal.
func printStatus(w io.Writer, result domain.ActionResult) {
	out := termenv.NewOutput(w)
	if result.IsSuccess() {
		mark := out.String("✔", string(result.Status)).Foreground(out.Color("#22c55e")).Bold()
		fmt.Fprintf(w, "%s %s\n", mark, result.Transaction)
		return
	}
	mark := out.String("✘", result.Code).Foreground(out.Color("#ef4444")).Bold()
	fmt.Fprintf(w, "%s %s\n", mark, result.Message)
}

func init() {
	rootCmd.AddCommand(callCmd)
}
