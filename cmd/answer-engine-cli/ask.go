package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nietlabs/answer-engine/internal/app"
)

func newAskCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the engine a question",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := app.Build(cfg, logger)
			if err != nil {
				return fmt.Errorf("building engine: %w", err)
			}
			defer a.Close()

			sessionID := uuid.NewString()

			if !interactive {
				if len(args) == 0 {
					return fmt.Errorf("pass a question or use --interactive")
				}
				askOnce(cmd, a, strings.Join(args, " "), sessionID)
				return nil
			}

			color.New(color.FgCyan, color.Bold).Println("NIET Answer Engine. Type a question, or 'exit' to quit.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}
				askOnce(cmd, a, line, sessionID)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive session")
	return cmd
}

func askOnce(cmd *cobra.Command, a *app.App, question, sessionID string) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " thinking..."
	s.Start()
	answer := a.Engine.Answer(cmd.Context(), question, sessionID)
	s.Stop()

	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), answer.Text)
	for _, d := range answer.Details {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", d)
	}
	for _, act := range answer.Actions {
		if act.URL != "" {
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", act.Label, act.URL)
		} else {
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "  [%s]\n", act.Label)
		}
	}
}
