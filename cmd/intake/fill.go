package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/config"
	"github.com/aretw0/intake/internal/presentation/tui"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/aretw0/intake/pkg/runner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var fillCmd = &cobra.Command{
	Use:   "fill [auto|property]",
	Short: "Fill an application interactively",
	Long: `Walks an application step by step in the terminal and delivers it on submit.
With --session, a saved session is resumed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().String("session", "", "Resume a saved session")
	fillCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}

func runFill(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("fill needs an interactive terminal; use 'intake validate --submit' for files")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	st, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cat := catalog.Default()
	deliverer, err := newDeliverer(cat)
	if err != nil {
		return err
	}

	var wizard *intake.Wizard
	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID != "" {
		state, err := st.store.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load session %s: %w", sessionID, err)
		}
		eng, err := newEngine(cat, state.FormType, deliverer)
		if err != nil {
			return err
		}
		wizard = eng.Resume(state)
	} else {
		if len(args) == 0 {
			return fmt.Errorf("form type required: one of %v", cat.Types())
		}
		eng, err := newEngine(cat, domain.FormType(args[0]), deliverer)
		if err != nil {
			return err
		}
		wizard = eng.NewWizard(ctx, uuid.NewString())
	}

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		tui.PrintBanner(out, intake.Version)
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	r := runner.New(runner.NewSurveyPrompter(nil, nil),
		runner.WithOutput(out),
		runner.WithRenderer(tui.NewRenderer(width)),
		runner.WithStore(st.store),
		runner.WithLogger(logger),
	)
	state, err := r.Run(ctx, wizard)
	if errors.Is(err, runner.ErrAborted) {
		if cfg.Session.Store == config.StoreMemory {
			fmt.Fprintln(out, "\nAborted. The in-memory store does not keep progress.")
			return nil
		}
		fmt.Fprintf(out, "\nProgress saved. Resume with: intake fill --session %s\n", state.SessionID)
		return nil
	}
	return err
}
