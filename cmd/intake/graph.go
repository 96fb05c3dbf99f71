package main

import (
	"fmt"

	"github.com/aretw0/intake/internal/presentation/graph"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <form-type>",
	Short: "Export the wizard steps as a Mermaid flowchart",
	Long:  `Outputs a Mermaid diagram of the steps of a form. With --session, the session's position is highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := catalog.Default().Lookup(domain.FormType(args[0]))
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if id, _ := cmd.Flags().GetString("session"); id != "" {
			st, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			state, err := st.store.Load(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("load session %s: %w", id, err)
			}
			overlay = &graph.Overlay{Current: state.StepIndex, Submitted: state.IsSubmitted()}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(def.Registry, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the position of a saved session")
}
