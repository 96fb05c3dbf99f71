package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/intake/internal/presentation/tui"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/spf13/cobra"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the registered application forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, def := range catalog.Default().Definitions() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s (%d steps)\n", def.Type, def.Title, def.Registry.Len())
		}
		return nil
	},
}

var formsShowCmd = &cobra.Command{
	Use:   "show <form-type>",
	Short: "Print the steps and field rules of a form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := catalog.Default().Lookup(domain.FormType(args[0]))
		if err != nil {
			return err
		}
		rendered, err := tui.NewRenderer(100)(formMarkdown(def))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formsCmd)
	formsCmd.AddCommand(formsShowCmd)
}

func formMarkdown(def *forms.Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", def.Title)
	for i, step := range def.Registry.Steps() {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, step.Name)
		section, ok := def.Section(step.Section)
		if !ok {
			b.WriteString("Confirmation.\n\n")
			continue
		}
		if section.Kind == schema.KindList {
			fmt.Fprintf(&b, "Repeatable, %d to %d entries.\n\n", section.MinItems, section.MaxItems)
		}
		b.WriteString("| Path | Label | Kind | Required |\n|---|---|---|---|\n")
		writeFieldRows(&b, section.Key, section.Fields)
		b.WriteString("\n")
	}
	return b.String()
}

func writeFieldRows(b *strings.Builder, prefix string, fields []schema.Field) {
	for _, f := range fields {
		path := domain.JoinPath(prefix, f.Key)
		if f.Kind == schema.KindObject {
			writeFieldRows(b, path, f.Fields)
			continue
		}
		kind := f.Kind.String()
		if len(f.Options) > 0 {
			kind += ": " + strings.Join(f.Options, ", ")
		}
		required := ""
		if f.Required {
			required = "yes"
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", path, f.Label, kind, required)
	}
}
