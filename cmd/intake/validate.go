package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errInvalidFiles = errors.New("one or more applications are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check application files against the form rules",
	Long: `Reads YAML or JSON applications shaped like the submit-form body
({formType, data}) and reports every rule violation by path.
With --submit, valid applications are delivered with the configured driver.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("submit", false, "Deliver valid applications")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	submit, _ := cmd.Flags().GetBool("submit")
	cat := catalog.Default()

	failed := false
	for _, path := range args {
		sub, err := forms.LoadFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed = true
			continue
		}
		def, err := cat.Lookup(sub.FormType)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed = true
			continue
		}

		if _, err := schema.ValidateDocument(def.Schema, sub.Data); err != nil {
			failed = true
			errs := schema.ToErrorMap(err)
			fmt.Fprintf(out, "%s: %d problem(s)\n", path, len(errs))
			for _, p := range errs.Paths() {
				fmt.Fprintf(out, "  - %s: %s\n", p, errs[p])
			}
			continue
		}
		fmt.Fprintf(out, "%s: valid %s application ✅\n", path, def.Type)

		if submit {
			if err := submitFile(cmd, cat, sub); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(out, "%s: delivered\n", path)
		}
	}

	if failed {
		return errInvalidFiles
	}
	return nil
}

// submitFile runs a loaded application through the engine so hooks fire as for
// any other submission.
func submitFile(cmd *cobra.Command, cat *forms.Catalog, sub *forms.Submission) error {
	ctx := cmd.Context()
	deliverer, err := newDeliverer(cat)
	if err != nil {
		return err
	}
	eng, err := newEngine(cat, sub.FormType, deliverer)
	if err != nil {
		return err
	}

	state := eng.Start(ctx, uuid.NewString())
	for _, section := range eng.Definition().Registry.Sections() {
		value, ok := sub.Data[section]
		if !ok {
			continue
		}
		if state, _, err = eng.Update(ctx, state, section, value); err != nil {
			return err
		}
	}

	_, res, err := eng.Submit(ctx, state)
	if err != nil {
		return err
	}
	switch res.Outcome {
	case domain.OutcomeDelivered:
		return nil
	case domain.OutcomeValidationFailed:
		return fmt.Errorf("validation failed: %d problem(s)", len(res.Errors))
	default:
		return res.Err
	}
}
