package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
)

func titleMarkdown(def *forms.Definition) string {
	return "# " + def.Title + "\n"
}

func stepMarkdown(p domain.Progress) string {
	return fmt.Sprintf("## Step %d of %d: %s\n\n_%d%% complete_\n", p.Step, p.Of, p.Name, p.Percent)
}

func errorsMarkdown(def *forms.Definition, errs domain.ErrorMap) string {
	var b strings.Builder
	b.WriteString("**Please fix the following:**\n\n")
	for _, path := range errs.Paths() {
		label := path
		if f, ok := def.Schema.FieldAt(path); ok && f.Label != "" {
			label = f.Label
		}
		fmt.Fprintf(&b, "- %s (`%s`): %s\n", label, path, errs[path])
	}
	return b.String()
}

func deliveryFailedMarkdown(err error) string {
	return fmt.Sprintf("**Submission failed:** %v\n\nYour answers were kept. Choose %s to try again.\n", err, ChoiceSubmit)
}

func summaryMarkdown(def *forms.Definition, state *domain.State) string {
	step, _ := def.Registry.StepAt(def.Registry.Len() - 1)
	greeting := "Thank you!"
	if name := def.ApplicantName(state.Document); name != "" {
		greeting = fmt.Sprintf("Thank you, %s!", name)
	}
	return fmt.Sprintf("## %s\n\n%s Your %s has been submitted.\n", step.Name, greeting, strings.ToLower(def.Title))
}
