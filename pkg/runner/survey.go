package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/aretw0/intake/pkg/schema"
)

// noneOption lets the user clear an optional enum.
const noneOption = "(none)"

// SurveyPrompter asks questions interactively with survey.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter returns a prompter bound to in and out; nil means the process stdio.
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter) *SurveyPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &SurveyPrompter{opts: []survey.AskOpt{survey.WithStdio(in, out, os.Stderr)}}
}

func (p *SurveyPrompter) Ask(q Question) (any, error) {
	help := ""
	if q.Required {
		help = "required"
	}

	switch q.Kind {
	case schema.KindBool:
		current, _ := q.Current.(bool)
		var out bool
		err := survey.AskOne(&survey.Confirm{Message: q.Label, Default: current, Help: help}, &out, p.opts...)
		return out, translateSurveyErr(err)

	case schema.KindEnum:
		options := q.Options
		if !q.Required {
			options = append([]string{noneOption}, options...)
		}
		prompt := &survey.Select{Message: q.Label, Options: options, Help: help}
		if current, ok := q.Current.(string); ok && indexOf(options, current) >= 0 {
			prompt.Default = current
		}
		var out string
		if err := survey.AskOne(prompt, &out, p.opts...); err != nil {
			return nil, translateSurveyErr(err)
		}
		if out == noneOption {
			return "", nil
		}
		return out, nil

	default:
		var out string
		prompt := &survey.Input{Message: q.Label, Default: currentText(q.Current), Help: help}
		if err := survey.AskOne(prompt, &out, p.opts...); err != nil {
			return nil, translateSurveyErr(err)
		}
		out = strings.TrimSpace(out)
		if q.Kind == schema.KindNumber && out != "" {
			if n, err := strconv.ParseFloat(out, 64); err == nil {
				return n, nil
			}
		}
		return out, nil
	}
}

func (p *SurveyPrompter) Choose(q Question) (string, error) {
	var out string
	prompt := &survey.Select{Message: q.Label, Options: q.Options}
	if len(q.Options) > 0 {
		prompt.Default = q.Options[0]
	}
	if err := survey.AskOne(prompt, &out, p.opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func currentText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
