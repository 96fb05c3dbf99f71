package forms

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Submission is a complete application as exchanged with hosts:
// the same shape the submit-form endpoint accepts.
type Submission struct {
	FormType domain.FormType `yaml:"formType" json:"formType"`
	Data     domain.Document `yaml:"data" json:"data"`
}

// Decode reads a YAML or JSON submission.
func Decode(r io.Reader) (*Submission, error) {
	var raw struct {
		FormType string         `yaml:"formType"`
		Data     map[string]any `yaml:"data"`
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty submission")
		}
		return nil, fmt.Errorf("failed to decode submission: %w", err)
	}
	if raw.FormType == "" {
		return nil, fmt.Errorf("submission is missing formType")
	}
	return &Submission{
		FormType: domain.FormType(raw.FormType),
		Data:     domain.Document(normalizeYAML(raw.Data).(map[string]any)),
	}, nil
}

// LoadFile reads a submission from a YAML or JSON file.
func LoadFile(path string) (*Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sub, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sub, nil
}

// normalizeYAML converts yaml.v3 decode shapes to the document shapes the schema expects.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if inner == nil {
				continue
			}
			out[k] = normalizeYAML(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalizeYAML(inner)
		}
		return out
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	default:
		return v
	}
}
