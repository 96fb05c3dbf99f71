package schema

import (
	"fmt"
)

// MarshalText serializes the kind by name, so field tables render readably in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("schema: unknown kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(data []byte) error {
	parsed, err := ParseKind(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name ("string", "enum", "list"...) to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind: %s", name)
}
