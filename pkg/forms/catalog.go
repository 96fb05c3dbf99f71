package forms

import (
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
)

// Catalog indexes definitions by form type.
type Catalog struct {
	defs  map[domain.FormType]*Definition
	order []domain.FormType
}

// NewCatalog registers definitions in order. A later definition of the same type wins.
func NewCatalog(defs ...*Definition) *Catalog {
	c := &Catalog{defs: make(map[domain.FormType]*Definition, len(defs))}
	for _, d := range defs {
		if _, exists := c.defs[d.Type]; !exists {
			c.order = append(c.order, d.Type)
		}
		c.defs[d.Type] = d
	}
	return c
}

// Lookup returns the definition of t or an error wrapping domain.ErrUnknownFormType.
func (c *Catalog) Lookup(t domain.FormType) (*Definition, error) {
	d, ok := c.defs[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormType, t)
	}
	return d, nil
}

// Types returns the registered form types in registration order.
func (c *Catalog) Types() []domain.FormType {
	return append([]domain.FormType(nil), c.order...)
}

// Definitions returns the registered definitions in registration order.
func (c *Catalog) Definitions() []*Definition {
	out := make([]*Definition, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.defs[t])
	}
	return out
}
