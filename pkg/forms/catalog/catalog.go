// Package catalog wires the built-in form families.
package catalog

import (
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/forms/auto"
	"github.com/aretw0/intake/pkg/forms/property"
)

// Default returns a catalog holding the auto and property applications.
func Default() *forms.Catalog {
	return forms.NewCatalog(auto.Definition(), property.Definition())
}
