package catalog_test

import (
	"testing"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, []domain.FormType{domain.FormAuto, domain.FormProperty}, c.Types())
}
