package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemeOfHidesPayload(t *testing.T) {
	assert.Equal(t, "mailto: link", schemeOf("mailto:a@b.c?subject=x&body=secret"))
	assert.Equal(t, "link", schemeOf("no-scheme"))
}
