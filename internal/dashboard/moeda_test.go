package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
	assert.Equal(t, "R$ 10,50", FormatBRL(10.5))
	assert.Equal(t, "R$ 1.234,50", FormatBRL(1234.5))
}
