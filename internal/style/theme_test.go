package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init(false)
	assert.False(t, Enabled)

	Init(true)
	assert.True(t, Enabled)
}

func TestErrorLine_NoColor(t *testing.T) {
	Init(false)
	defer Init(true)

	assert.Equal(t, "Error: boom", ErrorLine("boom"))
}

func TestHint_NoColor(t *testing.T) {
	Init(false)
	defer Init(true)

	assert.Equal(t, "→ check login", Hint("check login"))
}

func TestUsageTemplate(t *testing.T) {
	Init(false)
	assert.Empty(t, UsageTemplate())

	Init(true)
	tpl := UsageTemplate()
	assert.Contains(t, tpl, "{{.UseLine}}")
	assert.Contains(t, tpl, "Global Flags")
}
