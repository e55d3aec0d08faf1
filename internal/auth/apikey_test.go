package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	a := NewAPIKeyAuth([]string{"alpha", "beta", ""})

	assert.True(t, a.Enabled())
	assert.True(t, a.IsValidKey("alpha"))
	assert.False(t, a.IsValidKey("gamma"))
	assert.False(t, a.IsValidKey(""))

	a.AddKey("gamma")
	assert.True(t, a.IsValidKey("gamma"))

	a.RemoveKey("alpha")
	assert.False(t, a.IsValidKey("alpha"))
}

func TestAPIKeyAuthDisabledWhenEmpty(t *testing.T) {
	assert.False(t, NewAPIKeyAuth(nil).Enabled())
}
