package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A raw upload without the flag must never delete existing rows.
func TestClearRangeParamOptIn(t *testing.T) {
	assert.False(t, clearRangeParam(""))
	assert.False(t, clearRangeParam("false"))
	assert.False(t, clearRangeParam("1"))
	assert.True(t, clearRangeParam("true"))
}
