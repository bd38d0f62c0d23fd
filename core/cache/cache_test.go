package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NotConfigured(t *testing.T) {
	c, err := New(Config{URL: ""})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNew_InvalidURL(t *testing.T) {
	c, err := New(Config{URL: "://not-a-url"})
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestNew_Unreachable(t *testing.T) {
	// Nothing listens here; the startup ping must fail cleanly.
	c, err := New(Config{URL: "redis://localhost:9/0", DialTimeoutSeconds: 1})
	require.Error(t, err)
	assert.Nil(t, c)
}
