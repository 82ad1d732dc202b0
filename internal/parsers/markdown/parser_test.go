package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p := New()

	input := "# Contract Policy\n\nAll **renewals** require [approval](https://example.com).\n\n- ninety days notice\n- written form\n"
	out, err := p.Parse(context.Background(), []byte(input))
	require.NoError(t, err)

	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "https://example.com")
	assert.Contains(t, out, "Contract Policy")
	assert.Contains(t, out, "All renewals require approval.")
	assert.Contains(t, out, "ninety days notice")
}

func TestParseStripsCodeBlocks(t *testing.T) {
	p := New()

	input := "before\n\n```\nsecret()\n```\n\nafter `inline` end"
	out, err := p.Parse(context.Background(), []byte(input))
	require.NoError(t, err)

	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "inline")
	assert.Contains(t, out, "before")
	assert.Contains(t, out, "after")
}
