package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p := New()

	input := `<html><head><title>Policy</title><style>p{color:red}</style></head>
<body><h1>Renewal Policy</h1><p>All renewals require &amp; approval.</p>
<script>alert("x")</script></body></html>`

	out, err := p.Parse(context.Background(), []byte(input))
	require.NoError(t, err)

	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "color:red")
	assert.Contains(t, out, "Renewal Policy")
	assert.Contains(t, out, "All renewals require & approval.")
}

func TestParseBlockBoundaries(t *testing.T) {
	p := New()

	out, err := p.Parse(context.Background(), []byte("<p>first</p><p>second</p>"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", out)
}
