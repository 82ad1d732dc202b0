package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p := New()

	out, err := p.Parse(context.Background(), []byte("plain text body"))
	require.NoError(t, err)
	assert.Equal(t, "plain text body", out)
}

func TestParseDropsInvalidUTF8(t *testing.T) {
	p := New()

	out, err := p.Parse(context.Background(), []byte{'o', 'k', 0xff, '!'})
	require.NoError(t, err)
	assert.Equal(t, "ok!", out)
}

func TestParseCJK(t *testing.T) {
	p := New()

	out, err := p.Parse(context.Background(), []byte("本合同自签署之日起生效。"))
	require.NoError(t, err)
	assert.Equal(t, "本合同自签署之日起生效。", out)
}
