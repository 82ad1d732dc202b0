package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntity(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		wantErr    bool
	}{
		{"zero confidence", 0, false},
		{"full confidence", 1, false},
		{"mid confidence", 0.42, false},
		{"negative confidence", -0.01, true},
		{"confidence above one", 1.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEntity(EntityOrganization, "Acme Corp", tt.confidence, "doc-1")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, EntityOrganization, e.Type)
			assert.Equal(t, "Acme Corp", e.Value)
			assert.Equal(t, tt.confidence, e.Confidence)
			assert.Equal(t, "doc-1", e.SourceDocID)
		})
	}
}
