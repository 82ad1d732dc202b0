package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    DocumentMetadata
		wantErr error
	}{
		{
			name: "valid metadata",
			meta: DocumentMetadata{
				UploaderID:      "legal@example.com",
				BusinessContext: "key customer contract, joint liability clauses",
			},
		},
		{
			name: "valid CJK context counted in runes",
			meta: DocumentMetadata{
				UploaderID:      "legal@example.com",
				BusinessContext: "合同管理规范与续约审批流程说明",
			},
		},
		{
			name: "context too short",
			meta: DocumentMetadata{
				UploaderID:      "legal@example.com",
				BusinessContext: "short",
			},
			wantErr: ErrValidation,
		},
		{
			name: "context is only whitespace padding",
			meta: DocumentMetadata{
				UploaderID:      "legal@example.com",
				BusinessContext: "   hi    \t\n   ",
			},
			wantErr: ErrValidation,
		},
		{
			name: "empty context",
			meta: DocumentMetadata{
				UploaderID: "legal@example.com",
			},
			wantErr: ErrValidation,
		},
		{
			name: "uploader without @",
			meta: DocumentMetadata{
				UploaderID:      "not-an-email",
				BusinessContext: "retention required by the 2025 records policy",
			},
			wantErr: ErrValidation,
		},
		{
			name: "empty uploader",
			meta: DocumentMetadata{
				BusinessContext: "retention required by the 2025 records policy",
			},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClassifyFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     DocumentType
	}{
		{"report.pdf", TypePDF},
		{"REPORT.PDF", TypePDF},
		{"contract.docx", TypeDOCX},
		{"old-contract.doc", TypeDOCX},
		{"budget.xlsx", TypeXLSX},
		{"budget.XLS", TypeXLSX},
		{"notes.txt", TypeTXT},
		{"page.html", TypeHTML},
		{"page.htm", TypeHTML},
		{"readme.md", TypeMarkdown},
		{"archive.tar.gz", TypeTXT},
		{"noextension", TypeTXT},
		{"weird.xyz", TypeTXT},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFilename(tt.filename))
		})
	}
}

func TestMetadataUpdateIsEmpty(t *testing.T) {
	assert.True(t, MetadataUpdate{}.IsEmpty())

	ctx := "a longer replacement business context"
	assert.False(t, MetadataUpdate{BusinessContext: &ctx}.IsEmpty())

	tags := []string{"contract"}
	assert.False(t, MetadataUpdate{Tags: &tags}.IsEmpty())
}

func TestDateRangeContains(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	r := DateRange{Start: start, End: end}

	assert.True(t, r.Contains(start), "range is inclusive of start")
	assert.True(t, r.Contains(end), "range is inclusive of end")
	assert.True(t, r.Contains(start.AddDate(0, 0, 15)))
	assert.False(t, r.Contains(start.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(end.Add(time.Nanosecond)))
}
