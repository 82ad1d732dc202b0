// Package agents provides reasoning components layered on the
// knowledge base. Each agent serves one department: it composes its
// own search queries, renders answers, and raises monitoring alerts.
// Agents never touch storage directly.
package agents

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

// maxExcerptRunes bounds how much parsed text a prompt carries per
// document.
const maxExcerptRunes = 500

// formatDocuments renders retrieved documents for inclusion in a
// prompt.
func formatDocuments(docs []domain.Document) string {
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "[文档 %d]\n", i+1)
		fmt.Fprintf(&b, "标题: %s\n", doc.Metadata.BusinessContext)
		fmt.Fprintf(&b, "部门: %s\n", doc.Metadata.Department)
		fmt.Fprintf(&b, "上传时间: %s\n", doc.Metadata.UploadTime.Format("2006-01-02 15:04"))
		if doc.ParsedText != "" {
			fmt.Fprintf(&b, "内容摘要: %s\n", truncateRunes(doc.ParsedText, maxExcerptRunes))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// truncateRunes shortens text to at most n runes, appending an
// ellipsis when cut.
func truncateRunes(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// documentIDs collects the IDs of retrieved documents.
func documentIDs(results []domain.SearchResult) []string {
	ids := make([]string, len(results))
	for i := range results {
		ids[i] = results[i].Document.ID
	}
	return ids
}
