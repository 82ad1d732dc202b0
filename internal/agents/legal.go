package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driving"
	"github.com/futureready-labs/futureready-kb/internal/logger"
)

// Ensure LegalAgent implements the interface.
var _ driving.Agent = (*LegalAgent)(nil)

const (
	// legalDepartment scopes every retrieval the agent performs.
	legalDepartment = "legal"

	// queryLimit bounds retrieval for question answering.
	queryLimit = 10

	// policyWindowDays is the lookback for new policy documents.
	policyWindowDays = 30

	// expiryWindowDays is the horizon for contract expiry warnings.
	expiryWindowDays = 60

	// contractScanLimit bounds the expiry scan.
	contractScanLimit = 1000
)

// policyTags label documents the policy monitor watches.
var policyTags = []string{"policy", "regulation", "law"}

// LegalAgent answers legal questions and watches for contract and
// policy risk. The LLM is optional: without one, answers fall back to
// a retrieval listing.
type LegalAgent struct {
	kb     driving.KnowledgeBaseService
	llm    driven.LLMService
	alerts driven.AlertStore

	// now is injectable for tests.
	now func() time.Time
}

// NewLegalAgent creates a legal agent. llm may be nil.
func NewLegalAgent(kb driving.KnowledgeBaseService, llm driven.LLMService) *LegalAgent {
	return &LegalAgent{
		kb:  kb,
		llm: llm,
		now: time.Now,
	}
}

// SetAlertStore enables alert persistence. Without a store, Monitor
// still returns alerts but nothing survives the process.
func (a *LegalAgent) SetAlertStore(store driven.AlertStore) {
	a.alerts = store
}

// Query answers a legal question from department-scoped retrieval.
func (a *LegalAgent) Query(ctx context.Context, question string, opts driving.QueryOptions) (*domain.AgentResponse, error) {
	logger.Section("Legal Query")
	logger.Debug("Question: %s", question)

	query := domain.NewSearchQuery(question)
	query.Department = legalDepartment
	query.Limit = queryLimit
	query.DateRange = opts.DateRange

	results, err := a.kb.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search legal documents: %w", err)
	}

	if len(results) == 0 {
		return &domain.AgentResponse{
			Answer:     "抱歉，在法务知识库中没有找到相关文档。",
			Sources:    []string{},
			Confidence: 0.0,
			Timestamp:  a.now(),
		}, nil
	}

	docs := make([]domain.Document, len(results))
	for i := range results {
		docs[i] = results[i].Document
	}

	if a.llm == nil {
		return &domain.AgentResponse{
			Answer:     buildBasicAnswer(results),
			Sources:    documentIDs(results),
			Confidence: 0.6,
			Timestamp:  a.now(),
		}, nil
	}

	gen, err := a.llm.Generate(ctx, buildLegalPrompt(question, docs), driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	confidence := gen.Confidence
	if confidence == 0 {
		confidence = 0.8
	}

	return &domain.AgentResponse{
		Answer:     gen.Text,
		Sources:    documentIDs(results),
		Confidence: confidence,
		ReasoningTrace: []string{
			fmt.Sprintf("检索到 %d 份相关法务文档", len(docs)),
			fmt.Sprintf("使用 %s 模型进行分析", a.llm.ModelName()),
		},
		Timestamp: a.now(),
	}, nil
}

// Monitor checks for recent policy changes and contracts approaching
// expiry. Alerts are persisted when an alert store is configured.
func (a *LegalAgent) Monitor(ctx context.Context) ([]domain.Alert, error) {
	logger.Section("Legal Monitor")

	var alerts []domain.Alert

	policyAlert, err := a.monitorPolicyChanges(ctx)
	if err != nil {
		return nil, err
	}
	if policyAlert != nil {
		alerts = append(alerts, *policyAlert)
	}

	expiryAlert, err := a.monitorContractExpiry(ctx)
	if err != nil {
		return nil, err
	}
	if expiryAlert != nil {
		alerts = append(alerts, *expiryAlert)
	}

	if a.alerts != nil {
		for i := range alerts {
			if err := a.alerts.Save(ctx, &alerts[i]); err != nil {
				return nil, fmt.Errorf("persist alert: %w", err)
			}
		}
	}

	logger.Info("Raised %d alerts", len(alerts))
	return alerts, nil
}

// monitorPolicyChanges flags policy documents uploaded in the last 30
// days for review against existing contracts.
func (a *LegalAgent) monitorPolicyChanges(ctx context.Context) (*domain.Alert, error) {
	now := a.now()

	query := domain.NewSearchQuery("")
	query.Department = legalDepartment
	query.Tags = policyTags
	query.DateRange = &domain.DateRange{
		Start: now.AddDate(0, 0, -policyWindowDays),
		End:   now,
	}
	query.Limit = 50

	recent, err := a.kb.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan recent policies: %w", err)
	}
	if len(recent) == 0 {
		return nil, nil
	}

	return &domain.Alert{
		ID:       uuid.New().String(),
		Type:     "policy_update",
		Severity: domain.SeverityMedium,
		Message: fmt.Sprintf("最近%d天内上传了 %d 份新的政策文件，建议审查是否影响现有合同和流程。",
			policyWindowDays, len(recent)),
		AffectedDocIDs: documentIDs(recent),
		Metadata: map[string]any{
			"policy_count": len(recent),
			"period":       fmt.Sprintf("last_%d_days", policyWindowDays),
		},
		CreatedAt: now,
	}, nil
}

// monitorContractExpiry flags contracts whose expiry date falls within
// the next 60 days.
func (a *LegalAgent) monitorContractExpiry(ctx context.Context) (*domain.Alert, error) {
	now := a.now()

	query := domain.NewSearchQuery("")
	query.Department = legalDepartment
	query.Tags = []string{"contract"}
	query.Limit = contractScanLimit

	contracts, err := a.kb.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan contracts: %w", err)
	}

	horizon := now.AddDate(0, 0, expiryWindowDays)
	var expiring []string
	for _, result := range contracts {
		expiry := result.Document.Metadata.ExpiryDate
		if expiry == nil {
			continue
		}
		if !expiry.Before(now) && !expiry.After(horizon) {
			expiring = append(expiring, result.Document.ID)
		}
	}
	if len(expiring) == 0 {
		return nil, nil
	}

	return &domain.Alert{
		ID:       uuid.New().String(),
		Type:     "contract_expiry",
		Severity: domain.SeverityHigh,
		Message: fmt.Sprintf("有 %d 份合同将在未来%d天内到期，请及时处理续约或终止事宜。",
			len(expiring), expiryWindowDays),
		AffectedDocIDs: expiring,
		Metadata: map[string]any{
			"expiring_count": len(expiring),
			"period_days":    expiryWindowDays,
		},
		CreatedAt: now,
	}, nil
}

// buildLegalPrompt renders the legal advisory prompt.
func buildLegalPrompt(question string, docs []domain.Document) string {
	var b strings.Builder
	b.WriteString("你是一位专业的企业法务顾问。基于以下法务文档回答问题。\n\n")
	b.WriteString(formatDocuments(docs))
	fmt.Fprintf(&b, "\n用户问题: %s\n\n", question)
	b.WriteString("请提供专业的法务建议，注意:\n")
	b.WriteString("1. 明确指出法律依据和相关文档\n")
	b.WriteString("2. 如果涉及风险，请明确说明风险等级\n")
	b.WriteString("3. 如果需要进一步法律审查，请明确建议\n")
	b.WriteString("4. 使用专业但易懂的语言\n\n")
	b.WriteString("答案:\n")
	return b.String()
}

// buildBasicAnswer renders a retrieval listing when no LLM is
// configured.
func buildBasicAnswer(results []domain.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "在法务知识库中找到 %d 份相关文档:\n\n", len(results))

	shown := results
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, result := range shown {
		meta := result.Document.Metadata
		fmt.Fprintf(&b, "%d. %s (上传时间: %s)\n",
			i+1, meta.BusinessContext, meta.UploadTime.Format("2006-01-02"))
	}
	if len(results) > 5 {
		fmt.Fprintf(&b, "\n... 以及其他 %d 份文档", len(results)-5)
	}
	return b.String()
}
