package domain

import (
	"fmt"
	"time"
)

// EntityType classifies an extracted mention.
type EntityType string

// Supported entity types.
const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityPolicy       EntityType = "policy"
	EntityDate         EntityType = "date"
	EntityMoney        EntityType = "money"
	EntityLocation     EntityType = "location"
	EntityLegalTerm    EntityType = "legal_term"
	EntityCustom       EntityType = "custom"
)

// Entity is a mention extracted from a document. Extraction itself is
// performed by an external collaborator; the store only records results.
type Entity struct {
	Type        EntityType
	Value       string
	Confidence  float64
	SourceDocID string

	// Context is the surrounding text the mention appeared in.
	Context string
}

// NewEntity constructs an entity, enforcing the confidence range.
func NewEntity(t EntityType, value string, confidence float64, sourceDocID string) (*Entity, error) {
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: entity confidence %v outside [0,1]", ErrValidation, confidence)
	}
	return &Entity{
		Type:        t,
		Value:       value,
		Confidence:  confidence,
		SourceDocID: sourceDocID,
	}, nil
}

// RelationType classifies a directed edge between two documents.
type RelationType string

// Supported relation types.
const (
	RelationReferences  RelationType = "references"
	RelationSupersedes  RelationType = "supersedes"
	RelationContradicts RelationType = "contradicts"
	RelationSupplements RelationType = "supplements"
	RelationRelatesTo   RelationType = "relates_to"
)

// DocumentRelation is a directed edge between two documents.
// Modelled for the future relationship graph; no component consumes
// relations yet.
type DocumentRelation struct {
	SourceDocID string
	TargetDocID string
	Type        RelationType
	Confidence  float64
	Description string
	CreatedAt   time.Time
}
