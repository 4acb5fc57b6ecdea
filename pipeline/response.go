package pipeline

import (
	"time"

	"github.com/poiesic/knograph/core"
)

// EntityView is the outward shape of one extracted entity.
type EntityView struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Confidence float64           `json:"confidence"`
}

// RelationView is the outward shape of one extracted relation.
type RelationView struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// EntityLists segments entities by type.
type EntityLists struct {
	Persons []EntityView `json:"persons"`
	Works   []EntityView `json:"works"`
	Events  []EntityView `json:"events"`
}

// Data is the payload of a successful extraction response.
type Data struct {
	Entities  EntityLists    `json:"entities"`
	Relations []RelationView `json:"relations"`
}

// Metadata carries processing information alongside the data.
// Confidence is nil when there is nothing to average over.
type Metadata struct {
	RequestId      string   `json:"request_id"`
	ProcessingTime string   `json:"processing_time"`
	Confidence     *float64 `json:"confidence,omitempty"`
	CacheHit       bool     `json:"cache_hit"`
	TrustTier      string   `json:"trust_tier,omitempty"`
}

// Response is the outward result of one operation.
type Response struct {
	Success   bool      `json:"success"`
	Data      *Data     `json:"data,omitempty"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// failureResponse builds a success:false response with a cause category
// and no partial data.
func failureResponse(category string) *Response {
	return &Response{
		Success:   false,
		Error:     category,
		Timestamp: time.Now().UTC(),
	}
}

// tierName maps a trust tier to its outward label.
func tierName(tier core.TrustTier) string {
	if tier == core.TrustTierFallback {
		return "fallback"
	}
	return "provider"
}
