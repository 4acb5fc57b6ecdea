package ai

// Wire types for the structured extraction payload. Both the inference
// provider (instructed through its prompt schema) and the local fallback
// extractor produce JSON in this shape; the parse package decodes it.

// WireEntity is one extracted entity record on the wire.
// Only Name is mandatory; everything else is optional.
type WireEntity struct {
	Name       string            `json:"name"`
	Type       string            `json:"type,omitempty"`
	Confidence *float64          `json:"confidence,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// WireRelation is one extracted relation record on the wire.
// Endpoints reference entity names, not identifiers; disambiguation
// maps them to canonical ids later.
type WireRelation struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Type       string   `json:"type"`
	Confidence *float64 `json:"confidence,omitempty"`
	SourceInfo string   `json:"source_info,omitempty"`
}

// WireEntityLists groups entity records by their explicit type container.
type WireEntityLists struct {
	Persons []WireEntity `json:"persons"`
	Works   []WireEntity `json:"works"`
	Events  []WireEntity `json:"events"`
}

// Payload is the top-level extraction payload.
// The entities container is mandatory; a missing relations container is
// tolerated and treated as empty.
type Payload struct {
	Entities  *WireEntityLists `json:"entities"`
	Relations []WireRelation   `json:"relations"`
}
