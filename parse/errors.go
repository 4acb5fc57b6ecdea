package parse

import "errors"

var (
	// ErrMalformedPayload indicates the extraction payload is not a
	// well-formed structured result. The caller treats this as an
	// extraction failure, distinct from "parsed but empty".
	ErrMalformedPayload = errors.New("malformed extraction payload")

	// ErrMissingEntities indicates the mandatory entities container is
	// absent from the payload.
	ErrMissingEntities = errors.New("payload is missing the entities container")
)
