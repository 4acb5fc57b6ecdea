// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gateway

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrOverloaded indicates the call queue is full and the request was
	// refused without being attempted.
	ErrOverloaded = errors.New("gateway overloaded")

	// ErrExtractionFailed indicates that all attempts, including the
	// fallback if enabled, failed.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrExtractorRequired indicates that no primary extractor was provided.
	ErrExtractorRequired = errors.New("extractor is required")
)

// TransientError marks an error as retryable.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// PermanentError marks an error as not retryable.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent: %v", e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// isTransient reports whether an attempt error is worth retrying.
// Explicit markers win; an attempt timeout is transient; a canceled
// caller context is not. Unclassified provider errors are treated as
// transient since transport hiccups dominate in practice.
func isTransient(err error) bool {
	var transient *TransientError
	if errors.As(err, &transient) {
		return true
	}
	var permanent *PermanentError
	if errors.As(err, &permanent) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
