// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mverr defines the error kinds surfaced by the model builder and
// its collaborators.
package mverr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure raised by the core.
type Kind int

// Error kinds recognized by this module.
const (
	// KindDescriptorAbsent means the requested descriptor could not be
	// located or downloaded.
	KindDescriptorAbsent Kind = iota
	// KindDescriptorMalformed means the XML failed to parse or is missing
	// required identity fields.
	KindDescriptorMalformed
	// KindParentCycle means the parent chain revisits a (g, a, v) triple.
	KindParentCycle
	// KindInterpolationCycle means a property expansion revisits a name on
	// its own expansion stack.
	KindInterpolationCycle
	// KindUnresolvedVersion means a direct dependency has no version after
	// Phase G.
	KindUnresolvedVersion
	// KindImportFailure means a BOM import's own build raised one of the
	// other kinds.
	KindImportFailure
	// KindSnapshotUnsupported means a download was requested for a
	// non-timestamp-locked snapshot.
	KindSnapshotUnsupported
	// KindDownloadFailed means every configured remote declined the
	// request.
	KindDownloadFailed
)

func (k Kind) String() string {
	switch k {
	case KindDescriptorAbsent:
		return "descriptor-absent"
	case KindDescriptorMalformed:
		return "descriptor-malformed"
	case KindParentCycle:
		return "parent-cycle"
	case KindInterpolationCycle:
		return "interpolation-cycle"
	case KindUnresolvedVersion:
		return "unresolved-version"
	case KindImportFailure:
		return "import-failure"
	case KindSnapshotUnsupported:
		return "snapshot-unsupported"
	case KindDownloadFailed:
		return "download-failed"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the core for the kinds above. It
// always names the offending coordinate.
type Error struct {
	Kind       Kind
	Coordinate string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Coordinate, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Coordinate)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error for the given kind and coordinate, optionally
// wrapping a cause.
func New(kind Kind, coordinate string, cause error) *Error {
	return &Error{Kind: kind, Coordinate: coordinate, Err: cause}
}

// Is reports whether err is an *Error of the given kind, following wrapped
// causes along the way (so an import-failure wrapping an unresolved-version
// is both).
func Is(err error, kind Kind) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Kind == kind {
			return true
		}
		if e.Err == nil {
			return false
		}
		err = e.Err
	}
	return false
}
