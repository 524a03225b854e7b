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

package maven

import (
	"fmt"
	"sort"
	"time"
)

// timestamp layouts recognized by Maven metadata documents: the compact deployed form and
// the dotted form used in snapshot filenames.
const (
	timestampCompact = "20060102150405"
	timestampDotted  = "20060102.150405"
)

// ParseTimestamp parses a Maven metadata lastUpdated value in either of the
// two grammars above.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampCompact, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(timestampDotted, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("maven: invalid timestamp %q", s)
}

// Metadata is a per-project maven-metadata.xml document.
type Metadata struct {
	Project     Project
	Latest      string
	Release     string
	Versions    []string
	LastUpdated string // raw string; use ParseTimestamp to get a time.Time
}

// ParseMetadataFile parses the maven-metadata.xml at path.
func ParseMetadataFile(path string) (*Metadata, error) {
	n, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMetadataNode(n)
}

// ParseMetadataString parses an in-memory maven-metadata.xml document.
func ParseMetadataString(s string) (*Metadata, error) {
	n, err := ParseString(s)
	if err != nil {
		return nil, err
	}
	return ParseMetadataNode(n)
}

// ParseMetadataNode reads a metadata document from an already-parsed tree.
func ParseMetadataNode(root *Node) (*Metadata, error) {
	group, _ := root.Value("groupId")
	artifact, _ := root.Value("artifactId")
	m := &Metadata{Project: Project{Group: group, Artifact: artifact}}

	v, err := root.Element("versioning")
	if err != nil {
		return nil, err
	}
	if v == nil {
		return m, nil
	}
	m.Latest, _ = v.Value("latest")
	m.Release, _ = v.Value("release")
	m.LastUpdated, _ = v.Value("lastUpdated")
	for _, vn := range v.Elements("versions/version") {
		m.Versions = append(m.Versions, vn.Text)
	}
	return m, nil
}

// lastUpdatedTime parses LastUpdated, treating an unparsable or empty value
// as the zero time so it always sorts oldest.
func (m *Metadata) lastUpdatedTime() time.Time {
	if m.LastUpdated == "" {
		return time.Time{}
	}
	t, err := ParseTimestamp(m.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SortMetadataAscending orders docs by LastUpdated ascending, the order
// AggregateMetadata requires of its input.
func SortMetadataAscending(docs []*Metadata) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].lastUpdatedTime().Before(docs[j].lastUpdatedTime())
	})
}

// AggregateMetadata unions an ordered collection of per-repository metadata
// documents for the same project, ordered by LastUpdated ascending.
// Versions is the concatenation of the inputs' lists in that order;
// Latest/Release/LastUpdated come from the most recent non-absent value,
// scanning newest-first. It is an error for the documents to disagree on
// (groupId, artifactId).
func AggregateMetadata(docs []*Metadata) (*Metadata, error) {
	if len(docs) == 0 {
		return &Metadata{}, nil
	}
	proj := docs[0].Project
	out := &Metadata{Project: proj}
	for _, d := range docs {
		if d.Project != proj {
			return nil, fmt.Errorf("maven: aggregated metadata project mismatch: %s != %s", d.Project, proj)
		}
		out.Versions = append(out.Versions, d.Versions...)
	}
	for i := len(docs) - 1; i >= 0; i-- {
		if out.Latest == "" && docs[i].Latest != "" {
			out.Latest = docs[i].Latest
		}
		if out.Release == "" && docs[i].Release != "" {
			out.Release = docs[i].Release
		}
		if out.LastUpdated == "" && docs[i].LastUpdated != "" {
			out.LastUpdated = docs[i].LastUpdated
		}
		if out.Latest != "" && out.Release != "" && out.LastUpdated != "" {
			break
		}
	}
	return out, nil
}
