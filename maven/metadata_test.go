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

import "testing"

func TestParseTimestampBothGrammars(t *testing.T) {
	compact, err := ParseTimestamp("20230615103045")
	if err != nil {
		t.Fatal(err)
	}
	dotted, err := ParseTimestamp("20230615.103045")
	if err != nil {
		t.Fatal(err)
	}
	if !compact.Equal(dotted) {
		t.Errorf("compact %v and dotted %v grammars disagree", compact, dotted)
	}
	if _, err := ParseTimestamp("not-a-timestamp"); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

const metadataXML = `<metadata>
  <groupId>com.foo</groupId>
  <artifactId>bar</artifactId>
  <versioning>
    <latest>2.0</latest>
    <release>1.9</release>
    <versions>
      <version>1.0</version>
      <version>1.9</version>
      <version>2.0</version>
    </versions>
    <lastUpdated>20230615103045</lastUpdated>
  </versioning>
</metadata>`

func TestParseMetadataString(t *testing.T) {
	m, err := ParseMetadataString(metadataXML)
	if err != nil {
		t.Fatal(err)
	}
	if m.Project != (Project{Group: "com.foo", Artifact: "bar"}) {
		t.Errorf("Project = %+v", m.Project)
	}
	if m.Latest != "2.0" || m.Release != "1.9" {
		t.Errorf("Latest/Release = %q/%q", m.Latest, m.Release)
	}
	if len(m.Versions) != 3 {
		t.Fatalf("Versions = %v", m.Versions)
	}
}

func TestAggregateMetadataConcatenatesInOrder(t *testing.T) {
	proj := Project{Group: "com.foo", Artifact: "bar"}
	older := &Metadata{Project: proj, Versions: []string{"1.0"}, LastUpdated: "20230101000000"}
	newer := &Metadata{Project: proj, Versions: []string{"2.0"}, Latest: "2.0", Release: "2.0", LastUpdated: "20230615103045"}

	agg, err := AggregateMetadata([]*Metadata{older, newer})
	if err != nil {
		t.Fatal(err)
	}
	if len(agg.Versions) != 2 || agg.Versions[0] != "1.0" || agg.Versions[1] != "2.0" {
		t.Errorf("Versions = %v, want concatenation in input order", agg.Versions)
	}
	if agg.Latest != "2.0" || agg.Release != "2.0" || agg.LastUpdated != "20230615103045" {
		t.Errorf("aggregated fields = %+v, want newest doc's values", agg)
	}
}

func TestAggregateMetadataFillsFromOlderWhenNewerIsEmpty(t *testing.T) {
	proj := Project{Group: "com.foo", Artifact: "bar"}
	older := &Metadata{Project: proj, Latest: "1.0", LastUpdated: "20230101000000"}
	newer := &Metadata{Project: proj, LastUpdated: "20230615103045"}

	agg, err := AggregateMetadata([]*Metadata{older, newer})
	if err != nil {
		t.Fatal(err)
	}
	if agg.Latest != "1.0" {
		t.Errorf("Latest = %q, want fallback to older doc's 1.0", agg.Latest)
	}
	if agg.LastUpdated != "20230615103045" {
		t.Errorf("LastUpdated = %q, want newer doc's value", agg.LastUpdated)
	}
}

func TestAggregateMetadataRejectsProjectMismatch(t *testing.T) {
	a := &Metadata{Project: Project{Group: "com.foo", Artifact: "bar"}}
	b := &Metadata{Project: Project{Group: "com.foo", Artifact: "baz"}}
	if _, err := AggregateMetadata([]*Metadata{a, b}); err == nil {
		t.Error("expected error for mismatched projects")
	}
}

func TestSortMetadataAscending(t *testing.T) {
	proj := Project{Group: "com.foo", Artifact: "bar"}
	newer := &Metadata{Project: proj, LastUpdated: "20230615103045"}
	older := &Metadata{Project: proj, LastUpdated: "20230101000000"}
	noTimestamp := &Metadata{Project: proj}

	docs := []*Metadata{newer, older, noTimestamp}
	SortMetadataAscending(docs)
	if docs[0] != noTimestamp || docs[1] != older || docs[2] != newer {
		t.Errorf("SortMetadataAscending order wrong: %+v", docs)
	}
}
