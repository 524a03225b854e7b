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

// Package maven implements the coordinate algebra, XML reading, and
// descriptor/metadata accessors of the Maven model builder. It has no
// knowledge of caches, networking, or the model-building phases; those
// live in the sibling store, model, and enumerate packages.
package maven

import (
	"fmt"
	"strings"
)

// Scope is a Maven dependency scope.
type Scope string

// Recognized scopes.
const (
	ScopeCompile  Scope = "compile"
	ScopeRuntime  Scope = "runtime"
	ScopeProvided Scope = "provided"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
	ScopeImport   Scope = "import"
)

// DefaultPackaging is the packaging assumed when none is declared.
const DefaultPackaging = "jar"

// PomPackaging is the packaging used for project descriptors themselves.
const PomPackaging = "pom"

// snapshotSuffix marks a component version as a snapshot.
const snapshotSuffix = "-SNAPSHOT"

// Project identifies a Maven group/artifact pair. Immutable; both fields
// must be non-empty.
type Project struct {
	Group    string
	Artifact string
}

// String renders "group:artifact".
func (p Project) String() string {
	return p.Group + ":" + p.Artifact
}

// Valid reports whether both coordinates are present.
func (p Project) Valid() bool {
	return p.Group != "" && p.Artifact != ""
}

// Component is a Project pinned to a version.
type Component struct {
	Project
	Version string
}

// String renders "group:artifact:version".
func (c Component) String() string {
	return c.Project.String() + ":" + c.Version
}

// IsSnapshot reports whether the version ends in the literal "-SNAPSHOT".
func (c Component) IsSnapshot() bool {
	return strings.HasSuffix(c.Version, snapshotSuffix)
}

// Artifact is a Component qualified with an optional classifier and a
// packaging (defaulted to "jar" by NewArtifact).
type Artifact struct {
	Component
	Classifier string
	Packaging  string
}

// NewArtifact builds an Artifact, normalizing an empty packaging to "jar".
func NewArtifact(c Component, classifier, packaging string) Artifact {
	if packaging == "" {
		packaging = DefaultPackaging
	}
	return Artifact{Component: c, Classifier: classifier, Packaging: packaging}
}

// Filename returns "artifact-version[-classifier].packaging", the final
// path segment of the repository layout rule.
func (a Artifact) Filename() string {
	name := fmt.Sprintf("%s-%s", a.Artifact, a.Version)
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	return name + "." + a.Packaging
}

// PathSuffix returns the repository-relative path of the artifact:
// g1/g2/.../artifactId/version/filename.
func (a Artifact) PathSuffix() string {
	segs := append(strings.Split(a.Group, "."), a.Artifact, a.Version, a.Filename())
	return strings.Join(segs, "/")
}

// Exclusion excludes a Project from transitive resolution under one
// dependency. "*" in either field is a wildcard.
type Exclusion = Project

// Dependency is an Artifact plus the scope/optional/exclusions data that
// only matters while walking a dependency graph.
type Dependency struct {
	Artifact
	Scope      Scope
	Optional   bool
	Exclusions []Exclusion
}

// NewDependency builds a Dependency, normalizing an empty scope to
// "compile" and an empty packaging to "jar".
func NewDependency(a Artifact, scope Scope, optional bool, exclusions []Exclusion) Dependency {
	if scope == "" {
		scope = ScopeCompile
	}
	if a.Packaging == "" {
		a.Packaging = DefaultPackaging
	}
	return Dependency{Artifact: a, Scope: scope, Optional: optional, Exclusions: exclusions}
}

// ManagementKey is the four-tuple (groupId, artifactId, classifier, type)
// used to key deps and dep_mgmt maps.
type ManagementKey struct {
	Group      string
	Artifact   string
	Classifier string
	Type       string
}

// Key returns the dependency's management key.
func (d Dependency) Key() ManagementKey {
	return ManagementKey{
		Group:      d.Group,
		Artifact:   d.Artifact,
		Classifier: d.Classifier,
		Type:       d.Packaging,
	}
}

// String renders the canonical form "g:a:p[:c]:v:s[ (optional)]", matching
// Maven's dependency:list output order. Parse is its left inverse.
func (d Dependency) String() string {
	fields := []string{d.Group, d.Artifact, d.Packaging}
	if d.Classifier != "" {
		fields = append(fields, d.Classifier)
	}
	fields = append(fields, d.Version, string(d.Scope))
	s := strings.Join(fields, ":")
	if d.Optional {
		s += " (optional)"
	}
	return s
}

// Parse parses the canonical form produced by Dependency.String, the left
// inverse of String (coordinate-parse ∘ coordinate-render =
// identity).
func Parse(s string) (Dependency, error) {
	optional := false
	if rest, ok := strings.CutSuffix(s, " (optional)"); ok {
		optional = true
		s = rest
	}
	fields := strings.Split(s, ":")
	var group, artifact, packaging, classifier, version, scope string
	switch len(fields) {
	case 5:
		group, artifact, packaging, version, scope = fields[0], fields[1], fields[2], fields[3], fields[4]
	case 6:
		group, artifact, packaging, classifier, version, scope = fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	default:
		return Dependency{}, fmt.Errorf("maven: invalid coordinate %q", s)
	}
	a := NewArtifact(Component{Project: Project{Group: group, Artifact: artifact}, Version: version}, classifier, packaging)
	return NewDependency(a, Scope(scope), optional, nil), nil
}
