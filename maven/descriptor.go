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

import "strings"

// Developer is one entry of a descriptor's developers or contributors list
// (a descriptor's people(path)).
type Developer struct {
	Name  string
	Email string
}

// ParentRef is the /parent element of a descriptor.
type ParentRef struct {
	Project
	Version      string
	RelativePath string
}

// Component returns the parent's (group, artifact, version) triple.
func (p ParentRef) Component() Component {
	return Component{Project: p.Project, Version: p.Version}
}

// Activation recognizes but does not evaluate jdk/os/
// property/file activators; only ActiveByDefault causes activation.
type Activation struct {
	ActiveByDefault bool
	JDK             string
	HasOS           bool
	HasProperty     bool
	HasFile         bool
}

// Active reports whether the profile is active under this module's
// rules: only activeByDefault is evaluated.
func (a Activation) Active() bool {
	return a.ActiveByDefault
}

// Profile is a <profile> of a descriptor.
type Profile struct {
	ID                  string
	Activation          Activation
	Properties          map[string]string
	PropertyOrder       []string
	Dependencies        []Dependency
	ManagedDependencies []Dependency
}

// RawDescriptor is a namespace-stripped project descriptor tree together
// with the typed accessors below.
type RawDescriptor struct {
	root *Node
}

// NewDescriptor wraps a parsed document as a descriptor.
func NewDescriptor(root *Node) *RawDescriptor {
	return &RawDescriptor{root: root}
}

// ParseDescriptorFile parses the pom.xml at path.
func ParseDescriptorFile(path string) (*RawDescriptor, error) {
	n, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewDescriptor(n), nil
}

// ParseDescriptorString parses an in-memory pom.xml document.
func ParseDescriptorString(s string) (*RawDescriptor, error) {
	n, err := ParseString(s)
	if err != nil {
		return nil, err
	}
	return NewDescriptor(n), nil
}

// GroupID returns the descriptor's own groupId, or its parent's if absent.
func (d *RawDescriptor) GroupID() string {
	if v, ok := d.root.Value("groupId"); ok && v != "" {
		return v
	}
	if v, ok := d.root.Value("parent/groupId"); ok {
		return v
	}
	return ""
}

// ArtifactID returns the descriptor's artifactId.
func (d *RawDescriptor) ArtifactID() string {
	v, _ := d.root.Value("artifactId")
	return v
}

// Version returns the descriptor's own version, or its parent's if absent.
func (d *RawDescriptor) Version() string {
	if v, ok := d.root.Value("version"); ok && v != "" {
		return v
	}
	if v, ok := d.root.Value("parent/version"); ok {
		return v
	}
	return ""
}

// Packaging returns the descriptor's packaging, defaulting to "jar".
func (d *RawDescriptor) Packaging() string {
	if v, ok := d.root.Value("packaging"); ok && v != "" {
		return v
	}
	return DefaultPackaging
}

// Component returns the descriptor's own (group, artifact, version).
func (d *RawDescriptor) Component() Component {
	return Component{Project: Project{Group: d.GroupID(), Artifact: d.ArtifactID()}, Version: d.Version()}
}

// Parent returns the /parent element, if present.
func (d *RawDescriptor) Parent() (ParentRef, bool) {
	p, err := d.root.Element("parent")
	if err != nil || p == nil {
		return ParentRef{}, false
	}
	group, _ := p.Value("groupId")
	artifact, _ := p.Value("artifactId")
	version, _ := p.Value("version")
	relPath, _ := p.Value("relativePath")
	return ParentRef{
		Project:      Project{Group: group, Artifact: artifact},
		Version:      version,
		RelativePath: relPath,
	}, true
}

// Properties returns the mapping from the names of children of
// /properties to their text.
func (d *RawDescriptor) Properties() map[string]string {
	_, m := childTextOrdered(d.root, "properties")
	return m
}

// PropertyOrder returns the declaration order of the names Properties
// returns.
func (d *RawDescriptor) PropertyOrder() []string {
	order, _ := childTextOrdered(d.root, "properties")
	return order
}

// childTextOrdered reads the element at path and returns both its
// children's (name -> text) mapping and the declaration order of the
// names, since el.Children preserves document order but a Go map does
// not.
func childTextOrdered(n *Node, path string) ([]string, map[string]string) {
	el, err := n.Element(path)
	if err != nil || el == nil {
		return nil, map[string]string{}
	}
	order := make([]string, 0, len(el.Children))
	out := make(map[string]string, len(el.Children))
	for _, c := range el.Children {
		if _, exists := out[c.Name]; !exists {
			order = append(order, c.Name)
		}
		out[c.Name] = c.Text
	}
	return order, out
}

// Dependencies returns the descriptor's own direct dependencies, or its own
// managed dependencies when managed is true.
func (d *RawDescriptor) Dependencies(managed bool) []Dependency {
	path := "dependencies/dependency"
	if managed {
		path = "dependencyManagement/dependencies/dependency"
	}
	var out []Dependency
	for _, n := range d.root.Elements(path) {
		out = append(out, parseDependencyNode(n))
	}
	return out
}

// Profiles returns the descriptor's <profiles><profile> entries.
func (d *RawDescriptor) Profiles() []Profile {
	var out []Profile
	for _, n := range d.root.Elements("profiles/profile") {
		id, _ := n.Value("id")
		act, _ := n.Element("activation")
		activation := Activation{}
		if act != nil {
			if v, ok := act.Value("activeByDefault"); ok {
				activation.ActiveByDefault = strings.EqualFold(strings.TrimSpace(v), "true")
			}
			if v, ok := act.Value("jdk"); ok {
				activation.JDK = v
			}
			if e, _ := act.Element("os"); e != nil {
				activation.HasOS = true
			}
			if e, _ := act.Element("property"); e != nil {
				activation.HasProperty = true
			}
			if e, _ := act.Element("file"); e != nil {
				activation.HasFile = true
			}
		}
		var deps, managed []Dependency
		for _, dn := range n.Elements("dependencies/dependency") {
			deps = append(deps, parseDependencyNode(dn))
		}
		for _, dn := range n.Elements("dependencyManagement/dependencies/dependency") {
			managed = append(managed, parseDependencyNode(dn))
		}
		propOrder, props := childTextOrdered(n, "properties")
		out = append(out, Profile{
			ID:                  id,
			Activation:          activation,
			Properties:          props,
			PropertyOrder:       propOrder,
			Dependencies:        deps,
			ManagedDependencies: managed,
		})
	}
	return out
}

// People returns the descriptor's <developers><developer> or
// <contributors><contributor> entries; kind is "developers" or
// "contributors".
func (d *RawDescriptor) People(kind string) []Developer {
	singular := strings.TrimSuffix(kind, "s")
	var out []Developer
	for _, n := range d.root.Elements(kind + "/" + singular) {
		name, _ := n.Value("name")
		email, _ := n.Value("email")
		out = append(out, Developer{Name: name, Email: email})
	}
	return out
}

func parseDependencyNode(n *Node) Dependency {
	group, _ := n.Value("groupId")
	artifact, _ := n.Value("artifactId")
	version, _ := n.Value("version")
	classifier, _ := n.Value("classifier")
	typ, _ := n.Value("type")
	scope, _ := n.Value("scope")
	optionalStr, _ := n.Value("optional")

	a := NewArtifact(Component{Project: Project{Group: group, Artifact: artifact}, Version: version}, classifier, typ)
	var exclusions []Exclusion
	for _, en := range n.Elements("exclusions/exclusion") {
		eg, _ := en.Value("groupId")
		ea, _ := en.Value("artifactId")
		exclusions = append(exclusions, Exclusion{Group: eg, Artifact: ea})
	}
	return NewDependency(a, Scope(scope), strings.EqualFold(strings.TrimSpace(optionalStr), "true"), exclusions)
}
