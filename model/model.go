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

// Package model implements the Maven effective-model builder: the
// phase pipeline that flattens a RawDescriptor and its parent/BOM chain
// into a single Model of resolved properties and dependencies.
package model

import (
	"context"
	"fmt"

	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/mverr"
)

// Model is the flattened result of building a descriptor: three maps,
// keyed as described by the dependency-management matching rule, plus
// the order each key was first inserted in. Go map iteration order is
// randomized, so every consumer that needs a reproducible build (the
// transitive enumerator, BOM-import precedence) must walk the ordered
// slices instead of ranging the maps directly.
type Model struct {
	Props        map[string]string
	propOrder    []string
	Deps         map[maven.ManagementKey]maven.Dependency
	depOrder     []maven.ManagementKey
	DepMgmt      map[maven.ManagementKey]maven.Dependency
	depMgmtOrder []maven.ManagementKey
}

func newModel() *Model {
	return &Model{
		Props:   make(map[string]string),
		Deps:    make(map[maven.ManagementKey]maven.Dependency),
		DepMgmt: make(map[maven.ManagementKey]maven.Dependency),
	}
}

// AddDep inserts d into m.Deps, recording insertion order so a later
// OrderedDeps call reflects it. Callers that build a Model outside the
// phase pipeline (tests, ad hoc fixtures) should use this rather than
// assigning into m.Deps directly, which would leave the dependency
// unreachable from OrderedDeps.
func (m *Model) AddDep(d maven.Dependency) {
	mergeDeps(m.Deps, &m.depOrder, []maven.Dependency{d})
}

// OrderedDeps returns m.Deps in first-insertion order.
func (m *Model) OrderedDeps() []maven.Dependency {
	out := make([]maven.Dependency, 0, len(m.depOrder))
	for _, k := range m.depOrder {
		out = append(out, m.Deps[k])
	}
	return out
}

// OrderedDepMgmt returns m.DepMgmt in first-insertion order.
func (m *Model) OrderedDepMgmt() []maven.Dependency {
	out := make([]maven.Dependency, 0, len(m.depMgmtOrder))
	for _, k := range m.depMgmtOrder {
		out = append(out, m.DepMgmt[k])
	}
	return out
}

// DescriptorLoader fetches the descriptor for a Component, used to load
// parents (when not found locally) and BOM imports.
type DescriptorLoader interface {
	LoadDescriptor(ctx context.Context, c maven.Component) (*maven.RawDescriptor, error)
}

// ParentLocator resolves a parent reference to a local descriptor file
// when the declared relativePath's own identity matches. dir is the
// directory containing the descriptor that declared the parent; it
// returns ok=false when no local match was found and the loader should
// be consulted instead.
type ParentLocator interface {
	LocateParent(parent maven.ParentRef, dir string) (d *maven.RawDescriptor, newDir string, ok bool)
}

// Builder runs the model-building phase pipeline: seed, profile
// activation, parent inheritance, property interpolation, dependency
// version interpolation, BOM import, and managed-version injection.
type Builder struct {
	Loader  DescriptorLoader
	Locator ParentLocator // optional
}

// NewBuilder constructs a Builder backed by loader for parent/BOM lookups.
func NewBuilder(loader DescriptorLoader) *Builder {
	return &Builder{Loader: loader}
}

// Build runs the full A-G pipeline over d, rooted at dir (the directory
// containing d's own file, used for relativePath parent resolution; pass
// "" if d did not come from the filesystem).
func (b *Builder) Build(ctx context.Context, d *maven.RawDescriptor, dir string) (*Model, error) {
	m, err := b.buildThroughF(ctx, d, dir)
	if err != nil {
		return nil, err
	}
	if err := b.injectManagedVersions(m); err != nil {
		return nil, err
	}
	return m, nil
}

// buildThroughF runs Phases A-F: the part of the pipeline a BOM import
// re-enters independently of the consuming model.
func (b *Builder) buildThroughF(ctx context.Context, d *maven.RawDescriptor, dir string) (*Model, error) {
	m := newModel()

	seed(m, d)               // Phase A
	activateProfiles(m, d)   // Phase B
	if err := b.mergeAncestors(ctx, m, d, dir); err != nil { // Phase C
		return nil, err
	}
	if err := interpolateProps(m.Props); err != nil { // Phase D
		return nil, err
	}
	interpolateDependencyVersions(m) // Phase E
	if err := b.importManagedBOMs(ctx, m); err != nil { // Phase F
		return nil, err
	}
	return m, nil
}

// seed copies D's own dependencies, managed dependencies, and properties
// into the model with first-wins semantics (Phase A).
func seed(m *Model, d *maven.RawDescriptor) {
	mergeDeps(m.Deps, &m.depOrder, d.Dependencies(false))
	mergeDeps(m.DepMgmt, &m.depMgmtOrder, d.Dependencies(true))
	mergeProps(m.Props, &m.propOrder, d.Properties(), d.PropertyOrder())
}

// activateProfiles merges D's own active profiles (Phase B). Only
// activeByDefault is evaluated; jdk/os/property/file are recognized but
// never cause activation.
func activateProfiles(m *Model, d *maven.RawDescriptor) {
	for _, p := range d.Profiles() {
		if !p.Activation.Active() {
			continue
		}
		mergeDeps(m.Deps, &m.depOrder, p.Dependencies)
		mergeDeps(m.DepMgmt, &m.depMgmtOrder, p.ManagedDependencies)
		mergeProps(m.Props, &m.propOrder, p.Properties, p.PropertyOrder)
	}
}

// mergeAncestors walks the parent chain, merging each ancestor's
// dependencies, managed dependencies, and properties with first-wins
// (Phase C). Cycles are detected by tracking visited (g, a, v) triples.
func (b *Builder) mergeAncestors(ctx context.Context, m *Model, d *maven.RawDescriptor, dir string) error {
	visited := map[maven.Component]bool{d.Component(): true}
	parent, ok := d.Parent()
	for ok {
		key := parent.Component()
		if visited[key] {
			return mverr.New(mverr.KindParentCycle, key.String(), fmt.Errorf("parent chain revisits %s", key))
		}
		visited[key] = true

		ancestor, newDir, err := b.loadParent(ctx, parent, dir)
		if err != nil {
			return err
		}
		dir = newDir

		mergeDeps(m.Deps, &m.depOrder, ancestor.Dependencies(false))
		mergeDeps(m.DepMgmt, &m.depMgmtOrder, ancestor.Dependencies(true))
		mergeProps(m.Props, &m.propOrder, ancestor.Properties(), ancestor.PropertyOrder())

		parent, ok = ancestor.Parent()
	}
	return nil
}

// loadParent resolves a single parent reference: a filesystem-relative
// path is preferred only if that file's own identity matches the
// declared component; otherwise falls back to the loader.
func (b *Builder) loadParent(ctx context.Context, parent maven.ParentRef, dir string) (*maven.RawDescriptor, string, error) {
	if b.Locator != nil {
		if d, newDir, ok := b.Locator.LocateParent(parent, dir); ok {
			return d, newDir, nil
		}
	}
	if b.Loader == nil {
		return nil, "", mverr.New(mverr.KindDescriptorAbsent, parent.Component().String(), fmt.Errorf("no loader configured"))
	}
	d, err := b.Loader.LoadDescriptor(ctx, parent.Component())
	if err != nil {
		return nil, "", mverr.New(mverr.KindDescriptorAbsent, parent.Component().String(), err)
	}
	return d, "", nil
}

// importManagedBOMs resolves every dep_mgmt entry with type=pom and
// scope=import, merging the imported BOM's own dep_mgmt in with
// first-wins (Phase F). Each BOM is built independently through Phases
// A-F, so the consuming model's property overrides never reach it.
func (b *Builder) importManagedBOMs(ctx context.Context, m *Model) error {
	var imports []maven.Dependency
	for _, dep := range m.OrderedDepMgmt() {
		if dep.Packaging == maven.PomPackaging && dep.Scope == maven.ScopeImport {
			imports = append(imports, dep)
		}
	}
	for _, imp := range imports {
		if b.Loader == nil {
			return mverr.New(mverr.KindImportFailure, imp.String(), fmt.Errorf("no loader configured"))
		}
		bomDescriptor, err := b.Loader.LoadDescriptor(ctx, imp.Component)
		if err != nil {
			return mverr.New(mverr.KindImportFailure, imp.String(), err)
		}
		bomModel, err := b.buildThroughF(ctx, bomDescriptor, "")
		if err != nil {
			return mverr.New(mverr.KindImportFailure, imp.String(), err)
		}
		mergeDepMap(m.DepMgmt, &m.depMgmtOrder, bomModel.DepMgmt, bomModel.depMgmtOrder)
	}
	return nil
}

// injectManagedVersions fills in the version of every unversioned direct
// dependency from dep_mgmt, copying scope and exclusions too when the
// direct entry carries only the default compile scope / no exclusions
// (Phase G).
func (b *Builder) injectManagedVersions(m *Model) error {
	for _, key := range m.depOrder {
		dep := m.Deps[key]
		if dep.Version != "" {
			continue
		}
		managed, ok := m.DepMgmt[key]
		if !ok {
			return mverr.New(mverr.KindUnresolvedVersion, dep.String(), fmt.Errorf("no dependencyManagement entry for %s", key))
		}
		dep.Version = managed.Version
		if dep.Scope == maven.ScopeCompile {
			dep.Scope = managed.Scope
		}
		if len(dep.Exclusions) == 0 {
			dep.Exclusions = managed.Exclusions
		}
		m.Deps[key] = dep
	}
	return nil
}

// mergeDeps inserts each dependency under its management key into dst
// (and order) only if the key is not already present (first-wins).
func mergeDeps(dst map[maven.ManagementKey]maven.Dependency, order *[]maven.ManagementKey, deps []maven.Dependency) {
	for _, dep := range deps {
		key := dep.Key()
		if _, exists := dst[key]; exists {
			continue
		}
		dst[key] = dep
		*order = append(*order, key)
	}
}

// mergeDepMap is mergeDeps over an already-keyed, already-ordered map,
// used to fold a BOM's dep_mgmt into the consuming model's.
func mergeDepMap(dst map[maven.ManagementKey]maven.Dependency, order *[]maven.ManagementKey, src map[maven.ManagementKey]maven.Dependency, srcOrder []maven.ManagementKey) {
	for _, key := range srcOrder {
		if _, exists := dst[key]; exists {
			continue
		}
		dst[key] = src[key]
		*order = append(*order, key)
	}
}

// mergeProps inserts each property into dst (and order) only if its
// name is not already present (first-wins).
func mergeProps(dst map[string]string, order *[]string, src map[string]string, srcOrder []string) {
	for _, k := range srcOrder {
		if _, exists := dst[k]; exists {
			continue
		}
		dst[k] = src[k]
		*order = append(*order, k)
	}
}
