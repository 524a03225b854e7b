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

package enumerate

import (
	"context"
	"testing"

	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/model"
)

type fakeBuilder struct {
	models map[maven.Component]*model.Model
}

func (f *fakeBuilder) BuildComponent(ctx context.Context, c maven.Component) (*model.Model, error) {
	return f.models[c], nil
}

func component(group, artifact, version string) maven.Component {
	return maven.Component{Project: maven.Project{Group: group, Artifact: artifact}, Version: version}
}

func dep(group, artifact, version string, scope maven.Scope, optional bool, exclusions ...maven.Exclusion) maven.Dependency {
	a := maven.NewArtifact(maven.Component{Project: maven.Project{Group: group, Artifact: artifact}, Version: version}, "", "")
	return maven.NewDependency(a, scope, optional, exclusions)
}

func newModel(deps ...maven.Dependency) *model.Model {
	m := &model.Model{
		Props:   map[string]string{},
		Deps:    map[maven.ManagementKey]maven.Dependency{},
		DepMgmt: map[maven.ManagementKey]maven.Dependency{},
	}
	for _, d := range deps {
		m.AddDep(d)
	}
	return m
}

func findNode(nodes []Node, group, artifact string) (Node, bool) {
	for _, n := range nodes {
		if n.Dependency.Group == group && n.Dependency.Artifact == artifact {
			return n, true
		}
	}
	return Node{}, false
}

func TestEnumerateTransitiveClosure(t *testing.T) {
	root := component("com.foo", "app", "1.0")
	a := component("com.foo", "a", "1.0")
	b := component("com.foo", "b", "1.0")

	builder := &fakeBuilder{models: map[maven.Component]*model.Model{
		root: newModel(dep("com.foo", "a", "1.0", maven.ScopeCompile, false)),
		a:    newModel(dep("com.foo", "b", "1.0", maven.ScopeCompile, false)),
		b:    newModel(),
	}}

	nodes, err := Enumerate(context.Background(), builder, root)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findNode(nodes, "com.foo", "a"); !ok {
		t.Error("expected com.foo:a in closure")
	}
	if _, ok := findNode(nodes, "com.foo", "b"); !ok {
		t.Error("expected transitively-reached com.foo:b in closure")
	}
}

func TestEnumerateNearestWins(t *testing.T) {
	root := component("com.foo", "app", "1.0")
	a := component("com.foo", "a", "1.0")
	b := component("com.foo", "b", "1.0")

	builder := &fakeBuilder{models: map[maven.Component]*model.Model{
		root: newModel(
			dep("com.foo", "a", "1.0", maven.ScopeCompile, false),
			dep("shared", "lib", "2.0", maven.ScopeCompile, false), // depth 1, should win
		),
		a: newModel(dep("shared", "lib", "1.0", maven.ScopeCompile, false)), // depth 2, should lose
		b: newModel(),
	}}
	_ = b

	nodes, err := Enumerate(context.Background(), builder, root)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := findNode(nodes, "shared", "lib")
	if !ok {
		t.Fatal("expected shared:lib in closure")
	}
	if n.Dependency.Version != "2.0" {
		t.Errorf("shared:lib version = %q, want 2.0 (nearest-wins)", n.Dependency.Version)
	}
	if n.Depth != 1 {
		t.Errorf("shared:lib depth = %d, want 1", n.Depth)
	}
}

func TestEnumerateExclusionsPropagate(t *testing.T) {
	root := component("com.foo", "app", "1.0")
	a := component("com.foo", "a", "1.0")

	builder := &fakeBuilder{models: map[maven.Component]*model.Model{
		root: newModel(dep("com.foo", "a", "1.0", maven.ScopeCompile, false, maven.Exclusion{Group: "excluded", Artifact: "thing"})),
		a:    newModel(dep("excluded", "thing", "1.0", maven.ScopeCompile, false)),
	}}

	nodes, err := Enumerate(context.Background(), builder, root)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findNode(nodes, "excluded", "thing"); ok {
		t.Error("expected excluded:thing to be excluded from closure")
	}
}

func TestEnumerateOptionalDoesNotTraverse(t *testing.T) {
	root := component("com.foo", "app", "1.0")
	a := component("com.foo", "a", "1.0")

	builder := &fakeBuilder{models: map[maven.Component]*model.Model{
		root: newModel(dep("com.foo", "a", "1.0", maven.ScopeCompile, true)),
		a:    newModel(dep("com.foo", "b", "1.0", maven.ScopeCompile, false)),
	}}

	nodes, err := Enumerate(context.Background(), builder, root)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findNode(nodes, "com.foo", "a"); !ok {
		t.Error("expected optional dep itself to appear as a node")
	}
	if _, ok := findNode(nodes, "com.foo", "b"); ok {
		t.Error("expected optional dep's own dependency not to be traversed")
	}
}

func TestEnumerateTestAndProvidedDoNotTraverse(t *testing.T) {
	root := component("com.foo", "app", "1.0")
	a := component("com.foo", "a", "1.0")
	b := component("com.foo", "b", "1.0")

	builder := &fakeBuilder{models: map[maven.Component]*model.Model{
		root: newModel(
			dep("com.foo", "a", "1.0", maven.ScopeTest, false),
			dep("com.foo", "b", "1.0", maven.ScopeProvided, false),
		),
		a: newModel(dep("never", "reached", "1.0", maven.ScopeCompile, false)),
		b: newModel(dep("never", "reached", "1.0", maven.ScopeCompile, false)),
	}}

	nodes, err := Enumerate(context.Background(), builder, root)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findNode(nodes, "never", "reached"); ok {
		t.Error("expected test/provided scoped dependencies not to traverse")
	}
}

// Enumerate's output ordering must reflect declaration order, not Go's
// randomized map iteration order, so repeated builds of identical
// input are bit-identical.
func TestEnumerateOutputOrderIsDeterministic(t *testing.T) {
	root := component("com.foo", "app", "1.0")

	builder := &fakeBuilder{models: map[maven.Component]*model.Model{
		root: newModel(
			dep("com.foo", "third", "1.0", maven.ScopeCompile, false),
			dep("com.foo", "first", "1.0", maven.ScopeCompile, false),
			dep("com.foo", "second", "1.0", maven.ScopeCompile, false),
		),
	}}

	want := []string{"third", "first", "second"}
	for i := 0; i < 5; i++ {
		nodes, err := Enumerate(context.Background(), builder, root)
		if err != nil {
			t.Fatal(err)
		}
		if len(nodes) != len(want) {
			t.Fatalf("run %d: Enumerate returned %d nodes, want %d", i, len(nodes), len(want))
		}
		for j, w := range want {
			if nodes[j].Dependency.Artifact != w {
				t.Errorf("run %d: nodes[%d].Artifact = %q, want %q", i, j, nodes[j].Dependency.Artifact, w)
			}
		}
	}
}

func TestDirectRuntimeDepsFiltersScope(t *testing.T) {
	m := newModel(
		dep("com.foo", "a", "1.0", maven.ScopeCompile, false),
		dep("com.foo", "b", "1.0", maven.ScopeTest, false),
		dep("com.foo", "c", "1.0", maven.ScopeRuntime, false),
	)
	got := DirectRuntimeDeps(m)
	if len(got) != 2 {
		t.Fatalf("DirectRuntimeDeps returned %d entries, want 2", len(got))
	}
}
