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

// Package enumerate implements the transitive dependency enumerator of
// a breadth-first walk over built Models with nearest-wins
// version selection and exclusion propagation.
package enumerate

import (
	"context"
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/model"
)

// ModelBuilder builds the flattened Model for a Component, the
// dependency the enumerator needs to expand one node of the graph.
type ModelBuilder interface {
	BuildComponent(ctx context.Context, c maven.Component) (*model.Model, error)
}

// Node is one resolved entry of the transitive closure.
type Node struct {
	Dependency maven.Dependency
	Depth      int
}

// runtimeScopes are the scopes included in the direct "runtime view" of
// the direct runtime dependencies of a single model.
var runtimeScopes = map[maven.Scope]bool{
	maven.ScopeCompile: true,
	maven.ScopeRuntime: true,
}

// DirectRuntimeDeps returns the entries of a built Component's deps map
// whose scope is compile or runtime.
func DirectRuntimeDeps(m *model.Model) []maven.Dependency {
	var out []maven.Dependency
	for _, dep := range m.OrderedDeps() {
		if runtimeScopes[dep.Scope] {
			out = append(out, dep)
		}
	}
	return out
}

// exclusionKey formats a Project exclusion the way stringset can dedupe
// and test membership against: "group:artifact", with "*" wildcards kept
// literal; Enumerate checks the "*:artifact", "group:*" and "*:*" forms
// alongside the exact key.
func exclusionKey(p maven.Project) string {
	return p.Group + ":" + p.Artifact
}

type queueEntry struct {
	component  maven.Component
	depth      int
	exclusions stringset.Set
}

// Enumerate performs the BFS transitive closure over built Models,
// starting from root's own direct compile/runtime dependencies.
// Traversal rules:
//   - nearest-wins: the first version seen at minimum depth for a given
//     Project wins; later encounters of the same Project are skipped;
//   - an excluded (g, a) is never enqueued under the node that excluded
//     it, nor under any of that node's descendants;
//   - optional dependencies are not traversed past their owner;
//   - test and provided scopes do not traverse.
func Enumerate(ctx context.Context, builder ModelBuilder, root maven.Component) ([]Node, error) {
	rootModel, err := builder.BuildComponent(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("building root model for %s: %w", root, err)
	}

	seenProjects := make(map[maven.Project]bool)
	var result []Node

	queue := []queueEntry{{component: root, depth: 0, exclusions: stringset.New()}}
	models := map[maven.Component]*model.Model{root: rootModel}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		m := models[cur.component]
		if m == nil {
			built, err := builder.BuildComponent(ctx, cur.component)
			if err != nil {
				return nil, fmt.Errorf("building model for %s: %w", cur.component, err)
			}
			m = built
			models[cur.component] = m
		}

		for _, dep := range m.OrderedDeps() {
			ex := cur.exclusions
			if ex.Contains(exclusionKey(dep.Project)) || ex.Contains("*:"+dep.Artifact) ||
				ex.Contains(dep.Group+":*") || ex.Contains("*:*") {
				continue
			}
			if seenProjects[dep.Project] {
				continue
			}
			seenProjects[dep.Project] = true
			result = append(result, Node{Dependency: dep, Depth: cur.depth + 1})

			// Rule (c): optional dependencies are not traversed past their
			// owner. Rule (d): test and provided scopes do not traverse.
			if dep.Optional || !runtimeScopes[dep.Scope] {
				continue
			}
			childExclusions := stringset.New(cur.exclusions.Elements()...)
			for _, excl := range dep.Exclusions {
				childExclusions.Add(exclusionKey(excl))
			}
			queue = append(queue, queueEntry{
				component:  dep.Component,
				depth:      cur.depth + 1,
				exclusions: childExclusions,
			})
		}
	}

	return result, nil
}
