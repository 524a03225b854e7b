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

package model

import (
	"fmt"
	"regexp"

	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/mverr"
)

// placeholder matches a single ${...} property reference.
var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateProps expands every ${...} reference in props against the
// same map, in place, memoizing each resolved value (Phase D). A
// reference to an undefined property is left textually intact. A
// property that refers to itself, directly or through a chain, raises
// an interpolation-cycle failure.
func interpolateProps(props map[string]string) error {
	for name := range props {
		resolved, err := expand(name, props, map[string]bool{})
		if err != nil {
			return err
		}
		props[name] = resolved
	}
	return nil
}

// expand resolves the ${...} references within props[name], recursively
// expanding referenced properties first. visited tracks the chain of
// names currently being expanded, detecting cycles.
func expand(name string, props map[string]string, visited map[string]bool) (string, error) {
	value, ok := props[name]
	if !ok {
		// Referenced but undefined: caller leaves the literal "${name}".
		return "", nil
	}
	if visited[name] {
		return "", mverr.New(mverr.KindInterpolationCycle, name, fmt.Errorf("property %q participates in a reference cycle", name))
	}
	visited[name] = true
	defer delete(visited, name)

	var expandErr error
	result := placeholder.ReplaceAllStringFunc(value, func(match string) string {
		if expandErr != nil {
			return match
		}
		ref := placeholder.FindStringSubmatch(match)[1]
		if _, defined := props[ref]; !defined {
			return match
		}
		resolved, err := expand(ref, props, visited)
		if err != nil {
			expandErr = err
			return match
		}
		return resolved
	})
	if expandErr != nil {
		return "", expandErr
	}
	return result, nil
}

// interpolateDependencyVersions expands ${...} references in every
// dependency version in deps and dep_mgmt against the already-resolved
// property map (Phase E). Unknown references are left textually intact.
func interpolateDependencyVersions(m *Model) {
	interpolateVersionsIn(m.Deps, m.Props)
	interpolateVersionsIn(m.DepMgmt, m.Props)
}

func interpolateVersionsIn(deps map[maven.ManagementKey]maven.Dependency, props map[string]string) {
	for key, dep := range deps {
		if dep.Version == "" {
			continue
		}
		dep.Version = substitute(dep.Version, props)
		deps[key] = dep
	}
}

// substitute performs a single non-recursive expansion pass: props are
// already fully resolved by Phase D, so no cycle tracking is needed here.
func substitute(s string, props map[string]string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		ref := placeholder.FindStringSubmatch(match)[1]
		if v, ok := props[ref]; ok {
			return v
		}
		return match
	})
}
