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

package env

import (
	"os"
	"path/filepath"

	"github.com/ctrueden/go-maven-model/maven"
)

// defaultRelativePath is Maven's own default for an omitted
// /parent/relativePath.
const defaultRelativePath = "../pom.xml"

// fsParentLocator resolves a parent reference against the local
// checkout the child descriptor was read from, honoring relativePath
// only when the candidate file's own identity matches the declared
// parent; otherwise the Builder falls back to its DescriptorLoader.
type fsParentLocator struct{}

// LocateParent implements model.ParentLocator.
func (fsParentLocator) LocateParent(parent maven.ParentRef, dir string) (*maven.RawDescriptor, string, bool) {
	if dir == "" {
		return nil, "", false
	}
	relPath := parent.RelativePath
	if relPath == "" {
		relPath = defaultRelativePath
	}

	candidate := filepath.Join(dir, relPath)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		candidate = filepath.Join(candidate, "pom.xml")
	}

	d, err := maven.ParseDescriptorFile(candidate)
	if err != nil {
		return nil, "", false
	}
	if d.Component() != parent.Component() {
		return nil, "", false
	}
	return d, filepath.Dir(candidate), true
}
