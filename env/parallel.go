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
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/model"
)

// BuildAll builds the Model for each of components concurrently,
// Callers may parallelize at the granularity of independent top-level
// Components: newEnv is called once per
// component so each build gets its own Environment handle rather than
// sharing one writable cache across goroutines. Results preserve the
// input order; the first error cancels the remaining builds.
func BuildAll(ctx context.Context, components []maven.Component, newEnv func() *Environment) ([]*model.Model, error) {
	results := make([]*model.Model, len(components))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range components {
		i, c := i, c
		g.Go(func() error {
			m, err := newEnv().BuildComponent(ctx, c)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
