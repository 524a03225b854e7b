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

// Package env wires together the Environment: the writable cache,
// read-only repositories, remote URLs, downloader, and resolver that
// every model-building operation threads explicitly rather than
// reaching for global state.
package env

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/ctrueden/go-maven-model/log"
	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/model"
	"github.com/ctrueden/go-maven-model/mverr"
	"github.com/ctrueden/go-maven-model/store"
)

// m2RepoEnvVar is consulted before falling back to ~/.m2/repository.
const m2RepoEnvVar = "M2_REPO"

// Config is the optional on-disk configuration for an Environment,
// loaded from a TOML file (e.g. a project's .mvnmodel.toml).
type Config struct {
	WritableCache string   `toml:"writable_cache"`
	ReadOnlyRepos []string `toml:"read_only_repos"`
	RemoteURLs    []string `toml:"remote_urls"`
	VerifyDigests bool     `toml:"verify_digests"`
}

// LoadConfig reads a Config from a TOML file at path.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("env: decoding config %s: %w", path, err)
	}
	return &c, nil
}

// Environment is the process-scoped configuration: constructed once by
// the caller and threaded explicitly into every operation that needs it.
type Environment struct {
	Store   *store.Store
	Builder *model.Builder
	loader  *storeLoader
}

// New constructs an Environment from explicit settings. The Builder's
// ParentLocator is a filesystem locator rooted at the writable cache,
// so a parent's declared relativePath is honored whenever the cached
// copy's own identity matches; it falls back to loader lookups
// otherwise.
func New(writableCache string, readOnlyRepos, remoteURLs []string, downloader store.Downloader) *Environment {
	s := store.New(writableCache, downloader)
	s.ReadOnlyRepos = readOnlyRepos
	s.RemoteURLs = remoteURLs
	loader := &storeLoader{store: s, memo: make(map[maven.Component]*maven.RawDescriptor)}
	builder := model.NewBuilder(loader)
	builder.Locator = fsParentLocator{}
	return &Environment{Store: s, Builder: builder, loader: loader}
}

// NewDefault constructs an Environment using the default local cache
// location: the M2_REPO environment variable if set, otherwise
// ~/.m2/repository.
func NewDefault(remoteURLs []string) (*Environment, error) {
	cache, err := DefaultCacheDir()
	if err != nil {
		return nil, err
	}
	return New(cache, nil, remoteURLs, store.NewHTTPDownloader()), nil
}

// NewFromConfig constructs an Environment from a loaded Config,
// defaulting WritableCache the same way NewDefault does when unset.
func NewFromConfig(c *Config) (*Environment, error) {
	cache := c.WritableCache
	if cache == "" {
		var err error
		cache, err = DefaultCacheDir()
		if err != nil {
			return nil, err
		}
	}
	downloader := &store.HTTPDownloader{VerifyDigests: c.VerifyDigests}
	return New(cache, c.ReadOnlyRepos, c.RemoteURLs, downloader), nil
}

// DefaultCacheDir resolves the default local repository root: M2_REPO
// if set, else ~/.m2/repository.
func DefaultCacheDir() (string, error) {
	if v := os.Getenv(m2RepoEnvVar); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("env: resolving home directory: %w", err)
	}
	return filepath.Join(home, ".m2", "repository"), nil
}

// BuildComponent resolves a Component's descriptor and builds its Model,
// satisfying enumerate.ModelBuilder. dir is the directory the writable
// cache would hold c's pom.xml in, so a subsequent relativePath parent
// lookup can find it there; it is only meaningful when c's own pom came
// from the writable cache (a pure-remote or read-only-repo lookup has no
// local relativePath neighbor to check, and the locator falls back to
// the loader in that case).
func (e *Environment) BuildComponent(ctx context.Context, c maven.Component) (*model.Model, error) {
	d, err := e.loader.LoadDescriptor(ctx, c)
	if err != nil {
		return nil, err
	}
	return e.Builder.Build(ctx, d, e.cacheDirFor(c))
}

// cacheDirFor returns the writable-cache directory that would hold c's
// pom.xml, or "" if the Environment has no writable cache configured.
func (e *Environment) cacheDirFor(c maven.Component) string {
	if e.Store.WritableCache == "" {
		return ""
	}
	a := maven.NewArtifact(c, "", maven.PomPackaging)
	return filepath.Dir(filepath.Join(e.Store.WritableCache, a.PathSuffix()))
}

// storeLoader adapts a Store into a model.DescriptorLoader by fetching
// the component's pom.xml artifact and parsing it. Parse results are
// memoized per (g, a, v) as a write-once map.
type storeLoader struct {
	store *store.Store

	mu   sync.RWMutex
	memo map[maven.Component]*maven.RawDescriptor
}

func (s *storeLoader) LoadDescriptor(ctx context.Context, c maven.Component) (*maven.RawDescriptor, error) {
	s.mu.RLock()
	d, ok := s.memo[c]
	s.mu.RUnlock()
	if ok {
		return d, nil
	}

	a := maven.NewArtifact(c, "", maven.PomPackaging)
	b, err := s.store.Resolve(ctx, a)
	if err != nil {
		return nil, err
	}
	d, err = maven.ParseDescriptorString(string(b))
	if err != nil {
		log.Warnf("env: malformed descriptor for %s: %v", c, err)
		return nil, mverr.New(mverr.KindDescriptorMalformed, c.String(), err)
	}

	s.mu.Lock()
	if existing, ok := s.memo[c]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	s.memo[c] = d
	s.mu.Unlock()
	return d, nil
}
