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

// Package store implements the local cache and remote-repository lookup
// chain: a writable local cache is consulted
// first, then an ordered list of read-only repositories, and finally a
// pluggable Downloader is asked to fetch the artifact from a remote
// repository and populate the cache.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctrueden/go-maven-model/log"
	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/mverr"
)

// Downloader fetches the bytes of an artifact from a remote repository.
// Implementations are external collaborators: the store package only
// defines the contract.
type Downloader interface {
	// Fetch retrieves the bytes at the artifact's path suffix relative to
	// baseURL. It returns mverr.KindDownloadFailed on any transport error
	// and mverr.KindSnapshotUnsupported if the artifact is an unresolved
	// (non-timestamped) snapshot.
	Fetch(ctx context.Context, baseURL string, a maven.Artifact) ([]byte, error)
}

// Store is the local-cache-then-repository-chain lookup.
// A zero Store is not usable; construct one with New.
type Store struct {
	// WritableCache is the root directory artifacts are read from first and
	// written to after a successful download. Empty disables caching.
	WritableCache string
	// ReadOnlyRepos are additional local repository roots consulted, in
	// order, after the writable cache and before falling back to download.
	ReadOnlyRepos []string
	// RemoteURLs are the base URLs handed to Downloader.Fetch, in order,
	// when nothing local satisfies the request.
	RemoteURLs []string
	Downloader Downloader
}

// New constructs a Store with the given writable cache root.
func New(writableCache string, downloader Downloader) *Store {
	return &Store{WritableCache: writableCache, Downloader: downloader}
}

// Resolve returns the bytes of the given artifact, consulting the writable
// cache, then each read-only repository, then each remote URL via
// Downloader, in that order, writing a successful download back to the
// writable cache. If a is an unresolved snapshot, only the download
// attempt applies the snapshot check; local lookups succeed unmodified
// since a local copy may legitimately be a timestamped snapshot file.
func (s *Store) Resolve(ctx context.Context, a maven.Artifact) ([]byte, error) {
	suffix := a.PathSuffix()

	if s.WritableCache != "" {
		if b, err := readLocal(filepath.Join(s.WritableCache, suffix)); err == nil {
			return b, nil
		}
	}
	for _, root := range s.ReadOnlyRepos {
		if b, err := readLocal(filepath.Join(root, suffix)); err == nil {
			return b, nil
		}
	}

	if s.Downloader == nil {
		return nil, mverr.New(mverr.KindDownloadFailed, a.String(), fmt.Errorf("no downloader configured"))
	}

	var lastErr error
	for _, base := range s.RemoteURLs {
		b, err := s.Downloader.Fetch(ctx, base, a)
		if err != nil {
			log.Debugf("store: fetch of %s from %s failed: %v", a, base, err)
			lastErr = err
			continue
		}
		if s.WritableCache != "" {
			dst := filepath.Join(s.WritableCache, suffix)
			if werr := writeLocal(dst, b); werr != nil {
				log.Warnf("store: failed to cache %s at %s: %v", a, dst, werr)
			}
		}
		return b, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no remote repositories configured")
	}
	return nil, mverr.New(mverr.KindDownloadFailed, a.String(), lastErr)
}

func readLocal(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func writeLocal(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
