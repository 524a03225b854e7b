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

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/mverr"
)

func testArtifact() maven.Artifact {
	return maven.NewArtifact(maven.Component{
		Project: maven.Project{Group: "com.foo", Artifact: "bar"},
		Version: "1.0",
	}, "", "")
}

type stubDownloader struct {
	calls int
	data  []byte
	err   error
}

func (s *stubDownloader) Fetch(ctx context.Context, baseURL string, a maven.Artifact) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func TestResolveReadsWritableCacheFirst(t *testing.T) {
	dir := t.TempDir()
	a := testArtifact()
	p := filepath.Join(dir, a.PathSuffix())
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	dl := &stubDownloader{data: []byte("downloaded")}
	s := New(dir, dl)
	got, err := s.Resolve(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "cached" {
		t.Errorf("Resolve() = %q, want cached (no download)", got)
	}
	if dl.calls != 0 {
		t.Errorf("downloader called %d times, want 0", dl.calls)
	}
}

func TestResolveFallsBackToReadOnlyRepo(t *testing.T) {
	cache := t.TempDir()
	readOnly := t.TempDir()
	a := testArtifact()
	p := filepath.Join(readOnly, a.PathSuffix())
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("from-read-only"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(cache, &stubDownloader{})
	s.ReadOnlyRepos = []string{readOnly}
	got, err := s.Resolve(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "from-read-only" {
		t.Errorf("Resolve() = %q, want from-read-only", got)
	}
}

func TestResolveDownloadsAndCaches(t *testing.T) {
	cache := t.TempDir()
	a := testArtifact()
	dl := &stubDownloader{data: []byte("downloaded")}
	s := New(cache, dl)
	s.RemoteURLs = []string{"https://example.invalid/repo"}

	got, err := s.Resolve(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "downloaded" {
		t.Errorf("Resolve() = %q, want downloaded", got)
	}
	if dl.calls != 1 {
		t.Errorf("downloader called %d times, want 1", dl.calls)
	}

	cached, err := os.ReadFile(filepath.Join(cache, a.PathSuffix()))
	if err != nil {
		t.Fatalf("expected download to populate cache: %v", err)
	}
	if string(cached) != "downloaded" {
		t.Errorf("cached content = %q, want downloaded", cached)
	}
}

func TestResolveNoSourcesIsDownloadFailed(t *testing.T) {
	s := New(t.TempDir(), nil)
	_, err := s.Resolve(context.Background(), testArtifact())
	if !mverr.Is(err, mverr.KindDownloadFailed) {
		t.Errorf("expected KindDownloadFailed, got %v", err)
	}
}
