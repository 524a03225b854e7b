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
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/mverr"
)

func TestHTTPDownloaderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/com/foo/bar/1.0/bar-1.0.jar" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("jar-bytes"))
	}))
	defer srv.Close()

	dl := NewHTTPDownloader()
	b, err := dl.Fetch(context.Background(), srv.URL, testArtifact())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "jar-bytes" {
		t.Errorf("Fetch() = %q, want jar-bytes", b)
	}
}

func TestHTTPDownloaderFetchMissingIsDownloadFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	dl := NewHTTPDownloader()
	_, err := dl.Fetch(context.Background(), srv.URL, testArtifact())
	if !mverr.Is(err, mverr.KindDownloadFailed) {
		t.Errorf("expected KindDownloadFailed, got %v", err)
	}
}

func TestHTTPDownloaderRejectsUnresolvedSnapshot(t *testing.T) {
	a := maven.NewArtifact(maven.Component{
		Project: maven.Project{Group: "com.foo", Artifact: "bar"},
		Version: "1.0-SNAPSHOT",
	}, "", "")
	dl := NewHTTPDownloader()
	_, err := dl.Fetch(context.Background(), "https://example.invalid", a)
	if !mverr.Is(err, mverr.KindSnapshotUnsupported) {
		t.Errorf("expected KindSnapshotUnsupported, got %v", err)
	}
}

func TestHTTPDownloaderVerifyDigests(t *testing.T) {
	body := []byte("jar-bytes")
	sum := sha1.Sum(body)
	digest := hex.EncodeToString(sum[:])

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/com/foo/bar/1.0/bar-1.0.jar":
			w.Write(body)
		case r.URL.Path == "/com/foo/bar/1.0/bar-1.0.jar.sha1":
			w.Write([]byte(digest))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dl := NewHTTPDownloader()
	dl.VerifyDigests = true
	if _, err := dl.Fetch(context.Background(), srv.URL, testArtifact()); err != nil {
		t.Fatalf("expected matching digest to pass, got %v", err)
	}
}

func TestHTTPDownloaderVerifyDigestsMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/com/foo/bar/1.0/bar-1.0.jar":
			w.Write([]byte("jar-bytes"))
		case r.URL.Path == "/com/foo/bar/1.0/bar-1.0.jar.sha1":
			w.Write([]byte("0000000000000000000000000000000000000"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dl := NewHTTPDownloader()
	dl.VerifyDigests = true
	if _, err := dl.Fetch(context.Background(), srv.URL, testArtifact()); err == nil {
		t.Error("expected digest mismatch to fail the fetch")
	}
}
