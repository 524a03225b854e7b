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
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/multierr"

	"github.com/ctrueden/go-maven-model/log"
	"github.com/ctrueden/go-maven-model/maven"
	"github.com/ctrueden/go-maven-model/mverr"
)

// HTTPDownloader fetches artifacts over HTTP(S), grounded on the GET-then-
// cache flow of a typical Maven registry client (the remote
// repository protocol: GET $base/$pathSuffix).
type HTTPDownloader struct {
	Client *http.Client
	// VerifyDigests, when true, additionally fetches the .md5 and .sha1
	// sidecar files and rejects the download if either does not match.
	VerifyDigests bool
}

// NewHTTPDownloader returns a downloader using http.DefaultClient.
func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{Client: http.DefaultClient}
}

// Fetch implements Downloader.
func (h *HTTPDownloader) Fetch(ctx context.Context, baseURL string, a maven.Artifact) ([]byte, error) {
	if a.IsSnapshot() {
		return nil, mverr.New(mverr.KindSnapshotUnsupported, a.String(),
			fmt.Errorf("downloading unresolved snapshot artifacts is not supported"))
	}

	u := strings.TrimRight(baseURL, "/") + "/" + a.PathSuffix()
	body, err := h.get(ctx, u)
	if err != nil {
		return nil, mverr.New(mverr.KindDownloadFailed, a.String(), err)
	}

	if h.Client == nil {
		h.Client = http.DefaultClient
	}
	if h.VerifyDigests {
		if err := h.verify(ctx, u, body); err != nil {
			return nil, mverr.New(mverr.KindDownloadFailed, a.String(), err)
		}
	}
	return body, nil
}

func (h *HTTPDownloader) get(ctx context.Context, u string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", u, err)
	}
	log.Infof("store: fetching %s", u)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", u, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", u, err)
	}
	return b, nil
}

// verify fetches the .md5 and .sha1 sidecar digests for u and checks them
// against body, aggregating both failures with multierr so a caller sees
// every mismatched algorithm at once.
func (h *HTTPDownloader) verify(ctx context.Context, u string, body []byte) error {
	md5Sum := md5.Sum(body)
	sha1Sum := sha1.Sum(body)

	var errs error
	if err := h.checkDigest(ctx, u+".md5", hex.EncodeToString(md5Sum[:])); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := h.checkDigest(ctx, u+".sha1", hex.EncodeToString(sha1Sum[:])); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

func (h *HTTPDownloader) checkDigest(ctx context.Context, digestURL, computed string) error {
	b, err := h.get(ctx, digestURL)
	if err != nil {
		// Sidecar digests are advisory: a missing digest file doesn't fail
		// the download, only a mismatched one does.
		log.Debugf("store: no digest at %s: %v", digestURL, err)
		return nil
	}
	want := strings.ToLower(strings.TrimSpace(firstField(string(b))))
	if want != computed {
		return fmt.Errorf("digest mismatch at %s: want %s, got %s", digestURL, want, computed)
	}
	return nil
}

// firstField returns the first whitespace-delimited field of s: some
// repositories publish "<digest>  <filename>" instead of a bare digest.
func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
