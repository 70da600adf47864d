package updater

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assetServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestStagingPreparer_VerifiedDownload(t *testing.T) {
	t.Parallel()

	archive := "zip-bytes"
	srv := assetServer(t, map[string]string{
		"/ExileApi-3.9.2.zip":        archive,
		"/ExileApi-3.9.2.zip.sha256": sha(archive) + "  ExileApi-3.9.2.zip\n",
	})

	release := &Release{
		TagName: "3.9.2",
		Assets: []Asset{
			{Name: "ExileApi-3.9.2.zip.sha256", BrowserDownloadURL: srv.URL + "/ExileApi-3.9.2.zip.sha256"},
			{Name: "ExileApi-3.9.2.zip", BrowserDownloadURL: srv.URL + "/ExileApi-3.9.2.zip"},
		},
	}

	dir := t.TempDir()
	p := &StagingPreparer{Dir: dir, AssetSuffix: ".zip", UserAgent: "ExileApi"}
	path, err := p.Prepare(context.Background(), release)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "3.9.2", "ExileApi-3.9.2.zip"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, archive, string(data))
	assert.NoFileExists(t, path+".sha256")
}

func TestStagingPreparer_UpperCaseBareDigest(t *testing.T) {
	t.Parallel()

	srv := assetServer(t, map[string]string{
		"/a.zip":        "payload",
		"/a.zip.sha256": strings.ToUpper(sha("payload")) + "\n",
	})
	release := &Release{
		TagName: "1.0.1",
		Assets: []Asset{
			{Name: "a.zip", BrowserDownloadURL: srv.URL + "/a.zip"},
			{Name: "a.zip.sha256", BrowserDownloadURL: srv.URL + "/a.zip.sha256"},
		},
	}

	path, err := (&StagingPreparer{Dir: t.TempDir(), AssetSuffix: ".zip"}).Prepare(context.Background(), release)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestStagingPreparer_TruncatedTransfer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1024")
		_, _ = w.Write([]byte("short"))
	}))
	t.Cleanup(srv.Close)

	release := &Release{
		TagName: "2.0.0",
		Assets:  []Asset{{Name: "a.zip", BrowserDownloadURL: srv.URL + "/a.zip"}},
	}
	dir := t.TempDir()
	_, err := (&StagingPreparer{Dir: dir, AssetSuffix: ".zip"}).Prepare(context.Background(), release)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging a.zip: transfer interrupted")
	assert.NoFileExists(t, filepath.Join(dir, "2.0.0", "a.zip"))
}

func TestStagingPreparer_UnwritableStage(t *testing.T) {
	t.Parallel()

	srv := assetServer(t, map[string]string{"/a.zip": "payload"})
	dir := t.TempDir()
	// A directory where the archive should go makes the create fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "1.0.0", "a.zip"), 0755))

	release := &Release{
		TagName: "1.0.0",
		Assets:  []Asset{{Name: "a.zip", BrowserDownloadURL: srv.URL + "/a.zip"}},
	}
	_, err := (&StagingPreparer{Dir: dir, AssetSuffix: ".zip"}).Prepare(context.Background(), release)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging a.zip")
}

func TestStagingPreparer_EmptyChecksumAsset(t *testing.T) {
	t.Parallel()

	srv := assetServer(t, map[string]string{"/a.zip": "payload", "/a.zip.sha256": "  \n"})
	release := &Release{
		TagName: "1.0.1",
		Assets: []Asset{
			{Name: "a.zip", BrowserDownloadURL: srv.URL + "/a.zip"},
			{Name: "a.zip.sha256", BrowserDownloadURL: srv.URL + "/a.zip.sha256"},
		},
	}
	dir := t.TempDir()
	_, err := (&StagingPreparer{Dir: dir, AssetSuffix: ".zip"}).Prepare(context.Background(), release)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no digest in checksum asset")
	assert.NoFileExists(t, filepath.Join(dir, "1.0.1", "a.zip"))
}

func TestStagingPreparer_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	srv := assetServer(t, map[string]string{
		"/a.zip":        "tampered",
		"/a.zip.sha256": sha("original"),
	})
	release := &Release{
		TagName: "1.0.1",
		Assets: []Asset{
			{Name: "a.zip", BrowserDownloadURL: srv.URL + "/a.zip"},
			{Name: "a.zip.sha256", BrowserDownloadURL: srv.URL + "/a.zip.sha256"},
		},
	}

	dir := t.TempDir()
	p := &StagingPreparer{Dir: dir, AssetSuffix: ".zip"}
	_, err := p.Prepare(context.Background(), release)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match published "+sha("original"))
	assert.Contains(t, err.Error(), sha("tampered"))
	assert.NoFileExists(t, filepath.Join(dir, "1.0.1", "a.zip"))
	assert.NoFileExists(t, filepath.Join(dir, "1.0.1", "a.zip.sha256"))
}

func TestStagingPreparer_NoChecksumPublished(t *testing.T) {
	t.Parallel()

	srv := assetServer(t, map[string]string{"/a.zip": "payload"})
	release := &Release{
		TagName: "1.0.1",
		Assets:  []Asset{{Name: "a.zip", BrowserDownloadURL: srv.URL + "/a.zip"}},
	}

	path, err := (&StagingPreparer{Dir: t.TempDir(), AssetSuffix: ".zip"}).Prepare(context.Background(), release)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestStagingPreparer_Failures(t *testing.T) {
	t.Parallel()

	srv := assetServer(t, map[string]string{})

	t.Run("no matching asset", func(t *testing.T) {
		release := &Release{TagName: "1.0.0", Assets: []Asset{{Name: "notes.txt"}}}
		_, err := (&StagingPreparer{Dir: t.TempDir(), AssetSuffix: ".zip"}).Prepare(context.Background(), release)
		assert.Error(t, err)
	})

	t.Run("download 404", func(t *testing.T) {
		release := &Release{TagName: "1.0.0", Assets: []Asset{{Name: "a.zip", BrowserDownloadURL: srv.URL + "/a.zip"}}}
		_, err := (&StagingPreparer{Dir: t.TempDir(), AssetSuffix: ".zip"}).Prepare(context.Background(), release)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("PrepareUpdate only logs", func(t *testing.T) {
		release := &Release{TagName: "1.0.0"}
		assert.NotPanics(t, func() {
			(&StagingPreparer{Dir: t.TempDir(), AssetSuffix: ".zip"}).PrepareUpdate(release)
		})
	})
}

func TestSanitizeTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "untagged", sanitizeTag("  "))
	assert.Equal(t, "release_1.0.0", sanitizeTag("release/1.0.0"))
	assert.Equal(t, "3.9.1", sanitizeTag("3.9.1"))
}
