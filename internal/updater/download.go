package updater

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/caioricciuti/plugin-updater/internal/logger"
)

// StagingPreparer downloads the release archive into a staging directory and
// verifies it against a published checksum. It never installs anything.
type StagingPreparer struct {
	Dir         string // staging root; one subdirectory per tag
	AssetSuffix string // e.g. ".zip"
	UserAgent   string
	HTTPClient  *http.Client
}

// PrepareUpdate stages release and logs the outcome.
func (p *StagingPreparer) PrepareUpdate(release *Release) {
	path, err := p.Prepare(context.Background(), release)
	if err != nil {
		logger.Error("AutoUpdate -> failed to prepare %s: %v", release.TagName, err)
		return
	}
	logger.Info("AutoUpdate -> %s staged at %s", release.TagName, path)
}

// Prepare downloads and verifies the release archive, returning its staged path
func (p *StagingPreparer) Prepare(ctx context.Context, release *Release) (string, error) {
	asset := release.FindAssetBySuffix(p.AssetSuffix)
	if asset == nil {
		return "", fmt.Errorf("release %s has no asset ending in %q", release.TagName, p.AssetSuffix)
	}

	stageDir := filepath.Join(p.Dir, sanitizeTag(release.TagName))
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	assetPath := filepath.Join(stageDir, filepath.Base(asset.Name))
	digest, err := p.stageAsset(ctx, asset, assetPath)
	if err != nil {
		os.Remove(assetPath)
		return "", err
	}

	checksumAsset := release.FindAsset(asset.Name + ".sha256")
	if checksumAsset == nil {
		logger.Warn("AutoUpdate -> no checksum published for %s, skipping verification", asset.Name)
		return assetPath, nil
	}

	published, err := p.publishedDigest(ctx, checksumAsset)
	if err == nil && published != digest {
		err = fmt.Errorf("%s: sha256 %s does not match published %s", asset.Name, digest, published)
	}
	if err != nil {
		os.Remove(assetPath)
		return "", err
	}
	return assetPath, nil
}

// maxChecksumSize bounds the body read for a published .sha256 asset.
const maxChecksumSize = 4 << 10

func (p *StagingPreparer) get(ctx context.Context, asset *Asset) (io.ReadCloser, error) {
	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.BrowserDownloadURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("staging %s: %w", asset.Name, err)
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("staging %s: %w", asset.Name, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("staging %s: release host answered HTTP %d", asset.Name, resp.StatusCode)
	}
	return resp.Body, nil
}

// stageAsset writes the asset to dest and returns its hex sha256, hashed
// while the body streams to disk.
func (p *StagingPreparer) stageAsset(ctx context.Context, asset *Asset, dest string) (digest string, err error) {
	body, err := p.get(ctx, asset)
	if err != nil {
		return "", err
	}
	defer body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("staging %s: %w", asset.Name, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("staging %s: %w", asset.Name, cerr)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), body); err != nil {
		return "", fmt.Errorf("staging %s: transfer interrupted: %w", asset.Name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// publishedDigest reads a sha256sum style asset ("<hex>  <name>" or a bare
// hex digest) and returns the lower-cased digest.
func (p *StagingPreparer) publishedDigest(ctx context.Context, asset *Asset) (string, error) {
	body, err := p.get(ctx, asset)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxChecksumSize))
	if err != nil {
		return "", fmt.Errorf("staging %s: %w", asset.Name, err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", fmt.Errorf("staging %s: no digest in checksum asset", asset.Name)
	}
	return strings.ToLower(fields[0]), nil
}

func sanitizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "untagged"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, tag)
}
