package updater

import "strings"

// Release represents a GitHub release
type Release struct {
	TagName     string  `json:"tag_name"`
	Name        string  `json:"name"`
	PublishedAt string  `json:"published_at"`
	Body        string  `json:"body"`
	HTMLURL     string  `json:"html_url"`
	Assets      []Asset `json:"assets"`
}

// Asset represents a release asset (archive, checksum, etc.)
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
	ContentType        string `json:"content_type"`
}

// VersionString is the raw version carried by the release (its tag).
func (r *Release) VersionString() string {
	return r.TagName
}

// FindAsset finds an asset by name in the release
func (r *Release) FindAsset(name string) *Asset {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i]
		}
	}
	return nil
}

// FindAssetBySuffix returns the first asset whose name ends with suffix
func (r *Release) FindAssetBySuffix(suffix string) *Asset {
	for i := range r.Assets {
		if strings.HasSuffix(r.Assets[i].Name, suffix) {
			return &r.Assets[i]
		}
	}
	return nil
}

// Result is the outcome of a version check.
type Result int

const (
	ResultLoading Result = iota // no check has completed yet
	ResultError
	ResultUpToDate
	ResultPatchUpdate
	ResultMinorUpdate
	ResultMajorUpdate
)

func (r Result) String() string {
	switch r {
	case ResultLoading:
		return "loading"
	case ResultError:
		return "error"
	case ResultUpToDate:
		return "up-to-date"
	case ResultPatchUpdate:
		return "patch update"
	case ResultMinorUpdate:
		return "minor update"
	case ResultMajorUpdate:
		return "major update"
	}
	return "unknown"
}

// UpdateAvailable reports whether r is one of the update results.
func (r Result) UpdateAvailable() bool {
	switch r {
	case ResultPatchUpdate, ResultMinorUpdate, ResultMajorUpdate:
		return true
	}
	return false
}

// UpdateOptions configures a check run from the command line
type UpdateOptions struct {
	AutoPrepare bool // Stage the release when an update is found
	Interactive bool // Show the status view while checking
}
