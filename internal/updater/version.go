package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// VersionFileName is the local version record, looked up in the working directory.
const VersionFileName = "version.json"

var (
	// ErrVersionFileMissing is returned when the local version record does not exist.
	ErrVersionFileMissing = errors.New("version file not found")
	// ErrMalformedVersion is returned when a version does not have the major.minor.patch shape.
	ErrMalformedVersion = errors.New("malformed version")
)

// Version is a major.minor.patch triple.
type Version struct {
	Major int `json:"Major"`
	Minor int `json:"Minor"`
	Patch int `json:"Patch"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) valid() bool {
	return v.Major >= 0 && v.Minor >= 0 && v.Patch >= 0
}

// ParseVersion parses "major.minor.patch". Anything shorter than five
// characters, with a segment count other than three, or with a segment that
// is not a non-negative integer yields false.
func ParseVersion(s string) (Version, bool) {
	if len(s) < 5 {
		return Version{}, false
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, false
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return Version{}, false
		}
		nums[i] = int(n)
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// Compare classifies latest against local, field by field in major, minor,
// patch order. The first field that differs decides: local behind yields the
// matching update result, local ahead yields UpToDate without looking at the
// later fields. There is no downgrade result.
func Compare(local, latest Version) Result {
	switch {
	case local.Major != latest.Major:
		if local.Major < latest.Major {
			return ResultMajorUpdate
		}
	case local.Minor != latest.Minor:
		if local.Minor < latest.Minor {
			return ResultMinorUpdate
		}
	case local.Patch < latest.Patch:
		return ResultPatchUpdate
	}
	return ResultUpToDate
}

// LoadLocalVersion reads the JSON version record at path.
func LoadLocalVersion(path string) (Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Version{}, fmt.Errorf("%w: %s", ErrVersionFileMissing, path)
		}
		return Version{}, fmt.Errorf("failed to read version file %s: %w", path, err)
	}

	var v *Version
	if err := json.Unmarshal(data, &v); err != nil {
		return Version{}, fmt.Errorf("%w: %s: %v", ErrMalformedVersion, path, err)
	}
	if v == nil || !v.valid() {
		return Version{}, fmt.Errorf("%w: %s: %q", ErrMalformedVersion, path, strings.TrimSpace(string(data)))
	}
	return *v, nil
}
