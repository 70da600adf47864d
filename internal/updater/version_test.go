package updater

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   Version
		wantOK bool
	}{
		{"1.2.3", Version{1, 2, 3}, true},
		{"0.0.0", Version{0, 0, 0}, true},
		{"10.20.30", Version{10, 20, 30}, true},
		{"3.9.14", Version{3, 9, 14}, true},
		{"1.2", Version{}, false},       // shorter than five characters
		{"1.2.", Version{}, false},      // shorter than five characters
		{"1.2.3.4", Version{}, false},   // four segments
		{"10.20", Version{}, false},     // two segments, long enough
		{"a.b.c", Version{}, false},     // non-numeric
		{"1.2.x", Version{}, false},     // non-numeric patch
		{"v1.2.3", Version{}, false},    // prefix is not a number
		{"-1.2.3", Version{}, false},    // negative
		{"+1.2.3", Version{}, false},    // signed
		{"1..2.3", Version{}, false},    // empty segment
		{"1.2.3-rc1", Version{}, false}, // pre-release suffix
		{"", Version{}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseVersion(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_Examples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		local, latest Version
		want          Result
	}{
		{"patch behind", Version{1, 2, 3}, Version{1, 2, 4}, ResultPatchUpdate},
		{"minor behind", Version{1, 2, 3}, Version{1, 3, 0}, ResultMinorUpdate},
		{"major behind", Version{1, 2, 3}, Version{2, 0, 0}, ResultMajorUpdate},
		{"equal", Version{1, 2, 3}, Version{1, 2, 3}, ResultUpToDate},
		{"major ahead short-circuits", Version{2, 0, 0}, Version{1, 9, 9}, ResultUpToDate},
		{"minor ahead short-circuits", Version{1, 5, 0}, Version{1, 4, 9}, ResultUpToDate},
		{"minor ahead hides patch behind", Version{1, 5, 0}, Version{1, 3, 9}, ResultUpToDate},
		{"major ahead hides patch behind", Version{3, 0, 0}, Version{2, 0, 5}, ResultUpToDate},
		{"patch ahead", Version{1, 2, 5}, Version{1, 2, 4}, ResultUpToDate},
		{"major behind wins over minor ahead", Version{1, 9, 9}, Version{2, 0, 0}, ResultMajorUpdate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Compare(tt.local, tt.latest))
		})
	}
}

// Every combination of small fields against the field-order rule.
func TestCompare_AllSmallVersions(t *testing.T) {
	t.Parallel()

	expected := func(a, b, c, d, e, f int) Result {
		switch {
		case a < d:
			return ResultMajorUpdate
		case a > d:
			return ResultUpToDate
		case b < e:
			return ResultMinorUpdate
		case b > e:
			return ResultUpToDate
		case c < f:
			return ResultPatchUpdate
		}
		return ResultUpToDate
	}

	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for c := 0; c < 3; c++ {
				for d := 0; d < 3; d++ {
					for e := 0; e < 3; e++ {
						for f := 0; f < 3; f++ {
							got := Compare(Version{a, b, c}, Version{d, e, f})
							want := expected(a, b, c, d, e, f)
							if got != want {
								t.Errorf("Compare(%d.%d.%d, %d.%d.%d) = %s, want %s", a, b, c, d, e, f, got, want)
							}
						}
					}
				}
			}
		}
	}
}

func TestResult_UpdateAvailable(t *testing.T) {
	t.Parallel()

	assert.False(t, ResultLoading.UpdateAvailable())
	assert.False(t, ResultError.UpdateAvailable())
	assert.False(t, ResultUpToDate.UpdateAvailable())
	assert.True(t, ResultPatchUpdate.UpdateAvailable())
	assert.True(t, ResultMinorUpdate.UpdateAvailable())
	assert.True(t, ResultMajorUpdate.UpdateAvailable())
	assert.Equal(t, "minor update", ResultMinorUpdate.String())
	assert.Equal(t, "unknown", Result(99).String())
}

func TestLoadLocalVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    Version
		wantErr error
	}{
		{"valid", `{"Major":3,"Minor":9,"Patch":1}`, Version{3, 9, 1}, nil},
		{"missing fields default to zero", `{"Major":1}`, Version{1, 0, 0}, nil},
		{"invalid json", `{"Major":`, Version{}, ErrMalformedVersion},
		{"null", `null`, Version{}, ErrMalformedVersion},
		{"negative", `{"Major":-1,"Minor":0,"Patch":0}`, Version{}, ErrMalformedVersion},
		{"string fields", `{"Major":"1","Minor":"2","Patch":"3"}`, Version{}, ErrMalformedVersion},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), VersionFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := LoadLocalVersion(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadLocalVersion_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadLocalVersion(filepath.Join(t.TempDir(), VersionFileName))
	assert.ErrorIs(t, err, ErrVersionFileMissing)
}
