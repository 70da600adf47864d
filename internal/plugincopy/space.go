package plugincopy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/shirou/gopsutil/v3/disk"
)

// SpaceReport compares what a copy needs with what the destination volume has.
type SpaceReport struct {
	Required uint64 // bytes under the source tree
	Free     uint64 // free bytes on the destination volume
	Volume   string // existing path the free space was measured at
}

// Sufficient reports whether the destination can hold the source tree.
func (r SpaceReport) Sufficient() bool {
	return r.Free >= r.Required
}

// CheckFreeSpace sums the regular files under sourceDir and measures the free
// space of the volume destDir lives on. destDir does not need to exist yet.
func CheckFreeSpace(sourceDir, destDir string) (SpaceReport, error) {
	var report SpaceReport

	err := godirwalk.Walk(sourceDir, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if !de.IsRegular() {
				return nil
			}
			info, err := os.Stat(osPathname)
			if err != nil {
				return err
			}
			report.Required += uint64(info.Size())
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return report, fmt.Errorf("failed to measure %s: %w", sourceDir, err)
	}

	volume := nearestExisting(destDir)
	usage, err := disk.Usage(volume)
	if err != nil {
		return report, fmt.Errorf("failed to read disk usage for %s: %w", volume, err)
	}
	report.Free = usage.Free
	report.Volume = volume
	return report, nil
}

func nearestExisting(path string) string {
	p := filepath.Clean(path)
	for {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}
