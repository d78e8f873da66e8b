package scan

import (
	"os"
	"sort"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// sortByCaptureTime orders files ascending by EXIF capture time, using the
// filesystem mtime for files without readable EXIF data. Name breaks ties.
func sortByCaptureTime(files []FileEntry) {
	times := make(map[string]time.Time, len(files))
	for _, f := range files {
		times[f.Path] = captureTime(f.Path, f.ModTime)
	}
	sort.SliceStable(files, func(i, j int) bool {
		ti, tj := times[files[i].Path], times[files[j].Path]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return files[i].Name < files[j].Name
	})
}

// captureTime returns the EXIF DateTimeOriginal of the image at path, or
// fallback when the file has no parseable EXIF block.
func captureTime(path string, fallback time.Time) time.Time {
	f, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return fallback
	}
	t, err := x.DateTime()
	if err != nil {
		return fallback
	}
	return t
}
