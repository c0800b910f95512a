package image

import (
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// ExifLines lists the EXIF tags of a file as "Name=Value", maker notes excluded.
// A file without EXIF gives no lines and no error.
func ExifLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(f, nil, true)
	if err != nil {
		if isNoExif(err) {
			return nil, nil
		}
		return nil, err
	}

	lines := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.TagName == "MakerNote" {
			continue
		}
		lines = append(lines, tag.TagName+"="+strings.TrimSpace(tag.Formatted))
	}
	return lines, nil
}

func isNoExif(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
