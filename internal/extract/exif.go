package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"photo-catalog/internal/logging"
)

// readExif fills the EXIF-derived fields of rec. Decode failures leave all
// fields absent; a photo with broken or missing EXIF is still indexed.
func readExif(path string, rec *Record) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		logging.Debug("extract: no exif for %s: %v", path, err)
		return
	}

	if taken := exifDate(x); taken != "" {
		rec.TakenAt = &taken
	}
	rec.CameraMake = stringField(x, exif.Make)
	rec.CameraModel = stringField(x, exif.Model)
	rec.Lens = stringField(x, exif.LensModel)
	rec.ISO = intField(x, exif.ISOSpeedRatings)
	rec.ShutterSpeed = exposureField(x)
	rec.Aperture = apertureField(x)
	rec.FocalLength = focalLengthField(x)
	rec.GPSLat, rec.GPSLon = gpsFields(x)
}

// exifDate returns the capture date from DateTimeOriginal, falling back to
// DateTime. EXIF dates use "YYYY:MM:DD HH:MM:SS"; the first ten characters
// are re-formatted as "YYYY-MM-DDT00:00:00Z". Empty string when absent.
func exifDate(x *exif.Exif) string {
	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		if formatted := formatExifDate(raw); formatted != "" {
			return formatted
		}
	}
	return ""
}

func formatExifDate(raw string) string {
	s := strings.ReplaceAll(raw, ":", "-")
	if len(s) < 10 {
		return ""
	}
	return s[:10] + "T00:00:00Z"
}

func stringField(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	raw, err := tag.StringVal()
	if err != nil {
		return nil
	}
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}

func intField(x *exif.Exif, name exif.FieldName) *int {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	v, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &v
}

// exposureField formats ExposureTime as a rational string, e.g. "1/250".
func exposureField(x *exif.Exif) *string {
	num, den, ok := ratField(x, exif.ExposureTime)
	if !ok {
		return nil
	}
	var v string
	if den == 1 {
		v = fmt.Sprintf("%d", num)
	} else {
		v = fmt.Sprintf("%d/%d", num, den)
	}
	return &v
}

// apertureField formats FNumber as "f/N.N".
func apertureField(x *exif.Exif) *string {
	num, den, ok := ratField(x, exif.FNumber)
	if !ok {
		return nil
	}
	v := fmt.Sprintf("f/%.1f", float64(num)/float64(den))
	return &v
}

// focalLengthField formats FocalLength in millimetres.
func focalLengthField(x *exif.Exif) *string {
	num, den, ok := ratField(x, exif.FocalLength)
	if !ok {
		return nil
	}
	v := fmt.Sprintf("%g mm", float64(num)/float64(den))
	return &v
}

func ratField(x *exif.Exif, name exif.FieldName) (int64, int64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, 0, false
	}
	return num, den, true
}
