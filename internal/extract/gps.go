package extract

import (
	"github.com/rwcarlsen/goexif/exif"
)

// gpsFields decodes GPS coordinates from EXIF. A coordinate is encoded as a
// three-component (degrees, minutes, seconds) rational triple plus a
// hemisphere reference. Both the latitude and the longitude triple must be
// complete to produce a position; partial data yields no GPS fields.
func gpsFields(x *exif.Exif) (*float64, *float64) {
	latDMS, ok := gpsTriple(x, exif.GPSLatitude)
	if !ok {
		return nil, nil
	}
	lonDMS, ok := gpsTriple(x, exif.GPSLongitude)
	if !ok {
		return nil, nil
	}

	lat := dmsToDecimal(latDMS, gpsRef(x, exif.GPSLatitudeRef))
	lon := dmsToDecimal(lonDMS, gpsRef(x, exif.GPSLongitudeRef))
	return &lat, &lon
}

// gpsTriple extracts a full (degrees, minutes, seconds) triple; anything
// less than three valid rational components is rejected.
func gpsTriple(x *exif.Exif, name exif.FieldName) ([3]float64, bool) {
	var dms [3]float64

	tag, err := x.Get(name)
	if err != nil || tag.Count != 3 {
		return dms, false
	}
	for i := 0; i < 3; i++ {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return dms, false
		}
		dms[i] = float64(num) / float64(den)
	}
	return dms, true
}

func gpsRef(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	ref, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return ref
}

// dmsToDecimal converts degrees/minutes/seconds to decimal degrees, negated
// for the southern and western hemispheres.
func dmsToDecimal(dms [3]float64, ref string) float64 {
	dec := dms[0] + dms[1]/60.0 + dms[2]/3600.0
	if ref == "S" || ref == "W" {
		dec = -dec
	}
	return dec
}
