// Package testimg builds small image fixtures for tests. WriteExifJPEG
// produces a decodable JPEG whose APP1 segment carries a hand-encoded TIFF
// block with camera and GPS metadata, so tests can exercise a real EXIF
// decode instead of only the absent-tag paths.
package testimg

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
)

// Metadata embedded by WriteExifJPEG, in the shape the extractor reports
// it, for test assertions.
const (
	TakenAt      = "2021-07-04T00:00:00Z"
	CameraMake   = "Canon"
	CameraModel  = "Canon EOS R6"
	ISO          = 200
	ShutterSpeed = "1/250"
	Aperture     = "f/2.8"
	FocalLength  = "50 mm"
)

// The embedded GPS triples encode 40°26'46"N 79°58'56"W.
const (
	Latitude  = 40.0 + 26.0/60 + 46.0/3600
	Longitude = -(79.0 + 58.0/60 + 56.0/3600)
)

// WriteExifJPEG writes a JPEG of the given dimensions at path, creating
// parent directories as needed. The file carries the metadata constants
// above in a standard little-endian EXIF segment.
func WriteExifJPEG(path string, w, h int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var img bytes.Buffer
	if err := jpeg.Encode(&img, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		return err
	}

	// Splice the APP1 segment in right behind the SOI marker; decoders
	// skip unknown segments, so the image stays readable.
	payload := append([]byte("Exif\x00\x00"), tiffBlob()...)
	out := []byte{0xff, 0xd8, 0xff, 0xe1, byte((len(payload) + 2) >> 8), byte(len(payload) + 2)}
	out = append(out, payload...)
	out = append(out, img.Bytes()[2:]...)
	return os.WriteFile(path, out, 0o644)
}

// TIFF tag and type codes for the fields the extractor reads.
const (
	tagGPSLatitudeRef   = 0x0001
	tagGPSLatitude      = 0x0002
	tagGPSLongitudeRef  = 0x0003
	tagGPSLongitude     = 0x0004
	tagMake             = 0x010f
	tagModel            = 0x0110
	tagExposureTime     = 0x829a
	tagFNumber          = 0x829d
	tagISOSpeedRatings  = 0x8827
	tagExifIFDPointer   = 0x8769
	tagGPSInfoIFD       = 0x8825
	tagDateTimeOriginal = 0x9003
	tagFocalLength      = 0x920a

	typeASCII    = 2
	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

type tiffField struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte
}

func asciiField(tag uint16, s string) tiffField {
	v := append([]byte(s), 0)
	return tiffField{tag: tag, typ: typeASCII, count: uint32(len(v)), value: v}
}

func shortField(tag uint16, v uint16) tiffField {
	return tiffField{tag: tag, typ: typeShort, count: 1, value: binary.LittleEndian.AppendUint16(nil, v)}
}

func longField(tag uint16, v uint32) tiffField {
	return tiffField{tag: tag, typ: typeLong, count: 1, value: binary.LittleEndian.AppendUint32(nil, v)}
}

func rationalField(tag uint16, rats ...[2]uint32) tiffField {
	var v []byte
	for _, r := range rats {
		v = binary.LittleEndian.AppendUint32(v, r[0])
		v = binary.LittleEndian.AppendUint32(v, r[1])
	}
	return tiffField{tag: tag, typ: typeRational, count: uint32(len(rats)), value: v}
}

// tiffBlob encodes a little-endian TIFF header with three IFDs: the main
// directory, the Exif sub-directory, and the GPS sub-directory. Sub-IFD
// offsets are resolved from the serialized sizes before writing.
func tiffBlob() []byte {
	exifIFD := []tiffField{
		rationalField(tagExposureTime, [2]uint32{1, 250}),
		rationalField(tagFNumber, [2]uint32{28, 10}),
		shortField(tagISOSpeedRatings, ISO),
		asciiField(tagDateTimeOriginal, "2021:07:04 12:30:00"),
		rationalField(tagFocalLength, [2]uint32{50, 1}),
	}
	gpsIFD := []tiffField{
		asciiField(tagGPSLatitudeRef, "N"),
		rationalField(tagGPSLatitude, [2]uint32{40, 1}, [2]uint32{26, 1}, [2]uint32{46, 1}),
		asciiField(tagGPSLongitudeRef, "W"),
		rationalField(tagGPSLongitude, [2]uint32{79, 1}, [2]uint32{58, 1}, [2]uint32{56, 1}),
	}
	ifd0 := []tiffField{
		asciiField(tagMake, CameraMake),
		asciiField(tagModel, CameraModel),
		longField(tagExifIFDPointer, 0),
		longField(tagGPSInfoIFD, 0),
	}
	exifOffset := 8 + ifdSize(ifd0)
	ifd0[2] = longField(tagExifIFDPointer, exifOffset)
	ifd0[3] = longField(tagGPSInfoIFD, exifOffset+ifdSize(exifIFD))

	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(8))
	writeIFD(&buf, 8, ifd0)
	writeIFD(&buf, exifOffset, exifIFD)
	writeIFD(&buf, exifOffset+ifdSize(exifIFD), gpsIFD)
	return buf.Bytes()
}

// ifdSize is the serialized length of an IFD block including its
// out-of-line values, each padded to a word boundary.
func ifdSize(fields []tiffField) uint32 {
	size := uint32(2 + 12*len(fields) + 4)
	for _, f := range fields {
		if len(f.value) > 4 {
			size += uint32((len(f.value) + 1) &^ 1)
		}
	}
	return size
}

// writeIFD appends one IFD block and its out-of-line values. offset is the
// block's own position relative to the start of the TIFF header; values
// longer than four bytes are stored after the block and referenced by
// absolute offset.
func writeIFD(buf *bytes.Buffer, offset uint32, fields []tiffField) {
	binary.Write(buf, binary.LittleEndian, uint16(len(fields)))
	extStart := offset + uint32(2+12*len(fields)+4)
	var ext []byte
	for _, f := range fields {
		binary.Write(buf, binary.LittleEndian, f.tag)
		binary.Write(buf, binary.LittleEndian, f.typ)
		binary.Write(buf, binary.LittleEndian, f.count)
		if len(f.value) <= 4 {
			var inline [4]byte
			copy(inline[:], f.value)
			buf.Write(inline[:])
			continue
		}
		binary.Write(buf, binary.LittleEndian, extStart+uint32(len(ext)))
		ext = append(ext, f.value...)
		if len(f.value)%2 == 1 {
			ext = append(ext, 0)
		}
	}
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.Write(ext)
}
