// Package mediatypes classifies files as photos, videos, or other based on
// their file extension.
//
// Supported file types:
//   - Photos: jpg, jpeg, png, gif, webp, bmp, tiff, tif, heic, heif, raw,
//     arw, cr2, nef, dng
//   - Videos: mp4, mov, avi, mkv, webm, m4v, wmv, 3gp
//
// Classification is purely extension-based and case-insensitive; no file
// content is inspected.
package mediatypes
