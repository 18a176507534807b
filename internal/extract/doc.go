// Package extract reads per-file metadata for the ingestion pipeline.
//
// For every candidate file it records size, modification time, media kind,
// and the folder relative to the library root. Photos additionally get an
// EXIF pass (capture date, camera, lens, exposure, GPS) and a header-only
// pixel dimension probe. Extraction is a pure function of the file path and
// never shares state; every failure mode past the initial stat degrades to
// an absent field rather than an error, so one unreadable file can never
// stall a scan.
package extract
