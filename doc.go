// Package fitsview parses FITS files and exposes their data segments as
// zero-copy, memory-mapped array views.
//
// FITS (Flexible Image Transport System) is the standard container format
// for astronomical data: a sequence of Header/Data Units (HDUs), each a
// header of fixed 80-byte keyword cards in 2880-byte blocks followed by an
// optional big-endian data segment padded to the next block boundary.
//
// # Quick Start
//
// Reading an image:
//
//	file, err := fitsview.Open("image.fits")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	view, err := file.Primary().View()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(view.Shape(), view.Element())
//	fmt.Println(view.FloatAt(0, 0))
//
// # Design
//
// Open maps the file read-only once and walks its HDU sequence, validating
// every header up front. Data is never copied: an ArrayView is a typed,
// shaped, byte-order-aware window into the shared mapping, decoding
// elements on each read and applying the optional BSCALE/BZERO affine
// scale. All views share the File's single region and become invalid when
// the File is closed.
//
// The library reads images (BITPIX 8, 16, 32, 64, -32, -64) and
// identifies table extension column byte ranges; it does not decode table
// cells, interpret world coordinates, or write files.
//
// # Error Handling
//
// Parse failures are typed (MalformedCardError, UnterminatedHeaderError,
// NotFITSError, MissingKeywordError, DuplicateKeywordError,
// InvalidElementTypeError, TruncatedFileError) and each carries the byte
// offset at which it was detected. Non-fatal anomalies (an unrecognized
// extension type whose data can still be skipped, identical duplicate
// keywords) become warnings:
//
//	if len(file.Warnings) > 0 {
//		for _, w := range file.Warnings {
//			log.Printf("warning: %s", w)
//		}
//	}
//
// WithStrictParsing promotes warnings to errors.
//
// # Concurrency
//
// Parsing is a single synchronous pass. Views are read-only over a region
// this package never mutates, so any number of goroutines may read any
// views of one File concurrently without locking. OpenMany parses
// multiple files in parallel.
//
// # Large Files
//
// For a structural scan without mapping the file at all, Walker
// enumerates descriptors lazily from any io.ReaderAt and can be paused
// and resumed by byte offset.
package fitsview
