package fitsview

// Option configures behavior when opening FITS files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := fitsview.Open("image.fits",
//	    fitsview.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing bool // Fail on any warning
	noMmap        bool // Read into memory instead of mapping
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		strictParsing: false,
		noMmap:        false,
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, fitsview tolerates non-fatal anomalies (identical duplicate
// structural keywords, unrecognized extension types that can still be
// skipped) and records them in File.Warnings.
//
// With strict parsing enabled, any warning becomes a fatal error.
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithoutMmap reads the file into memory instead of memory-mapping it.
//
// By default the file is mapped read-only and views are zero-copy windows
// into the mapping. Use this when the file lives on a filesystem whose
// mappings are unreliable (some network mounts), or to keep views valid
// while the underlying file is replaced on disk.
func WithoutMmap() Option {
	return func(o *openOptions) {
		o.noMmap = true
	}
}
