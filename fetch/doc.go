// Package fetch downloads the case table and the geometry archive.
//
// Each call makes exactly one request. There is no retry, no cache beyond the
// file written, and no integrity check of the content.
//
// # Basic Usage
//
//	f := fetch.New(nil, logger) // http.DefaultClient
//	n, err := f.Download(ctx, casesURL, "cases.csv")
//
//	var status *fetch.StatusError
//	if errors.As(err, &status) {
//	    // non-2xx; cases.csv is unchanged
//	}
//
//	files, err := f.DownloadArchive(ctx, shapesURL, "shapes")
//
// Archive members whose names would leave the target directory fail with
// ErrUnsafePath.
package fetch
