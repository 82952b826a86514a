package fetch

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrUnsafePath is returned for an archive member that would be written
// outside the target directory.
var ErrUnsafePath = errors.New("fetch: archive member escapes target directory")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetcher downloads files over HTTP.
type Fetcher struct {
	Client *http.Client
	Logger *zap.Logger
}

// New returns a Fetcher using client, or http.DefaultClient when nil.
func New(client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{Client: client, Logger: logger}
}

// Download GETs url and writes the body to dest. The file is written to a
// temporary name first, so dest is either the old file or the complete new
// one.
func (f *Fetcher) Download(ctx context.Context, url, dest string) (int64, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := f.copyTo(ctx, url, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, err
	}
	f.Logger.Info("downloaded", zap.String("url", url), zap.String("file", dest), zap.Int64("bytes", n))
	return n, nil
}

// DownloadArchive GETs a ZIP archive from url and extracts every member into
// dir under its archive name. It returns the extracted paths.
func (f *Fetcher) DownloadArchive(ctx context.Context, url, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "casecurve-*.zip")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := f.copyTo(ctx, url, tmp)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	paths, err := Extract(zr, dir)
	if err != nil {
		return paths, err
	}
	f.Logger.Info("extracted archive", zap.String("url", url), zap.String("dir", dir), zap.Int("files", len(paths)))
	return paths, nil
}

func (f *Fetcher) copyTo(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	f.Logger.Debug("requesting", zap.String("url", url))
	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("fetch %s: %w", url, err)
	}
	return n, nil
}

// Extract writes the regular files of zr into dir. Members whose names
// would land outside dir fail with ErrUnsafePath.
func Extract(zr *zip.Reader, dir string) ([]string, error) {
	var paths []string
	for _, zf := range zr.File {
		target, err := memberPath(dir, zf.Name)
		if err != nil {
			return paths, err
		}

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return paths, err
			}
			continue
		}
		if !zf.Mode().IsRegular() {
			continue
		}

		if err := extractFile(zf, target); err != nil {
			return paths, err
		}
		paths = append(paths, target)
	}
	return paths, nil
}

func memberPath(dir, name string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(dir, filepath.FromSlash(name)), nil
}

func extractFile(zf *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
