// Package mbids manages the local cache of MusicBrainz identifier lists:
// one file per entity kind, one MBID per line, populated once from a remote
// tar.gz archive.
package mbids

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leoschwarz/mbtestgen/internal/catalog"
	"github.com/leoschwarz/mbtestgen/pkg/logger"
	"github.com/leoschwarz/mbtestgen/pkg/safeio"
)

const downloadTimeout = 5 * time.Minute

// Store reads identifier lists from a cache directory, fetching the archive
// that populates it when the directory is absent.
type Store struct {
	dir    string
	url    string
	client *http.Client
}

// NewStore returns a Store rooted at dir, fed from the archive at url.
func NewStore(dir, url string) *Store {
	return &Store{
		dir:    dir,
		url:    url,
		client: &http.Client{Timeout: downloadTimeout},
	}
}

// Dir returns the cache directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Ensure makes the cache directory present. An existing directory is
// trusted as-is and never re-fetched unless refresh is set; there is no
// staleness or checksum check beyond directory presence.
func (s *Store) Ensure(ctx context.Context, refresh bool) error {
	exists := false
	if _, err := os.Stat(s.dir); err == nil {
		if !refresh {
			logger.Debug("mbid cache present", logger.String("dir", s.dir))
			return nil
		}
		exists = true
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to stat cache directory: %v", ErrFetchFailed, err)
	}

	archivePath, err := s.download(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(archivePath)
	}()

	// Extract next to the final location, then rename, so an interrupted
	// run never leaves a half-populated directory that a later existence
	// check would trust.
	staging := s.dir + ".partial"
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("%w: failed to clear staging directory: %v", ErrFetchFailed, err)
	}
	if err := extractTarGz(archivePath, staging); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}

	// On refresh the old cache goes away only once its replacement is
	// fully staged, so a failed fetch leaves the previous lists usable.
	if exists {
		if err := os.RemoveAll(s.dir); err != nil {
			_ = os.RemoveAll(staging)
			return fmt.Errorf("%w: failed to replace cache for refresh: %v", ErrFetchFailed, err)
		}
	}
	if err := os.Rename(staging, s.dir); err != nil {
		_ = os.RemoveAll(staging)
		return fmt.Errorf("%w: failed to move cache into place: %v", ErrFetchFailed, err)
	}

	logger.Info("mbid cache populated", logger.String("dir", s.dir))
	return nil
}

// List returns the ordered identifiers cached for kind. Each non-empty line,
// trimmed of surrounding whitespace, is one identifier.
func (s *Store) List(kind catalog.Kind) ([]string, error) {
	path := filepath.Join(s.dir, kind.Name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (expected at %s)", ErrCacheFileMissing, kind.Name, path)
		}
		return nil, fmt.Errorf("failed to read cache file for %s: %w", kind.Name, err)
	}

	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}

func (s *Store) download(ctx context.Context) (string, error) {
	logger.Info("downloading mbid archive", logger.String("url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %s from %s", ErrFetchFailed, resp.Status, s.url)
	}

	out, err := os.CreateTemp(filepath.Dir(s.dir), "mbids-*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create download file: %v", ErrFetchFailed, err)
	}
	tmpName := out.Name()

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: download interrupted: %v", ErrFetchFailed, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: failed to close download file: %v", ErrFetchFailed, err)
	}

	return tmpName, nil
}

// extractTarGz unpacks the archive's regular files into targetDir. The
// archive carries a single top-level directory ("mbids/") which is stripped
// so the per-kind files land directly under targetDir.
func extractTarGz(archivePath, targetDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: failed to open archive: %v", ErrFetchFailed, err)
	}
	defer func() {
		_ = file.Close()
	}()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("%w: failed to read gzip stream: %v", ErrFetchFailed, err)
	}
	defer func() {
		_ = gzr.Close()
	}()

	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return fmt.Errorf("%w: failed to create cache directory: %v", ErrFetchFailed, err)
	}

	tr := tar.NewReader(gzr)
	extracted := 0
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: failed to read archive: %v", ErrFetchFailed, err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		name := stripLeadingComponent(header.Name)
		if name == "" {
			continue
		}
		path, err := safeio.ContainedPath(targetDir, name)
		if err != nil {
			return fmt.Errorf("%w: unsafe archive member %q: %v", ErrFetchFailed, header.Name, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("%w: failed to create directory for %q: %v", ErrFetchFailed, name, err)
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return fmt.Errorf("%w: failed to extract %q: %v", ErrFetchFailed, name, err)
		}
		if err := os.WriteFile(path, data, 0o640); err != nil {
			return fmt.Errorf("%w: failed to write %q: %v", ErrFetchFailed, name, err)
		}
		extracted++
	}

	if extracted == 0 {
		return fmt.Errorf("%w: archive contained no files", ErrFetchFailed)
	}

	logger.Debug("archive extracted", logger.Int("files", extracted), logger.String("dir", targetDir))
	return nil
}

// stripLeadingComponent drops the first path element of an archive member
// name ("mbids/Area" -> "Area").
func stripLeadingComponent(name string) string {
	name = strings.TrimPrefix(name, "./")
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
