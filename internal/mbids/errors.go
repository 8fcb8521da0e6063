package mbids

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/leoschwarz/mbtestgen/internal/catalog"
)

var (
	// ErrFetchFailed covers any failure while downloading or extracting
	// the identifier archive.
	ErrFetchFailed = errors.New("mbid archive fetch failed")

	// ErrCacheFileMissing means the cache directory exists but holds no
	// list for the requested entity kind.
	ErrCacheFileMissing = errors.New("mbid cache file missing")

	// ErrInvalidMBID means a cached identifier is not a well-formed UUID
	// and is therefore unsafe to substitute into generated source.
	ErrInvalidMBID = errors.New("invalid mbid")
)

// Validate checks that every identifier in ids parses as a UUID. The first
// violation aborts with the offending kind and value.
func Validate(kind catalog.Kind, ids []string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalidMBID, kind.Name, id, err)
		}
	}
	return nil
}
