// Package extract builds the identifier-list cache from a MusicBrainz
// database dump, so the lists can be regenerated locally instead of
// downloaded. Each dump member is a tab-separated table whose second column
// is the MBID.
package extract

import (
	"archive/tar"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leoschwarz/mbtestgen/internal/catalog"
	"github.com/leoschwarz/mbtestgen/internal/sample"
	"github.com/leoschwarz/mbtestgen/pkg/logger"
	"github.com/leoschwarz/mbtestgen/pkg/safeio"
)

// DefaultLimit caps how many MBIDs are kept per entity kind.
const DefaultLimit = 100000

// readme documents the provenance and licence of the extracted lists.
const readme = `The contents of this file are a random sample of MBIDs of the MusicBrainz entities.
Source of the original dataset:
    https://musicbrainz.org/doc/MusicBrainz_Database
As the relevant data was released under the CC0 license, which you can find at:
    https://creativecommons.org/publicdomain/zero/1.0/
the list of MBIDs is also licensed as CC0.
`

// Options configures one extraction run.
type Options struct {
	DumpPath string
	OutDir   string
	Limit    int
	Sampler  *sample.Sampler
}

// Run reads the uncompressed dump tar at DumpPath and writes one MBID list
// per known entity kind into OutDir, plus a README. Every kind must be
// present in the dump.
func Run(opts Options) error {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	file, err := os.Open(opts.DumpPath)
	if err != nil {
		return fmt.Errorf("failed to open dump: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	wanted := make(map[string]catalog.Kind)
	for _, k := range catalog.All() {
		wanted[k.DumpMember] = k
	}

	if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tr := tar.NewReader(file)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read dump: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		kind, ok := wanted[strings.TrimPrefix(header.Name, "./")]
		if !ok {
			continue
		}
		delete(wanted, kind.DumpMember)

		logger.Info("extracting entity kind", logger.String("kind", kind.Name))

		ids, err := readMBIDColumn(tr)
		if err != nil {
			return fmt.Errorf("failed to read %s rows: %w", kind.Name, err)
		}

		n := opts.Limit
		if n > len(ids) {
			n = len(ids)
		}
		picked, err := opts.Sampler.Pick(ids, n)
		if err != nil {
			return fmt.Errorf("sampling %s: %w", kind.Name, err)
		}

		content := strings.Join(picked, "\n") + "\n"
		if err := safeio.WriteFileAtomic(filepath.Join(opts.OutDir, kind.Name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s list: %w", kind.Name, err)
		}
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for _, k := range wanted {
			missing = append(missing, k.Name)
		}
		return fmt.Errorf("dump is missing entity members: %s", strings.Join(missing, ", "))
	}

	if err := safeio.WriteFileAtomic(filepath.Join(opts.OutDir, "README"), []byte(readme), 0o644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}

	logger.Info("mbid lists extracted", logger.String("dir", opts.OutDir))
	return nil
}

// readMBIDColumn pulls column 2 out of every tab-separated row.
func readMBIDColumn(r *tar.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		ids = append(ids, fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
