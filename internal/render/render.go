// Package render turns sampled MBIDs into generated Go test source. The
// substitution contract is fixed: a test-name fragment (entity kind plus the
// hyphen-stripped MBID), the literal MBID, and the kind's lookup method.
// Everything else is template text and may change freely.
package render

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/leoschwarz/mbtestgen/internal/catalog"
)

// clientImport is the client library the generated tests exercise.
const clientImport = "github.com/leoschwarz/musicbrainz-go"

// preambleTemplate opens the generated file. The shared client is built once
// and handed to every test through newTestClient rather than hiding behind a
// package global each test reaches for implicitly.
const preambleTemplate = `// Code generated by mbtestgen. DO NOT EDIT.
//
// One lookup test per sampled MBID. Regenerate with: mbtestgen generate

package mbtests

import (
	"sync"
	"testing"

	musicbrainz "{{{clientImport}}}"
)

var (
	testClientOnce sync.Once
	testClient     *musicbrainz.Client
	testClientErr  error
)

// newTestClient returns the client shared by the generated tests,
// constructing it on first use.
func newTestClient(t *testing.T) *musicbrainz.Client {
	t.Helper()
	testClientOnce.Do(func() {
		testClient, testClientErr = musicbrainz.NewClient(musicbrainz.Config{
			UserAgent: "{{{userAgent}}}",
		})
	})
	if testClientErr != nil {
		t.Fatalf("constructing client: %v", testClientErr)
	}
	return testClient
}
`

// caseTemplate is one generated lookup test.
const caseTemplate = `
func TestLookup_{{{testName}}}(t *testing.T) {
	client := newTestClient(t)
	if _, err := client.{{{lookupMethod}}}(musicbrainz.MBID("{{{mbid}}}")); err != nil {
		t.Fatalf("lookup {{{kind}}} {{{mbid}}}: %v", err)
	}
}
`

// Fragment builds the test-name fragment for one identifier:
// the entity kind joined to the MBID with its hyphens removed.
func Fragment(kind catalog.Kind, mbid string) string {
	return kind.Name + "_" + strings.ReplaceAll(mbid, "-", "")
}

// Preamble renders the shared file header with the given user agent baked
// into the generated client configuration.
func Preamble(userAgent string) (string, error) {
	out, err := raymond.Render(preambleTemplate, map[string]string{
		"clientImport": clientImport,
		"userAgent":    userAgent,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render preamble: %w", err)
	}
	return out, nil
}

// TestCase renders one lookup test for mbid.
func TestCase(kind catalog.Kind, mbid string) (string, error) {
	out, err := raymond.Render(caseTemplate, map[string]string{
		"testName":     Fragment(kind, mbid),
		"lookupMethod": kind.LookupMethod(),
		"kind":         kind.Name,
		"mbid":         mbid,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render test case for %s %s: %w", kind.Name, mbid, err)
	}
	return out, nil
}
