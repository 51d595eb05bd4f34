package suppressions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/viant/afs"

	"github.com/wharflab/javalint/internal/logging"
)

// ErrNotFound is returned by Load when a required document does not exist.
var ErrNotFound = errors.New("suppressions document not found")

// Options configures Load.
type Options struct {
	// Optional turns a missing or unreachable document into an empty one.
	// Malformed documents are errors either way.
	Optional bool

	// MaxTries bounds fetch attempts for remote locations. Zero means 3.
	MaxTries uint

	// FS overrides the storage service. Nil uses afs.New().
	FS afs.Service
}

// Load reads the document at location, a local path or a URL understood by
// afs (file://, http(s)://, s3://, gs://, ...).
//
// Remote fetches are retried with exponential backoff; a document that does
// not exist is not retried.
func Load(ctx context.Context, location string, opts Options) (*Document, error) {
	log := logging.For("suppressions").WithField("location", location)

	fs := opts.FS
	if fs == nil {
		fs = afs.New()
	}
	url, err := normalize(location)
	if err != nil {
		return nil, err
	}

	data, err := fetch(ctx, fs, url, opts.MaxTries)
	if err != nil {
		if opts.Optional {
			log.WithError(err).Debug("optional suppressions document unavailable")
			return newDocument(location), nil
		}
		return nil, err
	}

	doc, err := Parse(data, location, FormatAuto)
	if err != nil {
		return nil, err
	}
	log.WithField("patterns", doc.Patterns.Len()).WithField("queries", len(doc.Queries)).Debug("loaded suppressions")
	return doc, nil
}

func normalize(location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("%w: empty location", ErrNotFound)
	}
	if isRemote(location) || strings.HasPrefix(location, "file://") {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", location, err)
	}
	return abs, nil
}

func isRemote(location string) bool {
	scheme, _, ok := strings.Cut(location, "://")
	return ok && scheme != "file"
}

func fetch(ctx context.Context, fs afs.Service, url string, maxTries uint) ([]byte, error) {
	if maxTries == 0 {
		maxTries = 3
	}
	if !isRemote(url) {
		maxTries = 1
	}
	return backoff.Retry(ctx, func() ([]byte, error) {
		exists, err := fs.Exists(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", url, err)
		}
		if !exists {
			return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
		}
		data, err := fs.DownloadWithURL(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", url, err)
		}
		return data, nil
	},
		backoff.WithBackOff(newFetchBackoff()),
		backoff.WithMaxTries(maxTries),
		backoff.WithMaxElapsedTime(0),
	)
}

func newFetchBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.Multiplier = 2.0
	return b
}
