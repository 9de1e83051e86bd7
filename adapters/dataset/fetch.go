package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"parking-cost/core/catalog"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"
)

// maxDatasetSize caps a downloaded dataset
const maxDatasetSize = 32 << 20

// Fetcher downloads datasets from a remote URL
type Fetcher struct {
	Client *http.Client
}

// NewFetcher creates a fetcher whose requests give up after timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: timeout}}
}

// Fetch downloads and decodes a dataset. It returns the raw bytes as well so
// the caller can store them unchanged.
func (f *Fetcher) Fetch(ctx context.Context, url string, format Format) (*catalog.Catalog, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, errors.Wrapf(errors.TypeInput, err, "bad dataset URL %q", url)
	}

	logging.Debug("fetching dataset", zap.String("url", url))

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, nil, errors.Network("dataset download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, errors.Network(fmt.Sprintf("dataset download returned %s", resp.Status), nil).
			WithContext("url", url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetSize+1))
	if err != nil {
		return nil, nil, errors.Network("reading dataset body", err)
	}
	if len(data) > maxDatasetSize {
		return nil, nil, errors.Newf(errors.TypeInput, "dataset larger than %d bytes", maxDatasetSize)
	}

	c, err := Parse(data, url, format)
	if err != nil {
		return nil, nil, err
	}
	return c, data, nil
}

// Refresh fetches a dataset and installs it in store when it is newer than
// the current one. It reports whether the store changed.
func (f *Fetcher) Refresh(ctx context.Context, store *catalog.Store, url string, format Format) (bool, []byte, error) {
	c, data, err := f.Fetch(ctx, url, format)
	if err != nil {
		return false, nil, err
	}

	if !store.ReplaceIfNewer(c) {
		logging.Info("catalog is up to date",
			zap.String("current", store.Load().Version),
			zap.String("remote", c.Version))
		return false, data, nil
	}

	logging.Info("catalog updated", zap.String("version", c.Version))
	return true, data, nil
}
