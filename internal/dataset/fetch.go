package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/clinflow/clinflow-go/internal/errors"
	"github.com/clinflow/clinflow-go/internal/logging"
)

// Fetch downloads the raw dataset CSV from url into path. The download is
// skipped when the file already exists. Returns the path to the local file.
func Fetch(ctx context.Context, url, path string) (string, error) {
	log := logging.ForService("dataset")

	if _, err := os.Stat(path); err == nil {
		log.Info("dataset already exists, skipping download", "path", path)
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.New(fmt.Errorf("creating directory for %s: %w", path, err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Build()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", errors.New(fmt.Errorf("building request for %s: %w", url, err)).
			Component("dataset").
			Category(errors.CategoryNetwork).
			Build()
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.New(fmt.Errorf("fetching dataset from %s: %w", url, err)).
			Component("dataset").
			Category(errors.CategoryNetwork).
			Context("url", url).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("fetching dataset from %s: unexpected status %s", url, resp.Status).
			Component("dataset").
			Category(errors.CategoryNetwork).
			Context("status", resp.StatusCode).
			Build()
	}

	file, err := os.Create(path)
	if err != nil {
		return "", errors.New(fmt.Errorf("creating %s: %w", path, err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Build()
	}
	defer file.Close()

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		return "", errors.New(fmt.Errorf("writing %s: %w", path, err)).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Build()
	}

	log.Info("dataset downloaded", "url", url, "path", path, "bytes", written)
	return path, nil
}
