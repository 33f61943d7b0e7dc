package content

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"effectkit/pkg/retry"
)

// loadDocument reads and parses a single catalog file, retrying
// transient I/O failures with retry.FileSystemRetryConfig.
func loadDocument(path string) (document, error) {
	retrier := retry.NewRetrier(retry.FileSystemRetryConfig())

	var raw []byte
	err := retrier.Execute(context.Background(), func(_ context.Context) error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		raw = b
		return nil
	})
	if err != nil {
		return document{}, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return document{}, err
	}
	return doc, nil
}
