// Package source resolves table input from files, URLs, and standard input.
package source

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrFileNotFound indicates the named input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// Stdin is the conventional source name for reading standard input.
const Stdin = "-"

// stdin is swappable for tests.
var stdin io.Reader = os.Stdin

// IsURL reports whether the source names an HTTP or HTTPS resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch reads the full content of a source. "-" reads standard input,
// http and https URLs are fetched over the network, and anything else is
// treated as a file path. The returned content type is non-empty only
// for URL sources that declared one.
func Fetch(source string) (data []byte, contentType string, err error) {
	switch {
	case source == Stdin:
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "", nil
	case IsURL(source):
		return fetchURL(source)
	default:
		data, err = readFile(source)
		return data, "", err
	}
}

func fetchURL(url string) ([]byte, string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response from %s: %w", url, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
