// Package util - Input file enumeration.
package util

import (
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Source describes how an input argument was interpreted.
type Source int

const (
	// SourceFile is a single image file.
	SourceFile Source = iota
	// SourceDir is a directory of image files.
	SourceDir
	// SourceURL is a remote image downloaded before processing.
	SourceURL
)

// imageExtensions are the file extensions treated as images.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile reports whether the path has a recognized image extension.
func IsImageFile(p string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(p))]
}

// ListImageFiles expands an input argument into a concrete list of image
// files.
//
// Arguments:
//   - input: An image file path, a directory containing images, or an
//     http(s) URL. URLs are downloaded to a temporary file.
//
// Returns:
//   - []string: Paths of the image files, sorted for directories.
//   - Source: How the input was interpreted.
//   - error: An error if the input cannot be expanded.
func ListImageFiles(input string) ([]string, Source, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		file, err := downloadImage(input)
		if err != nil {
			return nil, SourceURL, err
		}
		return []string{file}, SourceURL, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, SourceFile, errors.Wrapf(err, "failed to stat input %s", input)
	}

	if !info.IsDir() {
		if !IsImageFile(input) {
			return nil, SourceFile, errors.Errorf("unsupported image file %s", input)
		}
		return []string{input}, SourceFile, nil
	}

	var files []string
	walkErr := filepath.WalkDir(input, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsImageFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, SourceDir, errors.Wrapf(walkErr, "failed to walk directory %s", input)
	}
	if len(files) == 0 {
		return nil, SourceDir, errors.Errorf("no image files found under %s", input)
	}

	sort.Strings(files)
	return files, SourceDir, nil
}

// OutputName derives the output filename for a processed file. For
// directory inputs the name is the path relative to the input directory
// with separators flattened to underscores, so results from nested
// directories cannot collide; otherwise it is the basename.
//
// Arguments:
//   - file: The processed file path.
//   - input: The original input argument.
//   - source: How the input was interpreted.
//
// Returns:
//   - string: The output filename.
func OutputName(file, input string, source Source) string {
	if source == SourceDir {
		rel, err := filepath.Rel(input, file)
		if err == nil {
			return strings.ReplaceAll(rel, string(filepath.Separator), "_")
		}
	}
	return filepath.Base(file)
}

// ReplaceExt swaps the extension of a filename.
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// downloadImage fetches a remote image into the temp directory and
// returns its local path.
func downloadImage(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid URL %s", rawURL)
	}
	name := path.Base(parsed.Path)
	if name == "/" || name == "." || !IsImageFile(name) {
		return "", errors.Errorf("URL %s does not name an image file", rawURL)
	}

	resp, err := http.Get(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch %s", rawURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("failed to fetch %s: %s", rawURL, resp.Status)
	}

	out, err := os.CreateTemp("", "godetect-*-"+name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(out.Name())
		return "", errors.Wrapf(err, "failed to download %s", rawURL)
	}
	return out.Name(), nil
}
