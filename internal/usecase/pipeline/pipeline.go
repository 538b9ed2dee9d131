// Package pipeline holds the pieces shared by the folder-processing stages:
// input listing, derived output paths, progress reporting and run counts.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// Result counts what happened to each input file during a folder run.
type Result struct {
	Processed int
	Skipped   int
	Failed    int
}

// ListFiles returns the files in folder with the given extension, sorted by
// name. The extension includes the dot, e.g. ".mp3".
func ListFiles(folder, ext string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(folder, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath derives the output artifact path for an input file by swapping
// the extension, e.g. ("ep.mp3", ".mp3", ".txt") -> "ep.txt".
func OutputPath(inputPath, oldExt, newExt string) string {
	return strings.TrimSuffix(inputPath, oldExt) + newExt
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NewProgressBar creates the progress bar the stage CLIs render while
// walking a folder.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(description),
	)
}
