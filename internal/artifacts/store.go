// Package artifacts reads the files the research pipeline leaves on
// disk. Every read is tolerant: a missing or malformed artifact yields
// an empty result plus a diagnostic string instead of an error, because
// artifact loss must never sink a run that produced other output.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"noesis/internal/core/domain"
	"noesis/internal/platform/logx"
)

const (
	searchResultsFile = "search_results.json"
	summaryFile       = "report.md"
	imagesDir         = "images"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// searchDocument mirrors the JSON envelope the search tool writes.
type searchDocument struct {
	Query     string                `json:"query"`
	Timestamp string                `json:"timestamp"`
	Results   []domain.SearchRecord `json:"results"`
}

// Store reads pipeline artifacts rooted at a base directory.
type Store struct {
	baseDir string
	logger  logx.Logger
}

// New creates a Store over baseDir. The directory does not need to
// exist yet; the pipeline creates it on its first successful run.
func New(baseDir string, logger logx.Logger) *Store {
	if logger == nil {
		logger = logx.New()
	}
	return &Store{
		baseDir: baseDir,
		logger:  logger.With("component", "artifacts"),
	}
}

// BaseDir returns the artifact root.
func (s *Store) BaseDir() string { return s.baseDir }

// ReadStructured loads the search results file. A nil slice with a
// non-empty diagnostic means the structured results are unavailable; an
// empty non-nil slice means the file was valid but held no results.
func (s *Store) ReadStructured() ([]domain.SearchRecord, string) {
	path := filepath.Join(s.baseDir, searchResultsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("%s not found", searchResultsFile)
		}
		s.logger.Warn("reading search results", "path", path, "error", err.Error())
		return nil, fmt.Sprintf("%s unreadable: %v", searchResultsFile, err)
	}

	var doc searchDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("malformed search results", "path", path, "error", err.Error())
		return nil, fmt.Sprintf("%s malformed: %v", searchResultsFile, err)
	}

	if doc.Results == nil {
		doc.Results = []domain.SearchRecord{}
	}
	return doc.Results, ""
}

// ReadSummary returns the contents of the pipeline's summary file, or
// the empty string when it is absent or empty.
func (s *Store) ReadSummary() string {
	path := filepath.Join(s.baseDir, summaryFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("reading summary", "path", path, "error", err.Error())
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ListImages returns image paths under the images directory, newest
// first by modification time. Unreadable entries are skipped and noted
// in the diagnostic; the readable subset is still returned.
func (s *Store) ListImages() ([]string, string) {
	dir := filepath.Join(s.baseDir, imagesDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ""
		}
		s.logger.Warn("reading images directory", "path", dir, "error", err.Error())
		return nil, fmt.Sprintf("%s unreadable: %v", imagesDir, err)
	}

	type imageFile struct {
		path    string
		modTime int64
	}

	var images []imageFile
	var skipped []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			skipped = append(skipped, entry.Name())
			continue
		}
		images = append(images, imageFile{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].modTime > images[j].modTime
	})

	paths := make([]string, 0, len(images))
	for _, img := range images {
		paths = append(paths, img.path)
	}

	diag := ""
	if len(skipped) > 0 {
		diag = fmt.Sprintf("skipped unreadable images: %s", strings.Join(skipped, ", "))
	}
	return paths, diag
}
