package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wtr/internal/domain"
)

// specSuffixes are the file endings generated spec files use.
var specSuffixes = []string{".spec.ts", ".spec.js"}

// Scanner scans for generated spec files in a directory
type Scanner struct {
	skipDirs map[string]bool
	parser   *Parser
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, parser: NewParser()}
}

// Scan finds all generated spec files in the given root directory and
// loads each one as a test case
func (s *Scanner) Scan(root string) ([]domain.TestCase, error) {
	var cases []domain.TestCase

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("specs path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("specs path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if !isSpecFile(d.Name()) {
			return nil
		}

		testCase, err := s.parser.ParseSpecFile(path)
		if err != nil {
			return err
		}
		cases = append(cases, testCase)
		return nil
	})

	return cases, err
}

func isSpecFile(name string) bool {
	for _, suffix := range specSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
