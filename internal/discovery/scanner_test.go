package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	// Create a temporary directory structure for testing
	tmpDir, err := os.MkdirTemp("", "wtr-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create test directory structure
	testDirs := []string{
		"auth",
		"shop",
		"node_modules",
		".cache",
	}
	for _, dir := range testDirs {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("failed to create dir %s: %v", dir, err)
		}
	}

	// Create spec files
	testFiles := []string{
		"auth/login.spec.ts",
		"shop/cart.spec.ts",
		"shop/checkout.spec.js",
		"node_modules/pkg/dep.spec.ts",
		".cache/stale.spec.ts",
		"helpers.ts",
	}
	for _, file := range testFiles {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("test('x', () => {});"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"node_modules"})

	t.Run("scans spec files correctly", func(t *testing.T) {
		cases, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Should find 3 spec files, skipping node_modules and hidden dirs
		if len(cases) != 3 {
			t.Errorf("expected 3 cases, got %d", len(cases))
		}

		found := make(map[string]bool)
		for _, c := range cases {
			found[c.Name] = true
			if c.Code == "" {
				t.Errorf("expected code to be loaded for %s", c.Name)
			}
		}
		for _, name := range []string{"login", "cart", "checkout"} {
			if !found[name] {
				t.Errorf("expected to find case %s", name)
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "testfile.txt")
		os.WriteFile(testFile, []byte("test"), 0644)
		_, err := scanner.Scan(testFile)
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}
