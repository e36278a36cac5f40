package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"wtr/internal/domain"
)

func TestParser_ParseSpecFile(t *testing.T) {
	parser := NewParser()

	tmpDir, err := os.MkdirTemp("", "wtr-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("reads generator headers", func(t *testing.T) {
		specContent := `// @name: checkout-flow
// @category: functional
// @route: /checkout

import { test, expect } from '@playwright/test';

test('checkout flow', async ({ page }) => {
  await page.goto('/checkout');
});
`
		specFile := filepath.Join(tmpDir, "checkout.spec.ts")
		if err := os.WriteFile(specFile, []byte(specContent), 0644); err != nil {
			t.Fatalf("failed to write spec file: %v", err)
		}

		testCase, err := parser.ParseSpecFile(specFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if testCase.Name != "checkout-flow" {
			t.Errorf("expected name checkout-flow, got %q", testCase.Name)
		}
		if testCase.Category != domain.CategoryFunctional {
			t.Errorf("expected functional category, got %q", testCase.Category)
		}
		if testCase.Route != "/checkout" {
			t.Errorf("expected route /checkout, got %q", testCase.Route)
		}
		if testCase.Code != specContent {
			t.Error("expected code to carry the whole file")
		}
		if testCase.File != specFile {
			t.Errorf("expected file %s, got %s", specFile, testCase.File)
		}
	})

	t.Run("defaults for missing headers", func(t *testing.T) {
		specFile := filepath.Join(tmpDir, "bare.spec.ts")
		if err := os.WriteFile(specFile, []byte("test('bare', () => {});"), 0644); err != nil {
			t.Fatalf("failed to write spec file: %v", err)
		}

		testCase, err := parser.ParseSpecFile(specFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if testCase.Name != "bare" {
			t.Errorf("expected name from file name, got %q", testCase.Name)
		}
		if testCase.Category != domain.CategoryFunctional {
			t.Errorf("expected functional fallback, got %q", testCase.Category)
		}
		if testCase.Route != "/" {
			t.Errorf("expected root route fallback, got %q", testCase.Route)
		}
	})

	t.Run("unknown category falls back to functional", func(t *testing.T) {
		specFile := filepath.Join(tmpDir, "odd.spec.ts")
		if err := os.WriteFile(specFile, []byte("// @category: smoke\ntest('odd', () => {});"), 0644); err != nil {
			t.Fatalf("failed to write spec file: %v", err)
		}

		testCase, err := parser.ParseSpecFile(specFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if testCase.Category != domain.CategoryFunctional {
			t.Errorf("expected functional fallback, got %q", testCase.Category)
		}
	})

	t.Run("api category", func(t *testing.T) {
		specFile := filepath.Join(tmpDir, "health.spec.ts")
		if err := os.WriteFile(specFile, []byte("// @category: api\ntest('health', () => {});"), 0644); err != nil {
			t.Fatalf("failed to write spec file: %v", err)
		}

		testCase, err := parser.ParseSpecFile(specFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if testCase.Category != domain.CategoryApi {
			t.Errorf("expected api category, got %q", testCase.Category)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.ParseSpecFile("/non/existent/file.spec.ts")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}
