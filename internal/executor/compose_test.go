package executor

import (
	"strings"
	"testing"
	"time"

	"wtr/internal/domain"
	"wtr/pkg/selector"
)

func TestComposeSuite(t *testing.T) {
	suite := domain.Suite{
		Name: "ui-products",
		Cases: []domain.TestCase{
			{
				Name:     "products-list",
				Category: domain.CategoryFunctional,
				Route:    "/products",
				Code:     "test('products list', async ({ page }) => {\n  await page.goto('/products');\n});\n",
			},
			{
				Name:     "products-empty",
				Category: domain.CategoryVisual,
				Route:    "/products",
			},
		},
		Workers: 1,
	}

	code := ComposeSuite(suite)

	if !strings.Contains(code, "// Suite: ui-products (2 cases)") {
		t.Errorf("expected suite header, got %q", code)
	}
	if !strings.Contains(code, "// Case: products-list [functional] route /products") {
		t.Errorf("expected case header, got %q", code)
	}
	if !strings.Contains(code, "await page.goto('/products');") {
		t.Errorf("expected case code to be embedded, got %q", code)
	}
	if !strings.Contains(code, "// (no code for this case)") {
		t.Errorf("expected placeholder for codeless case, got %q", code)
	}
}

func TestBuildChainIndex(t *testing.T) {
	suite := domain.Suite{
		Name: "all",
		Cases: []domain.TestCase{
			{
				Name: "login",
				Steps: []domain.TestStep{
					{Action: "goto", Value: "/login"},
					{
						Action: "click",
						Candidates: []selector.Candidate{
							{Strategy: selector.StrategyCSS, Value: ".submit"},
						},
						Metadata: selector.ComponentMetadata{TestID: "login-submit"},
					},
				},
			},
		},
		Workers: 1,
	}

	idx := BuildChainIndex(suite)

	if len(idx) != 1 {
		t.Fatalf("expected 1 chain, got %d: %v", len(idx), idx)
	}
	chain, ok := idx["login/1"]
	if !ok {
		t.Fatalf("expected chain under login/1, got %v", idx)
	}
	if len(chain) != 2 {
		t.Fatalf("expected 2 candidates, got %v", chain)
	}
	if chain[0].Strategy != selector.StrategyTestID {
		t.Errorf("expected inferred test_id first, got %v", chain[0])
	}
	if chain[1].Strategy != selector.StrategyCSS {
		t.Errorf("expected css fallback second, got %v", chain[1])
	}
}

func TestNewSpec(t *testing.T) {
	suite := domain.Suite{
		Name:    "api-tests",
		Cases:   []domain.TestCase{{Name: "health", Category: domain.CategoryApi, Code: "test('health', () => {});"}},
		Workers: 3,
	}

	spec := NewSpec(suite, 2*time.Minute, []string{"BASE_URL=http://localhost"})

	if spec.SuiteName != "api-tests" {
		t.Errorf("expected suite name api-tests, got %q", spec.SuiteName)
	}
	if spec.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", spec.Workers)
	}
	if spec.Timeout != 2*time.Minute {
		t.Errorf("expected 2m timeout, got %s", spec.Timeout)
	}
	if !strings.Contains(spec.Code, "test('health', () => {});") {
		t.Errorf("expected composed code, got %q", spec.Code)
	}
	if len(spec.Env) != 1 || spec.Env[0] != "BASE_URL=http://localhost" {
		t.Errorf("expected env passthrough, got %v", spec.Env)
	}
}
