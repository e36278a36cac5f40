package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"wtr/internal/domain"
)

// Parser reads generated spec files into test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Header comments the generator writes at the top of each spec file:
//
//	// @name: checkout-flow
//	// @category: functional
//	// @route: /checkout
var (
	nameHeader     = regexp.MustCompile(`(?m)^//\s*@name:\s*(\S+)`)
	categoryHeader = regexp.MustCompile(`(?m)^//\s*@category:\s*(\S+)`)
	routeHeader    = regexp.MustCompile(`(?m)^//\s*@route:\s*(\S+)`)
)

// ParseSpecFile loads one generated spec file as a test case. Missing
// headers fall back to a functional case on the root route named after
// the file.
func (p *Parser) ParseSpecFile(path string) (domain.TestCase, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.TestCase{}, fmt.Errorf("error reading file %s: %w", path, err)
	}
	text := string(content)

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.TrimSuffix(name, ".spec")

	testCase := domain.TestCase{
		Name:     name,
		Category: domain.CategoryFunctional,
		Route:    "/",
		File:     path,
		Code:     text,
	}

	if m := nameHeader.FindStringSubmatch(text); len(m) > 1 {
		testCase.Name = m[1]
	}
	if m := categoryHeader.FindStringSubmatch(text); len(m) > 1 {
		testCase.Category = domain.ParseCategory(m[1])
	}
	if m := routeHeader.FindStringSubmatch(text); len(m) > 1 {
		testCase.Route = m[1]
	}

	return testCase, nil
}
