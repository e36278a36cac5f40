package selector

import "fmt"

// Strategy identifies one way of locating an element on a page.
type Strategy string

const (
	StrategyTestID     Strategy = "test_id"
	StrategyRole       Strategy = "role"
	StrategyText       Strategy = "text"
	StrategySemantic   Strategy = "semantic"
	StrategyStructural Strategy = "structural"
	StrategyCSS        Strategy = "css"
)

// strategyRank orders strategies from most stable to most brittle.
// Unknown strategies sort after every known one.
var strategyRank = map[Strategy]int{
	StrategyTestID:     0,
	StrategyRole:       1,
	StrategyText:       2,
	StrategySemantic:   3,
	StrategyStructural: 4,
	StrategyCSS:        5,
}

func rank(s Strategy) int {
	if r, ok := strategyRank[s]; ok {
		return r
	}
	return len(strategyRank)
}

// Candidate is one concrete way of locating an element. Name carries the
// accessible name and is only meaningful for the role strategy.
type Candidate struct {
	Strategy Strategy `json:"strategy"`
	Value    string   `json:"value"`
	Name     string   `json:"name,omitempty"`
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s(%s)", c.Strategy, c.Value)
}

// Chain is a fallback chain: candidates ordered from most preferred to least,
// with no duplicate strategy+value pairs.
type Chain []Candidate

// ComponentMetadata is what the generator observed about an element beyond
// its explicit candidates. Empty fields mean the attribute was absent.
type ComponentMetadata struct {
	TestID string `json:"test_id,omitempty"`
	Role   string `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`
	Text   string `json:"text,omitempty"`
}
