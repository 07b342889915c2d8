package hook

import "github.com/stretchr/testify/mock"

// MatchEntry creates a custom matcher for entry arguments in mocks
func MatchEntry(matcher func(Entry) bool) interface{} {
	return mock.MatchedBy(matcher)
}
