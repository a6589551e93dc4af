package combinator

import (
	"fmt"
	"sync"
)

// RuleID addresses a rule in a Rules arena.
type RuleID int

// Rules is an arena of named grammar rules. A rule can be referenced with Ref
// before it is defined, which is how mutually recursive rules are written.
// Declare and Define are meant for grammar construction; the parsers returned
// by Ref are safe for concurrent use.
type Rules[V any] struct {
	rules []*rule[V]
}

type rule[V any] struct {
	name     string
	thunk    func() Parser[V]
	once     sync.Once
	resolved Parser[V]
}

// NewRules creates an empty arena.
func NewRules[V any]() *Rules[V] {
	return &Rules[V]{}
}

// Declare reserves a rule and returns its id.
func (r *Rules[V]) Declare(name string) RuleID {
	r.rules = append(r.rules, &rule[V]{name: name})
	return RuleID(len(r.rules) - 1)
}

// Define attaches the body of a declared rule. The thunk is called once, on first use.
func (r *Rules[V]) Define(id RuleID, thunk func() Parser[V]) {
	r.rules[id].thunk = thunk
}

// Name returns the declared name of a rule.
func (r *Rules[V]) Name(id RuleID) string {
	return r.rules[id].name
}

// Ref returns a parser that runs the rule. It panics with ErrUndefinedRule
// when run before the rule is defined.
func (r *Rules[V]) Ref(id RuleID) Parser[V] {
	return func(s Stream) Result[V] {
		return r.resolve(id)(s)
	}
}

func (r *Rules[V]) resolve(id RuleID) Parser[V] {
	ru := r.rules[id]
	if ru.thunk == nil {
		panic(fmt.Errorf("%w: %s", ErrUndefinedRule, ru.name))
	}

	ru.once.Do(func() {
		ru.resolved = ru.thunk()
	})

	return ru.resolved
}
