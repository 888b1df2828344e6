package internal

import (
	"fmt"
	"strings"
	"time"
)

// Filter is a boolean predicate over tagged intervals.
//
// Internally a filter is a reverse-Polish sequence of nodes evaluated with a
// small value stack, so combining two filters is an append plus one operator
// node and equality is structural over the sequence. Filters are immutable
// values; And, Or and Not return new filters.
type Filter struct {
	nodes []filterNode
}

type nodeKind uint8

const (
	nodeTrue nodeKind = iota
	nodeFalse
	nodeHasTag
	nodeIsClosed
	nodeStartedBefore
	nodeEndedBefore
	nodeShorterThan
	nodeStartedBeforeStrict
	nodeEndedBeforeStrict
	nodeShorterThanStrict

	nodeNot
	nodeAnd
	nodeOr
)

type filterNode struct {
	kind nodeKind
	tag  TagID
	time time.Time
	dur  time.Duration
}

// ConstValue is the result of evaluating a filter without reference to an
// interval.
type ConstValue uint8

const (
	ConstFalse ConstValue = iota
	ConstTrue
	NonConst
)

// Eval evaluates the filter against the given interval. An empty filter
// evaluates to false.
func (f Filter) Eval(ival TaggedInterval) bool {
	var stack boolStack
	for _, n := range f.nodes {
		n.eval(&stack, ival)
	}
	return stack.top()
}

// EvalConst attempts to fold the filter to a constant truth value without
// reference to any interval. Interval-dependent terminals yield NonConst;
// And/Or short-circuit on a constant operand.
func (f Filter) EvalConst() ConstValue {
	var stack constStack
	for _, n := range f.nodes {
		n.evalConst(&stack)
	}
	return stack.top()
}

// EvalsTrue reports whether the filter evaluates to true for every interval.
func (f Filter) EvalsTrue() bool {
	return f.EvalConst() == ConstTrue
}

// EvalsFalse reports whether the filter evaluates to false for every
// interval.
func (f Filter) EvalsFalse() bool {
	return f.EvalConst() == ConstFalse
}

// And combines two filters conjunctively, simplifying immediately when
// either operand is the literal True or False filter.
func (f Filter) And(other Filter) Filter {
	switch {
	case f.isLiteralTrue():
		return other
	case other.isLiteralTrue():
		return f
	case f.isLiteralFalse():
		return f
	case other.isLiteralFalse():
		return other
	}
	return f.join(other, nodeAnd)
}

// Or combines two filters disjunctively, simplifying immediately when either
// operand is the literal True or False filter.
func (f Filter) Or(other Filter) Filter {
	switch {
	case f.isLiteralTrue():
		return f
	case other.isLiteralTrue():
		return other
	case f.isLiteralFalse():
		return other
	case other.isLiteralFalse():
		return f
	}
	return f.join(other, nodeOr)
}

// Not inverts the filter. Only the literal True and False filters are
// simplified; double negation of a non-constant filter is preserved.
func (f Filter) Not() Filter {
	switch {
	case f.isLiteralTrue():
		return FilterFalse()
	case f.isLiteralFalse():
		return FilterTrue()
	}
	nodes := make([]filterNode, 0, len(f.nodes)+1)
	nodes = append(nodes, f.nodes...)
	nodes = append(nodes, filterNode{kind: nodeNot})
	return Filter{nodes: nodes}
}

// Equal reports structural equality of two filters: the same node sequence,
// with time terminals compared by instant.
func (f Filter) Equal(other Filter) bool {
	if len(f.nodes) != len(other.nodes) {
		return false
	}
	for i, n := range f.nodes {
		m := other.nodes[i]
		if n.kind != m.kind || n.tag != m.tag || n.dur != m.dur || !n.time.Equal(m.time) {
			return false
		}
	}
	return true
}

func (f Filter) join(other Filter, op nodeKind) Filter {
	nodes := make([]filterNode, 0, len(f.nodes)+len(other.nodes)+1)
	nodes = append(nodes, f.nodes...)
	nodes = append(nodes, other.nodes...)
	nodes = append(nodes, filterNode{kind: op})
	return Filter{nodes: nodes}
}

func (f Filter) isLiteralTrue() bool {
	return len(f.nodes) == 1 && f.nodes[0].kind == nodeTrue
}

func (f Filter) isLiteralFalse() bool {
	return len(f.nodes) == 1 && f.nodes[0].kind == nodeFalse
}

// FilterTrue returns the filter that passes every interval.
func FilterTrue() Filter {
	return terminal(filterNode{kind: nodeTrue})
}

// FilterFalse returns the filter that passes no interval.
func FilterFalse() Filter {
	return terminal(filterNode{kind: nodeFalse})
}

// HasTag passes intervals carrying the given tag.
func HasTag(tag TagID) Filter {
	return terminal(filterNode{kind: nodeHasTag, tag: tag})
}

// IsClosed passes closed intervals.
func IsClosed() Filter {
	return terminal(filterNode{kind: nodeIsClosed})
}

// IsOpen passes open (in-progress) intervals.
func IsOpen() Filter {
	return IsClosed().Not()
}

// StartedBefore passes intervals whose start is no later than t.
func StartedBefore(t time.Time) Filter {
	return terminal(filterNode{kind: nodeStartedBefore, time: t.UTC()})
}

// StartedBeforeStrict passes intervals whose start is strictly before t.
func StartedBeforeStrict(t time.Time) Filter {
	return terminal(filterNode{kind: nodeStartedBeforeStrict, time: t.UTC()})
}

// EndedBefore passes closed intervals whose end is no later than t. Open
// intervals never pass.
func EndedBefore(t time.Time) Filter {
	return terminal(filterNode{kind: nodeEndedBefore, time: t.UTC()})
}

// EndedBeforeStrict passes closed intervals whose end is strictly before t.
// Open intervals never pass.
func EndedBeforeStrict(t time.Time) Filter {
	return terminal(filterNode{kind: nodeEndedBeforeStrict, time: t.UTC()})
}

// ShorterThan passes intervals whose duration is at most d.
func ShorterThan(d time.Duration) Filter {
	return terminal(filterNode{kind: nodeShorterThan, dur: d})
}

// ShorterThanStrict passes intervals whose duration is strictly less than d.
func ShorterThanStrict(d time.Duration) Filter {
	return terminal(filterNode{kind: nodeShorterThanStrict, dur: d})
}

// StartedAfter passes intervals whose start is at or after t.
func StartedAfter(t time.Time) Filter {
	return StartedBeforeStrict(t).Not()
}

// StartedAfterStrict passes intervals whose start is strictly after t.
func StartedAfterStrict(t time.Time) Filter {
	return StartedBefore(t).Not()
}

// EndedAfter passes closed intervals whose end is strictly after t. An
// interval ending exactly at t does not pass. Open intervals never pass;
// combine with IsOpen when "still running" should count.
func EndedAfter(t time.Time) Filter {
	return IsClosed().And(EndedBefore(t).Not())
}

// EndedAfterStrict passes closed intervals whose end is at or after t.
func EndedAfterStrict(t time.Time) Filter {
	return IsClosed().And(EndedBeforeStrict(t).Not())
}

// LongerThan passes intervals whose duration is strictly greater than d.
func LongerThan(d time.Duration) Filter {
	return ShorterThan(d).Not()
}

// LongerThanStrict passes intervals whose duration is at least d. Like
// EndedAfterStrict, the strict sibling is the one that includes an exact
// match.
func LongerThanStrict(d time.Duration) Filter {
	return ShorterThanStrict(d).Not()
}

// AndAll folds the given filters with And. AndAll of nothing is the True
// filter: it matches everything.
func AndAll(filters ...Filter) Filter {
	res := FilterTrue()
	for _, f := range filters {
		res = res.And(f)
	}
	return res
}

// OrAll folds the given filters with Or. OrAll of nothing is the False
// filter: it matches nothing.
func OrAll(filters ...Filter) Filter {
	res := FilterFalse()
	for _, f := range filters {
		res = res.Or(f)
	}
	return res
}

func terminal(n filterNode) Filter {
	return Filter{nodes: []filterNode{n}}
}

func (n filterNode) eval(stack *boolStack, ival TaggedInterval) {
	switch n.kind {
	case nodeTrue:
		stack.push(true)
	case nodeFalse:
		stack.push(false)
	case nodeHasTag:
		stack.push(ival.Tag() == n.tag)
	case nodeIsClosed:
		stack.push(ival.IsClosed())
	case nodeStartedBefore:
		stack.push(!ival.Start().After(n.time))
	case nodeStartedBeforeStrict:
		stack.push(ival.Start().Before(n.time))
	case nodeEndedBefore:
		end, ok := ival.End()
		stack.push(ok && !end.After(n.time))
	case nodeEndedBeforeStrict:
		end, ok := ival.End()
		stack.push(ok && end.Before(n.time))
	case nodeShorterThan:
		stack.push(ival.Duration() <= n.dur)
	case nodeShorterThanStrict:
		stack.push(ival.Duration() < n.dur)

	case nodeNot:
		stack.push(!stack.pop())
	case nodeAnd:
		b2, b1 := stack.pop(), stack.pop()
		stack.push(b1 && b2)
	case nodeOr:
		b2, b1 := stack.pop(), stack.pop()
		stack.push(b1 || b2)
	}
}

func (n filterNode) evalConst(stack *constStack) {
	switch n.kind {
	case nodeTrue:
		stack.push(ConstTrue)
	case nodeFalse:
		stack.push(ConstFalse)
	case nodeNot:
		stack.push(stack.pop().not())
	case nodeAnd:
		b2, b1 := stack.pop(), stack.pop()
		stack.push(b1.and(b2))
	case nodeOr:
		b2, b1 := stack.pop(), stack.pop()
		stack.push(b1.or(b2))
	default:
		stack.push(NonConst)
	}
}

func (c ConstValue) not() ConstValue {
	switch c {
	case ConstTrue:
		return ConstFalse
	case ConstFalse:
		return ConstTrue
	}
	return NonConst
}

func (c ConstValue) and(other ConstValue) ConstValue {
	switch {
	case c == ConstFalse || other == ConstFalse:
		return ConstFalse
	case c == ConstTrue:
		return other
	case other == ConstTrue:
		return c
	}
	return NonConst
}

func (c ConstValue) or(other ConstValue) ConstValue {
	switch {
	case c == ConstTrue || other == ConstTrue:
		return ConstTrue
	case c == ConstFalse:
		return other
	case other == ConstFalse:
		return c
	}
	return NonConst
}

type boolStack []bool

func (s *boolStack) push(b bool) { *s = append(*s, b) }

func (s *boolStack) pop() bool {
	if len(*s) == 0 {
		return false
	}
	b := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return b
}

func (s boolStack) top() bool {
	if len(s) == 0 {
		return false
	}
	return s[len(s)-1]
}

type constStack []ConstValue

func (s *constStack) push(c ConstValue) { *s = append(*s, c) }

func (s *constStack) pop() ConstValue {
	if len(*s) == 0 {
		return ConstFalse
	}
	c := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return c
}

func (s constStack) top() ConstValue {
	if len(s) == 0 {
		return ConstFalse
	}
	return s[len(s)-1]
}

// String renders the postfix node sequence as an expression tree, for
// debug logging.
func (f Filter) String() string {
	if len(f.nodes) == 0 {
		return "<empty>"
	}
	var b strings.Builder
	writeTree(&b, f.nodes, len(f.nodes))
	return b.String()
}

func writeTree(b *strings.Builder, nodes []filterNode, idx int) int {
	if idx == 0 {
		return 0
	}
	n := nodes[idx-1]
	switch n.kind {
	case nodeTrue:
		b.WriteString("True")
	case nodeFalse:
		b.WriteString("False")
	case nodeHasTag:
		fmt.Fprintf(b, "HasTag(%d)", n.tag)
	case nodeIsClosed:
		b.WriteString("IsClosed")
	case nodeStartedBefore:
		fmt.Fprintf(b, "StartedBefore(%s)", n.time.Format(time.RFC3339))
	case nodeStartedBeforeStrict:
		fmt.Fprintf(b, "StartedBeforeStrict(%s)", n.time.Format(time.RFC3339))
	case nodeEndedBefore:
		fmt.Fprintf(b, "EndedBefore(%s)", n.time.Format(time.RFC3339))
	case nodeEndedBeforeStrict:
		fmt.Fprintf(b, "EndedBeforeStrict(%s)", n.time.Format(time.RFC3339))
	case nodeShorterThan:
		fmt.Fprintf(b, "ShorterThan(%s)", n.dur)
	case nodeShorterThanStrict:
		fmt.Fprintf(b, "ShorterThanStrict(%s)", n.dur)

	case nodeNot:
		b.WriteString("Not(")
		idx = writeTree(b, nodes, idx-1) + 1
		b.WriteString(")")
	case nodeAnd:
		b.WriteString("And(")
		next := writeTree(b, nodes, idx-1)
		b.WriteString(", ")
		idx = writeTree(b, nodes, next) + 1
		b.WriteString(")")
	case nodeOr:
		b.WriteString("Or(")
		next := writeTree(b, nodes, idx-1)
		b.WriteString(", ")
		idx = writeTree(b, nodes, next) + 1
		b.WriteString(")")
	}
	return idx - 1
}
