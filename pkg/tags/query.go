package tags

// Query is a byte-coded boolean expression over tag containers. It is
// built once from a tree of match predicates and expression combinators,
// then evaluated repeatedly and cheaply via Matches — the compiled form
// avoids re-walking a predicate tree on every gate check.
type Query struct {
	dict []Tag
	code []byte
}

const (
	opAnyMatch      byte = 1
	opAnyMatchExact byte = 2
	opAllMatch      byte = 3
	opAllMatchExact byte = 4
	opNoMatch       byte = 5
	opNoMatchExact  byte = 6
	opAnyExpr       byte = 7
	opAllExpr       byte = 8
	opNoExpr        byte = 9
)

func newLeaf(op byte, c Container) *Query {
	ts := c.Tags()
	dict := make([]Tag, len(ts))
	copy(dict, ts)
	code := make([]byte, 0, 2+len(ts))
	code = append(code, op, byte(len(ts)))
	for i := range ts {
		code = append(code, byte(i))
	}
	return &Query{dict: dict, code: code}
}

// MatchAnyTags builds a Query that matches a container holding a
// hierarchy match for any tag in source.
func MatchAnyTags(source Container) *Query { return newLeaf(opAnyMatch, source) }

// MatchAnyTagsExact is MatchAnyTags with exact (non-hierarchy) matching.
func MatchAnyTagsExact(source Container) *Query { return newLeaf(opAnyMatchExact, source) }

// MatchAllTags builds a Query that matches a container holding a
// hierarchy match for every tag in source. An empty source matches
// vacuously.
func MatchAllTags(source Container) *Query { return newLeaf(opAllMatch, source) }

// MatchAllTagsExact is MatchAllTags with exact matching.
func MatchAllTagsExact(source Container) *Query { return newLeaf(opAllMatchExact, source) }

// MatchNoTags builds a Query that matches a container holding no
// hierarchy match for any tag in source. An empty source matches
// vacuously.
func MatchNoTags(source Container) *Query { return newLeaf(opNoMatch, source) }

// MatchNoTagsExact is MatchNoTags with exact matching.
func MatchNoTagsExact(source Container) *Query { return newLeaf(opNoMatchExact, source) }

// MatchTag builds a Query equivalent to MatchAnyTags over a single-tag
// container.
func MatchTag(t Tag) *Query { return newLeaf(opAnyMatch, NewContainer(t)) }

// MatchTagExact builds a Query equivalent to MatchAnyTagsExact over a
// single-tag container.
func MatchTagExact(t Tag) *Query { return newLeaf(opAnyMatchExact, NewContainer(t)) }

func combine(op byte, qs []*Query) *Query {
	dict := make([]Tag, 0)
	lookup := make(map[string]byte)
	codes := make([][]byte, len(qs))
	for qi, q := range qs {
		localToGlobal := make([]byte, len(q.dict))
		for li, t := range q.dict {
			gi, ok := lookup[t.key]
			if !ok {
				gi = byte(len(dict))
				lookup[t.key] = gi
				dict = append(dict, t)
			}
			localToGlobal[li] = gi
		}
		codes[qi] = remapCode(q.code, localToGlobal)
	}
	code := make([]byte, 0, 2+len(qs))
	code = append(code, op, byte(len(qs)))
	for _, c := range codes {
		code = append(code, c...)
	}
	return &Query{dict: dict, code: code}
}

// remapCode rewrites the dictionary-index bytes of a leaf node's operand
// list using m, recursing into composite sub-expressions unchanged in
// structure.
func remapCode(code []byte, m []byte) []byte {
	out := make([]byte, len(code))
	pos := 0
	var walk func()
	walk = func() {
		op := code[pos]
		out[pos] = op
		pos++
		n := int(code[pos])
		out[pos] = code[pos]
		pos++
		if op <= opNoMatchExact {
			for i := 0; i < n; i++ {
				out[pos] = m[code[pos]]
				pos++
			}
			return
		}
		for i := 0; i < n; i++ {
			walk()
		}
	}
	walk()
	return out
}

// AnyExpressionsMatch builds a Query that matches if any of qs matches.
func AnyExpressionsMatch(qs ...*Query) *Query { return combine(opAnyExpr, qs) }

// AllExpressionsMatch builds a Query that matches if every one of qs
// matches. An empty qs matches vacuously.
func AllExpressionsMatch(qs ...*Query) *Query { return combine(opAllExpr, qs) }

// NoExpressionsMatch builds a Query that matches if none of qs matches.
// An empty qs matches vacuously.
func NoExpressionsMatch(qs ...*Query) *Query { return combine(opNoExpr, qs) }

// Matches evaluates the compiled expression against c. Evaluation never
// panics on a well-formed Query (one built via the constructors above);
// it walks the byte stream once, short-circuiting each opcode's operand
// scan via a skip flag once the opcode's result is decided, while still
// consuming the remaining operand bytes to keep the cursor aligned.
func (q *Query) Matches(c Container) bool {
	if len(q.code) == 0 {
		return false
	}
	pos := 0
	return evalNode(&pos, q.code, q.dict, c)
}

func evalNode(pos *int, code []byte, dict []Tag, c Container) bool {
	op := code[*pos]
	*pos++
	n := int(code[*pos])
	*pos++
	if op <= opNoMatchExact {
		return evalLeaf(op, n, pos, code, dict, c)
	}
	return evalComposite(op, n, pos, code, dict, c)
}

func evalLeaf(op byte, n int, pos *int, code []byte, dict []Tag, c Container) bool {
	result := op == opAllMatch || op == opAllMatchExact || op == opNoMatch || op == opNoMatchExact
	skip := false
	for i := 0; i < n; i++ {
		idx := code[*pos]
		*pos++
		if skip {
			continue
		}
		t := dict[idx]
		var matched bool
		switch op {
		case opAnyMatch, opAllMatch, opNoMatch:
			matched = c.HasTag(t)
		default:
			matched = c.HasTagExact(t)
		}
		switch op {
		case opAnyMatch, opAnyMatchExact:
			if matched {
				result, skip = true, true
			}
		case opAllMatch, opAllMatchExact:
			if !matched {
				result, skip = false, true
			}
		case opNoMatch, opNoMatchExact:
			if matched {
				result, skip = false, true
			}
		}
	}
	return result
}

func evalComposite(op byte, n int, pos *int, code []byte, dict []Tag, c Container) bool {
	result := op == opAllExpr || op == opNoExpr
	skip := false
	for i := 0; i < n; i++ {
		sub := evalNode(pos, code, dict, c)
		if skip {
			continue
		}
		switch op {
		case opAnyExpr:
			if sub {
				result, skip = true, true
			}
		case opAllExpr:
			if !sub {
				result, skip = false, true
			}
		case opNoExpr:
			if sub {
				result, skip = false, true
			}
		}
	}
	return result
}
