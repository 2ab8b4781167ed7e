package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/casebook/grammar"
)

// Build compiles a grammar specification into a Parser. All problems found
// along the way (bad token patterns, unknown symbols, duplicate rules, table
// conflicts) are collected into a single BuildError instead of stopping at
// the first one.
func Build(spec *grammar.Spec) (*Parser, error) {
	patterns, problems := compileTokens(spec)
	b := &builder{spec: spec, problems: problems}
	b.buildSymbols()
	b.buildProductions()
	if len(b.problems) > 0 {
		return nil, &BuildError{Diagnostics: b.problems}
	}
	b.computeFirstSets()
	states := b.buildStates()
	action, gotoTab := b.buildTables(states)
	if len(b.problems) > 0 {
		return nil, &BuildError{Diagnostics: b.problems}
	}

	ignored := make(map[string]bool, len(spec.Ignored))
	for _, name := range spec.Ignored {
		ignored[name] = true
	}
	return &Parser{
		spec:     spec,
		patterns: patterns,
		ignored:  ignored,
		names:    b.names,
		termID:   b.termID,
		prods:    b.prods,
		action:   action,
		gotoTab:  gotoTab,
	}, nil
}

type production struct {
	lhs  int
	rhs  []int
	name string
}

type actionKind int

const (
	actionShift actionKind = iota
	actionReduce
	actionAccept
)

type parseAction struct {
	kind   actionKind
	target int // next state for shift, production index for reduce
}

// item is an LR item core: position dot inside production prod.
type item struct {
	prod int
	dot  int
}

type fullItem struct {
	prod int
	dot  int
	la   termSet
}

// lrState is a state in the LALR automaton. Kernels are merged by core, so
// lookahead sets grow as new paths reach the same state.
type lrState struct {
	kernel []item
	las    []termSet
	shift  map[int]int
}

type builder struct {
	spec     *grammar.Spec
	names    []string
	termID   map[string]int
	symID    map[string]int
	nTerm    int
	acceptID int
	prods    []production
	prodsOf  [][]int
	nullable []bool
	first    []termSet
	problems []string
}

func (b *builder) problemf(format string, args ...any) {
	b.problems = append(b.problems, fmt.Sprintf(format, args...))
}

// buildSymbols numbers the grammar symbols: terminal 0 is end-of-input,
// then the non-ignored tokens in declaration order, then the rules, then
// the synthetic accept symbol. Ignored tokens never become grammar symbols.
func (b *builder) buildSymbols() {
	b.names = []string{endOfInput}
	b.termID = map[string]int{endOfInput: 0}
	b.symID = map[string]int{endOfInput: 0}

	for _, t := range b.spec.Tokens {
		if _, dup := b.symID[t.Name]; dup {
			b.problemf("duplicate token %s", t.Name)
			continue
		}
		if b.spec.IsIgnored(t.Name) {
			continue
		}
		id := len(b.names)
		b.names = append(b.names, t.Name)
		b.termID[t.Name] = id
		b.symID[t.Name] = id
	}
	b.nTerm = len(b.names)

	for _, r := range b.spec.Rules {
		if _, dup := b.symID[r.Name]; dup {
			if b.spec.TokenIndex(r.Name) >= 0 {
				b.problemf("rule %s collides with a token of the same name", r.Name)
			} else {
				b.problemf("duplicate rule %s", r.Name)
			}
			continue
		}
		id := len(b.names)
		b.names = append(b.names, r.Name)
		b.symID[r.Name] = id
	}

	b.acceptID = len(b.names)
	b.names = append(b.names, "$accept")
}

// buildProductions resolves rule alternatives to symbol ids and keeps only
// the rules reachable from the root. Production 0 is the synthetic accept
// production.
func (b *builder) buildProductions() {
	if b.spec.Root == "" {
		b.problemf("grammar has no root rule")
		return
	}
	rootID, ok := b.symID[b.spec.Root]
	if !ok || rootID < b.nTerm {
		b.problemf("root rule %s is not defined", b.spec.Root)
		return
	}

	type resolved struct {
		lhs  int
		rhs  []int
		name string
	}
	var all []resolved
	refs := make(map[int][]int) // nonterminal -> nonterminals it references
	for _, r := range b.spec.Rules {
		lhs := b.symID[r.Name]
		if lhs < b.nTerm {
			continue // collision already reported
		}
		if len(r.Alternatives) == 0 {
			b.problemf("rule %s has no alternatives", r.Name)
			continue
		}
		for _, alt := range r.Alternatives {
			rhs := make([]int, 0, len(alt))
			bad := false
			for _, sym := range alt {
				id, known := b.symID[sym]
				if !known {
					if b.spec.IsIgnored(sym) && b.spec.TokenIndex(sym) >= 0 {
						b.problemf("rule %s references ignored token %s", r.Name, sym)
					} else {
						b.problemf("rule %s references unknown symbol %s", r.Name, sym)
					}
					bad = true
					continue
				}
				if id >= b.nTerm {
					refs[lhs] = append(refs[lhs], id)
				}
				rhs = append(rhs, id)
			}
			if !bad {
				all = append(all, resolved{lhs: lhs, rhs: rhs, name: r.Name})
			}
		}
	}
	if len(b.problems) > 0 {
		return
	}

	// Rules unreachable from the root are excluded rather than rejected:
	// composed grammars routinely leave base rules dangling.
	reachable := map[int]bool{rootID: true}
	queue := []int{rootID}
	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		for _, ref := range refs[sym] {
			if !reachable[ref] {
				reachable[ref] = true
				queue = append(queue, ref)
			}
		}
	}

	b.prods = []production{{lhs: b.acceptID, rhs: []int{rootID}, name: "$accept"}}
	for _, r := range all {
		if reachable[r.lhs] {
			b.prods = append(b.prods, production{lhs: r.lhs, rhs: r.rhs, name: r.name})
		}
	}

	b.prodsOf = make([][]int, len(b.names))
	for i, p := range b.prods {
		b.prodsOf[p.lhs] = append(b.prodsOf[p.lhs], i)
	}
}

func (b *builder) computeFirstSets() {
	n := len(b.names)
	b.nullable = make([]bool, n)
	b.first = make([]termSet, n)
	for id := range b.first {
		b.first[id] = newTermSet(b.nTerm)
		if id < b.nTerm {
			b.first[id].add(id)
		}
	}
	for changed := true; changed; {
		changed = false
		for _, p := range b.prods {
			allNullable := true
			for _, sym := range p.rhs {
				if b.first[p.lhs].union(b.first[sym]) {
					changed = true
				}
				if !b.nullable[sym] {
					allNullable = false
					break
				}
			}
			if allNullable && !b.nullable[p.lhs] {
				b.nullable[p.lhs] = true
				changed = true
			}
		}
	}
}

// firstOfSeq computes FIRST of a symbol sequence followed by the lookahead
// set la.
func (b *builder) firstOfSeq(seq []int, la termSet) termSet {
	out := newTermSet(b.nTerm)
	for _, sym := range seq {
		out.union(b.first[sym])
		if !b.nullable[sym] {
			return out
		}
	}
	out.union(la)
	return out
}

// buildStates constructs the LALR(1) automaton. States are identified by
// their kernel cores; when a transition reaches an existing core, the
// lookaheads are merged and the state requeued until nothing grows.
func (b *builder) buildStates() []*lrState {
	eof := newTermSet(b.nTerm)
	eof.add(0)
	states := []*lrState{{kernel: []item{{0, 0}}, las: []termSet{eof}}}
	index := map[string]int{coreKey([]item{{0, 0}}): 0}

	work := []int{0}
	queued := []bool{true}
	for len(work) > 0 {
		si := work[0]
		work = work[1:]
		queued[si] = false
		st := states[si]

		full := b.closure(st)
		bySym := make(map[int][]fullItem)
		for _, it := range full {
			rhs := b.prods[it.prod].rhs
			if it.dot < len(rhs) {
				next := rhs[it.dot]
				bySym[next] = append(bySym[next], it)
			}
		}
		syms := make([]int, 0, len(bySym))
		for sym := range bySym {
			syms = append(syms, sym)
		}
		sort.Ints(syms)

		if st.shift == nil {
			st.shift = make(map[int]int, len(syms))
		}
		for _, sym := range syms {
			kernel, las := advanceItems(bySym[sym])
			key := coreKey(kernel)
			ti, exists := index[key]
			if !exists {
				ti = len(states)
				states = append(states, &lrState{kernel: kernel, las: las})
				index[key] = ti
				queued = append(queued, true)
				work = append(work, ti)
			} else {
				grew := false
				for i := range kernel {
					if states[ti].las[i].union(las[i]) {
						grew = true
					}
				}
				if grew && !queued[ti] {
					queued[ti] = true
					work = append(work, ti)
				}
			}
			st.shift[sym] = ti
		}
	}
	return states
}

// closure expands a state's kernel items with the nonterminal productions
// they predict, propagating lookaheads to a fixpoint.
func (b *builder) closure(st *lrState) []fullItem {
	las := make(map[item]termSet, len(st.kernel))
	order := make([]item, 0, len(st.kernel))
	queue := make([]item, 0, len(st.kernel))
	for i, k := range st.kernel {
		las[k] = st.las[i].clone()
		order = append(order, k)
		queue = append(queue, k)
	}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		rhs := b.prods[it.prod].rhs
		if it.dot >= len(rhs) {
			continue
		}
		next := rhs[it.dot]
		if next < b.nTerm {
			continue
		}
		follow := b.firstOfSeq(rhs[it.dot+1:], las[it])
		for _, pi := range b.prodsOf[next] {
			derived := item{prod: pi, dot: 0}
			if existing, seen := las[derived]; !seen {
				las[derived] = follow.clone()
				order = append(order, derived)
				queue = append(queue, derived)
			} else if existing.union(follow) {
				queue = append(queue, derived)
			}
		}
	}

	out := make([]fullItem, 0, len(order))
	for _, it := range order {
		out = append(out, fullItem{prod: it.prod, dot: it.dot, la: las[it]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].prod != out[j].prod {
			return out[i].prod < out[j].prod
		}
		return out[i].dot < out[j].dot
	})
	return out
}

func advanceItems(items []fullItem) ([]item, []termSet) {
	merged := make(map[item]termSet, len(items))
	order := make([]item, 0, len(items))
	for _, it := range items {
		next := item{prod: it.prod, dot: it.dot + 1}
		if existing, seen := merged[next]; seen {
			existing.union(it.la)
		} else {
			merged[next] = it.la.clone()
			order = append(order, next)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].prod != order[j].prod {
			return order[i].prod < order[j].prod
		}
		return order[i].dot < order[j].dot
	})
	las := make([]termSet, len(order))
	for i, it := range order {
		las[i] = merged[it]
	}
	return order, las
}

func coreKey(kernel []item) string {
	var sb strings.Builder
	for _, it := range kernel {
		fmt.Fprintf(&sb, "%d.%d;", it.prod, it.dot)
	}
	return sb.String()
}

// buildTables fills the action and goto tables and reports every conflict
// it finds. Shifts are installed first, so a shift/reduce clash always
// surfaces with the shift as the standing entry.
func (b *builder) buildTables(states []*lrState) ([]map[int]parseAction, []map[int]int) {
	action := make([]map[int]parseAction, len(states))
	gotoTab := make([]map[int]int, len(states))
	for si, st := range states {
		action[si] = make(map[int]parseAction)
		gotoTab[si] = make(map[int]int)
		for sym, target := range st.shift {
			if sym < b.nTerm {
				action[si][sym] = parseAction{kind: actionShift, target: target}
			} else {
				gotoTab[si][sym] = target
			}
		}
		for _, it := range b.closure(st) {
			if it.dot < len(b.prods[it.prod].rhs) {
				continue
			}
			if it.prod == 0 {
				action[si][0] = parseAction{kind: actionAccept}
				continue
			}
			prod := it.prod
			it.la.each(b.nTerm, func(t int) {
				if prev, clash := action[si][t]; clash {
					b.problems = append(b.problems, b.conflictMessage(si, t, prev, prod))
					return
				}
				action[si][t] = parseAction{kind: actionReduce, target: prod}
			})
		}
	}
	return action, gotoTab
}

func (b *builder) conflictMessage(state, term int, prev parseAction, prod int) string {
	sym := b.names[term]
	switch prev.kind {
	case actionShift:
		return fmt.Sprintf("shift/reduce conflict in state %d on %s: shift vs reduce %s",
			state, sym, b.prodString(prod))
	case actionReduce:
		return fmt.Sprintf("reduce/reduce conflict in state %d on %s: %s vs %s",
			state, sym, b.prodString(prev.target), b.prodString(prod))
	default:
		return fmt.Sprintf("conflict in state %d on %s with the accept action", state, sym)
	}
}

func (b *builder) prodString(pi int) string {
	p := b.prods[pi]
	if len(p.rhs) == 0 {
		return p.name + ": <empty>"
	}
	parts := make([]string, len(p.rhs))
	for i, sym := range p.rhs {
		parts[i] = b.names[sym]
	}
	return p.name + ": " + strings.Join(parts, " ")
}

// termSet is a bitset over terminal ids.
type termSet []uint64

func newTermSet(n int) termSet {
	return make(termSet, (n+63)/64)
}

func (s termSet) add(t int) {
	s[t/64] |= 1 << uint(t%64)
}

func (s termSet) has(t int) bool {
	return s[t/64]&(1<<uint(t%64)) != 0
}

func (s termSet) union(o termSet) bool {
	changed := false
	for i := range s {
		old := s[i]
		s[i] |= o[i]
		if s[i] != old {
			changed = true
		}
	}
	return changed
}

func (s termSet) clone() termSet {
	c := make(termSet, len(s))
	copy(c, s)
	return c
}

func (s termSet) each(n int, fn func(int)) {
	for t := 0; t < n; t++ {
		if s.has(t) {
			fn(t)
		}
	}
}
