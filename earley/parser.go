package earley

import (
	"time"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/grammar"
	"github.com/ornolfur/greina/sppf"
)

// DefaultMaxTokens is the default refusal gate for very long sentences.
const DefaultMaxTokens = 90

// Options configure a parser instance.
type Options struct {
	// MaxTokens refuses sentences with more tokens than this before
	// parsing; 0 disables the gate.
	MaxTokens int
	// Timeout bounds the wall-clock time of a single parse, enforced
	// at chart column boundaries; 0 disables the bound.
	Timeout time.Duration
}

// Parser parses token lattices under a fixed grammar. A Parser is
// cheap and carries no per-sentence state; the chart and forest are
// allocated per Parse call, so a single Parser may be used from
// multiple goroutines.
type Parser struct {
	g    *grammar.Grammar
	opts Options
}

// NewParser creates a parser for the given grammar.
func NewParser(g *grammar.Grammar, opts Options) *Parser {
	return &Parser{g: g, opts: opts}
}

// item is an Earley item: a production with a dot position, the origin
// column, and the forest node built for the recognized prefix.
type item struct {
	prod   *grammar.Production
	dot    int
	origin int
	node   *sppf.Node
}

type itemKey struct {
	serial, dot, origin int
}

// column is one Earley set, with items processed as a queue and
// deduplicated by (production, dot, origin).
type column struct {
	items []item
	seen  map[itemKey]bool
}

func newColumn() *column {
	return &column{seen: make(map[itemKey]bool)}
}

func (c *column) add(it item) bool {
	key := itemKey{it.prod.Serial, it.dot, it.origin}
	if c.seen[key] {
		return false
	}
	c.seen[key] = true
	c.items = append(c.items, it)
	return true
}

// Parse recognizes the token lattice and builds the parse forest. toks
// are the underlying tokens, indexed like the lattice. On failure the
// returned error is a *greina.ParseError carrying the stall position,
// a *greina.TooLongError, or a *greina.TimeoutError.
func (p *Parser) Parse(lattice grammar.Lattice, toks []*greina.Tok) (*sppf.Forest, error) {
	n := len(lattice)
	if p.opts.MaxTokens > 0 && n > p.opts.MaxTokens {
		return nil, &greina.TooLongError{NumTokens: n, Max: p.opts.MaxTokens}
	}
	var deadline time.Time
	if p.opts.Timeout > 0 {
		deadline = time.Now().Add(p.opts.Timeout)
	}

	forest := sppf.NewForest(p.g)
	cols := make([]*column, n+1)
	for i := range cols {
		cols[i] = newColumn()
	}

	// Seed column 0 with the start productions
	root := p.g.Root()
	for _, prod := range p.g.ProductionsFor(root) {
		cols[0].add(item{prod: prod, dot: 0, origin: 0})
	}

	lastActive := 0
	for k := 0; k <= n; k++ {
		col := cols[k]
		if len(col.items) == 0 {
			// The chart stalled at the previous column
			break
		}
		lastActive = k
		if !deadline.IsZero() && time.Now().After(deadline) {
			tracer().Infof("parse timed out at column %d", k)
			return nil, &greina.TimeoutError{TokenIndex: k}
		}
		// The column is processed as a queue: completions and nullable
		// advances may append further items while we iterate.
		for qx := 0; qx < len(col.items); qx++ {
			it := col.items[qx]
			if it.dot < it.prod.Len() {
				sym := it.prod.At(it.dot)
				if sym < 0 {
					p.predict(forest, cols, k, it, sym)
				} else if k < n {
					p.scan(forest, cols, lattice, toks, k, it, sym)
				}
			} else {
				p.complete(forest, cols, k, it)
			}
		}
		tracer().Debugf("E%d holds %d items", k, len(col.items))
	}

	// Success iff a completed start production spans the whole input
	if rootNode := forest.SymbolNode(root.Index, 0, n); len(rootNode.Families) > 0 {
		forest.SetRoot(rootNode)
		tracer().Infof("parse succeeded, %d forest nodes, %d combinations",
			forest.NumNodes(), forest.Combinations())
		return forest, nil
	}
	errIx := lastActive
	if errIx > n-1 {
		errIx = n - 1
	}
	if errIx < 0 {
		errIx = 0
	}
	tracer().Infof("parse failed at token index %d", errIx)
	return nil, &greina.ParseError{TokenIndex: errIx}
}

// predict handles an item with a nonterminal after the dot: all
// productions of that nonterminal are predicted in the current column,
// and if the nonterminal is nullable, the dot is moved over it with the
// epsilon sentinel node, per the standard BRNGLR refinement.
func (p *Parser) predict(forest *sppf.Forest, cols []*column, k int, it item, sym int) {
	nt := p.g.Nonterminal(sym)
	for _, prod := range p.g.ProductionsFor(nt) {
		cols[k].add(item{prod: prod, dot: 0, origin: k})
	}
	if p.g.IsNullable(sym) {
		eps := forest.SymbolNode(sym, k, k)
		node := p.makeNode(forest, it.prod, it.dot+1, it.origin, k, it.node, eps)
		cols[k].add(item{prod: it.prod, dot: it.dot + 1, origin: it.origin, node: node})
	}
}

// scan moves the dot over a terminal if the lattice offers a matching
// terminal at the current position.
func (p *Parser) scan(forest *sppf.Forest, cols []*column, lattice grammar.Lattice,
	toks []*greina.Tok, k int, it item, sym int) {
	//
	match, ok := lattice.TerminalAt(k, sym)
	if !ok {
		return
	}
	v := forest.AddTerminal(sym, k, toks[k], match.Meaning)
	node := p.makeNode(forest, it.prod, it.dot+1, it.origin, k+1, it.node, v)
	cols[k+1].add(item{prod: it.prod, dot: it.dot + 1, origin: it.origin, node: node})
}

// complete handles a finished item: every item waiting for the
// completed nonterminal in the origin column is advanced.
func (p *Parser) complete(forest *sppf.Forest, cols []*column, k int, it item) {
	v := it.node
	if it.prod.IsEpsilon() {
		// An epsilon production completes to the (interned) empty-span
		// symbol node
		v = forest.SymbolNode(it.prod.LHS.Index, k, k)
		forest.AddFamily(v, it.prod, nil, nil)
	}
	lhs := it.prod.LHS.Index
	waiting := cols[it.origin].items
	for wx := 0; wx < len(waiting); wx++ {
		w := waiting[wx]
		if w.dot >= w.prod.Len() || w.prod.At(w.dot) != lhs {
			continue
		}
		node := p.makeNode(forest, w.prod, w.dot+1, w.origin, k, w.node, v)
		cols[k].add(item{prod: w.prod, dot: w.dot + 1, origin: w.origin, node: node})
	}
}

// makeNode is the MakeNode operator of the SPPF construction: it
// combines the prefix node w with the freshly recognized child v under
// the dotted production, interning symbol nodes for completed
// productions and intermediate nodes for true prefixes. A prefix of a
// single symbol needs no node of its own.
func (p *Parser) makeNode(forest *sppf.Forest, prod *grammar.Production,
	dot, i, k int, w, v *sppf.Node) *sppf.Node {
	//
	if dot == 1 && dot < prod.Len() {
		return v
	}
	var y *sppf.Node
	if dot == prod.Len() {
		y = forest.SymbolNode(prod.LHS.Index, i, k)
	} else {
		y = forest.IntermediateNode(prod, dot, i, k)
	}
	forest.AddFamily(y, prod, w, v)
	return y
}
