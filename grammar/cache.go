package grammar

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"

	"github.com/cnf/structhash"

	"github.com/ornolfur/greina"
	"github.com/ornolfur/greina/glock"
)

// cacheImage is the serializable form of a grammar, used for the
// compiled-grammar sidecar cache. Reading a cached image is much
// cheaper than re-building a large grammar from its source text.
type cacheImage struct {
	Name     string
	Root     string
	NTs      []cacheNT
	Terms    []string
	Prods    []cacheProd
	Checksum string
}

type cacheNT struct {
	Name     string
	Tags     []string
	Score    int
	Optional bool
}

type cacheProd struct {
	LHS      string
	RHS      []string
	Priority int
}

// image converts the grammar to its serializable form.
func (g *Grammar) image() *cacheImage {
	img := &cacheImage{Name: g.Name, Root: g.root.Name}
	for _, nt := range g.nonterminals {
		cnt := cacheNT{Name: nt.Name, Score: nt.Score, Optional: nt.Optional}
		for tag := range nt.tags {
			cnt.Tags = append(cnt.Tags, tag)
		}
		sort.Strings(cnt.Tags)
		img.NTs = append(img.NTs, cnt)
	}
	for _, t := range g.terminals {
		img.Terms = append(img.Terms, t.Name())
	}
	for _, p := range g.allProds {
		cp := cacheProd{LHS: p.LHS.Name, Priority: p.Priority}
		for _, ix := range p.rhs {
			cp.RHS = append(cp.RHS, g.SymbolName(ix))
		}
		img.Prods = append(img.Prods, cp)
	}
	return img
}

// Fingerprint returns a stable hash of the grammar's content, used to
// invalidate stale cache files.
func (g *Grammar) Fingerprint() string {
	img := g.image()
	img.Checksum = ""
	return fmt.Sprintf("%x", structhash.Md5(img, 1))
}

// SaveCache writes the compiled grammar to a sidecar cache file. The
// write is guarded by the grammar compilation lock so that concurrent
// processes do not interleave.
func (g *Grammar) SaveCache(path string) error {
	lock, err := glock.Acquire("greina-grammar")
	if err != nil {
		return err
	}
	defer lock.Release()
	img := g.image()
	img.Checksum = g.Fingerprint()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(img); err != nil {
		return err
	}
	tracer().Infof("grammar cache written to %s", path)
	return nil
}

// LoadCache reads a compiled grammar from a sidecar cache file and
// re-assembles it.
func LoadCache(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var img cacheImage
	if err := gob.NewDecoder(f).Decode(&img); err != nil {
		return nil, fmt.Errorf("%w: %v", greina.ErrCorruptGrammar, err)
	}
	b := NewBuilder(img.Name, img.Root)
	for _, nt := range img.NTs {
		b.Tag(nt.Name, nt.Tags...)
		if nt.Score != 0 {
			b.Score(nt.Name, nt.Score)
		}
		if nt.Optional {
			b.Optional(nt.Name)
		}
	}
	for _, p := range img.Prods {
		rb := b.LHS(p.LHS).Prio(p.Priority)
		for _, sym := range p.RHS {
			if _, isNT := ntLike(b, sym); isNT {
				rb.N(sym)
			} else {
				rb.T(sym)
			}
		}
		rb.End()
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	if img.Checksum != "" && g.Fingerprint() != img.Checksum {
		return nil, fmt.Errorf("%w: cache checksum mismatch", greina.ErrCorruptGrammar)
	}
	return g, nil
}

// ntLike decides whether a cached symbol name denotes a nonterminal.
// Nonterminal names were registered up front by the NT loop.
func ntLike(b *Builder, name string) (*Nonterminal, bool) {
	nt, ok := b.g.ntByName[name]
	return nt, ok
}
