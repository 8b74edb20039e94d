package lex

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// meaningRecordSize is the fixed size of a packed meaning record.
const meaningRecordSize = 24

// Entry is one (form, meaning) row fed to Pack.
type Entry struct {
	Form       string
	Lemma      string
	ID         int
	Cat        string // word class: kk/kvk/hk/so/lo/ao/fs/fn/pfn/...
	Fl         string // subcategory: alm/ism/fyr/...
	Inflection string // feature string, e.g. "NFET" or "GM-FH-NT-3P-ET"
}

// Pack builds a lexicon binary image from a list of entries. The full
// production lexicon is packed by an external tool chain; this packer
// covers embedded lexicons, fixtures and tests, and emits exactly the
// format documented in the package comment. Case-variant sets are
// derived from the entries themselves: every form of a stem whose
// inflection names a case is recorded in that case's set.
func Pack(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("lex: cannot pack an empty lexicon")
	}

	// --- collect the alphabet ------------------------------------------
	var present [256]bool
	for _, e := range entries {
		b, ok := latin1(e.Form)
		if !ok {
			return nil, fmt.Errorf("lex: form %q is not Latin-1", e.Form)
		}
		for _, c := range b {
			present[c] = true
		}
	}
	var alphabet []byte
	for c := 0; c < 256; c++ {
		if present[c] {
			alphabet = append(alphabet, byte(c))
		}
	}
	if len(alphabet) > 128 {
		return nil, fmt.Errorf("lex: alphabet too large (%d symbols, max 128)", len(alphabet))
	}

	// --- assign stem and meaning indices -------------------------------
	type stemKey struct {
		lemma string
		id    int
	}
	stemIx := make(map[stemKey]uint32)
	var stems []stemKey
	meaningIx := make(map[string]uint32)
	var meanings []string
	formPairs := make(map[string][]uint32) // form -> packed (stem<<11|meaning) in entry order
	var forms []string
	caseSets := make(map[stemKey]map[string]map[string]bool)

	for _, e := range entries {
		sk := stemKey{e.Lemma, e.ID}
		si, ok := stemIx[sk]
		if !ok {
			si = uint32(len(stems))
			if si >= 1<<20 {
				return nil, fmt.Errorf("lex: too many stems")
			}
			stemIx[sk] = si
			stems = append(stems, sk)
		}
		rec := e.Cat + " " + e.Fl + " " + e.Inflection
		if len(rec) > meaningRecordSize {
			return nil, fmt.Errorf("lex: meaning record %q too long", rec)
		}
		mi, ok := meaningIx[rec]
		if !ok {
			mi = uint32(len(meanings))
			if mi >= 1<<11 {
				return nil, fmt.Errorf("lex: too many distinct meanings")
			}
			meaningIx[rec] = mi
			meanings = append(meanings, rec)
		}
		if _, ok := formPairs[e.Form]; !ok {
			forms = append(forms, e.Form)
		}
		formPairs[e.Form] = append(formPairs[e.Form], si<<11|mi)
		for _, c := range cases {
			if strings.Contains(e.Inflection, c) {
				if caseSets[sk] == nil {
					caseSets[sk] = make(map[string]map[string]bool)
				}
				if caseSets[sk][c] == nil {
					caseSets[sk][c] = make(map[string]bool)
				}
				caseSets[sk][c][e.Form] = true
				break
			}
		}
	}
	sort.Strings(forms)

	// --- mappings region ------------------------------------------------
	var mappings []uint32
	formValue := make(map[string]uint32)
	for _, f := range forms {
		pairs := formPairs[f]
		formValue[f] = uint32(len(mappings))
		for i, p := range pairs {
			if i == len(pairs)-1 {
				p |= 0x80000000
			}
			mappings = append(mappings, p)
		}
	}
	if len(mappings) >= valueSentinel {
		return nil, fmt.Errorf("lex: mappings region overflows 23-bit trie values")
	}

	// --- forms trie ------------------------------------------------------
	root := &packNode{value: valueSentinel}
	for _, f := range forms {
		b, _ := latin1(f)
		root.insert(b, formValue[f])
	}

	// --- assemble the image ----------------------------------------------
	buf := make([]byte, headerSize)
	copy(buf, Signature)

	alphabetOffset := uint32(len(buf))
	buf = appendU32(buf, uint32(len(alphabet)))
	buf = append(buf, alphabet...)
	buf = pad4(buf)

	mappingsOffset := uint32(len(buf))
	for _, w := range mappings {
		buf = appendU32(buf, w)
	}

	formsOffset := uint32(len(buf))
	var alphaIx [256]int16
	for i := range alphaIx {
		alphaIx[i] = -1
	}
	for i, c := range alphabet {
		alphaIx[c] = int16(i)
	}
	root.assignOffsets(formsOffset)
	buf = root.emit(buf, &alphaIx)

	// stems region: offset table, then the records, then variant sets
	stemsOffset := uint32(len(buf))
	stemTable := len(buf)
	for range stems {
		buf = appendU32(buf, 0)
	}
	stemRecOffset := make([]uint32, len(stems))
	varOffSlot := make(map[int]int) // stem index -> byte pos of variant offset
	for i, sk := range stems {
		stemRecOffset[i] = uint32(len(buf))
		wid := uint32(sk.id + 1)
		if caseSets[sk] != nil {
			wid |= 0x80000000
		}
		buf = appendU32(buf, wid)
		lb, _ := latin1(sk.lemma)
		if len(lb) > 255 {
			return nil, fmt.Errorf("lex: lemma %q too long", sk.lemma)
		}
		buf = append(buf, byte(len(lb)))
		buf = append(buf, lb...)
		buf = pad4(buf)
		if caseSets[sk] != nil {
			varOffSlot[i] = len(buf)
			buf = appendU32(buf, 0)
		}
	}
	for i, sk := range stems {
		binary.LittleEndian.PutUint32(buf[stemTable+4*i:], stemRecOffset[i])
		cs := caseSets[sk]
		if cs == nil {
			continue
		}
		binary.LittleEndian.PutUint32(buf[varOffSlot[i]:], uint32(len(buf)))
		base, _ := latin1(sk.lemma)
		for _, c := range cases {
			var set []string
			for f := range cs[c] {
				set = append(set, f)
			}
			sort.Strings(set)
			buf = appendVariantSet(buf, base, set)
		}
	}
	buf = pad4(buf)

	// meanings region: offset table, then the fixed-size records
	meaningsOffset := uint32(len(buf))
	meaningTable := len(buf)
	for range meanings {
		buf = appendU32(buf, 0)
	}
	for i, rec := range meanings {
		binary.LittleEndian.PutUint32(buf[meaningTable+4*i:], uint32(len(buf)))
		rb, ok := latin1(rec)
		if !ok {
			return nil, fmt.Errorf("lex: meaning record %q is not Latin-1", rec)
		}
		for len(rb) < meaningRecordSize {
			rb = append(rb, ' ')
		}
		buf = append(buf, rb...)
	}

	binary.LittleEndian.PutUint32(buf[16:], mappingsOffset)
	binary.LittleEndian.PutUint32(buf[20:], formsOffset)
	binary.LittleEndian.PutUint32(buf[24:], stemsOffset)
	binary.LittleEndian.PutUint32(buf[28:], meaningsOffset)
	binary.LittleEndian.PutUint32(buf[32:], alphabetOffset)
	return buf, nil
}

func appendU32(buf []byte, w uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], w)
	return append(buf, b[:]...)
}

func pad4(buf []byte) []byte {
	for len(buf)&3 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// appendVariantSet front-codes a string set against a base word.
func appendVariantSet(buf []byte, base []byte, set []string) []byte {
	last := base
	for _, s := range set {
		w, _ := latin1(s)
		common := 0
		for common < len(last) && common < len(w) && last[common] == w[common] {
			common++
		}
		buf = append(buf, byte(len(last)-common), byte(len(w)-common))
		buf = append(buf, w[common:]...)
		last = w
	}
	return append(buf, 255)
}

// --- trie construction -----------------------------------------------------

type packNode struct {
	frag     []byte
	children []*packNode
	value    uint32
	offset   uint32
}

// insert adds a form (as raw Latin-1 bytes) below n, splitting
// fragments as needed.
func (n *packNode) insert(form []byte, value uint32) {
	if len(form) == 0 {
		n.value = value
		return
	}
	for i, child := range n.children {
		common := commonPrefix(child.frag, form)
		if common == 0 {
			continue
		}
		if common == len(child.frag) {
			child.insert(form[common:], value)
			return
		}
		// Split the child fragment at the divergence point
		split := &packNode{
			frag:     child.frag[:common],
			value:    valueSentinel,
			children: []*packNode{child},
		}
		child.frag = child.frag[common:]
		n.children[i] = split
		split.insert(form[common:], value)
		return
	}
	n.children = append(n.children, &packNode{frag: append([]byte(nil), form...), value: value})
	sort.Slice(n.children, func(i, j int) bool {
		return n.children[i].frag[0] < n.children[j].frag[0]
	})
}

func commonPrefix(a, b []byte) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func (n *packNode) isSingleChar() bool {
	return len(n.frag) == 1
}

// size returns the packed byte size of this node alone.
func (n *packNode) size() uint32 {
	size := uint32(4)
	if len(n.children) > 0 {
		size += 4 + 4*uint32(len(n.children))
	}
	if !n.isSingleChar() {
		// NUL-terminated fragment (empty for the root), padded
		size += uint32(len(n.frag)) + 1
		if size&3 != 0 {
			size += 4 - (size & 3)
		}
	}
	return size
}

// assignOffsets lays the subtree out in pre-order starting at base and
// returns the offset just behind it.
func (n *packNode) assignOffsets(base uint32) uint32 {
	n.offset = base
	base += n.size()
	for _, child := range n.children {
		base = child.assignOffsets(base)
	}
	return base
}

func (n *packNode) emit(buf []byte, alphaIx *[256]int16) []byte {
	hdr := n.value
	if n.isSingleChar() {
		hdr |= flagSingleChar
		hdr |= uint32(alphaIx[n.frag[0]]) << 23
	}
	if len(n.children) == 0 {
		hdr |= flagChildless
	}
	buf = appendU32(buf, hdr)
	if len(n.children) > 0 {
		buf = appendU32(buf, uint32(len(n.children)))
		for _, child := range n.children {
			buf = appendU32(buf, child.offset)
		}
	}
	if !n.isSingleChar() {
		buf = append(buf, n.frag...)
		buf = append(buf, 0)
		buf = pad4(buf)
	}
	for _, child := range n.children {
		buf = child.emit(buf, alphaIx)
	}
	return buf
}
