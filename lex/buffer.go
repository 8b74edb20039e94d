package lex

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sys/unix"

	"github.com/ornolfur/greina"
)

// Signature identifies the lexicon binary format understood by this
// package. The trailing bytes encode the format version.
const Signature = "Greina.lex.01.00"

const (
	headerSize    = 16 + 5*4
	valueSentinel = 0x007FFFFF

	flagSingleChar = 0x80000000
	flagChildless  = 0x40000000
)

// lookupCacheSize bounds the number of memoized form lookups.
const lookupCacheSize = 8192

// Lexicon is a read-only view over a lexicon binary image. It is safe
// for concurrent use. A Lexicon obtained from Open holds a memory
// mapping that must be released with Close.
type Lexicon struct {
	buf    []byte
	mapped []byte // non-nil iff the buffer is an active mmap

	mappingsOffset uint32
	formsOffset    uint32
	stemsOffset    uint32
	meaningsOffset uint32
	alphabetOffset uint32

	formsRootHdr uint32
	alphabet     []byte
	alphaIx      [256]int16 // byte -> alphabet index, -1 if absent

	cache *lru.Cache[string, []greina.Meaning]

	mu     sync.Mutex
	closed bool
}

// Open maps the lexicon file at path into memory and validates its
// header. The returned Lexicon shares the mapping between all lookups;
// call Close to release it.
func Open(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() < headerSize {
		return nil, fmt.Errorf("%w: file too short", greina.ErrCorruptLexicon)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("cannot map lexicon %s: %w", path, err)
	}
	l, err := newLexicon(data)
	if err != nil {
		_ = unix.Munmap(data)
		return nil, err
	}
	l.mapped = data
	tracer().Infof("lexicon %s mapped, %d bytes", path, st.Size())
	return l, nil
}

// OpenBuffer creates a Lexicon over an in-memory image. It is used for
// embedded lexicons and by tests; no mapping is involved.
func OpenBuffer(data []byte) (*Lexicon, error) {
	return newLexicon(data)
}

func newLexicon(data []byte) (*Lexicon, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: image too short", greina.ErrCorruptLexicon)
	}
	if string(data[0:16]) != Signature {
		return nil, fmt.Errorf("%w: bad signature %q", greina.ErrCorruptLexicon,
			strings.ToValidUTF8(string(data[0:16]), "?"))
	}
	l := &Lexicon{buf: data}
	l.mappingsOffset = binary.LittleEndian.Uint32(data[16:])
	l.formsOffset = binary.LittleEndian.Uint32(data[20:])
	l.stemsOffset = binary.LittleEndian.Uint32(data[24:])
	l.meaningsOffset = binary.LittleEndian.Uint32(data[28:])
	l.alphabetOffset = binary.LittleEndian.Uint32(data[32:])
	size := uint32(len(data))
	for _, off := range []uint32{
		l.mappingsOffset, l.formsOffset, l.stemsOffset, l.meaningsOffset, l.alphabetOffset,
	} {
		if off < headerSize || off+4 > size {
			return nil, fmt.Errorf("%w: region offset %d out of bounds", greina.ErrCorruptLexicon, off)
		}
	}
	// The value field of a trie node is a 23-bit mapping index; the
	// all-ones pattern is reserved as the interim-node sentinel. Assert
	// at load time that no legal mapping index can collide with it.
	if (l.formsOffset-l.mappingsOffset)/4 >= valueSentinel {
		return nil, fmt.Errorf("%w: mappings region too large for 23-bit values", greina.ErrCorruptLexicon)
	}
	alen := binary.LittleEndian.Uint32(data[l.alphabetOffset:])
	if alen == 0 || alen > 128 || l.alphabetOffset+4+alen > size {
		return nil, fmt.Errorf("%w: invalid alphabet length %d", greina.ErrCorruptLexicon, alen)
	}
	l.alphabet = data[l.alphabetOffset+4 : l.alphabetOffset+4+alen]
	for i := range l.alphaIx {
		l.alphaIx[i] = -1
	}
	for i, c := range l.alphabet {
		l.alphaIx[c] = int16(i)
	}
	l.formsRootHdr = l.u32(l.formsOffset)
	l.cache, _ = lru.New[string, []greina.Meaning](lookupCacheSize)
	return l, nil
}

// Close releases the memory mapping, if any. Lookups on a closed
// Lexicon return empty results. Close is idempotent.
func (l *Lexicon) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.buf = nil
	l.cache.Purge()
	if l.mapped != nil {
		m := l.mapped
		l.mapped = nil
		return unix.Munmap(m)
	}
	return nil
}

func (l *Lexicon) u32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(l.buf[off:])
}

// Alphabet returns the byte-ordered Latin-1 alphabet of the forms trie.
func (l *Lexicon) Alphabet() []byte {
	return l.alphabet
}
