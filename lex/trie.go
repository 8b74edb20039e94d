package lex

// Radix trie traversal. The trie is traversed from the root node at
// formsOffset. Single-character nodes are compared through the encoded
// (alphabet-index) form of the lookup word, multi-character fragments
// through the raw Latin-1 bytes; both orderings agree because the
// alphabet is sorted by byte value.

// matchResult of comparing a node fragment against the remainder of the
// lookup word: the number of characters matched if the fragment is a
// prefix of the remainder, -1 if the fragment sorts lower than the
// remainder, 0 if it sorts higher.
func (l *Lexicon) matches(nodeOffset, hdr uint32, word, encoded []byte, fragIx int) int {
	if hdr&flagSingleChar != 0 {
		chix := byte((hdr >> 23) & 0x7F)
		if chix == encoded[fragIx] {
			return 1
		}
		if chix > encoded[fragIx] {
			return 0
		}
		return -1
	}
	var frag uint32
	if hdr&flagChildless != 0 {
		frag = nodeOffset + 4
	} else {
		numChildren := l.u32(nodeOffset + 4)
		frag = nodeOffset + 8 + 4*numChildren
	}
	matched := 0
	b := l.buf
	for b[frag] != 0 && fragIx+matched < len(word) && b[frag] == word[fragIx+matched] {
		frag++
		matched++
	}
	if b[frag] == 0 {
		// Matched the entire fragment
		return matched
	}
	if fragIx+matched >= len(word) {
		// The node is longer and thus greater than the fragment
		return 0
	}
	if b[frag] > word[fragIx+matched] {
		return 0
	}
	return -1
}

// mapping finds the word form in the trie and returns the index of its
// first mapping word. The second return value is false if the form is
// unknown (including any form containing a byte outside the alphabet).
func (l *Lexicon) mapping(word []byte) (uint32, bool) {
	if len(word) == 0 || l.buf == nil {
		return 0, false
	}
	encoded := make([]byte, len(word))
	for i, c := range word {
		ix := l.alphaIx[c]
		if ix < 0 {
			return 0, false
		}
		encoded[i] = byte(ix)
	}
	nodeOffset := l.formsOffset
	hdr := l.formsRootHdr
	fragIx := 0
	for {
		if fragIx >= len(word) {
			// Arrived at the destination node: return the associated
			// value unless this is an interim node
			value := hdr & valueSentinel
			if value == valueSentinel {
				return 0, false
			}
			return value, true
		}
		if hdr&flagChildless != 0 {
			// Childless node: nowhere to go
			return 0, false
		}
		numChildren := l.u32(nodeOffset + 4)
		childOffset := nodeOffset + 8
		// Binary search for a matching child node
		lo, hi := uint32(0), numChildren
		for {
			if lo >= hi {
				// No child route matches
				return 0, false
			}
			mid := (lo + hi) >> 1
			midOffset := l.u32(childOffset + mid*4)
			midHdr := l.u32(midOffset)
			matchLen := l.matches(midOffset, midHdr, word, encoded, fragIx)
			if matchLen > 0 {
				// Set a new starting point and restart from the top
				nodeOffset, hdr = midOffset, midHdr
				fragIx += matchLen
				break
			}
			if matchLen < 0 {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
	}
}

// Contains reports whether the trie holds the given word form.
func (l *Lexicon) Contains(form string) bool {
	w, ok := latin1(form)
	if !ok {
		return false
	}
	_, found := l.mapping(w)
	return found
}

// latin1 converts a string to Latin-1 bytes. Forms containing runes
// outside Latin-1 cannot be in the trie.
func latin1(s string) ([]byte, bool) {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, false
		}
		b = append(b, byte(r))
	}
	return b, true
}

// fromLatin1 decodes Latin-1 bytes into a string.
func fromLatin1(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}
