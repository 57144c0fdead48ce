package dupe

// Ratio computes sequence similarity between two strings: twice the number
// of matched characters in the best alignment, divided by the combined
// length, in [0, 1]. Two empty strings score 1.0.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}

	matched := 0
	for _, m := range matchingBlocks(ra, rb) {
		matched += m.size
	}
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

type block struct {
	a, b, size int
}

type span struct {
	alo, ahi, blo, bhi int
}

// matchingBlocks finds non-overlapping matching runs by repeatedly taking
// the longest common run and recursing into the pieces to its left and
// right.
func matchingBlocks(a, b []rune) []block {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	var blocks []block
	stack := []span{{0, len(a), 0, len(b)}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		m := longestMatch(a, b2j, s)
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		if s.alo < m.a && s.blo < m.b {
			stack = append(stack, span{s.alo, m.a, s.blo, m.b})
		}
		if m.a+m.size < s.ahi && m.b+m.size < s.bhi {
			stack = append(stack, span{m.a + m.size, s.ahi, m.b + m.size, s.bhi})
		}
	}
	return blocks
}

// longestMatch finds the longest run a[i:i+k] == b[j:j+k] inside the span,
// preferring the earliest on ties.
func longestMatch(a []rune, b2j map[rune][]int, s span) block {
	best := block{s.alo, s.blo, 0}
	runLen := map[int]int{}
	for i := s.alo; i < s.ahi; i++ {
		newRunLen := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := runLen[j-1] + 1
			newRunLen[j] = k
			if k > best.size {
				best = block{i - k + 1, j - k + 1, k}
			}
		}
		runLen = newRunLen
	}
	return best
}
