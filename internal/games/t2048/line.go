package t2048

import "slices"

// Orientation is the end of a line that tiles slide toward.
type Orientation int

const (
	TowardStart Orientation = iota // index 0 (left for rows, top for columns)
	TowardEnd                      // last index (right for rows, bottom for columns)
)

// ReduceLine compacts and merges one row or column.
// The input is left untouched; out always has the same length.
// Each tile merges at most once per call, and of two equal neighbours the
// one nearer the slide target absorbs the other.
// changed reports whether out differs from line, delta is the sum of all
// merged values.
func ReduceLine(line []int, toward Orientation) (out []int, changed bool, delta int) {
	if toward == TowardEnd {
		out, delta = slideLine(reversed(line))
		out = reversed(out)
	} else {
		out, delta = slideLine(line)
	}
	return out, !slices.Equal(line, out), delta
}

// slideLine slides tiles toward index 0 and merges equal pairs.
func slideLine(line []int) (result []int, score int) {
	result = make([]int, len(line))
	writePos := 0
	mergeable := false // result[writePos-1] may still absorb a tile

	for _, v := range line {
		if v == 0 {
			continue
		}

		if mergeable && result[writePos-1] == v {
			// Merge with previous tile
			result[writePos-1] *= 2
			score += result[writePos-1]
			mergeable = false
		} else {
			// Move tile
			result[writePos] = v
			writePos++
			mergeable = true
		}
	}

	return result, score
}

// reversed returns a reversed copy of a line.
func reversed(line []int) []int {
	result := slices.Clone(line)
	slices.Reverse(result)
	return result
}
