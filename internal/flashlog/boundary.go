package flashlog

// boundaryGapZeros is the length of the zero-padded gap the logger writes
// between a lead-out block and the next lead-in block.
const boundaryGapZeros = 25

// minBoundaryIndex is the lowest index a boundary can end at: the lead-out
// and lead-in blocks need headroom below it.
const minBoundaryIndex = 32

// ScanBoundaries walks the logical buffer backward collecting the end index
// of every run of exactly boundaryGapZeros consecutive zero bytes. The run
// counter resets after each hit, so runs are non-overlapping: 50 zeros yield
// two boundaries, 24 yield none. Results are returned in ascending
// (chronological) order.
func ScanBoundaries(buf []byte) []int {
	var boundaries []int
	zeros := 0
	for n := len(buf) - 1; n >= minBoundaryIndex; n-- {
		if buf[n] != 0 {
			zeros = 0
			continue
		}
		zeros++
		if zeros == boundaryGapZeros {
			zeros = 0
			boundaries = append(boundaries, n)
		}
	}
	for i, j := 0, len(boundaries)-1; i < j; i, j = i+1, j-1 {
		boundaries[i], boundaries[j] = boundaries[j], boundaries[i]
	}
	return boundaries
}
