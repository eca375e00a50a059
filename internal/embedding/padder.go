package embedding

// PadSentinel is the id used to left-pad short sequences. The vocabulary
// never assigns it to a word.
const PadSentinel = 0

// Pad fixes one sequence to maxLen: sequences longer than maxLen keep
// their last maxLen elements, shorter ones are left-padded with the
// sentinel. The input is not mutated.
func Pad(seq []int, maxLen int) []int {
	row := make([]int, maxLen)

	if len(seq) >= maxLen {
		copy(row, seq[len(seq)-maxLen:])
		return row
	}

	copy(row[maxLen-len(seq):], seq)
	return row
}

// PadAll pads a batch of sequences into a rectangular maxLen-wide matrix.
func PadAll(seqs [][]int, maxLen int) [][]int {
	rows := make([][]int, len(seqs))
	for i, seq := range seqs {
		rows[i] = Pad(seq, maxLen)
	}
	return rows
}
