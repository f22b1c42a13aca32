package core

// longestIncreasingSubsequence returns the indexes into arr of a longest
// strictly increasing subsequence, ignoring zero entries. It runs in
// O(n log n): tails[k] holds the index of the smallest value ending an
// increasing run of length k+1, and prev links each index to its
// predecessor in that run.
func longestIncreasingSubsequence(arr []int) []int {
	prev := make([]int, len(arr))
	tails := make([]int, 0, len(arr))

	for i, v := range arr {
		if v == 0 {
			continue
		}
		if n := len(tails); n == 0 || arr[tails[n-1]] < v {
			if n > 0 {
				prev[i] = tails[n-1]
			}
			tails = append(tails, i)
			continue
		}

		lo, hi := 0, len(tails)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if arr[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if v < arr[tails[lo]] {
			if lo > 0 {
				prev[i] = tails[lo-1]
			}
			tails[lo] = i
		}
	}

	seq := make([]int, len(tails))
	if len(tails) == 0 {
		return seq
	}
	k := tails[len(tails)-1]
	for j := len(tails) - 1; j >= 0; j-- {
		seq[j] = k
		k = prev[k]
	}
	return seq
}
