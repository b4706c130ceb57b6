package dictation

// DiffKind classifies one position of an alignment diff.
type DiffKind int

const (
	// DiffEqual: the character matches in both strings.
	DiffEqual DiffKind = iota
	// DiffInsert: an extra character in the user's input.
	DiffInsert
	// DiffDelete: an expected character the user missed.
	DiffDelete
)

// DiffOp is one aligned character of a spelling diff.
type DiffOp struct {
	Kind DiffKind
	Ch   rune
}

// LCSDiff aligns the user's input against the expected spelling using a
// longest-common-subsequence table and emits one op per aligned position.
// Extra input characters surface as DiffInsert, missing expected characters
// as DiffDelete; a substitution shows up as an insert/delete pair.
func LCSDiff(user, expected string) []DiffOp {
	a := []rune(user)
	b := []rune(expected)
	n, m := len(a), len(b)

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	var ops []DiffOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, DiffOp{DiffEqual, a[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, DiffOp{DiffInsert, a[i]})
			i++
		default:
			ops = append(ops, DiffOp{DiffDelete, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, DiffOp{DiffInsert, a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, DiffOp{DiffDelete, b[j]})
	}
	return ops
}
