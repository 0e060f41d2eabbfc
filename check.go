package bfvm

import (
	"github.com/xrash/smetrics"
)

// OutputCheck compares captured program output against an expected byte
// sequence.
type OutputCheck struct {
	Distance   int
	Similarity float64
	Exact      bool
}

// CheckOutput scores got against want with Wagner-Fischer edit distance
// (unit insert/delete cost, substitution cost 2), normalized into a [0, 1]
// similarity where 1 is an exact match.
func CheckOutput(got, want string) *OutputCheck {
	check := &OutputCheck{}

	if got == want {
		check.Exact = true
		check.Similarity = 1.0
		return check
	}

	check.Distance = smetrics.WagnerFischer(got, want, 1, 1, 2)

	worst := len(got) + len(want)
	if worst > 0 {
		check.Similarity = 1.0 - float64(check.Distance)/float64(worst)
	}

	return check
}
