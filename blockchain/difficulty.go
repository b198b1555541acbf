package blockchain

import (
	"math/big"
)

// MeetsDifficulty reports whether the first difficulty characters of hash
// are all '0'.
func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if len(hash) < difficulty {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}
	return true
}

// ExpectedAttempts is the mean number of hash evaluations needed to meet
// difficulty, 16^difficulty.
func ExpectedAttempts(difficulty int) *big.Int {
	if difficulty <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(big.NewInt(16), big.NewInt(int64(difficulty)), nil)
}
