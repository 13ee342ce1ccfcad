package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Sampler draws k distinct integers uniformly from [0, n).
type Sampler interface {
	Sample(n, k int) ([]int, error)
}

// CryptoSampler is a partial Fisher-Yates shuffle driven by crypto/rand.
type CryptoSampler struct{}

func (CryptoSampler) Sample(n, k int) ([]int, error) {
	if n < 0 || k < 0 || k > n {
		return nil, fmt.Errorf("sample %d of %d: %w", k, n, ErrInvalidConfiguration)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		r, err := rand.Int(rand.Reader, big.NewInt(int64(n-i)))
		if err != nil {
			return nil, err
		}
		j := i + int(r.Int64())
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k], nil
}

// GenerateBoard places mineCount mines on a gridSize×gridSize board and
// returns it row-major. At least one cell is always left safe.
func GenerateBoard(s Sampler, gridSize, mineCount int) ([]bool, error) {
	cells := gridSize * gridSize
	if gridSize <= 0 || mineCount <= 0 || mineCount >= cells {
		return nil, ErrInvalidConfiguration
	}
	picks, err := s.Sample(cells, mineCount)
	if err != nil {
		return nil, err
	}
	if len(picks) != mineCount {
		return nil, fmt.Errorf("sampler returned %d cells, want %d", len(picks), mineCount)
	}
	board := make([]bool, cells)
	for _, p := range picks {
		if p < 0 || p >= cells || board[p] {
			return nil, fmt.Errorf("sampler returned bad cell %d", p)
		}
		board[p] = true
	}
	return board, nil
}
