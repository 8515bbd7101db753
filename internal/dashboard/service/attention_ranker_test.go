package service

import (
	"testing"

	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func stockWithPct(code string, pct *float64) entity.Stock {
	return entity.Stock{Code: code, ChangePercent: pct}
}

func TestRankAttentionStocks(t *testing.T) {
	t.Parallel()

	input := []entity.Stock{
		stockWithPct("a", utils.ToPointer(1.0)),
		stockWithPct("b", utils.ToPointer(-4.5)),
		stockWithPct("c", nil),
		stockWithPct("d", utils.ToPointer(2.0)),
		stockWithPct("e", utils.ToPointer(-1.0)),
		stockWithPct("f", utils.ToPointer(0.0)),
	}
	before := append([]entity.Stock(nil), input...)

	ranked := RankAttentionStocks(input)

	codes := make([]string, len(ranked))
	for i, s := range ranked {
		codes[i] = s.Code
	}
	assert.Equal(t, []string{"b", "d", "a", "e", "c", "f"}, codes, "ties keep input order, missing ranks as zero")
	assert.Equal(t, before, input, "input is not reordered")

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].AbsChangePercent(), ranked[i].AbsChangePercent())
	}
}

func TestRankAttentionStocks_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RankAttentionStocks(nil))
	assert.Len(t, RankAttentionStocks([]entity.Stock{{Code: "x"}}), 1)
}
