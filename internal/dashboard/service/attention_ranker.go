package service

import (
	"sort"

	"tnp-quickview/internal/entity"
)

// RankAttentionStocks orders stocks by descending absolute change percent.
// Missing percentages rank as zero, ties keep their input order and the input
// slice is left untouched.
func RankAttentionStocks(stocks []entity.Stock) []entity.Stock {
	ranked := make([]entity.Stock, len(stocks))
	copy(ranked, stocks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AbsChangePercent() > ranked[j].AbsChangePercent()
	})
	return ranked
}
