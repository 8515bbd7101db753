package service

import (
	"math"
	"sort"
	"time"

	"tnp-quickview/internal/dashboard/dto"
	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/utils"
)

const (
	ReasonNoData       = "市場動向に注目"
	ReasonLargeGain    = "大幅上昇で市場の注目集まる"
	ReasonSteadyGain   = "堅調な推移で買い優勢"
	ReasonModerateRise = "緩やかな上昇トレンド"
	ReasonMinorAdjust  = "小幅な調整局面"
	ReasonProfitTaking = "利益確定売りで調整"
	ReasonLargeDecline = "大幅下落で警戒感"
)

type closePoint struct {
	ts    int64
	close float64
}

// NormalizeQuote turns one instrument's raw daily series into a Stock.
//
// Closes are paired with their timestamps; only bars dated before today's JST
// calendar day count. The most recent of those is the latest close and the
// one before it the previous close. When no such bar remains the last two
// non-null closes of the raw series are used instead.
func NormalizeQuote(q dto.StockQuote, now time.Time) *entity.Stock {
	var points []closePoint
	for i, c := range q.Closes {
		if c == nil || i >= len(q.Timestamps) {
			continue
		}
		points = append(points, closePoint{ts: q.Timestamps[i], close: *c})
	}

	var prior []closePoint
	for _, p := range points {
		if utils.BeforeDayJST(time.Unix(p.ts, 0), now) {
			prior = append(prior, p)
		}
	}
	sort.SliceStable(prior, func(i, j int) bool {
		return prior[i].ts > prior[j].ts
	})

	var latest, previous *float64
	switch {
	case len(prior) >= 2:
		latest = utils.ToPointer(prior[0].close)
		previous = utils.ToPointer(prior[1].close)
	case len(prior) == 1:
		latest = utils.ToPointer(prior[0].close)
	default:
		var raw []float64
		for _, c := range q.Closes {
			if c != nil {
				raw = append(raw, *c)
			}
		}
		if n := len(raw); n >= 1 {
			latest = utils.ToPointer(raw[n-1])
			if n >= 2 {
				previous = utils.ToPointer(raw[n-2])
			}
		}
	}

	current := latest
	if q.RegularMarketPrice != nil {
		current = q.RegularMarketPrice
	}

	var change, changePercent *float64
	if current != nil && previous != nil && *previous != 0 {
		c := *current - *previous
		change = &c
		changePercent = utils.ToPointer(c / *previous * 100)
	}

	stock := &entity.Stock{
		Code:   q.Code,
		Name:   q.Name,
		Volume: lastVolume(q.Volumes),
		Reason: GenerateStockReason(changePercent),
	}
	if current != nil {
		stock.Price = utils.ToPointer(roundHalfUp(*current))
	}
	if previous != nil {
		stock.PreviousClose = utils.ToPointer(roundHalfUp(*previous))
	}
	if change != nil {
		stock.Change = utils.ToPointer(roundHalfUp(*change))
		stock.ChangePercent = utils.ToPointer(roundHalfUp(*changePercent*100) / 100)
	}
	return stock
}

// GenerateStockReason maps the unrounded change percent to its one-line
// rationale. First matching band wins.
func GenerateStockReason(changePercent *float64) string {
	if changePercent == nil {
		return ReasonNoData
	}
	p := *changePercent
	switch {
	case p > 3:
		return ReasonLargeGain
	case p > 1:
		return ReasonSteadyGain
	case p > 0:
		return ReasonModerateRise
	case p > -1:
		return ReasonMinorAdjust
	case p > -3:
		return ReasonProfitTaking
	default:
		return ReasonLargeDecline
	}
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func lastVolume(volumes []*int64) *int64 {
	for i := len(volumes) - 1; i >= 0; i-- {
		if volumes[i] != nil {
			return utils.ToPointer(*volumes[i])
		}
	}
	return nil
}
