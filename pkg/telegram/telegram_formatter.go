package telegram

import (
	"fmt"
	"strings"
	"time"

	"tnp-quickview/internal/entity"
	"tnp-quickview/pkg/utils"
)

// MaxMessageLength stays just under Telegram's 4096 character limit.
const MaxMessageLength = 4090

// FormatAttentionStocksForTelegram renders the ranked stocks into one or more
// Markdown messages, each at most MaxMessageLength bytes.
func FormatAttentionStocksForTelegram(stocks []entity.Stock, updatedAt time.Time) []string {
	if len(stocks) == 0 {
		return []string{"本日の注目銘柄はありません。"}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📊 *注目銘柄ランキング* (%s)\n\n", updatedAt.In(utils.GetJSTTimeLocation()).Format("2006/01/02 15:04")))
		} else {
			current.WriteString(fmt.Sprintf("---*注目銘柄ランキング Part %d*---\n\n", part))
		}
	}
	startNewPart()

	for i, s := range stocks {
		entry := formatStockEntry(i+1, s)
		if current.Len()+len(entry) > MaxMessageLength {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}
	messages = append(messages, current.String())

	return messages
}

func formatStockEntry(rank int, s entity.Stock) string {
	var sb strings.Builder
	icon := "⚪"
	if s.ChangePercent != nil {
		switch {
		case *s.ChangePercent > 0:
			icon = "🟢"
		case *s.ChangePercent < 0:
			icon = "🔴"
		}
	}

	sb.WriteString(fmt.Sprintf("%s *%d. %s %s*\n", icon, rank, s.Code, s.Name))
	if s.Price != nil {
		sb.WriteString(fmt.Sprintf("💴 *株価:* %s円\n", formatNumber(*s.Price)))
	}
	if s.Change != nil && s.ChangePercent != nil {
		sb.WriteString(fmt.Sprintf("📈 *前日比:* %+.0f円 (%+.2f%%)\n", *s.Change, *s.ChangePercent))
	}
	if s.Volume != nil {
		sb.WriteString(fmt.Sprintf("📦 *出来高:* %s\n", formatNumber(float64(*s.Volume))))
	}
	if s.Reason != "" {
		sb.WriteString(fmt.Sprintf("💬 %s\n", s.Reason))
	}
	sb.WriteString("\n")
	return sb.String()
}

// formatNumber renders an integral value with thousands separators.
func formatNumber(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := fmt.Sprintf("%.0f", v)
	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
