package dto

// GetStockDataParam selects the chart series to fetch for one instrument.
type GetStockDataParam struct {
	StockCode string
	Range     string
	Interval  string
}

// YahooChartResponse is the payload of the v8 chart endpoint.
type YahooChartResponse struct {
	Chart YahooChart `json:"chart"`
}

// YahooChart wraps the result list and the error object.
type YahooChart struct {
	Result []YahooChartResult `json:"result"`
	Error  *YahooChartError   `json:"error"`
}

// YahooChartError is returned by the endpoint for unknown symbols and similar.
type YahooChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// YahooChartResult holds one instrument's series.
type YahooChartResult struct {
	Meta       YahooChartMeta       `json:"meta"`
	Timestamp  []int64              `json:"timestamp"`
	Indicators YahooChartIndicators `json:"indicators"`
}

// YahooChartMeta carries the scalar market fields.
type YahooChartMeta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	ChartPreviousClose *float64 `json:"chartPreviousClose"`
	RegularMarketTime  int64    `json:"regularMarketTime"`
}

// YahooChartIndicators holds the OHLCV series.
type YahooChartIndicators struct {
	Quote []YahooChartQuote `json:"quote"`
}

// YahooChartQuote holds parallel series; entries may be null.
type YahooChartQuote struct {
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// StockQuote is the raw series of one instrument, ready for normalization.
type StockQuote struct {
	Code               string
	Name               string
	Timestamps         []int64
	Closes             []*float64
	Volumes            []*int64
	RegularMarketPrice *float64
}
