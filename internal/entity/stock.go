package entity

// Stock is a normalized quote for one instrument.
// Optional values are pointers: nil means the source had no data, which is
// different from a present zero.
type Stock struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price,omitempty"`
	PreviousClose *float64 `json:"previousClose,omitempty"`
	Change        *float64 `json:"change,omitempty"`
	ChangePercent *float64 `json:"changePercent,omitempty"`
	Volume        *int64   `json:"volume,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

// Instrument is an entry of the watch list.
type Instrument struct {
	Code string `mapstructure:"code" json:"code"`
	Name string `mapstructure:"name" json:"name"`
}

// AbsChangePercent returns |ChangePercent|, treating a missing value as 0.
func (s Stock) AbsChangePercent() float64 {
	if s.ChangePercent == nil {
		return 0
	}
	if *s.ChangePercent < 0 {
		return -*s.ChangePercent
	}
	return *s.ChangePercent
}
