package backtest

import (
	"sort"
)

// Summary reduces a trade ledger to aggregate statistics. With an empty
// ledger Valid is false and every derived statistic is zero — callers get
// sentinels, never a division by zero.
type Summary struct {
	// Valid is false when the ledger holds no closed trades.
	Valid bool `json:"valid"`

	Trades int `json:"trades"`
	Wins   int `json:"wins"`

	WinRatioPct      float64 `json:"win_ratio_pct"`
	AvgReturnPct     float64 `json:"avg_return_pct"`
	MedianReturnPct  float64 `json:"median_return_pct"`
	CumulativeResult float64 `json:"cumulative_result"`
	AvgHoldingDays   float64 `json:"avg_holding_days"`
	MaxGainPct       float64 `json:"max_gain_pct"`
	MaxLossPct       float64 `json:"max_loss_pct"`

	// BuyHoldResult is last close over first close across the evaluated
	// window, the do-nothing baseline the strategy competes with.
	BuyHoldResult float64 `json:"buy_hold_result"`

	// OpenAtEnd reports a position still open when the window ended and
	// excluded from the closed-trade statistics above.
	OpenAtEnd bool `json:"open_at_end"`
}

// Summarize computes the aggregate statistics for one simulation result.
func Summarize(res *Result) Summary {
	s := Summary{
		Trades:    len(res.Trades),
		OpenAtEnd: res.OpenPosition != nil,
	}
	if res.FirstClose > 0 {
		s.BuyHoldResult = res.LastClose / res.FirstClose
	}
	if len(res.Trades) == 0 {
		return s
	}

	s.Valid = true
	s.CumulativeResult = 1.0
	s.MaxGainPct = res.Trades[0].ReturnPct
	s.MaxLossPct = res.Trades[0].ReturnPct

	returns := make([]float64, len(res.Trades))
	sumReturn := 0.0
	sumDays := 0
	for i, t := range res.Trades {
		returns[i] = t.ReturnPct
		sumReturn += t.ReturnPct
		sumDays += t.HoldingDays
		s.CumulativeResult *= 1 + t.ReturnPct/100
		if t.ReturnPct > 0 {
			s.Wins++
		}
		if t.ReturnPct > s.MaxGainPct {
			s.MaxGainPct = t.ReturnPct
		}
		if t.ReturnPct < s.MaxLossPct {
			s.MaxLossPct = t.ReturnPct
		}
	}

	n := float64(len(res.Trades))
	s.WinRatioPct = float64(s.Wins) / n * 100
	s.AvgReturnPct = sumReturn / n
	s.MedianReturnPct = median(returns)
	s.AvgHoldingDays = float64(sumDays) / n
	return s
}

// Metric is one named statistic for tabular or serialized output.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Flat renders the summary as an ordered name→value mapping, ready for a
// table, CSV row or JSON document.
func (s Summary) Flat() []Metric {
	return []Metric{
		{"trades", float64(s.Trades)},
		{"wins", float64(s.Wins)},
		{"win_ratio_pct", s.WinRatioPct},
		{"avg_return_pct", s.AvgReturnPct},
		{"median_return_pct", s.MedianReturnPct},
		{"cumulative_result", s.CumulativeResult},
		{"avg_holding_days", s.AvgHoldingDays},
		{"max_gain_pct", s.MaxGainPct},
		{"max_loss_pct", s.MaxLossPct},
		{"buy_hold_result", s.BuyHoldResult},
	}
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
