package trend

import (
	"context"
	"math"
	"time"

	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/owner"
	"github.com/serenitysphere/core/internal/pkg/apperr"
)

const (
	holtAlpha       = 0.3
	holtBeta        = 0.1
	forecastHorizon = 3
	minSummaryDays  = 3
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

func ParsePeriod(raw string) (Period, error) {
	switch p := Period(raw); p {
	case "":
		return PeriodWeek, nil
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	}
	return "", apperr.Validation("unknown period %q", raw)
}

func (p Period) cutoff(now time.Time) string {
	switch p {
	case PeriodWeek:
		return models.LogicalDate(now.AddDate(0, 0, -7))
	case PeriodMonth:
		return models.LogicalDate(now.AddDate(0, -1, 0))
	case PeriodYear:
		return models.LogicalDate(now.AddDate(-1, 0, 0))
	}
	return ""
}

type DayScore struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

type Summary struct {
	Status           string     `json:"status"` // analyzed | insufficient_data
	Period           Period     `json:"period"`
	Days             []DayScore `json:"days"`
	Level            float64    `json:"level"`
	Trend            float64    `json:"trend"`
	Strength         string     `json:"strength,omitempty"`
	State            string     `json:"state,omitempty"`
	Forecast         []float64  `json:"forecast,omitempty"`
	Direction        string     `json:"direction,omitempty"`
	Volatility       float64    `json:"volatility"`
	SuddenChange     bool       `json:"sudden_change"`
	PercentPositive  float64    `json:"percent_positive"`
	PercentNegative  float64    `json:"percent_negative"`
	MeanAbsoluteErr  float64    `json:"mae"`
	SimpleMeanAbsErr float64    `json:"simple_mae"`
}

// Summarize builds per-day mean scores for the period and fits Holt's linear
// smoothing to them.
func (s *Service) Summarize(ctx context.Context, ownerID string, period Period) (*Summary, error) {
	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if c := period.cutoff(s.now()); c != "" {
		db = db.Where("date >= ?", c)
	}
	var recs []models.MoodRecordModel
	if err := db.Order("date ASC, created_at ASC").Find(&recs).Error; err != nil {
		return nil, apperr.Store(err, "load mood history")
	}

	out := &Summary{Period: period, Days: s.daily(recs)}
	if len(out.Days) < minSummaryDays {
		out.Status = "insufficient_data"
		return out, nil
	}
	out.Status = "analyzed"

	series := make([]float64, len(out.Days))
	for i, d := range out.Days {
		series[i] = d.Score
	}
	fit(series, out)

	pos, neg := 0, 0
	for i := range recs {
		switch sc := Score(s.vocab, &recs[i]); {
		case sc > 0.2:
			pos++
		case sc < -0.2:
			neg++
		}
	}
	out.PercentPositive = 100 * float64(pos) / float64(len(recs))
	out.PercentNegative = 100 * float64(neg) / float64(len(recs))
	return out, nil
}

func (s *Service) daily(recs []models.MoodRecordModel) []DayScore {
	var days []DayScore
	for i := range recs {
		sc := Score(s.vocab, &recs[i])
		if n := len(days); n > 0 && days[n-1].Date == recs[i].Date {
			d := &days[n-1]
			d.Score = (d.Score*float64(d.Count) + sc) / float64(d.Count+1)
			d.Count++
			continue
		}
		days = append(days, DayScore{Date: recs[i].Date, Score: sc, Count: 1})
	}
	return days
}

// fit applies Holt's linear method; len(x) must be at least 2.
func fit(x []float64, out *Summary) {
	n := len(x)
	level := x[0]
	slope := x[1] - x[0]
	var absErr, sqErr, lastErr float64
	for t := 1; t < n; t++ {
		predicted := level + slope
		e := x[t] - predicted
		absErr += math.Abs(e)
		sqErr += e * e
		lastErr = math.Abs(e)

		prev := level
		level = holtAlpha*x[t] + (1-holtAlpha)*(level+slope)
		slope = holtBeta*(level-prev) + (1-holtBeta)*slope
	}

	simple := x[0]
	var simpleErr float64
	for t := 1; t < n; t++ {
		simpleErr += math.Abs(x[t] - simple)
		simple = holtAlpha*x[t] + (1-holtAlpha)*simple
	}

	out.Level = level
	out.Trend = slope
	out.MeanAbsoluteErr = absErr / float64(n-1)
	out.SimpleMeanAbsErr = simpleErr / float64(n-1)
	out.Volatility = math.Sqrt(sqErr / float64(n-1))
	out.SuddenChange = lastErr > 0.6

	out.Forecast = make([]float64, forecastHorizon)
	for h := 1; h <= forecastHorizon; h++ {
		out.Forecast[h-1] = level + float64(h)*slope
	}

	switch a := math.Abs(slope); {
	case a > 0.2:
		out.Strength = signed(slope, "strongly_improving", "strongly_declining")
	case a > 0.05:
		out.Strength = signed(slope, "slightly_improving", "slightly_declining")
	default:
		out.Strength = "stable"
	}
	switch {
	case level > 0.3:
		out.State = "positive"
	case level < -0.3:
		out.State = "negative"
	default:
		out.State = "neutral"
	}
	switch last := out.Forecast[forecastHorizon-1]; {
	case last > level:
		out.Direction = "improving"
	case last < level:
		out.Direction = "declining"
	default:
		out.Direction = "stable"
	}
}

func signed(v float64, pos, neg string) string {
	if v > 0 {
		return pos
	}
	return neg
}
