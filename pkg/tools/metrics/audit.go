package metrics

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/tools/position"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

const (
	equitySnapshotInterval = time.Minute
)

// roundTrip is one flat-to-flat excursion of the position, with the realized
// profit (fees included) it produced.
type roundTrip struct {
	OpenTime  time.Time
	CloseTime time.Time
	Profit    fixed.Point
}

// Audit condenses a run result into the inputs of the performance report:
// interval-thinned equity snapshots and flat-to-flat round trips rebuilt from
// the fill log.
type Audit struct {
	equities []engine.EquityPoint
	trades   []roundTrip
}

func NewAudit() *Audit {
	return &Audit{}
}

// Consume ingests one run result. May be called with consecutive results to
// audit a multi-run session.
func (a *Audit) Consume(res engine.Result) {
	for _, point := range res.EquitySeries {
		a.snapshot(point)
	}
	a.rebuildTrades(res.TradeLog)
}

func (a *Audit) snapshot(point engine.EquityPoint) {
	if len(a.equities) == 0 || point.TimeStamp.Sub(a.equities[len(a.equities)-1].TimeStamp) >= equitySnapshotInterval {
		a.equities = append(a.equities, point)
	}
}

// rebuildTrades replays the fills through a fresh ledger. A round trip opens
// when the position leaves flat and closes when it returns there, including
// through a liquidation force close.
func (a *Audit) rebuildTrades(log []engine.TradeLogEntry) {
	ledger := position.NewLedger()
	var (
		open     bool
		openedAt time.Time
		profit   fixed.Point
	)

	for _, entry := range log {
		if entry.Kind != engine.KindOrderFilled {
			continue
		}
		side, err := common.ParseSide(entry.Side)
		if err != nil {
			continue
		}

		wasFlat := ledger.Position().IsFlat()
		realized := ledger.ApplyFill(side, entry.Qty, entry.Price, entry.Fee)

		if wasFlat && !open {
			open = true
			openedAt = entry.TimeStamp
			profit = fixed.Zero
		}
		profit = profit.Add(realized)

		if open && ledger.Position().IsFlat() {
			a.trades = append(a.trades, roundTrip{
				OpenTime:  openedAt,
				CloseTime: entry.TimeStamp,
				Profit:    profit,
			})
			open = false
		}
	}
}

func (a *Audit) GenerateReport() Report {
	report := Report{}
	if len(a.equities) == 0 {
		return report
	}

	auditedDays := a.dayCount()
	year := fixed.FromInt64(36500, 2)

	report.InitialEquity = a.equities[0].Equity
	report.StartDate = a.equities[0].TimeStamp
	report.FinalEquity = a.equities[len(a.equities)-1].Equity
	report.EndDate = a.equities[len(a.equities)-1].TimeStamp

	if report.InitialEquity.IsPos() {
		report.TotalProfit = report.FinalEquity.Div(report.InitialEquity).Sub(fixed.One).MulInt64(100).Rescale(2)
	}
	if auditedDays > 0 && report.InitialEquity.Gt(fixed.Zero) && report.FinalEquity.Gt(fixed.Zero) {
		ratio := report.FinalEquity.Div(report.InitialEquity)
		exponent := year.DivInt64(int64(auditedDays))
		report.AnnualizedReturn = ratio.Pow(exponent).Sub(fixed.One).MulInt64(100).Rescale(2)
	} else {
		report.AnnualizedReturn = fixed.Zero
	}

	maxEquity := report.InitialEquity
	for _, eq := range a.equities {
		if eq.Equity.Gt(maxEquity) {
			maxEquity = eq.Equity
		}
		if !maxEquity.IsPos() {
			continue
		}
		drawdown := maxEquity.Sub(eq.Equity).Div(maxEquity)
		if drawdown.Gt(report.MaxDrawdown) {
			report.MaxDrawdown = drawdown
		}
	}

	var (
		totalDuration time.Duration
		totalProfit   fixed.Point
		totalLoss     fixed.Point
	)
	for _, trade := range a.trades {
		report.TotalTrades++

		if trade.CloseTime.After(trade.OpenTime) {
			totalDuration += trade.CloseTime.Sub(trade.OpenTime)
		}

		if trade.Profit.Gt(fixed.Zero) {
			totalProfit = totalProfit.Add(trade.Profit)
			report.WinningTrades++
		} else {
			totalLoss = totalLoss.Add(trade.Profit.Neg())
			report.LosingTrades++
		}
	}

	if report.WinningTrades > 0 {
		report.AverageWin = totalProfit.DivInt64(int64(report.WinningTrades))
	}
	if report.LosingTrades > 0 {
		report.AverageLoss = totalLoss.DivInt64(int64(report.LosingTrades))
	}
	if totalLoss.Gt(fixed.Zero) {
		report.ProfitFactor = totalProfit.Div(totalLoss)
	}
	if report.AverageLoss.Gt(fixed.Zero) {
		report.RiskRewardRatio = report.AverageWin.Div(report.AverageLoss)
	}
	if report.TotalTrades > 0 {
		report.Expectancy = totalProfit.Sub(totalLoss).DivInt64(int64(report.TotalTrades))
		report.AverageTradeDuration = totalDuration / time.Duration(report.TotalTrades)
		report.WinRate = fixed.FromInt64(int64(report.WinningTrades), 0).DivInt64(int64(report.TotalTrades)).MulInt64(100).Rescale(2)
	}
	if report.MaxDrawdown.Gt(fixed.Zero) {
		report.RecoveryFactor = report.TotalProfit.Div(report.MaxDrawdown)
	}
	report.MaxDrawdown = report.MaxDrawdown.MulInt64(100).Rescale(2)

	dailyReturns := a.dailyReturns()
	meanReturn := fixed.Mean(dailyReturns)
	vol := fixed.StdDev(dailyReturns, meanReturn)

	if !meanReturn.IsZero() && !vol.IsZero() {
		report.AnnualizedVolatility = vol.Mul(fixed.Sqrt252).MulInt64(100).Rescale(2)
		report.SharpeRatio = fixed.SharpeRatio(dailyReturns, fixed.Zero).Mul(fixed.Sqrt252).Rescale(5)
		report.SortinoRatio = fixed.SortinoRatio(dailyReturns, fixed.Zero).Mul(fixed.Sqrt252).Rescale(5)
	}

	return report
}

func (a *Audit) dayCount() int {
	if len(a.equities) < 2 {
		return 1
	}
	start := a.equities[0].TimeStamp
	end := a.equities[len(a.equities)-1].TimeStamp
	return int(end.Sub(start).Hours()/24) + 1
}

func (a *Audit) dailyReturns() []fixed.Point {
	var dailyReturns []fixed.Point
	if len(a.equities) < 2 {
		return dailyReturns
	}

	var (
		prevDate   = a.equities[0].TimeStamp.Truncate(24 * time.Hour)
		prevEquity = a.equities[0].Equity
	)

	for _, eq := range a.equities[1:] {
		currDate := eq.TimeStamp.Truncate(24 * time.Hour)

		if currDate.After(prevDate) && prevEquity.IsPos() {
			ret := eq.Equity.Div(prevEquity).Sub(fixed.One)
			dailyReturns = append(dailyReturns, ret)

			prevDate = currDate
			prevEquity = eq.Equity
		}
	}

	return dailyReturns
}
