package cost

import (
	"log/slog"

	"trip-decoder/internal/document"
	"trip-decoder/internal/logger"
)

// Rates values loyalty points in cash.
type Rates interface {
	CashPerPoint(program string) float64
}

// FixedRate values every program the same.
type FixedRate float64

// CashPerPoint implements Rates.
func (r FixedRate) CashPerPoint(string) float64 {
	return float64(r)
}

// DefaultCurrency is used when neither the document nor the decoder names one.
const DefaultCurrency = "USD"

// Decoder decodes costs. It is safe for concurrent use.
type Decoder struct {
	rates    Rates
	currency string
	log      *slog.Logger
}

// NewDecoder returns a Decoder valuing points with rates. A nil rates values
// points at zero; an empty currency means DefaultCurrency.
func NewDecoder(rates Rates, currency string, log *slog.Logger) *Decoder {
	if rates == nil {
		rates = FixedRate(0)
	}

	if currency == "" {
		currency = DefaultCurrency
	}

	return &Decoder{rates: rates, currency: currency, log: logger.OrNop(log)}
}

// Flexible decodes a FlexibleCost from any of the known dialects.
func (d *Decoder) Flexible(value any, path document.Path) FlexibleCost {
	if value == nil {
		return FlexibleCost{}
	}

	if amount, ok := document.Number(value); ok {
		return FlexibleCost{PaymentType: Cash, CashAmount: amount, TotalCashValue: amount}
	}

	doc, ok := document.AsDocument(value)
	if !ok {
		d.log.Debug("cost defaulted", "path", path.String(), "kind", document.KindOf(value).String())
		return FlexibleCost{}
	}

	a := document.At(doc, path)

	if tag, ok := a.LookupString("paymentType"); ok {
		return d.tagged(a, tag)
	}

	if amount, ok := a.LookupFloat("cash"); ok {
		return FlexibleCost{PaymentType: Cash, CashAmount: amount, TotalCashValue: amount}
	}

	return FlexibleCost{}
}

func (d *Decoder) tagged(a document.Accessor, tag string) FlexibleCost {
	cash := a.Float("cashAmount", a.Float("cash", 0))

	var points *int
	if p, ok := a.LookupInt("pointsAmount"); ok {
		points = intPtr(p)
	}

	pt, known := ParsePaymentType(tag)
	if !known {
		pt = inferType(cash, derefInt(points))
		d.log.Debug("unknown payment type", "path", a.Sub("paymentType").String(), "value", tag, "inferred", pt.String())
	}

	c := FlexibleCost{PaymentType: pt, CashAmount: cash}

	if pt != Cash {
		c.PointsAmount = points
		c.PointsProgram = a.String("pointsProgram", "")
	}

	if total, ok := a.LookupFloat("totalCashValue"); ok {
		c.TotalCashValue = total
	} else {
		c.TotalCashValue = cash + float64(c.Points())*d.rates.CashPerPoint(c.PointsProgram)
	}

	return c
}

// Transport decodes a TransportCost. It accepts the tagged dialect too,
// mapping cashAmount and pointsAmount onto cash and points.
func (d *Decoder) Transport(value any, path document.Path) TransportCost {
	out := TransportCost{Currency: d.currency}

	if value == nil {
		return out
	}

	doc, ok := document.AsDocument(value)
	if !ok {
		if amount, ok := document.Number(value); ok {
			out.Cash = amount
		}

		return out
	}

	a := document.At(doc, path)
	out.Currency = a.String("currency", d.currency)

	cashKey, pointsKey := "cash", "points"
	if a.Has("paymentType") {
		cashKey, pointsKey = "cashAmount", "pointsAmount"
	}

	out.Cash = a.Float(cashKey, 0)

	if p, ok := a.LookupInt(pointsKey); ok {
		out.Points = intPtr(p)
	}

	return out
}

// Breakdown decodes a CostBreakdown as stored.
func (d *Decoder) Breakdown(value any, path document.Path) CostBreakdown {
	out := CostBreakdown{Currency: d.currency}

	doc, ok := document.AsDocument(value)
	if !ok {
		return out
	}

	a := document.At(doc, path)
	field := func(key string) FlexibleCost {
		v, _ := a.Raw(key)
		return d.Flexible(v, a.Sub(key))
	}

	out.Flights = field("flights")
	out.Accommodation = field("accommodation")
	out.Activities = field("activities")
	out.Transportation = field("transportation")
	out.Food = field("food")
	out.Other = field("other")
	out.Total = field("total")
	out.Currency = a.String("currency", d.currency)

	return out
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}

	return *p
}
