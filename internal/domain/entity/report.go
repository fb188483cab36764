package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report instantánea del análisis de ventas. Se construye una vez y no se modifica;
// no guarda referencias a los registros de origen. Los importes siguen siendo exactos.
type Report struct {
	GeneratedAt    time.Time
	Filter         Filter
	TotalSales     decimal.Decimal
	SalesByStore   []GroupTotal
	SalesByProduct []GroupTotal
	MonthlyTrend   []PeriodTotal
	TopProducts    []ProductQuantity
}

// Dashboard datos que consume el front-end del tablero.
type Dashboard struct {
	TotalSales          decimal.Decimal
	SalesByStore        []GroupTotal
	SalesByProduct      []GroupTotal
	MonthlySales        []PeriodTotal
	BestSellingProducts []ProductQuantity
}
