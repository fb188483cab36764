package analytics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/entity"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository/mocks"
)

var fixedNow = time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// ──────────────────────────────────────────────────────────────────────────────
// ReportAssembler
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_DesdeMemoria(t *testing.T) {
	a := analytics.NewReportAssembler(analytics.NewMemoryAggregator(sample()), analytics.WithClock(fixedClock))

	r, err := a.Build(context.Background(), entity.Filter{})
	require.NoError(t, err)

	assert.Equal(t, fixedNow, r.GeneratedAt)
	assert.True(t, dec("110.99").Equal(r.TotalSales))
	assert.Len(t, r.SalesByStore, 3)
	assert.Len(t, r.SalesByProduct, 3)
	assert.Len(t, r.MonthlyTrend, 3)
	assert.Len(t, r.TopProducts, 3)

	out := dto.FromReport(r)
	assert.Equal(t, "2024-02-01 09:30:00", out.GeneratedAt)
	assert.InDelta(t, 110.99, out.TotalSales, 1e-9)
	assert.Equal(t, "B", out.SalesByStore[0].Store)
}

func TestBuild_OrdenFijoYTopPorDefecto(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	f := entity.Filter{Stores: []string{"A"}}

	gomock.InOrder(
		agg.EXPECT().TotalSales(gomock.Any(), f).Return(decimal.NewFromInt(50), nil),
		agg.EXPECT().SalesByStore(gomock.Any(), f).Return([]entity.GroupTotal{}, nil),
		agg.EXPECT().SalesByProduct(gomock.Any(), f).Return([]entity.GroupTotal{}, nil),
		agg.EXPECT().SalesTrend(gomock.Any(), f, entity.GranularityMonth).Return([]entity.PeriodTotal{}, nil),
		agg.EXPECT().TopProducts(gomock.Any(), f, analytics.DefaultTopN).Return([]entity.ProductQuantity{}, nil),
	)

	r, err := analytics.NewReportAssembler(agg).Build(context.Background(), f)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(r.TotalSales))
	assert.Equal(t, f, r.Filter)
}

func TestBuild_TopNConfigurable(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)

	agg.EXPECT().TotalSales(gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
	agg.EXPECT().SalesByStore(gomock.Any(), gomock.Any()).Return([]entity.GroupTotal{}, nil)
	agg.EXPECT().SalesByProduct(gomock.Any(), gomock.Any()).Return([]entity.GroupTotal{}, nil)
	agg.EXPECT().SalesTrend(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.PeriodTotal{}, nil)
	agg.EXPECT().TopProducts(gomock.Any(), gomock.Any(), 3).Return([]entity.ProductQuantity{}, nil)

	_, err := analytics.NewReportAssembler(agg, analytics.WithTopN(3)).Build(context.Background(), entity.Filter{})
	require.NoError(t, err)
}

func TestBuild_AlmacenNoDisponibleSinReporte(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	storeErr := domain.StoreError("postgres.SalesByStore", errors.New("connection refused"))

	agg.EXPECT().TotalSales(gomock.Any(), gomock.Any()).Return(decimal.NewFromInt(10), nil)
	agg.EXPECT().SalesByStore(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	r, err := analytics.NewReportAssembler(agg).Build(context.Background(), entity.Filter{})
	assert.Nil(t, r)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// DashboardUseCase
// ──────────────────────────────────────────────────────────────────────────────

type memWriter struct {
	path string
	got  *dto.DashboardDTO
	err  error
}

func (w *memWriter) WriteDashboardJS(path string, d *dto.DashboardDTO) error {
	if w.err != nil {
		return w.err
	}
	w.path, w.got = path, d
	return nil
}

func TestDashboard_Publish(t *testing.T) {
	w := &memWriter{}
	uc := analytics.NewDashboardUseCase(analytics.NewReportAssembler(analytics.NewMemoryAggregator(sample())), w, zerolog.Nop())

	require.NoError(t, uc.Publish(context.Background(), "out/dashboard_data.js"))
	assert.Equal(t, "out/dashboard_data.js", w.path)
	require.NotNil(t, w.got)
	assert.InDelta(t, 110.99, w.got.TotalSales, 1e-9)
	assert.Len(t, w.got.MonthlySales, 3)
	assert.Equal(t, "Bidule", w.got.BestSellingProducts[0].Product)
}

func TestDashboard_PublishFallaAlEscribir(t *testing.T) {
	w := &memWriter{err: fmt.Errorf("disco lleno")}
	uc := analytics.NewDashboardUseCase(analytics.NewReportAssembler(analytics.NewMemoryAggregator(nil)), w, zerolog.Nop())
	assert.Error(t, uc.Publish(context.Background(), "x.js"))
}

func TestDashboard_AlmacenNoDisponible(t *testing.T) {
	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	agg.EXPECT().TotalSales(gomock.Any(), gomock.Any()).Return(decimal.Zero, domain.StoreError("sqlite.TotalSales", errors.New("database is locked")))

	uc := analytics.NewDashboardUseCase(analytics.NewReportAssembler(agg), nil, zerolog.Nop())
	d, err := uc.GetDashboard(context.Background())
	assert.Nil(t, d)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
