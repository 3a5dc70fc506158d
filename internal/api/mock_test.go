package api

import (
	"context"

	"go.uber.org/zap"

	"fxrates/internal/service"
)

// mockRateService implements service.RateServiceInterface for testing.
type mockRateService struct {
	getRatesFunc   func(ctx context.Context, req service.RatesRequest) (*service.RatesResult, error)
	listTablesFunc func(ctx context.Context) []service.TableInfo
}

func (m *mockRateService) GetRates(ctx context.Context, req service.RatesRequest) (*service.RatesResult, error) {
	return m.getRatesFunc(ctx, req)
}

func (m *mockRateService) ListTables(ctx context.Context) []service.TableInfo {
	return m.listTablesFunc(ctx)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(context.Context) error { return m.err }

func nopLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }
