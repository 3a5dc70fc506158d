package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fxrates/internal/fx"
)

type MockReader struct {
	mock.Mock
}

func (m *MockReader) GetRates(ctx context.Context, rate, quote string, bases []string, dates []time.Time) (*fx.Matrix, error) {
	args := m.Called(ctx, rate, quote, bases, dates)
	matrix, _ := args.Get(0).(*fx.Matrix)
	return matrix, args.Error(1)
}
