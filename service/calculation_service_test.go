package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrier-contracts/logging"
	"carrier-contracts/models"
	"carrier-contracts/ratematrix"
)

func testCard() models.DiscountCard {
	return models.DiscountCard{
		{
			Service: "Ground",
			DiscountsDatas: []models.DiscountRecord{
				{Weight: "1-5", Zone: "2", TotalDiscount: decimal.NewNullDecimal(decimal.NewFromInt(30)), IsMinimum: true},
				{Weight: "6-10", Zone: "3", TotalDiscount: decimal.NewNullDecimal(decimal.NewFromInt(25))},
			},
		},
		{
			Service: "Air",
			DiscountsDatas: []models.DiscountRecord{
				{Weight: "Letter", Zone: "102", TotalDiscount: decimal.NewNullDecimal(decimal.NewFromInt(40))},
			},
		},
	}
}

func TestSampleDiscountCard(t *testing.T) {
	card, err := SampleDiscountCard()
	require.NoError(t, err)
	require.NotEmpty(t, card)

	for _, s := range card {
		assert.NotEmpty(t, s.Service)
		assert.NotEmpty(t, s.DiscountsDatas)
	}
}

func TestCalculationService_Calculate(t *testing.T) {
	repo := &fakeRepository{card: testCard()}
	svc := NewCalculationService(repo, ratematrix.DefaultOptions(), true, logging.Nop())

	result, err := svc.Calculate(context.Background(), "3", "2500")
	require.NoError(t, err)
	assert.False(t, result.UsedSample)
	assert.Empty(t, result.FallbackReason)
	assert.Equal(t, []string{"Ground", "Air"}, result.Card.Services())
}

func TestCalculationService_FallsBackToSample(t *testing.T) {
	backendErr := errors.New("connection refused")
	repo := &fakeRepository{calcErr: backendErr}
	svc := NewCalculationService(repo, ratematrix.DefaultOptions(), true, logging.Nop())

	result, err := svc.Calculate(context.Background(), "3", "2500")
	require.NoError(t, err)
	assert.True(t, result.UsedSample)
	assert.Equal(t, "connection refused", result.FallbackReason)

	sample, sampleErr := SampleDiscountCard()
	require.NoError(t, sampleErr)
	assert.Equal(t, sample.Services(), result.Card.Services())
}

func TestCalculationService_NoFallback(t *testing.T) {
	backendErr := errors.New("connection refused")
	repo := &fakeRepository{calcErr: backendErr}
	svc := NewCalculationService(repo, ratematrix.DefaultOptions(), false, logging.Nop())

	result, err := svc.Calculate(context.Background(), "3", "2500")
	assert.ErrorIs(t, err, backendErr)
	assert.Nil(t, result)

	_, err = svc.BuildMatrix(context.Background(), "3", "2500", "")
	assert.ErrorIs(t, err, backendErr)
}

func TestCalculationService_BuildMatrix(t *testing.T) {
	tests := []struct {
		name         string
		service      string
		wantSelected string
		wantWeights  []string
		wantEmpty    bool
	}{
		{
			name:         "empty service selects the first one",
			service:      "",
			wantSelected: "Ground",
			wantWeights:  []string{"1-5", "6-10"},
		},
		{
			name:         "explicit service",
			service:      "Air",
			wantSelected: "Air",
			wantWeights:  []string{"Letter"},
		},
		{
			name:         "unknown service yields an empty grid",
			service:      "Freight",
			wantSelected: "Freight",
			wantWeights:  []string{},
			wantEmpty:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{card: testCard()}
			svc := NewCalculationService(repo, ratematrix.DefaultOptions(), true, logging.Nop())

			view, err := svc.BuildMatrix(context.Background(), "3", "2500", tt.service)
			require.NoError(t, err)
			assert.Equal(t, "2500", view.WeeklyCharges)
			assert.Equal(t, []string{"Ground", "Air"}, view.Services)
			assert.Equal(t, tt.wantSelected, view.SelectedService)
			assert.Equal(t, tt.wantWeights, view.Projector.Weights())
			assert.Equal(t, tt.wantEmpty, view.Projector.Empty())
			assert.False(t, view.UsedSample)
		})
	}
}

func TestCalculationService_BuildMatrixWithSample(t *testing.T) {
	repo := &fakeRepository{calcErr: errors.New("HTTP error! status: 502")}
	svc := NewCalculationService(repo, ratematrix.DefaultOptions(), true, logging.Nop())

	view, err := svc.BuildMatrix(context.Background(), "3", "2500", "")
	require.NoError(t, err)
	assert.True(t, view.UsedSample)
	assert.Contains(t, view.FallbackReason, "502")
	assert.False(t, view.Projector.Empty())
}
