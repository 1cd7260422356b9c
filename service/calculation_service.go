package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"carrier-contracts/models"
	"carrier-contracts/ratematrix"
	"carrier-contracts/repository"
)

//go:embed sampledata/discount_card.json
var sampleDiscountCard []byte

// SampleDiscountCard returns the bundled discount card used when the backend is unreachable
func SampleDiscountCard() (models.DiscountCard, error) {
	var card models.DiscountCard
	if err := json.Unmarshal(sampleDiscountCard, &card); err != nil {
		return nil, fmt.Errorf("failed to parse sample discount card: %w", err)
	}
	return card, nil
}

// CalculationService fetches discount cards and projects them into rate matrices
type CalculationService struct {
	repository repository.ContractRepositoryInterface
	options    ratematrix.Options
	fallback   bool
	logger     *zap.SugaredLogger
}

// NewCalculationService creates a new CalculationService.
// When fallback is true a failed calculation is replaced by the bundled sample card.
func NewCalculationService(
	repo repository.ContractRepositoryInterface,
	options ratematrix.Options,
	fallback bool,
	logger *zap.SugaredLogger,
) *CalculationService {
	return &CalculationService{
		repository: repo,
		options:    options,
		fallback:   fallback,
		logger:     logger,
	}
}

// Ensure CalculationService implements CalculationServiceInterface
var _ CalculationServiceInterface = (*CalculationService)(nil)

// MatrixView is everything the calculator needs to render one service
type MatrixView struct {
	WeeklyCharges   string
	Services        []string
	SelectedService string
	Projector       *ratematrix.Projector
	// UsedSample is set when the backend failed and sample data is shown instead
	UsedSample     bool
	FallbackReason string
}

// CalculationResult is a discount card together with where it came from
type CalculationResult struct {
	Card models.DiscountCard
	// UsedSample is set when the backend failed and the bundled sample card was substituted
	UsedSample     bool
	FallbackReason string
}

// Calculate returns the discount card of a version for weeklyPrice.
// With fallback enabled a backend failure is not an error: the sample card is
// returned with UsedSample set and the failure kept in FallbackReason.
func (s *CalculationService) Calculate(ctx context.Context, versionID, weeklyPrice string) (*CalculationResult, error) {
	card, err := s.repository.Calculate(ctx, versionID, weeklyPrice)
	if err == nil {
		s.logger.Infof("✅ Calculate: version=%s services=%d", versionID, len(card))
		return &CalculationResult{Card: card}, nil
	}

	if !s.fallback {
		return nil, err
	}

	s.logger.Warnf("⚠️  Calculate: backend failed for version=%s, using sample data: %v", versionID, err)
	sample, sampleErr := SampleDiscountCard()
	if sampleErr != nil {
		return nil, fmt.Errorf("%w (sample fallback: %v)", err, sampleErr)
	}
	return &CalculationResult{
		Card:           sample,
		UsedSample:     true,
		FallbackReason: err.Error(),
	}, nil
}

// BuildMatrix calculates the card and projects the requested service.
// An empty service selects the first service of the card.
func (s *CalculationService) BuildMatrix(ctx context.Context, versionID, weeklyPrice, service string) (*MatrixView, error) {
	result, err := s.Calculate(ctx, versionID, weeklyPrice)
	if err != nil {
		return nil, err
	}

	view := ProjectCard(result.Card, service, s.options)
	view.WeeklyCharges = weeklyPrice
	view.UsedSample = result.UsedSample
	view.FallbackReason = result.FallbackReason
	return view, nil
}

// ProjectCard builds the matrix view of one service of a card
func ProjectCard(card models.DiscountCard, service string, options ratematrix.Options) *MatrixView {
	services := card.Services()
	if service == "" && len(services) > 0 {
		service = services[0]
	}
	return &MatrixView{
		Services:        services,
		SelectedService: service,
		Projector:       ratematrix.New(card.Records(), service, options),
	}
}
