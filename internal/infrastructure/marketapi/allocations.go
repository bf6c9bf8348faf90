package marketapi

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"agromarket/internal/domain"
	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/value"
	"agromarket/pkg/errcodes"
)

const (
	pathAllocations           = "/allocations"
	pathAllocationsStatistics = "/allocations/statistics"
)

// AllocationService covers the fertilizer allocation resource with the same
// contract as BidService: validate, call, reshape, normalize.
type AllocationService struct {
	client *Client
	now    func() time.Time
}

func NewAllocationService(client *Client) *AllocationService {
	return &AllocationService{
		client: client,
		now:    time.Now,
	}
}

func (s *AllocationService) WithClock(now func() time.Time) *AllocationService {
	s.now = now
	return s
}

type CreateAllocationInput struct {
	FarmerID             string
	Amount               int64
	Season               string
	Year                 int
	DistributionDate     time.Time
	DistributionLocation string
}

func (s *AllocationService) Create(ctx context.Context, input CreateAllocationInput) (entity.Allocation, error) {
	if input.FarmerID == "" {
		return entity.Allocation{}, domain.NewError(errcodes.InvalidFarmerID, "farmer id is required")
	}

	season, err := value.ParseSeason(input.Season)
	if err != nil {
		return entity.Allocation{}, domain.WrapError(err, errcodes.InvalidSeason, "unknown season")
	}

	body := allocationCreateSchema{
		FarmerID:             input.FarmerID,
		Amount:               input.Amount,
		Season:               season.String(),
		Year:                 input.Year,
		DistributionDate:     input.DistributionDate.Format(time.RFC3339),
		DistributionLocation: input.DistributionLocation,
		Status:               value.AllocationStatusPending.String(),
	}

	var schema allocationSchema
	if err := s.client.Post(ctx, pathAllocations, nil, body, &schema); err != nil {
		return entity.Allocation{}, normalize(ctx, err)
	}

	return schema.toDomain(), nil
}

// AllocationListFilters mirrors the bid listing allow-list.
type AllocationListFilters struct {
	Status    string
	DateRange int
	Search    string
}

func (s *AllocationService) listQuery(filters AllocationListFilters) url.Values {
	query := url.Values{}

	if filters.Status != "" && !strings.EqualFold(filters.Status, value.StatusAll) {
		query.Set("status", strings.ToUpper(filters.Status))
	}

	if filters.DateRange > 0 {
		fromDate := s.now().AddDate(0, 0, -filters.DateRange)
		query.Set("fromDate", fromDate.Format(queryDateLayout))
	}

	if filters.Search != "" {
		query.Set("search", filters.Search)
	}

	return query
}

func (s *AllocationService) List(ctx context.Context, filters AllocationListFilters) ([]AllocationListItem, error) {
	var schemas []allocationSchema
	if err := s.client.Get(ctx, pathAllocations, s.listQuery(filters), &schemas); err != nil {
		return nil, normalize(ctx, err)
	}

	return lo.Map(schemas, func(schema allocationSchema, _ int) AllocationListItem {
		return s.newListItem(schema)
	}), nil
}

func (s *AllocationService) GetByID(ctx context.Context, allocationID string) (entity.Allocation, error) {
	if allocationID == "" {
		return entity.Allocation{}, domain.NewError(errcodes.InvalidAllocationID, "allocation id is required")
	}

	var schema allocationSchema
	if err := s.client.Get(ctx, pathAllocations+"/"+allocationID, nil, &schema); err != nil {
		return entity.Allocation{}, normalize(ctx, err)
	}

	return schema.toDomain(), nil
}

func (s *AllocationService) ListByFarmer(ctx context.Context, farmerID string) ([]AllocationListItem, error) {
	if farmerID == "" {
		return nil, domain.NewError(errcodes.InvalidFarmerID, "farmer id is required")
	}

	var schemas []allocationSchema
	if err := s.client.Get(ctx, pathAllocations+"/farmer/"+farmerID, nil, &schemas); err != nil {
		return nil, normalize(ctx, err)
	}

	return lo.Map(schemas, func(schema allocationSchema, _ int) AllocationListItem {
		return s.newListItem(schema)
	}), nil
}

func (s *AllocationService) UpdateStatus(ctx context.Context, allocationID, status string) error {
	if allocationID == "" {
		return domain.NewError(errcodes.InvalidAllocationID, "allocation id is required")
	}

	parsed, err := value.ParseAllocationStatus(status)
	if err != nil {
		return domain.WrapError(err, errcodes.InvalidAllocationStatus, "unknown allocation status")
	}

	query := url.Values{}
	query.Set("status", parsed.String())

	if err := s.client.Put(ctx, pathAllocations+"/"+allocationID+"/status", query, nil, nil); err != nil {
		return normalize(ctx, err)
	}

	return nil
}

func (s *AllocationService) Statistics(ctx context.Context) (entity.AllocationStatistics, error) {
	var schema allocationStatisticsSchema
	if err := s.client.Get(ctx, pathAllocationsStatistics, nil, &schema); err != nil {
		return entity.AllocationStatistics{}, normalize(ctx, err)
	}

	return schema.toDomain(), nil
}
