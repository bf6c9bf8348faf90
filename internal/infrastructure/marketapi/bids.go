package marketapi

import (
	"context"
	"errors"
	"net/http"
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
	pathBids           = "/bids"
	pathBidsAdmin      = "/bids/admin"
	pathBidsStatistics = "/bids/statistics"
)

// BidService translates bid intents into backend calls and failures into
// display-ready messages. All validation here is advisory; the backend stays
// authoritative.
type BidService struct {
	client         *Client
	currencyPrefix string
	now            func() time.Time
}

func NewBidService(client *Client, currencyPrefix string) *BidService {
	return &BidService{
		client:         client,
		currencyPrefix: currencyPrefix,
		now:            time.Now,
	}
}

func (s *BidService) WithClock(now func() time.Time) *BidService {
	s.now = now
	return s
}

type CreateBidInput struct {
	FarmerID    string
	HarvestDate time.Time
	MinPrice    int64
}

// Create submits a new bid. The harvest date is normalized to midnight UTC
// and the lifecycle status is always the initial active one.
func (s *BidService) Create(ctx context.Context, input CreateBidInput) (entity.Bid, error) {
	if input.FarmerID == "" {
		return entity.Bid{}, domain.NewError(errcodes.InvalidFarmerID, "farmer id is required")
	}

	body := bidCreateSchema{
		FarmerID:    input.FarmerID,
		HarvestDate: normalizeHarvestDate(input.HarvestDate).Format(time.RFC3339),
		MinPrice:    input.MinPrice,
		Status:      value.BidStatusActive.String(),
	}

	var schema bidSchema
	if err := s.client.Post(ctx, pathBids, nil, body, &schema); err != nil {
		return entity.Bid{}, normalize(ctx, err)
	}

	return schema.toDomain(), nil
}

func normalizeHarvestDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BidListFilters is the allow-list of admin listing filters. Zero values and
// the ALL status sentinel mean "no filter" and are omitted from the query.
type BidListFilters struct {
	Status    string
	DateRange int // days back from now
	Search    string
}

func (s *BidService) listQuery(filters BidListFilters) url.Values {
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

// List fetches the admin bid listing. Cancellation is cooperative: abandoning
// the view cancels ctx and with it the in-flight call.
func (s *BidService) List(ctx context.Context, filters BidListFilters) ([]BidListItem, error) {
	var schemas []bidSchema
	if err := s.client.Get(ctx, pathBidsAdmin, s.listQuery(filters), &schemas); err != nil {
		return nil, normalize(ctx, err)
	}

	return lo.Map(schemas, func(schema bidSchema, _ int) BidListItem {
		return s.newListItem(schema)
	}), nil
}

func (s *BidService) GetByID(ctx context.Context, bidID string) (entity.Bid, error) {
	if bidID == "" {
		return entity.Bid{}, domain.NewError(errcodes.InvalidBidID, "bid id is required")
	}

	var schema bidSchema
	if err := s.client.Get(ctx, pathBids+"/"+bidID, nil, &schema); err != nil {
		return entity.Bid{}, normalize(ctx, err)
	}

	return schema.toDomain(), nil
}

func (s *BidService) ListByFarmer(ctx context.Context, farmerID string) ([]BidListItem, error) {
	if farmerID == "" {
		return nil, domain.NewError(errcodes.InvalidFarmerID, "farmer id is required")
	}

	var schemas []bidSchema
	if err := s.client.Get(ctx, pathBids+"/farmer/"+farmerID, nil, &schemas); err != nil {
		return nil, normalize(ctx, err)
	}

	return lo.Map(schemas, func(schema bidSchema, _ int) BidListItem {
		return s.newListItem(schema)
	}), nil
}

// WinningBids lists the bids a buyer has won.
func (s *BidService) WinningBids(ctx context.Context, buyerID string) ([]BidListItem, error) {
	if buyerID == "" {
		return nil, domain.NewError(errcodes.InvalidBuyerID, "buyer id is required")
	}

	var schemas []bidSchema
	if err := s.client.Get(ctx, pathBids+"/buyer/"+buyerID+"/winning", nil, &schemas); err != nil {
		return nil, normalize(ctx, err)
	}

	return lo.Map(schemas, func(schema bidSchema, _ int) BidListItem {
		return s.newListItem(schema)
	}), nil
}

type PlaceOfferInput struct {
	BidID   string
	BuyerID string
	Amount  int64
}

func (s *BidService) PlaceOffer(ctx context.Context, input PlaceOfferInput) (entity.BidOffer, error) {
	switch {
	case input.BidID == "":
		return entity.BidOffer{}, domain.NewError(errcodes.InvalidBidID, "bid id is required")
	case input.BuyerID == "":
		return entity.BidOffer{}, domain.NewError(errcodes.InvalidBuyerID, "buyer id is required")
	case input.Amount <= 0:
		return entity.BidOffer{}, domain.NewError(errcodes.InvalidOfferAmount, "offer amount must be positive")
	}

	body := bidOfferSchema{
		BidID:   input.BidID,
		BuyerID: input.BuyerID,
		Amount:  input.Amount,
	}

	var schema bidOfferSchema
	if err := s.client.Post(ctx, pathBids+"/"+input.BidID+"/offers", nil, body, &schema); err != nil {
		return entity.BidOffer{}, normalize(ctx, err)
	}

	return entity.BidOffer{
		ID:      schema.ID,
		BidID:   schema.BidID,
		BuyerID: schema.BuyerID,
		Amount:  schema.Amount,
	}, nil
}

// AcceptOffer marks an offer as the winning one. A backend 500 on this call
// gets its own message instead of the generic server-fault one, because it
// usually means the offer was left half-processed.
func (s *BidService) AcceptOffer(ctx context.Context, bidID, offerID string) error {
	switch {
	case bidID == "":
		return domain.NewError(errcodes.InvalidBidID, "bid id is required")
	case offerID == "":
		return domain.NewError(errcodes.InvalidOfferID, "offer id is required")
	}

	query := url.Values{}
	query.Set("offerId", offerID)

	if err := s.client.Put(ctx, pathBids+"/"+bidID+"/accept", query, nil, nil); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode >= http.StatusInternalServerError {
			return normalize(ctx, domain.WrapError(err, errcodes.OfferProcessingError, msgOfferAccept))
		}

		return normalize(ctx, err)
	}

	return nil
}

func (s *BidService) Cancel(ctx context.Context, bidID string) error {
	if bidID == "" {
		return domain.NewError(errcodes.InvalidBidID, "bid id is required")
	}

	if err := s.client.Put(ctx, pathBids+"/"+bidID+"/cancel", nil, nil, nil); err != nil {
		return normalize(ctx, err)
	}

	return nil
}

// ForceComplete closes a bid regardless of its current status. Admin only.
func (s *BidService) ForceComplete(ctx context.Context, bidID string) error {
	if bidID == "" {
		return domain.NewError(errcodes.InvalidBidID, "bid id is required")
	}

	if err := s.client.Put(ctx, pathBids+"/"+bidID+"/complete", nil, nil, nil); err != nil {
		return normalize(ctx, err)
	}

	return nil
}

func (s *BidService) UpdateStatus(ctx context.Context, bidID, status string) error {
	if bidID == "" {
		return domain.NewError(errcodes.InvalidBidID, "bid id is required")
	}

	parsed, err := value.ParseBidStatus(status)
	if err != nil {
		return domain.WrapError(err, errcodes.InvalidBidStatus, "unknown bid status")
	}

	query := url.Values{}
	query.Set("status", parsed.String())

	if err := s.client.Put(ctx, pathBids+"/"+bidID+"/status", query, nil, nil); err != nil {
		return normalize(ctx, err)
	}

	return nil
}

func (s *BidService) Statistics(ctx context.Context) (entity.BidStatistics, error) {
	var schema bidStatisticsSchema
	if err := s.client.Get(ctx, pathBidsStatistics, nil, &schema); err != nil {
		return entity.BidStatistics{}, normalize(ctx, err)
	}

	return schema.toDomain(), nil
}
