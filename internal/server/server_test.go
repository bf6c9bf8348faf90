package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"agromarket/internal/domain"
	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/value"
	"agromarket/internal/infrastructure/marketapi"
	"agromarket/internal/server"
	"agromarket/pkg/errcodes"
	"agromarket/pkg/rest"
	"agromarket/pkg/tests"
)

type bidServiceStub struct {
	items []marketapi.BidListItem
	bid   entity.Bid
	offer entity.BidOffer
	stats entity.BidStatistics
	err   error

	gotFilters marketapi.BidListFilters
	gotInput   marketapi.CreateBidInput
}

func (s *bidServiceStub) Create(_ context.Context, input marketapi.CreateBidInput) (entity.Bid, error) {
	s.gotInput = input
	return s.bid, s.err
}

func (s *bidServiceStub) List(_ context.Context, filters marketapi.BidListFilters) ([]marketapi.BidListItem, error) {
	s.gotFilters = filters
	return s.items, s.err
}

func (s *bidServiceStub) GetByID(context.Context, string) (entity.Bid, error) {
	return s.bid, s.err
}

func (s *bidServiceStub) ListByFarmer(context.Context, string) ([]marketapi.BidListItem, error) {
	return s.items, s.err
}

func (s *bidServiceStub) WinningBids(context.Context, string) ([]marketapi.BidListItem, error) {
	return s.items, s.err
}

func (s *bidServiceStub) PlaceOffer(context.Context, marketapi.PlaceOfferInput) (entity.BidOffer, error) {
	return s.offer, s.err
}

func (s *bidServiceStub) AcceptOffer(context.Context, string, string) error { return s.err }
func (s *bidServiceStub) Cancel(context.Context, string) error              { return s.err }
func (s *bidServiceStub) ForceComplete(context.Context, string) error       { return s.err }
func (s *bidServiceStub) UpdateStatus(context.Context, string, string) error {
	return s.err
}

func (s *bidServiceStub) Statistics(context.Context) (entity.BidStatistics, error) {
	return s.stats, s.err
}

type allocationServiceStub struct {
	items []marketapi.AllocationListItem
	err   error
}

func (s *allocationServiceStub) Create(context.Context, marketapi.CreateAllocationInput) (entity.Allocation, error) {
	return entity.Allocation{}, s.err
}

func (s *allocationServiceStub) List(context.Context, marketapi.AllocationListFilters) ([]marketapi.AllocationListItem, error) {
	return s.items, s.err
}

func (s *allocationServiceStub) GetByID(context.Context, string) (entity.Allocation, error) {
	return entity.Allocation{}, s.err
}

func (s *allocationServiceStub) ListByFarmer(context.Context, string) ([]marketapi.AllocationListItem, error) {
	return s.items, s.err
}

func (s *allocationServiceStub) UpdateStatus(context.Context, string, string) error {
	return s.err
}

func (s *allocationServiceStub) Statistics(context.Context) (entity.AllocationStatistics, error) {
	return entity.AllocationStatistics{}, s.err
}

func newTestServer(t *testing.T, bids *bidServiceStub, allocations *allocationServiceStub) tests.APIClient {
	t.Helper()

	router := chi.NewRouter()
	server.NewServer(
		server.NewBidServer(bids),
		server.NewAllocationServer(allocations),
	).RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	return tests.NewAPIClient(httpServer.URL, nil)
}

func newBidItem(id string, status value.BidStatus) marketapi.BidListItem {
	return marketapi.BidListItem{
		Bid: entity.Bid{
			ID:       id,
			FarmerID: "farmer-1",
			Status:   status,
			Offers:   []entity.BidOffer{},
		},
		DisplayBuyer: "-",
		DisplayPrice: "-",
		PostedDate:   "20 Aug 2026",
	}
}

func TestGetAdminBids(t *testing.T) {
	rq := require.New(t)

	bids := &bidServiceStub{
		items: []marketapi.BidListItem{
			newBidItem("bid-1", value.BidStatusActive),
			newBidItem("bid-2", value.BidStatusActive),
			newBidItem("bid-3", value.BidStatusCancelled),
		},
	}

	apiClient := newTestServer(t, bids, &allocationServiceStub{})

	var table rest.BidTable

	resp, err := apiClient.Get(
		context.Background(),
		"/v1/admin/bids?status=ACTIVE&dateRange=7&page=2&perPage=2",
		nil,
		&table,
		nil,
	)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal(marketapi.BidListFilters{Status: "ACTIVE", DateRange: 7}, bids.gotFilters)

	rq.Len(table.Rows, 1, "second page of three rows at two per page")
	rq.Equal("bid-3", table.Rows[0].ID)
	rq.Equal("red", table.Rows[0].StatusColor)
	rq.NotNil(table.Rows[0].Offers)
	rq.Equal(2, table.Pagination.Page)
	rq.Equal(2, table.Pagination.TotalPages)
	rq.True(table.Pagination.HasPrev)
	rq.False(table.Pagination.HasNext)
}

func TestGetAdminBidsInvalidDateRange(t *testing.T) {
	rq := require.New(t)

	apiClient := newTestServer(t, &bidServiceStub{}, &allocationServiceStub{})

	var errResp rest.Error

	resp, err := apiClient.Get(context.Background(), "/v1/admin/bids?dateRange=soon", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("ValidationError"), errResp.Code)
	rq.Equal("dateRange must be a non-negative day count", errResp.Message)
}

func TestErrorRendering(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   rest.ErrorCode
	}{
		{
			name:       "Missing record",
			err:        domain.NewError(errcodes.NotFound, "the requested record was not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NotFound",
		},
		{
			name:       "Conflict",
			err:        domain.NewError(errcodes.Conflict, "the record changed in the meantime, refresh and try again"),
			wantStatus: http.StatusConflict,
			wantCode:   "Conflict",
		},
		{
			name:       "Backend fault surfaces as bad gateway",
			err:        domain.NewError(errcodes.BackendError, "the marketplace server ran into a problem, try again later"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "BackendError",
		},
		{
			name:       "Timeout surfaces as gateway timeout",
			err:        domain.NewError(errcodes.TimeoutExceeded, "the request took too long, please try again"),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "TimeoutExceeded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			apiClient := newTestServer(t, &bidServiceStub{err: tc.err}, &allocationServiceStub{})

			var errResp rest.Error

			resp, err := apiClient.Get(context.Background(), "/v1/bids/bid-1", nil, nil, &errResp)
			rq.NoError(err)
			rq.Equal(tc.wantStatus, resp.StatusCode)
			rq.Equal(tc.wantCode, errResp.Code)
			rq.NotEmpty(errResp.Message)
		})
	}
}

func TestPostBid(t *testing.T) {
	rq := require.New(t)

	bids := &bidServiceStub{
		bid: entity.Bid{ID: "bid-1", FarmerID: "farmer-1", Status: value.BidStatusActive},
	}

	apiClient := newTestServer(t, bids, &allocationServiceStub{})

	var created rest.Bid

	resp, err := apiClient.Post(
		context.Background(),
		"/v1/bids",
		nil,
		rest.CreateBidRequest{
			FarmerID:    "farmer-1",
			HarvestDate: "2026-09-10",
			MinPrice:    1500,
		},
		&created,
		nil,
	)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("bid-1", created.ID)
	rq.Equal("farmer-1", bids.gotInput.FarmerID)
	rq.Equal("2026-09-10", bids.gotInput.HarvestDate.Format("2006-01-02"))
}

func TestPostBidRejectsMissingFarmer(t *testing.T) {
	rq := require.New(t)

	apiClient := newTestServer(t, &bidServiceStub{}, &allocationServiceStub{})

	resp, err := apiClient.Post(
		context.Background(),
		"/v1/bids",
		nil,
		rest.CreateBidRequest{
			HarvestDate: "2026-09-10",
			MinPrice:    1500,
		},
		nil,
		nil,
	)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestGetFarmerAllocations(t *testing.T) {
	rq := require.New(t)

	allocations := &allocationServiceStub{
		items: []marketapi.AllocationListItem{
			{
				Allocation: entity.Allocation{
					ID:       "alloc-1",
					FarmerID: "farmer-1",
					Amount:   1500,
					Season:   value.SeasonDry,
					Year:     2026,
					Status:   value.AllocationStatusApproved,
				},
				DisplayAmount:   "1.500 kg",
				DistributionDay: "01 Sep 2026",
			},
		},
	}

	apiClient := newTestServer(t, &bidServiceStub{}, allocations)

	var table rest.AllocationTable

	resp, err := apiClient.Get(context.Background(), "/v1/farmers/farmer-1/allocations", nil, &table, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(table.Rows, 1)
	rq.Equal("blue", table.Rows[0].StatusColor)
	rq.Equal("1.500 kg", table.Rows[0].DisplayAmount)
}
