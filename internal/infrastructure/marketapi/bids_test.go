package marketapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"agromarket/internal/config"
	"agromarket/internal/domain"
	"agromarket/internal/infrastructure/marketapi"
	"agromarket/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func newTestClient(t *testing.T, handlerFunc http.HandlerFunc) (*marketapi.Client, *int64) {
	t.Helper()

	var calls int64

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handlerFunc(w, r)
	}))
	t.Cleanup(httpServer.Close)

	client := marketapi.NewClient(config.Backend{
		BaseAddress: httpServer.URL,
		Timeout:     5 * time.Second,
	})

	return client, &calls
}

func TestBidServiceCreateRequiresFarmerID(t *testing.T) {
	rq := require.New(t)

	client, calls := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	service := marketapi.NewBidService(client, "Rp")

	_, err := service.Create(context.Background(), marketapi.CreateBidInput{
		HarvestDate: time.Now(),
		MinPrice:    1000,
	})

	var appErr *domain.AppError
	rq.ErrorAs(err, &appErr)
	rq.Equal(errcodes.InvalidFarmerID, appErr.Code)
	rq.Equal("farmer id is required", appErr.Message)
	rq.EqualValues(0, atomic.LoadInt64(calls), "no network call may happen on validation failure")
}

func TestBidServiceCreateNormalizesRequest(t *testing.T) {
	rq := require.New(t)

	var received map[string]any

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		rq.NoError(err)
		rq.NoError(json.Unmarshal(body, &received))
		rq.Equal("application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"bid-1","farmerId":"farmer-1","status":"ACTIVE"}`))
	})

	service := marketapi.NewBidService(client, "Rp")

	harvest := time.Date(2026, time.March, 14, 15, 4, 5, 0, time.FixedZone("WIB", 7*3600))

	bid, err := service.Create(context.Background(), marketapi.CreateBidInput{
		FarmerID:    "farmer-1",
		HarvestDate: harvest,
		MinPrice:    1500,
	})
	rq.NoError(err)
	rq.Equal("bid-1", bid.ID)

	rq.Equal("ACTIVE", received["status"], "create always sends the initial status")
	rq.Equal("2026-03-14T00:00:00Z", received["harvestDate"], "harvest date is normalized to midnight UTC")
	rq.EqualValues(1500, received["minPrice"])
}

func TestBidServiceListQueryBuilding(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		filters   marketapi.BidListFilters
		wantQuery map[string]string
		omitted   []string
	}{
		{
			name:      "No filters",
			filters:   marketapi.BidListFilters{},
			wantQuery: map[string]string{},
			omitted:   []string{"status", "fromDate", "search"},
		},
		{
			name:    "ALL status sentinel is omitted",
			filters: marketapi.BidListFilters{Status: "ALL"},
			omitted: []string{"status"},
		},
		{
			name:    "Lowercase all sentinel is omitted",
			filters: marketapi.BidListFilters{Status: "all"},
			omitted: []string{"status"},
		},
		{
			name:    "Status and rolling window",
			filters: marketapi.BidListFilters{Status: "ACTIVE", DateRange: 7},
			wantQuery: map[string]string{
				"status":   "ACTIVE",
				"fromDate": now.AddDate(0, 0, -7).Format("2006-01-02"),
			},
			omitted: []string{"search"},
		},
		{
			name:      "Search term",
			filters:   marketapi.BidListFilters{Search: "cabbage"},
			wantQuery: map[string]string{"search": "cabbage"},
			omitted:   []string{"status", "fromDate"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var gotQuery map[string][]string

			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`[]`))
			})

			service := marketapi.NewBidService(client, "Rp").
				WithClock(func() time.Time { return now })

			_, err := service.List(context.Background(), tc.filters)
			rq.NoError(err)

			for key, want := range tc.wantQuery {
				rq.Equal([]string{want}, gotQuery[key])
			}

			for _, key := range tc.omitted {
				rq.NotContains(gotQuery, key)
			}
		})
	}
}

func TestBidServiceListPostProcessing(t *testing.T) {
	rq := require.New(t)

	const responseBody = `[
		{"id":"bid-1","farmerId":"f-1","status":"ACTIVE","createdAt":"2026-08-20T09:30:00Z"},
		{"id":"bid-2","farmerId":"f-1","status":"ACTIVE","createdAt":"2026-08-21T09:30:00Z",
		 "offers":[
			{"id":"o-1","bidId":"bid-2","buyerId":"buyer-a","amount":2000},
			{"id":"o-2","bidId":"bid-2","buyerId":"buyer-b","amount":2500}
		 ]},
		{"id":"bid-3","farmerId":"f-2","status":"COMPLETED","createdAt":"not-a-date",
		 "winnerId":"buyer-c","winningPrice":1500000,
		 "offers":[{"id":"o-3","bidId":"bid-3","buyerId":"buyer-c","amount":1500000}]}
	]`

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(responseBody))
	})

	service := marketapi.NewBidService(client, "Rp")

	items, err := service.List(context.Background(), marketapi.BidListFilters{})
	rq.NoError(err)
	rq.Len(items, 3)

	rq.NotNil(items[0].Offers, "missing offers list becomes an empty one")
	rq.Empty(items[0].Offers)
	rq.Equal("-", items[0].DisplayBuyer)
	rq.Equal("-", items[0].DisplayPrice)
	rq.Equal("20 Aug 2026", items[0].PostedDate)

	rq.Equal("buyer-a, buyer-b", items[1].DisplayBuyer, "offer buyers joined in order received")

	rq.Equal("buyer-c", items[2].DisplayBuyer, "winning buyer takes precedence over the offer list")
	rq.Equal("Rp1.500.000", items[2].DisplayPrice)
	rq.Equal("invalid date", items[2].PostedDate)
}

func TestBidServiceAcceptOffer(t *testing.T) {
	testCases := []struct {
		name        string
		bidID       string
		offerID     string
		statusCode  int
		wantCode    string
		wantMessage string
		wantCalls   int64
	}{
		{
			name:        "Missing bid id",
			offerID:     "o-1",
			wantCode:    "InvalidBidID",
			wantMessage: "bid id is required",
		},
		{
			name:        "Missing offer id",
			bidID:       "bid-1",
			wantCode:    "InvalidOfferID",
			wantMessage: "offer id is required",
		},
		{
			name:        "Backend 500 gets the offer-specific message",
			bidID:       "bid-1",
			offerID:     "o-1",
			statusCode:  http.StatusInternalServerError,
			wantCode:    "OfferProcessingError",
			wantMessage: "server error while processing the offer",
			wantCalls:   1,
		},
		{
			name:        "Backend 409 keeps the generic conflict message",
			bidID:       "bid-1",
			offerID:     "o-1",
			statusCode:  http.StatusConflict,
			wantCode:    "Conflict",
			wantMessage: "the record changed in the meantime, refresh and try again",
			wantCalls:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				rq.Equal(http.MethodPut, r.Method)
				rq.Equal("o-1", r.URL.Query().Get("offerId"))
				w.WriteHeader(tc.statusCode)
			})

			service := marketapi.NewBidService(client, "Rp")

			err := service.AcceptOffer(context.Background(), tc.bidID, tc.offerID)

			var appErr *domain.AppError
			rq.ErrorAs(err, &appErr)
			rq.Equal(tc.wantCode, appErr.Code.String())
			rq.Equal(tc.wantMessage, appErr.Message)
			rq.Equal(tc.wantCalls, atomic.LoadInt64(calls))
		})
	}
}

func TestBidServiceAcceptOfferSuccess(t *testing.T) {
	rq := require.New(t)

	client, calls := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	service := marketapi.NewBidService(client, "Rp")

	rq.NoError(service.AcceptOffer(context.Background(), "bid-1", "o-1"))
	rq.EqualValues(1, atomic.LoadInt64(calls))
}

func TestBidServiceUpdateStatus(t *testing.T) {
	rq := require.New(t)

	var gotStatus string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.WriteHeader(http.StatusOK)
	})

	service := marketapi.NewBidService(client, "Rp")

	rq.NoError(service.UpdateStatus(context.Background(), "bid-1", "cancelled"))
	rq.Equal("CANCELLED", gotStatus)

	err := service.UpdateStatus(context.Background(), "bid-1", "SHIPPED")

	var appErr *domain.AppError
	rq.ErrorAs(err, &appErr)
	rq.Equal(errcodes.InvalidBidStatus, appErr.Code)
}

func TestBidServiceListCancellation(t *testing.T) {
	rq := require.New(t)

	started := make(chan struct{})

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
		w.WriteHeader(http.StatusOK)
	})

	service := marketapi.NewBidService(client, "Rp")

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-started
		cancel()
	}()

	_, err := service.List(ctx, marketapi.BidListFilters{})
	rq.Error(err)

	var appErr *domain.AppError
	rq.ErrorAs(err, &appErr)
}
