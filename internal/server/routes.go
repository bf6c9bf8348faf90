package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"agromarket/internal/domain"
	"agromarket/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/v1", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Get("/bids", handler(s.getV1AdminBids))
			r.Put("/bids/{bidID}/complete", handler(s.putV1AdminBidComplete))
			r.Get("/bids/statistics", handler(s.getV1BidStatistics))

			r.Get("/allocations", handler(s.getV1AdminAllocations))
			r.Post("/allocations", handler(s.postV1Allocation))
			r.Get("/allocations/{allocationID}", handler(s.getV1Allocation))
			r.Put("/allocations/{allocationID}/status", handler(s.putV1AllocationStatus))
			r.Get("/allocations/statistics", handler(s.getV1AllocationStatistics))
		})

		r.Route("/bids", func(r chi.Router) {
			r.Post("/", handler(s.postV1Bid))
			r.Get("/{bidID}", handler(s.getV1Bid))
			r.Post("/{bidID}/offers", handler(s.postV1BidOffer))
			r.Put("/{bidID}/accept", handler(s.putV1BidAccept))
			r.Put("/{bidID}/cancel", handler(s.putV1BidCancel))
			r.Put("/{bidID}/status", handler(s.putV1BidStatus))
		})

		r.Route("/farmers/{farmerID}", func(r chi.Router) {
			r.Get("/bids", handler(s.getV1FarmerBids))
			r.Get("/allocations", handler(s.getV1FarmerAllocations))
		})

		r.Get("/buyers/{buyerID}/winning-bids", handler(s.getV1BuyerWinningBids))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		reply.JSON(ctx, w, statusFor(appErr.Code), newRESTError(appErr))

		return
	}

	reply.Error(ctx, w, err)
}

const (
	defaultPage    = 1
	defaultPerPage = 10
)

func paging(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	perPage, err := strconv.Atoi(r.URL.Query().Get("perPage"))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}

	return page, perPage
}
