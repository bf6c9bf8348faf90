package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agromarket/internal/domain/entity"
	"agromarket/internal/infrastructure/marketapi"
	"agromarket/internal/view"
	"agromarket/pkg/httpx/reply"
	"agromarket/pkg/httpx/req"
	"agromarket/pkg/rest"
)

type bidService interface {
	Create(context.Context, marketapi.CreateBidInput) (entity.Bid, error)
	List(context.Context, marketapi.BidListFilters) ([]marketapi.BidListItem, error)
	GetByID(ctx context.Context, bidID string) (entity.Bid, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]marketapi.BidListItem, error)
	WinningBids(ctx context.Context, buyerID string) ([]marketapi.BidListItem, error)
	PlaceOffer(context.Context, marketapi.PlaceOfferInput) (entity.BidOffer, error)
	AcceptOffer(ctx context.Context, bidID, offerID string) error
	Cancel(ctx context.Context, bidID string) error
	ForceComplete(ctx context.Context, bidID string) error
	UpdateStatus(ctx context.Context, bidID, status string) error
	Statistics(context.Context) (entity.BidStatistics, error)
}

type BidServer struct {
	bidService bidService
}

func NewBidServer(bidService bidService) BidServer {
	return BidServer{
		bidService: bidService,
	}
}

func (s BidServer) getV1AdminBids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filters, err := bidFiltersFromQuery(r)
	if err != nil {
		return fmt.Errorf("bidFiltersFromQuery: %w", err)
	}

	items, err := s.bidService.List(ctx, filters)
	if err != nil {
		return fmt.Errorf("bidService.List: %w", err)
	}

	page, perPage := paging(r)
	pageItems, pagination := view.Paginate(items, page, perPage)

	reply.JSON(ctx, w, http.StatusOK, newRESTBidTable(pageItems, pagination))

	return nil
}

func (s BidServer) postV1Bid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateBidRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	input, err := newCreateBidInput(request)
	if err != nil {
		return fmt.Errorf("newCreateBidInput: %w", err)
	}

	bid, err := s.bidService.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("bidService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTBid(marketapi.BidListItem{Bid: bid}))

	return nil
}

func (s BidServer) getV1Bid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	bid, err := s.bidService.GetByID(ctx, chi.URLParam(r, "bidID"))
	if err != nil {
		return fmt.Errorf("bidService.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBid(marketapi.BidListItem{Bid: bid}))

	return nil
}

func (s BidServer) getV1FarmerBids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	items, err := s.bidService.ListByFarmer(ctx, chi.URLParam(r, "farmerID"))
	if err != nil {
		return fmt.Errorf("bidService.ListByFarmer: %w", err)
	}

	page, perPage := paging(r)
	pageItems, pagination := view.Paginate(items, page, perPage)

	reply.JSON(ctx, w, http.StatusOK, newRESTBidTable(pageItems, pagination))

	return nil
}

func (s BidServer) getV1BuyerWinningBids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	items, err := s.bidService.WinningBids(ctx, chi.URLParam(r, "buyerID"))
	if err != nil {
		return fmt.Errorf("bidService.WinningBids: %w", err)
	}

	page, perPage := paging(r)
	pageItems, pagination := view.Paginate(items, page, perPage)

	reply.JSON(ctx, w, http.StatusOK, newRESTBidTable(pageItems, pagination))

	return nil
}

func (s BidServer) postV1BidOffer(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PlaceOfferRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	offer, err := s.bidService.PlaceOffer(ctx, marketapi.PlaceOfferInput{
		BidID:   chi.URLParam(r, "bidID"),
		BuyerID: request.BuyerID,
		Amount:  request.Amount,
	})
	if err != nil {
		return fmt.Errorf("bidService.PlaceOffer: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTOffer(offer))

	return nil
}

func (s BidServer) putV1BidAccept(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	err := s.bidService.AcceptOffer(ctx, chi.URLParam(r, "bidID"), r.URL.Query().Get("offerId"))
	if err != nil {
		return fmt.Errorf("bidService.AcceptOffer: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s BidServer) putV1BidCancel(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.bidService.Cancel(ctx, chi.URLParam(r, "bidID")); err != nil {
		return fmt.Errorf("bidService.Cancel: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s BidServer) putV1AdminBidComplete(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.bidService.ForceComplete(ctx, chi.URLParam(r, "bidID")); err != nil {
		return fmt.Errorf("bidService.ForceComplete: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s BidServer) putV1BidStatus(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.UpdateStatusRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	err := s.bidService.UpdateStatus(ctx, chi.URLParam(r, "bidID"), request.Status)
	if err != nil {
		return fmt.Errorf("bidService.UpdateStatus: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s BidServer) getV1BidStatistics(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	statistics, err := s.bidService.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("bidService.Statistics: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.BidStatistics(statistics))

	return nil
}
