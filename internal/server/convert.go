package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"agromarket/internal/domain"
	"agromarket/internal/domain/entity"
	"agromarket/internal/infrastructure/marketapi"
	"agromarket/internal/view"
	"agromarket/pkg/errcodes"
	"agromarket/pkg/lox"
	"agromarket/pkg/rest"
)

const dateOnlyLayout = "2006-01-02"

func bidFiltersFromQuery(r *http.Request) (marketapi.BidListFilters, error) {
	query := r.URL.Query()

	filters := marketapi.BidListFilters{
		Status: query.Get("status"),
		Search: query.Get("search"),
	}

	dateRange, err := dateRangeFromQuery(query.Get("dateRange"))
	if err != nil {
		return marketapi.BidListFilters{}, err
	}

	filters.DateRange = dateRange

	return filters, nil
}

func allocationFiltersFromQuery(r *http.Request) (marketapi.AllocationListFilters, error) {
	query := r.URL.Query()

	filters := marketapi.AllocationListFilters{
		Status: query.Get("status"),
		Search: query.Get("search"),
	}

	dateRange, err := dateRangeFromQuery(query.Get("dateRange"))
	if err != nil {
		return marketapi.AllocationListFilters{}, err
	}

	filters.DateRange = dateRange

	return filters, nil
}

func dateRangeFromQuery(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, domain.NewError(errcodes.ValidationError, "dateRange must be a non-negative day count")
	}

	return days, nil
}

func newCreateBidInput(request rest.CreateBidRequest) (marketapi.CreateBidInput, error) {
	harvestDate, err := parseDate(request.HarvestDate)
	if err != nil {
		return marketapi.CreateBidInput{}, domain.WrapError(err, errcodes.ValidationError, "harvest date is not a valid date")
	}

	return marketapi.CreateBidInput{
		FarmerID:    request.FarmerID,
		HarvestDate: harvestDate,
		MinPrice:    request.MinPrice,
	}, nil
}

func newCreateAllocationInput(request rest.CreateAllocationRequest) (marketapi.CreateAllocationInput, error) {
	distributionDate, err := parseDate(request.DistributionDate)
	if err != nil {
		return marketapi.CreateAllocationInput{}, domain.WrapError(err, errcodes.ValidationError, "distribution date is not a valid date")
	}

	return marketapi.CreateAllocationInput{
		FarmerID:             request.FarmerID,
		Amount:               request.Amount,
		Season:               request.Season,
		Year:                 request.Year,
		DistributionDate:     distributionDate,
		DistributionLocation: request.DistributionLocation,
	}, nil
}

// parseDate accepts the date-only form the UI date pickers send, falling back
// to full RFC3339.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse: %w", err)
	}

	return t, nil
}

func newRESTBid(item marketapi.BidListItem) rest.Bid {
	return rest.Bid{
		ID:          item.ID,
		FarmerID:    item.FarmerID,
		HarvestDate: item.HarvestDate.Format(dateOnlyLayout),
		MinPrice:    item.MinPrice,
		Status:      item.Status.String(),
		StatusColor: view.BidStatusColor(item.Status),
		Offers: lox.Map(item.Offers, newRESTOffer),
		DisplayBuyer: item.DisplayBuyer,
		DisplayPrice: item.DisplayPrice,
		PostedDate:   item.PostedDate,
	}
}

func newRESTBidTable(items []marketapi.BidListItem, pagination view.Pagination) rest.BidTable {
	return rest.BidTable{
		Rows: lox.Map(items, func(item marketapi.BidListItem) rest.Bid {
			return newRESTBid(item)
		}),
		Pagination: newRESTPagination(pagination),
	}
}

func newRESTAllocation(item marketapi.AllocationListItem) rest.Allocation {
	return rest.Allocation{
		ID:                   item.ID,
		FarmerID:             item.FarmerID,
		Amount:               item.Amount,
		DisplayAmount:        item.DisplayAmount,
		Season:               item.Season.String(),
		Year:                 item.Year,
		DistributionDate:     item.DistributionDate.Format(dateOnlyLayout),
		DistributionLocation: item.DistributionLocation,
		Status:               item.Status.String(),
		StatusColor:          view.AllocationStatusColor(item.Status),
	}
}

func newRESTAllocationTable(items []marketapi.AllocationListItem, pagination view.Pagination) rest.AllocationTable {
	return rest.AllocationTable{
		Rows: lox.Map(items, func(item marketapi.AllocationListItem) rest.Allocation {
			return newRESTAllocation(item)
		}),
		Pagination: newRESTPagination(pagination),
	}
}

func newRESTPagination(pagination view.Pagination) rest.Pagination {
	return rest.Pagination(pagination)
}

func newRESTError(appErr *domain.AppError) rest.Error {
	return rest.Error{
		Code:    rest.ErrorCode(appErr.Code.String()),
		Message: appErr.Message,
	}
}

func newRESTOffer(offer entity.BidOffer) rest.BidOffer {
	return rest.BidOffer{
		ID:      offer.ID,
		BidID:   offer.BidID,
		BuyerID: offer.BuyerID,
		Amount:  offer.Amount,
	}
}
