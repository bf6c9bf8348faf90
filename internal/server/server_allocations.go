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

type allocationService interface {
	Create(context.Context, marketapi.CreateAllocationInput) (entity.Allocation, error)
	List(context.Context, marketapi.AllocationListFilters) ([]marketapi.AllocationListItem, error)
	GetByID(ctx context.Context, allocationID string) (entity.Allocation, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]marketapi.AllocationListItem, error)
	UpdateStatus(ctx context.Context, allocationID, status string) error
	Statistics(context.Context) (entity.AllocationStatistics, error)
}

type AllocationServer struct {
	allocationService allocationService
}

func NewAllocationServer(allocationService allocationService) AllocationServer {
	return AllocationServer{
		allocationService: allocationService,
	}
}

func (s AllocationServer) getV1AdminAllocations(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filters, err := allocationFiltersFromQuery(r)
	if err != nil {
		return fmt.Errorf("allocationFiltersFromQuery: %w", err)
	}

	items, err := s.allocationService.List(ctx, filters)
	if err != nil {
		return fmt.Errorf("allocationService.List: %w", err)
	}

	page, perPage := paging(r)
	pageItems, pagination := view.Paginate(items, page, perPage)

	reply.JSON(ctx, w, http.StatusOK, newRESTAllocationTable(pageItems, pagination))

	return nil
}

func (s AllocationServer) postV1Allocation(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateAllocationRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	input, err := newCreateAllocationInput(request)
	if err != nil {
		return fmt.Errorf("newCreateAllocationInput: %w", err)
	}

	allocation, err := s.allocationService.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("allocationService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTAllocation(marketapi.AllocationListItem{Allocation: allocation}))

	return nil
}

func (s AllocationServer) getV1Allocation(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	allocation, err := s.allocationService.GetByID(ctx, chi.URLParam(r, "allocationID"))
	if err != nil {
		return fmt.Errorf("allocationService.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAllocation(marketapi.AllocationListItem{Allocation: allocation}))

	return nil
}

func (s AllocationServer) getV1FarmerAllocations(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	items, err := s.allocationService.ListByFarmer(ctx, chi.URLParam(r, "farmerID"))
	if err != nil {
		return fmt.Errorf("allocationService.ListByFarmer: %w", err)
	}

	page, perPage := paging(r)
	pageItems, pagination := view.Paginate(items, page, perPage)

	reply.JSON(ctx, w, http.StatusOK, newRESTAllocationTable(pageItems, pagination))

	return nil
}

func (s AllocationServer) putV1AllocationStatus(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.UpdateStatusRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	err := s.allocationService.UpdateStatus(ctx, chi.URLParam(r, "allocationID"), request.Status)
	if err != nil {
		return fmt.Errorf("allocationService.UpdateStatus: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s AllocationServer) getV1AllocationStatistics(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	statistics, err := s.allocationService.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("allocationService.Statistics: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.AllocationStatistics(statistics))

	return nil
}
