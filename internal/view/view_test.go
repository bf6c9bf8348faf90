package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agromarket/internal/domain/value"
	"agromarket/internal/view"
)

func TestNewPagination(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		page       int
		perPage    int
		totalItems int
		want       view.Pagination
	}{
		{
			name:       "First of several pages",
			page:       1,
			perPage:    10,
			totalItems: 25,
			want: view.Pagination{
				Page: 1, PerPage: 10, TotalItems: 25, TotalPages: 3,
				HasPrev: false, HasNext: true,
			},
		},
		{
			name:       "Middle page",
			page:       2,
			perPage:    10,
			totalItems: 25,
			want: view.Pagination{
				Page: 2, PerPage: 10, TotalItems: 25, TotalPages: 3,
				HasPrev: true, HasNext: true,
			},
		},
		{
			name:       "Page beyond the end is clamped",
			page:       9,
			perPage:    10,
			totalItems: 25,
			want: view.Pagination{
				Page: 3, PerPage: 10, TotalItems: 25, TotalPages: 3,
				HasPrev: true, HasNext: false,
			},
		},
		{
			name:       "Empty list still has one page",
			page:       1,
			perPage:    10,
			totalItems: 0,
			want: view.Pagination{
				Page: 1, PerPage: 10, TotalItems: 0, TotalPages: 1,
				HasPrev: false, HasNext: false,
			},
		},
		{
			name:       "Zero per page falls back to the default",
			page:       1,
			perPage:    0,
			totalItems: 5,
			want: view.Pagination{
				Page: 1, PerPage: 10, TotalItems: 5, TotalPages: 1,
				HasPrev: false, HasNext: false,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, view.NewPagination(tc.page, tc.perPage, tc.totalItems))
		})
	}
}

func TestPaginate(t *testing.T) {
	rq := require.New(t)

	items := []int{1, 2, 3, 4, 5, 6, 7}

	pageItems, pagination := view.Paginate(items, 2, 3)
	rq.Equal([]int{4, 5, 6}, pageItems)
	rq.Equal(3, pagination.TotalPages)

	pageItems, pagination = view.Paginate(items, 3, 3)
	rq.Equal([]int{7}, pageItems)
	rq.False(pagination.HasNext)

	pageItems, _ = view.Paginate([]int{}, 1, 3)
	rq.Empty(pageItems)
}

func TestAllocationStatusColor(t *testing.T) {
	rq := require.New(t)

	rq.Equal("yellow", view.AllocationStatusColor(value.AllocationStatusPending))
	rq.Equal("blue", view.AllocationStatusColor(value.AllocationStatusApproved))
	rq.Equal("green", view.AllocationStatusColor(value.AllocationStatusDistributed))
	rq.Equal("red", view.AllocationStatusColor(value.AllocationStatusRejected))
	rq.Equal("gray", view.AllocationStatusColor(value.AllocationStatus("UNKNOWN")))
}

func TestBidStatusColor(t *testing.T) {
	rq := require.New(t)

	rq.Equal("green", view.BidStatusColor(value.BidStatusActive))
	rq.Equal("gray", view.BidStatusColor(value.BidStatus("???")))
}
