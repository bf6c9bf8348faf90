package entity

import (
	"time"

	"agromarket/internal/domain/value"
)

// Allocation is a recorded distribution of fertilizer to a farmer for a
// given season.
type Allocation struct {
	ID                   string
	FarmerID             string
	Amount               int64
	Season               value.Season
	Year                 int
	DistributionDate     time.Time
	DistributionLocation string
	Status               value.AllocationStatus
}

type AllocationStatistics struct {
	Total       int
	Pending     int
	Approved    int
	Distributed int
	Rejected    int
}
