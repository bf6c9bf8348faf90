package value

import (
	"fmt"
	"strings"
)

// StatusAll is the sentinel the admin screens send when no status filter is
// applied. It is never sent to the backend.
const StatusAll = "ALL"

type BidStatus string

const (
	BidStatusActive    BidStatus = "ACTIVE"
	BidStatusAccepted  BidStatus = "ACCEPTED"
	BidStatusCompleted BidStatus = "COMPLETED"
	BidStatusCancelled BidStatus = "CANCELLED"
)

func (s BidStatus) String() string {
	return string(s)
}

func ParseBidStatus(raw string) (BidStatus, error) {
	status := BidStatus(strings.ToUpper(raw))

	switch status {
	case BidStatusActive, BidStatusAccepted, BidStatusCompleted, BidStatusCancelled:
		return status, nil
	}

	return "", fmt.Errorf("unknown bid status %q", raw)
}

type AllocationStatus string

const (
	AllocationStatusPending     AllocationStatus = "PENDING"
	AllocationStatusApproved    AllocationStatus = "APPROVED"
	AllocationStatusDistributed AllocationStatus = "DISTRIBUTED"
	AllocationStatusRejected    AllocationStatus = "REJECTED"
)

func (s AllocationStatus) String() string {
	return string(s)
}

func ParseAllocationStatus(raw string) (AllocationStatus, error) {
	status := AllocationStatus(strings.ToUpper(raw))

	switch status {
	case AllocationStatusPending, AllocationStatusApproved,
		AllocationStatusDistributed, AllocationStatusRejected:
		return status, nil
	}

	return "", fmt.Errorf("unknown allocation status %q", raw)
}
