package view

import "agromarket/internal/domain/value"

// Display colors for status badges. Closed lookups; anything unknown gets
// the fallback color.
const fallbackColor = "gray"

//nolint:gochecknoglobals
var allocationStatusColors = map[value.AllocationStatus]string{
	value.AllocationStatusPending:     "yellow",
	value.AllocationStatusApproved:    "blue",
	value.AllocationStatusDistributed: "green",
	value.AllocationStatusRejected:    "red",
}

func AllocationStatusColor(status value.AllocationStatus) string {
	if color, ok := allocationStatusColors[status]; ok {
		return color
	}

	return fallbackColor
}

//nolint:gochecknoglobals
var bidStatusColors = map[value.BidStatus]string{
	value.BidStatusActive:    "green",
	value.BidStatusAccepted:  "blue",
	value.BidStatusCompleted: "purple",
	value.BidStatusCancelled: "red",
}

func BidStatusColor(status value.BidStatus) string {
	if color, ok := bidStatusColors[status]; ok {
		return color
	}

	return fallbackColor
}
