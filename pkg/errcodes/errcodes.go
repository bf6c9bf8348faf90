package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	BackendUnavailable  failure.ErrorCode = "BackendUnavailable"
	BackendError        failure.ErrorCode = "BackendError"
	ValidationError     failure.ErrorCode = "ValidationError"
	Unauthorized        failure.ErrorCode = "Unauthorized"
	Forbidden           failure.ErrorCode = "Forbidden"
	NotFound            failure.ErrorCode = "NotFound"
	Conflict            failure.ErrorCode = "Conflict"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Bid module.
	BidNotFound          failure.ErrorCode = "BidNotFound"
	InvalidBidID         failure.ErrorCode = "InvalidBidID"
	InvalidFarmerID      failure.ErrorCode = "InvalidFarmerID"
	InvalidBuyerID       failure.ErrorCode = "InvalidBuyerID"
	InvalidOfferID       failure.ErrorCode = "InvalidOfferID"
	InvalidOfferAmount   failure.ErrorCode = "InvalidOfferAmount"
	InvalidBidStatus     failure.ErrorCode = "InvalidBidStatus"
	OfferProcessingError failure.ErrorCode = "OfferProcessingError"

	// Allocation module.
	AllocationNotFound      failure.ErrorCode = "AllocationNotFound"
	InvalidAllocationID     failure.ErrorCode = "InvalidAllocationID"
	InvalidAllocationStatus failure.ErrorCode = "InvalidAllocationStatus"
	InvalidSeason           failure.ErrorCode = "InvalidSeason"
)
