package server

import (
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"agromarket/pkg/errcodes"
)

// statusFor maps normalized access-layer codes to the gateway's own response
// statuses. Backend faults surface as 502 so callers can tell them apart
// from faults in the gateway itself.
func statusFor(code failure.ErrorCode) int {
	switch code {
	case errcodes.ValidationError,
		errcodes.InvalidPaging,
		errcodes.InvalidBidID,
		errcodes.InvalidFarmerID,
		errcodes.InvalidBuyerID,
		errcodes.InvalidOfferID,
		errcodes.InvalidOfferAmount,
		errcodes.InvalidBidStatus,
		errcodes.InvalidAllocationID,
		errcodes.InvalidAllocationStatus,
		errcodes.InvalidSeason:
		return http.StatusBadRequest
	case errcodes.Unauthorized:
		return http.StatusUnauthorized
	case errcodes.Forbidden:
		return http.StatusForbidden
	case errcodes.NotFound, errcodes.BidNotFound, errcodes.AllocationNotFound:
		return http.StatusNotFound
	case errcodes.Conflict:
		return http.StatusConflict
	case errcodes.TimeoutExceeded:
		return http.StatusGatewayTimeout
	case errcodes.BackendUnavailable, errcodes.BackendError, errcodes.OfferProcessingError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
