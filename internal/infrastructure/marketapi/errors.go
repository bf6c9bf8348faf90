package marketapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"

	"git.appkode.ru/pub/go/failure"

	"agromarket/internal/domain"
	"agromarket/pkg/errcodes"
	"agromarket/pkg/logx"
)

// Messages shown to users after normalization. A backend-supplied message
// always takes precedence over the generic ones.
const (
	msgConnectivity = "cannot reach the marketplace server, check your connection"
	msgTimeout      = "the request took too long, please try again"
	msgBadRequest   = "the request was rejected as invalid"
	msgUnauthorized = "you need to sign in first"
	msgForbidden    = "you do not have permission to do that"
	msgNotFound     = "the requested record was not found"
	msgConflict     = "the record changed in the meantime, refresh and try again"
	msgServerFault  = "the marketplace server ran into a problem, try again later"
	msgFallback     = "something went wrong, please try again"
	msgOfferAccept  = "server error while processing the offer"
)

// normalize funnels every failure from the shared client into one uniform
// error carrying a display-ready message. Nothing is retried; the failure is
// logged here once and re-signaled to the caller.
func normalize(ctx context.Context, err error) error {
	var normalized *domain.AppError

	// Callers may pre-classify a failure (the offer acceptance path does);
	// those come through unchanged.
	if !errors.As(err, &normalized) {
		normalized = classify(err)
	}

	logger(ctx).Error("backend call normalized", logx.Error(normalized))

	return normalized
}

func classify(err error) *domain.AppError {
	var statusErr *StatusError

	switch {
	case errors.As(err, &statusErr):
		code, message := statusBucket(statusErr.StatusCode)
		if statusErr.Message != "" {
			message = statusErr.Message
		}

		return domain.WrapError(err, code, message)
	case isTimeout(err):
		return domain.WrapError(err, errcodes.TimeoutExceeded, msgTimeout)
	case isUnreachable(err):
		return domain.WrapError(err, errcodes.BackendUnavailable, msgConnectivity)
	default:
		return domain.WrapError(err, errcodes.InternalServerError, msgFallback)
	}
}

func statusBucket(statusCode int) (failure.ErrorCode, string) {
	switch {
	case statusCode == http.StatusBadRequest:
		return errcodes.ValidationError, msgBadRequest
	case statusCode == http.StatusUnauthorized:
		return errcodes.Unauthorized, msgUnauthorized
	case statusCode == http.StatusForbidden:
		return errcodes.Forbidden, msgForbidden
	case statusCode == http.StatusNotFound:
		return errcodes.NotFound, msgNotFound
	case statusCode == http.StatusConflict:
		return errcodes.Conflict, msgConflict
	case statusCode >= http.StatusInternalServerError:
		return errcodes.BackendError, msgServerFault
	default:
		return errcodes.InternalServerError, msgFallback
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

func isUnreachable(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

func classifyFailure(statusCode int, err error) string {
	switch {
	case statusCode != 0:
		return "http-status"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case isTimeout(err):
		return "timeout"
	case isUnreachable(err):
		return "connection"
	default:
		return "network"
	}
}
