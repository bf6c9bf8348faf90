package server

// Server bundles the per-resource HTTP servers of the gateway: bids for the
// marketplace screens, allocations for the fertilizer distribution screens.
type Server struct {
	BidServer
	AllocationServer
}

func NewServer(
	bidServer BidServer,
	allocationServer AllocationServer,
) Server {
	return Server{
		BidServer:        bidServer,
		AllocationServer: allocationServer,
	}
}
