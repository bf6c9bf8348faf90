package entity

import (
	"time"

	"agromarket/internal/domain/value"
)

// Bid is a farmer's produce listing, open to buyer offers until the farmer
// accepts one or the bid is cancelled.
type Bid struct {
	ID           string
	FarmerID     string
	HarvestDate  time.Time
	MinPrice     int64
	Status       value.BidStatus
	Offers       []BidOffer
	WinnerID     string
	WinningPrice int64
	PostedAt     time.Time
}

// BidOffer is a buyer's proposed amount against a specific bid.
type BidOffer struct {
	ID      string
	BidID   string
	BuyerID string
	Amount  int64
}

type BidStatistics struct {
	Total     int
	Active    int
	Accepted  int
	Completed int
	Cancelled int
}
