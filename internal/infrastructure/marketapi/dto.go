package marketapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/value"
)

const (
	displayPlaceholder = "-"
	displayDateLayout  = "02 Jan 2006"
	invalidDateLabel   = "invalid date"
	queryDateLayout    = "2006-01-02"
)

type bidSchema struct {
	ID           string           `json:"id"`
	FarmerID     string           `json:"farmerId"`
	HarvestDate  string           `json:"harvestDate"`
	MinPrice     int64            `json:"minPrice"`
	Status       string           `json:"status"`
	Offers       []bidOfferSchema `json:"offers"`
	WinnerID     string           `json:"winnerId"`
	WinningPrice int64            `json:"winningPrice"`
	CreatedAt    string           `json:"createdAt"`
}

type bidOfferSchema struct {
	ID      string `json:"id"`
	BidID   string `json:"bidId"`
	BuyerID string `json:"buyerId"`
	Amount  int64  `json:"amount"`
}

type bidCreateSchema struct {
	FarmerID    string `json:"farmerId"`
	HarvestDate string `json:"harvestDate"`
	MinPrice    int64  `json:"minPrice"`
	Status      string `json:"status"`
}

func (s bidSchema) toDomain() entity.Bid {
	postedAt, _ := time.Parse(time.RFC3339, s.CreatedAt)
	harvestDate, _ := time.Parse(time.RFC3339, s.HarvestDate)

	return entity.Bid{
		ID:          s.ID,
		FarmerID:    s.FarmerID,
		HarvestDate: harvestDate,
		MinPrice:    s.MinPrice,
		Status:      value.BidStatus(s.Status),
		// The backend omits the offers list on bids without offers; callers
		// always get a list.
		Offers: lo.Map(s.Offers, func(offer bidOfferSchema, _ int) entity.BidOffer {
			return entity.BidOffer{
				ID:      offer.ID,
				BidID:   offer.BidID,
				BuyerID: offer.BuyerID,
				Amount:  offer.Amount,
			}
		}),
		WinnerID:     s.WinnerID,
		WinningPrice: s.WinningPrice,
		PostedAt:     postedAt,
	}
}

// BidListItem is a bid reshaped for display: the offers list is always
// present and the derived columns are precomputed.
type BidListItem struct {
	entity.Bid

	DisplayBuyer string
	DisplayPrice string
	PostedDate   string
}

func (s *BidService) newListItem(schema bidSchema) BidListItem {
	bid := schema.toDomain()

	return BidListItem{
		Bid:          bid,
		DisplayBuyer: displayBuyer(bid),
		DisplayPrice: displayPrice(s.currencyPrefix, bid.WinningPrice),
		PostedDate:   displayDate(schema.CreatedAt),
	}
}

// displayBuyer picks the winning buyer when one exists, falls back to the
// comma-joined offer buyers in the order received, then to a placeholder.
func displayBuyer(bid entity.Bid) string {
	if bid.WinnerID != "" {
		return bid.WinnerID
	}

	if len(bid.Offers) == 0 {
		return displayPlaceholder
	}

	buyerIDs := lo.Map(bid.Offers, func(offer entity.BidOffer, _ int) string {
		return offer.BuyerID
	})

	return strings.Join(buyerIDs, ", ")
}

func displayPrice(currencyPrefix string, price int64) string {
	if price <= 0 {
		return displayPlaceholder
	}

	return currencyPrefix + groupThousands(price)
}

// groupThousands renders 1500000 as "1.500.000", the grouping the original
// marketplace screens use.
func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder

	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(digit)
	}

	return b.String()
}

func displayDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return invalidDateLabel
	}

	return t.Format(displayDateLayout)
}

type allocationSchema struct {
	ID                   string `json:"id"`
	FarmerID             string `json:"farmerId"`
	Amount               int64  `json:"amount"`
	Season               string `json:"season"`
	Year                 int    `json:"year"`
	DistributionDate     string `json:"distributionDate"`
	DistributionLocation string `json:"distributionLocation"`
	Status               string `json:"status"`
}

type allocationCreateSchema struct {
	FarmerID             string `json:"farmerId"`
	Amount               int64  `json:"amount"`
	Season               string `json:"season"`
	Year                 int    `json:"year"`
	DistributionDate     string `json:"distributionDate"`
	DistributionLocation string `json:"distributionLocation"`
	Status               string `json:"status"`
}

func (s allocationSchema) toDomain() entity.Allocation {
	distributionDate, _ := time.Parse(time.RFC3339, s.DistributionDate)

	return entity.Allocation{
		ID:                   s.ID,
		FarmerID:             s.FarmerID,
		Amount:               s.Amount,
		Season:               value.Season(s.Season),
		Year:                 s.Year,
		DistributionDate:     distributionDate,
		DistributionLocation: s.DistributionLocation,
		Status:               value.AllocationStatus(s.Status),
	}
}

// AllocationListItem is an allocation reshaped for the distribution table.
type AllocationListItem struct {
	entity.Allocation

	DisplayAmount   string
	DistributionDay string
}

func (s *AllocationService) newListItem(schema allocationSchema) AllocationListItem {
	allocation := schema.toDomain()

	return AllocationListItem{
		Allocation:      allocation,
		DisplayAmount:   groupThousands(allocation.Amount) + " kg",
		DistributionDay: displayDate(schema.DistributionDate),
	}
}

type bidStatisticsSchema struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Accepted  int `json:"accepted"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func (s bidStatisticsSchema) toDomain() entity.BidStatistics {
	return entity.BidStatistics(s)
}

type allocationStatisticsSchema struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Approved    int `json:"approved"`
	Distributed int `json:"distributed"`
	Rejected    int `json:"rejected"`
}

func (s allocationStatisticsSchema) toDomain() entity.AllocationStatistics {
	return entity.AllocationStatistics(s)
}
