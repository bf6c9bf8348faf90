// Wire types of the gateway's own REST surface. Kept by hand; the backend
// contract this mirrors has no published schema to generate from.
package rest

// ErrorCode is the machine-readable error class.
type ErrorCode string

// Error is the single error shape every gateway endpoint returns. Message is
// always safe to render directly in the UI.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type Bid struct {
	ID           string     `json:"id"`
	FarmerID     string     `json:"farmerId"`
	HarvestDate  string     `json:"harvestDate"`
	MinPrice     int64      `json:"minPrice"`
	Status       string     `json:"status"`
	StatusColor  string     `json:"statusColor"`
	Offers       []BidOffer `json:"offers"`
	DisplayBuyer string     `json:"displayBuyer"`
	DisplayPrice string     `json:"displayPrice"`
	PostedDate   string     `json:"postedDate"`
}

type BidOffer struct {
	ID      string `json:"id"`
	BidID   string `json:"bidId"`
	BuyerID string `json:"buyerId"`
	Amount  int64  `json:"amount"`
}

type CreateBidRequest struct {
	FarmerID    string `json:"farmerId" validate:"required"`
	HarvestDate string `json:"harvestDate" validate:"required"`
	MinPrice    int64  `json:"minPrice" validate:"gt=0"`
}

type PlaceOfferRequest struct {
	BuyerID string `json:"buyerId" validate:"required"`
	Amount  int64  `json:"amount" validate:"gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type BidTable struct {
	Rows       []Bid      `json:"rows"`
	Pagination Pagination `json:"pagination"`
}

type BidStatistics struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Accepted  int `json:"accepted"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type Allocation struct {
	ID                   string `json:"id"`
	FarmerID             string `json:"farmerId"`
	Amount               int64  `json:"amount"`
	DisplayAmount        string `json:"displayAmount"`
	Season               string `json:"season"`
	Year                 int    `json:"year"`
	DistributionDate     string `json:"distributionDate"`
	DistributionLocation string `json:"distributionLocation"`
	Status               string `json:"status"`
	StatusColor          string `json:"statusColor"`
}

type CreateAllocationRequest struct {
	FarmerID             string `json:"farmerId" validate:"required"`
	Amount               int64  `json:"amount" validate:"gt=0"`
	Season               string `json:"season" validate:"required"`
	Year                 int    `json:"year" validate:"gte=2000"`
	DistributionDate     string `json:"distributionDate" validate:"required"`
	DistributionLocation string `json:"distributionLocation" validate:"required"`
}

type AllocationTable struct {
	Rows       []Allocation `json:"rows"`
	Pagination Pagination   `json:"pagination"`
}

type AllocationStatistics struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Approved    int `json:"approved"`
	Distributed int `json:"distributed"`
	Rejected    int `json:"rejected"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}
