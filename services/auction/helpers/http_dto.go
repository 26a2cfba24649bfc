package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	PlayerID  string `json:"player_id"`
	TeamID    string `json:"team_id"`
	Seq       uint64 `json:"seq"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type StreamURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type BroadcastLiveRequest struct {
	Live *bool `json:"live" binding:"required"`
}
