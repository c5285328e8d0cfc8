package model

import "math"

// Sentinels for fields that have not been set by a transition yet.
const (
	NoUser  int32 = math.MinInt32
	NoPrice int64 = math.MinInt64
)

const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Record is the decoded form of one store slot.
type Record struct {
	ID               int32
	State            int32
	CreationTime     int64
	ExpiryTime       int64
	LastUpdate       int64
	LastUpdateUser   int32
	Requester        int32
	Responder        int32
	SecurityID       int32
	RequesterClOrdID string
	Side             string
	Quantity         int64
	LimitPrice       int64
	ClusterSession   int64
	LastCounterUser  int32
}
