package engine

import "github.com/cqkv/rfqkv/rfq"

// Commands arrive already decoded and ordered. TimestampMs is the cluster time
// of the command; the engine never reads a wall clock.

type Create struct {
	Correlation    string
	ExpireTimeMs   int64
	Quantity       int64
	Side           rfq.Side
	SecurityID     int32
	Requester      int32
	ClusterSession int64
	TimestampMs    int64
}

type Quote struct {
	RfqID       int32
	Responder   int32
	Price       int64
	TimestampMs int64
}

type Counter struct {
	RfqID       int32
	User        int32
	Price       int64
	TimestampMs int64
}

type Accept struct {
	RfqID       int32
	User        int32
	TimestampMs int64
}

type Reject struct {
	RfqID       int32
	User        int32
	TimestampMs int64
}

type Cancel struct {
	RfqID       int32
	User        int32
	TimestampMs int64
}

// Tick advances the cluster clock and expires every RFQ due at TimestampMs.
type Tick struct {
	TimestampMs int64
}
