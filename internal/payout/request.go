package payout

import "github.com/shopspring/decimal"

// RenderRequest carries everything the render pipeline needs to produce a
// screenshot. It is assembled only from a completed conversation.
type RenderRequest struct {
	Country Country
	Kind    Kind
	Account string
	Amount  decimal.Decimal
}

// Artifact points at a produced screenshot on disk. The receiver is
// responsible for removing the file once it has been delivered.
type Artifact struct {
	Path string
	Size int64
}
