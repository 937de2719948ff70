package model

import "github.com/shopspring/decimal"

// DashboardMetrics is the balance summary for a filtered period.
type DashboardMetrics struct {
	OpeningBalance int64      `json:"openingBalance"`
	ClosingBalance int64      `json:"closingBalance"`
	NetMovement    int64      `json:"netMovement"`
	AssignedAssets int64      `json:"assignedAssets"`
	ExpendedAssets int64      `json:"expendedAssets"`
	RecentActivity []Activity `json:"recentActivity"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	ID          ID        `json:"id,omitempty"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description"`
	Timestamp   Timestamp `json:"timestamp"`
}

// NetMovement holds the events behind a net movement figure.
type NetMovement struct {
	Purchases    []Purchase `json:"purchases"`
	TransfersIn  []Transfer `json:"transfersIn"`
	TransfersOut []Transfer `json:"transfersOut"`
}

// PurchasedQuantity sums the purchased quantity.
func (n NetMovement) PurchasedQuantity() int {
	total := 0
	for _, p := range n.Purchases {
		total += p.Quantity
	}
	return total
}

// TransferredIn sums the quantity received from other bases.
func (n NetMovement) TransferredIn() int {
	return sumTransfers(n.TransfersIn)
}

// TransferredOut sums the quantity sent to other bases.
func (n NetMovement) TransferredOut() int {
	return sumTransfers(n.TransfersOut)
}

// Net returns purchases + transfers in - transfers out.
func (n NetMovement) Net() int {
	return n.PurchasedQuantity() + n.TransferredIn() - n.TransferredOut()
}

// PurchaseValue sums quantity × unit cost over all purchases.
func (n NetMovement) PurchaseValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range n.Purchases {
		total = total.Add(p.TotalCost())
	}
	return total
}

func sumTransfers(ts []Transfer) int {
	total := 0
	for _, t := range ts {
		total += t.Quantity
	}
	return total
}
