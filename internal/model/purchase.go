package model

import "github.com/shopspring/decimal"

// Purchase is an acquisition that adds quantity at a base.
type Purchase struct {
	ID            ID              `json:"id"`
	EquipmentType string          `json:"equipmentType"`
	BaseID        ID              `json:"baseId,omitempty"`
	BaseName      string          `json:"baseName,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	Vendor        string          `json:"vendor"`
	PurchaseOrder string          `json:"purchaseOrder,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     Timestamp       `json:"createdAt"`
}

// TotalCost returns quantity × unit cost.
func (p Purchase) TotalCost() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// PurchaseInput is the payload for recording a purchase.
type PurchaseInput struct {
	EquipmentType string          `json:"equipmentType"`
	BaseID        string          `json:"baseId"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	Vendor        string          `json:"vendor"`
	PurchaseOrder string          `json:"purchaseOrder,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// TotalCost returns quantity × unit cost.
func (p PurchaseInput) TotalCost() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
