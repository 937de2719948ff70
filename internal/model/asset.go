package model

import "github.com/shopspring/decimal"

// Asset is a tracked equipment record held at one base.
type Asset struct {
	ID              ID              `json:"id"`
	Name            string          `json:"name"`
	SerialNumber    string          `json:"serialNumber"`
	EquipmentTypeID ID              `json:"equipmentTypeId,omitempty"`
	EquipmentType   string          `json:"equipmentType,omitempty"`
	BaseID          ID              `json:"baseId,omitempty"`
	BaseName        string          `json:"baseName,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitValue       decimal.Decimal `json:"unitValue"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
}

// TotalValue returns quantity × unit value.
func (a Asset) TotalValue() decimal.Decimal {
	return a.UnitValue.Mul(decimal.NewFromInt(int64(a.Quantity)))
}

// AssetInput is the payload for registering an asset.
type AssetInput struct {
	Name            string          `json:"name"`
	SerialNumber    string          `json:"serialNumber"`
	EquipmentTypeID string          `json:"equipmentTypeId"`
	BaseID          string          `json:"baseId"`
	Quantity        int             `json:"quantity"`
	UnitValue       decimal.Decimal `json:"unitValue"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
}

// Asset statuses.
const (
	AssetStatusAvailable   = "available"
	AssetStatusAssigned    = "assigned"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
)

// AssetStatuses lists the asset statuses in display order.
var AssetStatuses = []string{
	AssetStatusAvailable,
	AssetStatusAssigned,
	AssetStatusMaintenance,
	AssetStatusRetired,
}
