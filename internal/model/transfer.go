package model

// Transfer is a movement of asset quantity between two bases.
type Transfer struct {
	ID           ID        `json:"id"`
	AssetID      ID        `json:"assetId,omitempty"`
	AssetName    string    `json:"assetName,omitempty"`
	FromBaseID   ID        `json:"fromBaseId,omitempty"`
	FromBaseName string    `json:"fromBaseName,omitempty"`
	ToBaseID     ID        `json:"toBaseId,omitempty"`
	ToBaseName   string    `json:"toBaseName,omitempty"`
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    Timestamp `json:"createdAt"`
}

// TransferInput is the payload for requesting a transfer.
type TransferInput struct {
	AssetID    string `json:"assetId"`
	FromBaseID string `json:"fromBaseId"`
	ToBaseID   string `json:"toBaseId"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes,omitempty"`
}

// Transfer statuses.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusRejected  = "rejected"
)

// TransferReasons lists the accepted transfer reasons.
var TransferReasons = []string{
	"Redeployment",
	"Maintenance",
	"Redistribution",
	"Emergency",
	"Other",
}

// DestinationBases returns the bases a transfer from fromBaseID may go to:
// every base except the source.
func DestinationBases(bases []Base, fromBaseID string) []Base {
	out := make([]Base, 0, len(bases))
	for _, b := range bases {
		if fromBaseID != "" && b.ID.String() == fromBaseID {
			continue
		}
		out = append(out, b)
	}
	return out
}
