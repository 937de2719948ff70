package model

// Assignment is temporary custody of an asset by a named person.
type Assignment struct {
	ID                 ID     `json:"id"`
	AssetID            ID     `json:"assetId,omitempty"`
	AssetName          string `json:"assetName,omitempty"`
	PersonnelName      string `json:"personnelName"`
	PersonnelRank      string `json:"personnelRank,omitempty"`
	PersonnelID        string `json:"personnelId,omitempty"`
	AssignmentDate     string `json:"assignmentDate"`
	ExpectedReturnDate string `json:"expectedReturnDate,omitempty"`
	Purpose            string `json:"purpose,omitempty"`
	Status             string `json:"status"`
	Notes              string `json:"notes,omitempty"`
}

// AssignmentInput is the payload for assigning an asset.
type AssignmentInput struct {
	AssetID            string `json:"assetId"`
	PersonnelName      string `json:"personnelName"`
	PersonnelRank      string `json:"personnelRank"`
	PersonnelID        string `json:"personnelId"`
	AssignmentDate     string `json:"assignmentDate"`
	ExpectedReturnDate string `json:"expectedReturnDate,omitempty"`
	Purpose            string `json:"purpose"`
	Notes              string `json:"notes,omitempty"`
}

// Assignment statuses.
const (
	AssignmentStatusActive   = "active"
	AssignmentStatusReturned = "returned"
)

// Expenditure is permanent consumption or loss of asset quantity.
type Expenditure struct {
	ID              ID     `json:"id"`
	AssetID         ID     `json:"assetId,omitempty"`
	AssetName       string `json:"assetName,omitempty"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
	ExpenditureDate string `json:"expenditureDate"`
	AuthorizedBy    string `json:"authorizedBy"`
	Notes           string `json:"notes,omitempty"`
}

// ExpenditureInput is the payload for recording an expenditure.
type ExpenditureInput struct {
	AssetID         string `json:"assetId"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
	ExpenditureDate string `json:"expenditureDate"`
	AuthorizedBy    string `json:"authorizedBy"`
	Notes           string `json:"notes,omitempty"`
}

// ExpenditureReasons lists the accepted expenditure reasons.
var ExpenditureReasons = []string{
	"Training",
	"Combat Operations",
	"Maintenance",
	"Damage",
	"Lost",
	"Other",
}
