package model

// Base is a military installation.
type Base struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// EquipmentType is a category of equipment.
type EquipmentType struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Role is a role as listed by the backend reference endpoint.
type Role struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
