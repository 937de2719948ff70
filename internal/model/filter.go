package model

import (
	"net/url"
	"strings"
)

// Filter narrows a list request. The backend interprets every field; unset
// fields are never sent.
type Filter struct {
	Search        string
	BaseID        string
	EquipmentType string
	Status        string
	StartDate     string
	EndDate       string
}

// FilterFromQuery reads the recognized filter keys from a query string.
func FilterFromQuery(q url.Values) Filter {
	return Filter{
		Search:        strings.TrimSpace(q.Get("search")),
		BaseID:        strings.TrimSpace(q.Get("baseId")),
		EquipmentType: strings.TrimSpace(q.Get("equipmentType")),
		Status:        strings.TrimSpace(q.Get("status")),
		StartDate:     strings.TrimSpace(q.Get("startDate")),
		EndDate:       strings.TrimSpace(q.Get("endDate")),
	}
}

// Values returns the non-empty fields as query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}
	set("search", f.Search)
	set("baseId", f.BaseID)
	set("equipmentType", f.EquipmentType)
	set("status", f.Status)
	set("startDate", f.StartDate)
	set("endDate", f.EndDate)
	return v
}

// IsZero reports whether no field is set.
func (f Filter) IsZero() bool {
	return len(f.Values()) == 0
}
