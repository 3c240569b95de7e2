package types

// ServiceRecord is one performed or scheduled supplier visit at a store.
// Dates are canonical dd/mm/yyyy, times canonical HH:MM. NextDue is derived
// and may be empty when the service date/time never parsed.
type ServiceRecord struct {
	Store       string `json:"store"`
	Supplier    string `json:"supplier"`
	Technician  string `json:"technician"`
	ServiceDate string `json:"service_date"`
	ServiceTime string `json:"service_time"`
	Recurrence  string `json:"recurrence"`
	NextDue     string `json:"next_due,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// RecordInput carries a raw submission before normalization. Store is
// ignored for store-scoped callers; their scope wins.
type RecordInput struct {
	Store       string `json:"store,omitempty"`
	Supplier    string `json:"supplier"`
	Technician  string `json:"technician,omitempty"`
	ServiceDate string `json:"service_date"`
	ServiceTime string `json:"service_time"`
	Recurrence  string `json:"recurrence"`
	Notes       string `json:"notes,omitempty"`
}
