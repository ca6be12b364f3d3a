package domain

// Postal address fields shared by hospitals and providers.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// A Hospital is a delivery destination for medical equipment.
// Hospitals are immutable once loaded; a dataset reload replaces them wholesale.
type Hospital struct {
	HospitalID string
	Name       string
	Address    Address
	Location   Coordinates
}
