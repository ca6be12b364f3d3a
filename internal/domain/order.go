package domain

// An Order records a device purchase by a hospital from a provider.
// HospitalID and ProviderID are soft references; they may not resolve.
type Order struct {
	OrderID      string
	HospitalID   string
	ProviderID   string
	DeviceName   string
	Quantity     int
	OrderDate    string
	DeliveryDate string
}
