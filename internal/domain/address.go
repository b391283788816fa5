package domain

// Address is one row of the read-only address book searched via inline
// queries. MapsLink points at the location on Google Maps.
type Address struct {
	ID       int64
	Label    string
	MapsLink string
}
