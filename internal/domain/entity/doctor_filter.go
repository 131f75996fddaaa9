package entity

// DoctorFilter is a domain-level filter for querying doctor records.
// Used by repository layer to avoid coupling with delivery DTOs.
// Zero values mean "no filter".
type DoctorFilter struct {
	Status    VerificationStatus // filter by review status
	Specialty string             // filter by specialty (exact match)
	Exclude   string             // wallet address to exclude (related-doctors rail)
	Limit     int
}
