package dto

// DoctorCardResponse is the public card projection: only what the
// directory grid renders, display defaults already filled in.
type DoctorCardResponse struct {
	WalletAddress   string `json:"wallet_address"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Specialty       string `json:"specialty"`
	ProfileImage    string `json:"profile_image"`
	Rating          string `json:"rating"`
	Reviews         int    `json:"reviews"`
	YearsExperience string `json:"years_experience"`
	ConsultationFee string `json:"consultation_fee"`
}

type DirectoryListResponse struct {
	Doctors []DoctorCardResponse `json:"doctors"`
	Total   int                  `json:"total"`
}

// DoctorDetailResponse is the public detail page payload. Related lists
// other approved doctors of the same specialty, excluding this one.
type DoctorDetailResponse struct {
	WalletAddress   string               `json:"wallet_address"`
	FirstName       string               `json:"first_name"`
	LastName        string               `json:"last_name"`
	Specialty       string               `json:"specialty"`
	ProfileImage    string               `json:"profile_image"`
	Hospital        string               `json:"hospital"`
	Country         string               `json:"country"`
	Bio             string               `json:"bio"`
	YearsExperience string               `json:"years_experience"`
	Rating          string               `json:"rating"`
	Reviews         int                  `json:"reviews"`
	ConsultationFee string               `json:"consultation_fee"`
	Related         []DoctorCardResponse `json:"related"`
}

// BookingDate is one of the next seven calendar days offered for booking.
type BookingDate struct {
	Day      string `json:"day"`
	Date     int    `json:"date"`
	Month    int    `json:"month"`
	FullDate string `json:"full_date"`
}

// BookingSlotsResponse is the static slot grid: seven days crossed with
// half-hour times in a fixed window. No availability is checked.
type BookingSlotsResponse struct {
	Dates []BookingDate `json:"dates"`
	Times []string      `json:"times"`
}

// BookingPrefillResponse carries the parameters handed to the booking
// destination; nothing about the chosen slot is persisted here.
type BookingPrefillResponse struct {
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Specialty  string `json:"specialty"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Fee        string `json:"fee"`
}
