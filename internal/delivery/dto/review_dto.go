package dto

// Request DTOs

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

// Response DTOs

type ReviewListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// ReviewStatsResponse backs the admin overview cards.
type ReviewStatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// ReviewDetailResponse is one application plus whether the decision
// buttons apply (only pending records are actionable).
type ReviewDetailResponse struct {
	Doctor     *DoctorResponse `json:"doctor"`
	Actionable bool            `json:"actionable"`
}

// AuditEntryResponse is one line of an application's history. The
// record itself only keeps the latest reviewedAt; past submissions and
// decisions live here.
type AuditEntryResponse struct {
	ID        int64                  `json:"id"`
	AdminID   string                 `json:"admin_id,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

type ReviewHistoryResponse struct {
	Wallet  string               `json:"wallet"`
	Entries []AuditEntryResponse `json:"entries"`
}
