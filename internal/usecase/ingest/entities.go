package ingest

const (
	FileBorrowers  = "borrowers.csv"
	FileLoans      = "loans.csv"
	FileRepayments = "repayments.csv"

	DefaultChunkSize  = 1000
	maxReportedErrors = 20
)

var (
	borrowerColumns  = []string{"id", "full_name", "credit_score", "annual_income", "employment_years", "home_ownership"}
	loanColumns      = []string{"id", "borrower_id", "amount", "term_months", "interest_rate", "grade", "issue_date", "loan_status", "installment"}
	repaymentColumns = []string{"id", "loan_id", "payment_date", "payment_amount"}
)

// ImportReport summarizes one file. Rows in a failed chunk count as read but
// not inserted.
type ImportReport struct {
	Table        string   `json:"table"`
	RowsRead     int      `json:"rows_read"`
	RowsInserted int      `json:"rows_inserted"`
	ChunksFailed int      `json:"chunks_failed"`
	Errors       []string `json:"errors,omitempty"`
	// Errors beyond the reported cap are only counted.
	ErrorsDropped int `json:"errors_dropped,omitempty"`
}

func (r *ImportReport) addError(msg string) {
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, msg)
		return
	}
	r.ErrorsDropped++
}
