package models

// CardRow is one parsed spreadsheet row: eleven positional text fields.
// Category is not part of the sheet; the whole batch is imported into one
// category chosen at upload time.
type CardRow struct {
	Name        string
	Company     string
	Department  string
	Position    string
	Address     string
	OfficePhone string
	OfficeFax   string
	MobilePhone string
	Email       string
	Website     string
	Notes       string
}

// UploadResult tallies one import run. Row-level problems are recorded as
// diagnostic strings and never abort the batch.
type UploadResult struct {
	TotalRows    int      `json:"total_rows"`
	SuccessCount int      `json:"success_count"`
	UpdateCount  int      `json:"update_count"`
	SkipCount    int      `json:"skip_count"`
	Errors       []string `json:"errors"`
	Duplicates   []string `json:"duplicates"`
}

// NewUploadResult creates an empty result with non-nil diagnostic lists
func NewUploadResult() *UploadResult {
	return &UploadResult{
		Errors:     []string{},
		Duplicates: []string{},
	}
}
