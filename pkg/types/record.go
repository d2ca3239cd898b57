package types

// Outcome classifies the result of scanning a single file.
type Outcome string

const (
	// OutcomeInfected means the signature was found in the file.
	OutcomeInfected Outcome = "infected"

	// OutcomeClean means the file was eligible but the signature was not found.
	OutcomeClean Outcome = "clean"

	// OutcomeIneligible means the file failed the ELF header check and was not scanned.
	OutcomeIneligible Outcome = "ineligible"

	// OutcomeError means the file could not be opened or read mid-scan.
	OutcomeError Outcome = "error"
)

// Valid reports whether o is one of the defined outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeInfected, OutcomeClean, OutcomeIneligible, OutcomeError:
		return true
	}
	return false
}

// Record is the per-file result emitted to the sink.
// Exactly one record is produced for every submitted scan unit.
type Record struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"` // error reason for OutcomeError records
}
