package model

import "time"

// ExportMode selects how the note body is placed in the draft.
type ExportMode string

const (
	ExportModeText ExportMode = "text"
	ExportModeHTML ExportMode = "html"
)

// ExportOutcome is the terminal state of one export run.
type ExportOutcome string

const (
	// OutcomeSent means the compose link was handed to the mail client.
	OutcomeSent ExportOutcome = "sent"

	// OutcomeTooLarge means the note exceeded the hard size threshold.
	OutcomeTooLarge ExportOutcome = "too_large"

	// OutcomeReadFailed means the note could not be read.
	OutcomeReadFailed ExportOutcome = "read_failed"

	// OutcomeConvertFailed means the markdown could not be converted to HTML.
	OutcomeConvertFailed ExportOutcome = "convert_failed"

	// OutcomeHandoffFailed means the mail client could not be launched.
	OutcomeHandoffFailed ExportOutcome = "handoff_failed"
)

// ExportRecord is one row of export history. Recipient and body are
// never recorded.
type ExportRecord struct {
	ID        string        `db:"id" json:"id"`
	NotePath  string        `db:"note_path" json:"note_path"`
	Mode      ExportMode    `db:"mode" json:"mode"`
	Outcome   ExportOutcome `db:"outcome" json:"outcome"`
	Length    int           `db:"length" json:"length"`
	Warned    bool          `db:"warned" json:"warned"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
