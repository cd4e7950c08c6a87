package dashboard

import "errors"

var (
	// ErrNoEmails is returned when a new campaign has no target emails. No request is sent.
	ErrNoEmails = errors.New("dashboard: at least one email is required")

	// ErrNoSelection is returned by ExportSelected before any campaign was opened.
	ErrNoSelection = errors.New("dashboard: no campaign selected")

	// ErrSubmitInProgress is returned when a campaign is submitted while the previous one
	// is still being generated.
	ErrSubmitInProgress = errors.New("dashboard: campaign creation already in progress")

	// ErrUnknownAction is returned for table actions other than view and export.
	ErrUnknownAction = errors.New("dashboard: unknown table action")
)
