package config

const (
	// DefaultRegion is the documented fallback when a request or file
	// names no region.
	DefaultRegion = "us"

	// PnLYear: the P&L sheet names carry only a month token ("3월"); the
	// year is fixed by the workbook generation currently in use.
	PnLYear = 2026

	// BatchSize bounds one bulk-insert flush during raw imports.
	BatchSize = 500

	// OrderListingCap caps the order listing endpoints.
	OrderListingCap = 500

	// UploadMaxBytes caps multipart uploads on the import endpoints.
	UploadMaxBytes = 64 << 20

	// DefaultInboxSchedule runs the inbox sweep nightly.
	DefaultInboxSchedule = "0 6 * * *"
)
