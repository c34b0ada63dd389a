package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldID           = "id"
	FieldKind         = "kind"
	FieldCategory     = "category"
	FieldAmountCents  = "amount_cents"
	FieldGoalName     = "goal_name"
	FieldTransactions = "transactions"
	FieldGoals        = "goals"
	FieldBackend      = "backend"
	FieldPathOnDisk   = "ledger_path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentBackend = "backend"
)
