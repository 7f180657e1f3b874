package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldExpenseID  = "expense_id"
	FieldTitle      = "title"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldCompetency = "competency"
	FieldStorePath  = "store_path"
	FieldBackend    = "backend"
	FieldPort       = "port"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
	ComponentStore  = "store"
)

// Operations defines standard operation names
const (
	OpAdd    = "add"
	OpEdit   = "edit"
	OpPay    = "pay"
	OpDelete = "delete"
	OpLoad   = "load"
	OpReload = "reload"
	OpRender = "render"
)
