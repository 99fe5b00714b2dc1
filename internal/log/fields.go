package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldUserAgent     = "user_agent"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldStatusFilter  = "status_filter"
	FieldRowCount      = "row_count"
	FieldFileName      = "file_name"
	FieldFileSize      = "file_size"
	FieldEngineURL     = "engine_url"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentGateway  = "gateway"
	ComponentView     = "view"
	ComponentTemplate = "template"
	ComponentSecurity = "security"
)

// Operations defines standard operation names
const (
	OpSummary   = "summary"
	OpList      = "list_transactions"
	OpDetail    = "transaction_detail"
	OpReconcile = "reconcile"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
