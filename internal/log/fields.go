package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldGeneration = "generation"
	FieldSource     = "source"
	FieldCurrency   = "currency"
	FieldCategoryID = "category_id"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentEngine   = "engine"
	ComponentCurrency = "currency"
	ComponentStorage  = "storage"
	ComponentCache    = "cache"
	ComponentAMQP     = "amqp"
)

// Operations defines the aggregation steps and surrounding operations
const (
	OpFetch      = "fetch"
	OpNormalize  = "normalize"
	OpReconcile  = "reconcile"
	OpAggregate  = "aggregate"
	OpTrend      = "trend"
	OpBudgetEval = "budget_eval"
	OpPublish    = "publish"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)

// Source names for the independent snapshot reads. Used both in log
// records and in degraded-source advisories.
const (
	SourceAnnualSummary     = "annual_summary"
	SourcePrevAnnualSummary = "prev_annual_summary"
	SourceExpenses          = "expenses"
	SourcePrevExpenses      = "prev_expenses"
	SourceCategories        = "categories"
	SourceBudgets           = "budgets"
)
