package i18n

// Code mirrors errors.Code as a plain string to avoid an import cycle.
// Error codes must match the codes defined in internal/errors/codes.go.
type Code string

const (
	CodeUnknown              Code = "UNKNOWN"
	CodeTransientUnavailable Code = "TRANSIENT_UNAVAILABLE"
	CodeTimeout              Code = "TIMEOUT"
	CodeSchemaViolation      Code = "SCHEMA_VIOLATION"
	CodeSafetyViolation      Code = "SAFETY_VIOLATION"
	CodeQueueOverflow        Code = "QUEUE_OVERFLOW"
	CodeInvariantBreach      Code = "INVARIANT_BREACH"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeTransientUnavailable: "{{.Dependency}} is temporarily unavailable",
		CodeTimeout:              "{{.Node}} exceeded its deadline of {{.Deadline}}",
		CodeSchemaViolation:      "{{.Tool}} argument {{.Field}} failed schema validation",
		CodeSafetyViolation:      "{{.Tool}} rejected by protection validator: {{.Reason}}",
		CodeQueueOverflow:        "event queue overflowed, evicted lowest-priority event {{.EventKind}}",
		CodeInvariantBreach:      "synthetic world invariant breach: {{.Invariant}}",
	},
}
