// Package constants centralizes protocol paths, header names, and timing
// defaults shared across the client packages.
package constants

import "time"

// REST API paths.
const (
	// LogonPath is the fixed session logon location.
	LogonPath = "/rest/api/web/Logon"

	// UOMPath is the root of the unified object model.
	UOMPath = "/rest/api/uom"

	// ConsolePath is the management console's own entity collection.
	ConsolePath = "/rest/api/uom/ManagementConsole"
)

// Header names.
const (
	// SessionHeader carries the session token on every request.
	SessionHeader = "X-API-Session"

	// TransactionHeader carries a per-request correlation ID.
	TransactionHeader = "X-Transaction-ID"

	// IfMatchHeader carries the version tag for conditional updates.
	IfMatchHeader = "If-Match"
)

// Content types.
const (
	// ContentTypeAtom is accepted for feed and entry responses.
	ContentTypeAtom = "application/atom+xml"

	// ContentTypeUOM is the payload type for UOM entity submissions. The
	// concrete kind is appended as "; type=Kind".
	ContentTypeUOM = "application/vnd.ibm.powervm.uom+xml"

	// ContentTypeWeb is the payload type for web-session documents (logon).
	ContentTypeWeb = "application/vnd.ibm.powervm.web+xml"
)

// HTTP and retry defaults.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 60 * time.Second

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Job polling.
const (
	// JobPollInitial is the first adaptive-backoff poll interval.
	JobPollInitial = 1 * time.Second

	// JobPollCeiling caps the adaptive-backoff poll interval.
	JobPollCeiling = 30 * time.Second

	// DefaultJobTimeout bounds Run when the caller passes no deadline of its
	// own.
	DefaultJobTimeout = 30 * time.Minute
)

// DefaultModifyAttempts is the conditional-update retry budget used by the
// convenience wrappers.
const DefaultModifyAttempts = 3
