// Package records persists the JobKeeper collections as whole JSON arrays
// under fixed keys of a kv.Store, and owns the invoice and quote counters.
package records

const (
	KeyUser           = "@user"
	KeyClients        = "@clients"
	KeyJobs           = "@jobs"
	KeyInvoices       = "@invoices"
	KeyClientNotes    = "@client_notes"
	KeyInvoiceCounter = "@invoice_counter"
	KeyQuotes         = "@quotes"
	KeyQuoteCounter   = "@quote_counter"
	KeyUserSettings   = "@user_settings"
)

// clearableKeys is everything ClearAll removes. Settings are kept.
var clearableKeys = []string{
	KeyUser,
	KeyClients,
	KeyJobs,
	KeyInvoices,
	KeyClientNotes,
	KeyInvoiceCounter,
	KeyQuotes,
	KeyQuoteCounter,
}
