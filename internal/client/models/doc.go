// Package models defines the records JobKeeper keeps on the device:
// clients, jobs, invoices, quotes, client notes and user settings.
//
// Field names in JSON follow the persisted camelCase shape. Dates are
// ISO-8601 strings and money is float64; optional numbers are pointers so
// they are omitted rather than stored as null.
package models
