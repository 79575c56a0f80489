// Package resources declares the accounting collections ledgerdeck browses:
// their REST names, table columns, paging mode and record validators.
//
// Customers, vendors and expenses can grow large and are paged by the server.
// Staff and the chart of accounts are small enough to load whole and page
// locally.
//
// Writes made from a list (status changes, duplicates and bulk deletes) go
// through Resource methods so the validator always runs before the request.
package resources
