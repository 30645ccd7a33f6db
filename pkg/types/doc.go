// Package types defines the CRM entity model (Lead, Task, Note, Appointment,
// Vehicle), the relationship schema that links them, patch types for partial
// updates, and the error taxonomy shared by the store, the query layer, and
// the CLI.
package types
