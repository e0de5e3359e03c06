package models

import "strings"

// ExportFormat names a ticket export representation.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatTXT ExportFormat = "txt"
)

// ParseExportFormat normalizes s. Empty input selects CSV.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ExportFormatCSV, true
	case ExportFormatCSV, ExportFormatTXT:
		return f, true
	default:
		return "", false
	}
}

// TicketFile is an exported ticket ready to be sent as an attachment.
type TicketFile struct {
	Name        string
	ContentType string
	Content     []byte
}
