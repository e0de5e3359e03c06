// Package export renders a purchased ticket into a downloadable file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-event-organizer/models"
)

// notAvailable is printed in place of a missing event time.
const notAvailable = "N/A"

var ErrUnsupportedFormat = errors.New("unsupported export format")

var csvHeader = []string{"Event Name", "Event Date", "Event Time", "Location", "Purchase Price"}

// Exporter writes one ticket in a specific file format.
type Exporter interface {
	Export(w io.Writer, ticket models.TicketDetails) error
	// ContentType is the MIME type of the produced file.
	ContentType() string
	// Extension is the file extension without the leading dot.
	Extension() string
}

// ForFormat returns the exporter for format.
func ForFormat(format models.ExportFormat) (Exporter, error) {
	switch format {
	case models.ExportFormatCSV:
		return csvExporter{}, nil
	case models.ExportFormatTXT:
		return textExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Filename is the attachment name offered for a ticket exported by e.
func Filename(e Exporter) string {
	return "ticket." + e.Extension()
}

type csvExporter struct{}

func (csvExporter) Export(w io.Writer, ticket models.TicketDetails) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if err := cw.Write([]string{
		ticket.EventName,
		ticket.EventDate.Format(models.EventDateLayout),
		eventTime(ticket),
		ticket.LocationName,
		ticket.PurchasePrice.String(),
	}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func (csvExporter) ContentType() string { return "text/csv" }

func (csvExporter) Extension() string { return string(models.ExportFormatCSV) }

type textExporter struct{}

func (textExporter) Export(w io.Writer, ticket models.TicketDetails) error {
	_, err := fmt.Fprintf(w, "Event: %s\nDate: %s\nTime: %s\nLocation: %s\nPurchase Price: %s\n\n",
		ticket.EventName,
		ticket.EventDate.Format(models.EventDateLayout),
		eventTime(ticket),
		ticket.LocationName,
		ticket.PurchasePrice.String(),
	)
	return err
}

func (textExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (textExporter) Extension() string { return string(models.ExportFormatTXT) }

func eventTime(ticket models.TicketDetails) string {
	if ticket.EventTime == "" {
		return notAvailable
	}
	return ticket.EventTime
}
