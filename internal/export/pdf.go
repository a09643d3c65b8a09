// README: Printable PDF export of an itinerary with a QR code linking back to the shared plan.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"atlas/internal/itinerary"
)

const (
	qrSize   = 30.0 // mm
	lineH    = 6.0
	fontBody = 11.0
)

// WritePDF renders it as an A4 document. When shareURL is non-empty a QR code
// pointing at it is placed in the top-right corner.
func WritePDF(w io.Writer, it *itinerary.Itinerary, shareURL string) error {
	if it == nil {
		return fmt.Errorf("export: nil itinerary")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Trip to "+it.TripOverview.Destination, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if shareURL != "" {
		qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("export: qr code: %w", err)
		}
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("share-qr", imageOpts, bytes.NewReader(qrPNG))
		pageW, _ := pdf.GetPageSize()
		_, _, right, _ := pdf.GetMargins()
		pdf.ImageOptions("share-qr", pageW-right-qrSize, 10, qrSize, qrSize, false, imageOpts, 0, shareURL)
	}

	ov := it.TripOverview
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr("Trip to "+ov.Destination))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", fontBody)
	for _, row := range [][2]string{
		{"Dates", ov.Dates},
		{"Duration", ov.Duration},
		{"Budget", ov.BudgetLevel},
		{"Accommodation", ov.Accommodation},
		{"Travelers", ov.Travelers},
		{"Dietary plan", ov.DietaryPlan},
		{"Trip type", ov.TripType},
	} {
		if row[1] == "" {
			continue
		}
		pdf.Cell(0, lineH, tr(row[0]+": "+row[1]))
		pdf.Ln(lineH)
	}
	if pdf.GetY() < 10+qrSize+4 {
		pdf.SetY(10 + qrSize + 4)
	}

	for _, day := range it.Days {
		heading := fmt.Sprintf("Day %d", day.Day)
		if day.Date != "" {
			heading += " (" + day.Date + ")"
		}
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, tr(heading))
		pdf.Ln(9)

		for _, part := range []struct {
			label  string
			period itinerary.Period
		}{
			{"Morning", day.Morning},
			{"Afternoon", day.Afternoon},
			{"Evening", day.Evening},
		} {
			label := part.label
			if part.period.Time != "" {
				label += " (" + part.period.Time + ")"
			}
			pdf.SetFont("Arial", "B", fontBody)
			pdf.Cell(0, lineH, tr(label))
			pdf.Ln(lineH)
			pdf.SetFont("Arial", "", fontBody)
			for _, a := range part.period.Activities {
				pdf.MultiCell(0, lineH, tr("- "+a), "", "L", false)
			}
		}
	}

	info := it.AdditionalInfo
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Good to know")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", fontBody)
	for _, row := range [][2]string{
		{"Weather", strings.Trim(info.Weather.Forecast+", "+info.Weather.Temperature, ", ")},
		{"Currency", strings.TrimSpace(info.LocalCurrency.Code + " " + info.LocalCurrency.ExchangeRate)},
		{"From the airport", info.Transportation.FromAirport},
		{"Getting around", strings.Join(info.Transportation.LocalTransport, ", ")},
		{"Police", info.Emergency.Police},
		{"Ambulance", info.Emergency.Ambulance},
		{"Tourist police", info.Emergency.TouristPolice},
		{"Packing", strings.Join(info.PackingTips, ", ")},
	} {
		if row[1] == "" {
			continue
		}
		pdf.MultiCell(0, lineH, tr(row[0]+": "+row[1]), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export: render pdf: %w", err)
	}
	return pdf.Output(w)
}
