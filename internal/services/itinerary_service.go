package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/domain/models"
	"journeyplanner/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ItineraryService renders a user's saved journeys as a printable PDF.
type ItineraryService struct {
	RequestID string
	Now       func() time.Time
}

type itineraryColumn struct {
	title string
	width float64
	align string
}

var itineraryColumns = []itineraryColumn{
	{"Route", 52, "L"},
	{"From", 36, "L"},
	{"To", 36, "L"},
	{"Mode", 18, "C"},
	{"Time", 18, "R"},
	{"Cost", 20, "R"},
}

func (s ItineraryService) Render(user models.User, journeys []models.SavedJourney) ([]byte, string, error) {
	if user.ID.IsZero() {
		return nil, "", domain.ValidationError{Field: "user", Msg: "user id is required"}
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	generated := now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Saved Journeys", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SAVED JOURNEYS")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Traveller : "+utils.SafeText(user.Name, "-"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Email     : "+utils.SafeText(user.Email, "-"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated : "+utils.FormatDateTime(generated))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range itineraryColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	var totalCost, totalTime float64
	for _, j := range journeys {
		row := []string{
			clip(utils.SafeText(j.RouteName, "-"), 30),
			clip(j.StartPoint, 20),
			clip(j.EndPoint, 20),
			j.TransportMode,
			utils.FormatMinutes(j.TravelTime),
			utils.FormatFare(j.Cost),
		}
		for i, col := range itineraryColumns {
			pdf.CellFormat(col.width, 6, row[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
		totalCost += j.Cost
		totalTime += j.TravelTime
	}
	if len(journeys) == 0 {
		pdf.CellFormat(180, 6, "No saved journeys yet.", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Journeys: %d   Total time: %s   Total cost: %s",
		len(journeys), utils.FormatMinutes(totalTime), utils.FormatFare(totalCost)))
	pdf.Ln(10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "itinerary", "render", fmt.Sprintf("user_id=%s journeys=%d", user.ID, len(journeys)))
	filename := fmt.Sprintf("JOURNEYS_%s_%s.pdf", safeFilenamePart(user.ID.String()), generated.Format("20060102"))
	return buf.Bytes(), filename, nil
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
