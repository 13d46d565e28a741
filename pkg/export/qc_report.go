package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// QCReportOrder carries the order fields rendered in the report header.
type QCReportOrder struct {
	ReferenceNo string
	ModelName   string
	Quantity    int
	Status      string
	CreatorName string
	CreatorMail string
	CreatedAt   time.Time
}

// QCReportInspection is one inspection entry, earliest first.
type QCReportInspection struct {
	InspectorName string
	InspectorMail string
	Passed        bool
	Notes         string
	CreatedAt     time.Time
}

// QCReportRenderer renders QC inspection reports as PDF documents.
type QCReportRenderer struct{}

// NewQCReportRenderer constructs a renderer.
func NewQCReportRenderer() *QCReportRenderer {
	return &QCReportRenderer{}
}

const dateLayout = "January 2, 2006"

// Render produces the report document for a completed order.
func (r *QCReportRenderer) Render(order QCReportOrder, inspections []QCReportInspection) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 18, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "QC Inspection Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated on: %s", time.Now().Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	r.sectionHeader(pdf, "Order Summary")

	r.detailRow(pdf, "Reference No", order.ReferenceNo)
	r.detailRow(pdf, "Model Name", order.ModelName)
	r.detailRow(pdf, "Quantity", fmt.Sprintf("%d", order.Quantity))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 7, "Status", "", 0, "", false, 0, "")
	setStatusColor(pdf, order.Status == "COMPLETED")
	pdf.CellFormat(0, 7, order.Status, "", 1, "", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	r.detailRow(pdf, "Created By", fmt.Sprintf("%s (%s)", orDash(order.CreatorName), orDash(order.CreatorMail)))
	r.detailRow(pdf, "Created Date", order.CreatedAt.Format(dateLayout))
	pdf.Ln(8)

	r.sectionHeader(pdf, "Inspection Records")

	if len(inspections) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 7, "No inspection records found for this order.", "", 1, "", false, 0, "")
	}

	for i, qc := range inspections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(34, 7, fmt.Sprintf("Inspection #%d", i+1), "", 0, "", false, 0, "")
		setStatusColor(pdf, qc.Passed)
		verdict := "( Failed )"
		if qc.Passed {
			verdict = "( Passed )"
		}
		pdf.CellFormat(26, 7, verdict, "", 0, "", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("on %s", qc.CreatedAt.Format(dateLayout)), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(24, 6, "Inspector:", "", 0, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", orDash(qc.InspectorName), orDash(qc.InspectorMail)), "", 1, "", false, 0, "")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Notes:", "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		notes := qc.Notes
		if notes == "" {
			notes = "No notes provided."
		}
		pdf.MultiCell(0, 6, notes, "", "", false)

		if i < len(inspections)-1 {
			pdf.Ln(3)
			r.separator(pdf)
			pdf.Ln(3)
		}
	}

	pdf.SetY(-22)
	r.separator(pdf)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 6, "This is an automatically generated report.", "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render qc report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *QCReportRenderer) sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	r.separator(pdf)
	pdf.Ln(3)
}

func (r *QCReportRenderer) separator(pdf *gofpdf.Fpdf) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	y := pdf.GetY()
	pdf.SetDrawColor(204, 204, 204)
	pdf.Line(left, y, pageWidth-right, y)
	pdf.SetDrawColor(0, 0, 0)
}

func setStatusColor(pdf *gofpdf.Fpdf, ok bool) {
	if ok {
		pdf.SetTextColor(34, 139, 34)
		return
	}
	pdf.SetTextColor(178, 34, 34)
}

func (r *QCReportRenderer) detailRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 7, label, "", 0, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, value, "", 1, "", false, 0, "")
}

func orDash(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
