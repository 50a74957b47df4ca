package invoice

import (
	"bytes"
	"fmt"
	"sync"

	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/exceptions"
	"medilink-service/internal/pkg/utils"

	"github.com/jung-kurt/gofpdf"
)

var (
	invoiceRendererInstance contracts.InvoiceRenderer
	onceInvoiceRenderer     sync.Once
)

type pdfInvoiceRenderer struct{}

func NewPDFInvoiceRenderer() contracts.InvoiceRenderer {
	onceInvoiceRenderer.Do(func() {
		invoiceRendererInstance = &pdfInvoiceRenderer{}
	})
	return invoiceRendererInstance
}

func (r *pdfInvoiceRenderer) Render(data *contracts.InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 90, 140)
	pdf.CellFormat(0, 10, "MediLink - Doctor Appointment Booking", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Invoice", "1", 1, "C", false, 0, "")

	addDetail(pdf, "Invoice Number", data.InvoiceNumber, true)
	addDetail(pdf, "Issued At", data.IssuedAt.Format("02 Jan 2006 15:04"), false)
	addDetail(pdf, "Patient", data.PatientName, false)
	addDetail(pdf, "Email", data.PatientEmail, false)
	addDetail(pdf, "Doctor", data.DoctorName, false)
	addDetail(pdf, "Speciality", data.Speciality, false)
	addDetail(pdf, "Appointment Date", utils.DisplaySlotDate(data.SlotDate), false)
	addDetail(pdf, "Appointment Time", data.SlotTime, false)
	addDetail(pdf, "Consultation Type", data.AppointmentType, false)
	addDetail(pdf, "Order ID", data.OrderID, false)
	addDetail(pdf, "Payment ID", data.PaymentID, false)

	pdf.SetFont("Arial", "B", 13)
	addDetail(pdf, "Total Paid", fmt.Sprintf("%s %d", data.Currency, data.Amount), false)

	pdf.MultiCell(0, 5, "Thank you for using our service.", "", "L", false)
	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated invoice", "", 1, "R", false, 0, "")

	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, exceptions.ErrInvoiceRender(err)
	}
	return pdfBuffer.Bytes(), nil
}

func addDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
