package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/berkecan/unienroll/internal/app/services"
)

// ContractRenderer renders enrollment contracts as PDF documents.
type ContractRenderer struct {
	institutionName string
}

// NewContractRenderer creates a renderer stamping the given institution name
// on every document.
func NewContractRenderer(institutionName string) *ContractRenderer {
	return &ContractRenderer{institutionName: institutionName}
}

// RenderContract renders one contract document and returns the PDF bytes.
func (r *ContractRenderer) RenderContract(doc *services.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Enrollment Contract", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.institutionName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Enrollment Contract", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	account := doc.Student.Account
	pdf.CellFormat(0, 6, fmt.Sprintf("Student: %s %s", account.LastName, account.FirstName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Registration number: %s", doc.Student.RegistrationNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Specialization: %s", doc.Specialization.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Semester: %d of %d", doc.Semester, doc.Specialization.SemesterCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", doc.GeneratedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 7, "Course", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Type", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, course := range doc.Courses {
		courseType := "Mandatory"
		if course.IsOptional {
			courseType = "Optional"
		}
		pdf.CellFormat(120, 7, course.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, courseType, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(14)
	pdf.CellFormat(80, 6, "Student signature: ______________", "", 0, "L", false, 0, "")
	pdf.CellFormat(80, 6, "Dean signature: ______________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering contract pdf: %w", err)
	}
	return buf.Bytes(), nil
}
