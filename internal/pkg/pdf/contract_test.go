package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/app/services"
)

func TestRenderContractProducesPDF(t *testing.T) {
	renderer := NewContractRenderer("UniEnroll University")

	document, err := renderer.RenderContract(&services.ContractDocument{
		Student: &models.Student{
			RegistrationNumber: "2026000042",
			Account:            &models.Account{FirstName: "Ana", LastName: "Pop"},
		},
		Specialization: &models.Specialization{Name: "Computer Science", SemesterCount: 6},
		Semester:       2,
		Courses: []*models.Course{
			{Name: "Data Structures", SemesterNumber: 2},
			{Name: "Computer Architecture", SemesterNumber: 2},
		},
		GeneratedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NotEmpty(t, document)
	assert.Equal(t, "%PDF", string(document[:4]))
}

func TestRenderContractWithoutCourses(t *testing.T) {
	renderer := NewContractRenderer("UniEnroll University")

	document, err := renderer.RenderContract(&services.ContractDocument{
		Student: &models.Student{
			RegistrationNumber: "2026000001",
			Account:            &models.Account{FirstName: "Ion", LastName: "Dragomir"},
		},
		Specialization: &models.Specialization{Name: "Mathematics", SemesterCount: 6},
		Semester:       1,
		GeneratedAt:    time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, document)
}
