package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() QCReportOrder {
	return QCReportOrder{
		ReferenceNo: "PO1700000000000",
		ModelName:   "Widget X",
		Quantity:    40,
		Status:      "COMPLETED",
		CreatorName: "Operator",
		CreatorMail: "op@example.com",
		CreatedAt:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestRenderProducesPDF(t *testing.T) {
	renderer := NewQCReportRenderer()

	content, err := renderer.Render(sampleOrder(), []QCReportInspection{
		{InspectorName: "QC One", InspectorMail: "qc1@example.com", Passed: false, Notes: "surface scratches", CreatedAt: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)},
		{InspectorName: "QC One", InspectorMail: "qc1@example.com", Passed: true, CreatedAt: time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"))
}

func TestRenderWithoutInspections(t *testing.T) {
	renderer := NewQCReportRenderer()

	content, err := renderer.Render(sampleOrder(), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"))
}

func TestRenderIsDeterministicInSize(t *testing.T) {
	renderer := NewQCReportRenderer()

	a, err := renderer.Render(sampleOrder(), nil)
	require.NoError(t, err)
	b, err := renderer.Render(sampleOrder(), nil)
	require.NoError(t, err)
	assert.Equal(t, len(a), len(b))
}
