package dataprocessing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/shared/testutil"
)

func sampleAnalysisReport(t *testing.T) string {
	t.Helper()
	analysis, err := Analyze(context.Background(), testutil.SampleProducts(), Options{TopN: 10})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, analysis))
	return buf.String()
}

func TestWriteReport_Sections(t *testing.T) {
	report := sampleAnalysisReport(t)

	assert.True(t, strings.HasPrefix(report, strings.Repeat("=", 80)+"\n"+ReportTitle+"\n"))

	sections := []string{
		"KEY METRICS",
		"CATEGORY PERFORMANCE",
		"TOP PERFORMING PRODUCTS",
		"MONTHLY SALES TRENDS",
		"PRICE VS SALES ANALYSIS",
		"REVIEW SCORE IMPACT",
		"KEY BUSINESS INSIGHTS",
		"ANALYSIS COMPLETE",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(report, s)
		require.NotEqual(t, -1, idx, s)
		assert.Greater(t, idx, last, "%s out of order", s)
		last = idx
	}
}

func TestWriteReport_Values(t *testing.T) {
	report := sampleAnalysisReport(t)

	for _, want := range []string{
		"Total Products: 6",
		"Categories: 3",
		"Total Units Sold: 2,700",
		"Total Revenue: $285,600.00",
		"Average Product Price: $267.50",
		"Average Monthly Sales per Product: 38 units",
		"Top 6 Products by Revenue:",
		"Electronics is the top category with $240,000.00 (84.0% of revenue)",
		"Products per category avg: 2",
		"Best month: Month 12 with 280 units",
		"Weakest month: Month 1 with 170 units",
		"Seasonal variation: 48.9%",
		"Lower prices drive higher volume",
		"Moderate review impact",
		"Focus marketing on Electronics category",
		"Excellent (4-5)",
		"84.03",
	} {
		assert.Contains(t, report, want)
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestWriteReport_WriteError(t *testing.T) {
	analysis, err := Analyze(context.Background(), testutil.SampleProducts(), Options{})
	require.NoError(t, err)

	w := &failingWriter{}
	err = WriteReport(w, analysis)
	require.Error(t, err)
	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, 1, w.writes, "writing stops after the first error")
}
