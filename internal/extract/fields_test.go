package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAPI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"canonical", "API # 33-053-01234", "33-053-01234"},
		{"spaced dashes", "API: 33 - 053 - 01234", "33-053-01234"},
		{"job number", "API No. 33 053 01234 Draft", "33-053-01234"},
		{"raw ten digits", "API: 3305301234", "33-053-01234"},
		{"raw eleven digits doubled state code", "API # 33305301234", "33-053-01234"},
		{"bare space separated", "Spud notice for 33 053 01234 filed", "33-053-01234"},
		{"bare canonical fallback", "well 33-053-01234 sidetrack", "33-053-01234"},
		{"suffix stripped", "API: 33-053-01234-00-01", "33-053-01234"},
		{"absent", "no api number anywhere", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAPI(tt.text))
		})
	}
}

func TestExtractAPIPrefersSurveyBlock(t *testing.T) {
	text := `Commingling reference API: 33-111-11111

Well Completion Report
Operator: Someone
API # 33-053-01234`
	assert.Equal(t, "33-053-01234", ExtractAPI(text))
}

func TestWellFileFromFilename(t *testing.T) {
	assert.Equal(t, "12345", WellFileFromFilename("W12345.pdf"))
	assert.Equal(t, "8001", WellFileFromFilename("w8001.PDF"))
	assert.Equal(t, "", WellFileFromFilename("report.pdf"))
	assert.Equal(t, "", WellFileFromFilename("W12345.txt"))
}

func TestExtractWellName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"same line label", "Well Name: Smith Federal 1-23H API # 33-053-01234", "Smith Federal 1-23H"},
		{"name and number next line", "Well Name and Number\nThompson 34-12 1H Sec. 12 T152N", "Thompson 34-12 1H"},
		{"ocr fix", "Well Name: Federa1 Smith 2-1", "Federal Smith 2-1"},
		{"compass capture rejected", "Well Name: NENW\n", ""},
		{"truncated capture rejected", "Well Name and Number\nSmith 1-", ""},
		{"absent", "nothing labeled", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractWellName(tt.text))
		})
	}
}

func TestExtractCounty(t *testing.T) {
	assert.Equal(t, "McKenzie", ExtractCounty("located in McKenzie County, North Dakota"))
	assert.Equal(t, "Dunn", ExtractCounty("County:\nDunn\n"))
	assert.Equal(t, "", ExtractCounty("Range County"), "form label is not a county")
	assert.Equal(t, "", ExtractCounty("no county here"))
}

func TestExtractField(t *testing.T) {
	assert.Equal(t, "Sanish", ExtractField("Field : Sanish"))
	assert.Equal(t, "", ExtractField("Pool\nBakken\nField : Bakken"),
		"pool names are excluded from field capture")
	assert.Equal(t, "", ExtractField("Field : Wildcat"))
}

func TestExtractOperator(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"same line", "Operator: Continental Resources, Inc. Well Name & No.: X", "Continental Resources, Inc."},
		{"checkbox junk stripped", "Operator: Hess Corporation TIGHT HOLE\n", "Hess Corporation"},
		{"company block", "Company\nWhiting Oil and Gas\nAddress\n", "Whiting Oil and Gas"},
		{"address label rejected", "Operator: Address\n", ""},
		{"absent", "nobody here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractOperator(tt.text))
		})
	}
}

func TestPermitAndDepth(t *testing.T) {
	text := `Permit # 98765
Permit Date: 6/15/2012
Total Depth Drilled : 21,000'`

	fields := Fields(text)
	assert.Equal(t, "98765", fields["permit_number"])
	assert.Equal(t, "6/15/2012", fields["permit_date"])
	assert.Equal(t, "21000 ft", fields["total_depth"])
}

func TestExtractFormation(t *testing.T) {
	assert.Equal(t, "Bakken", extractFormation("Formation: Bakken\n"))
	assert.Equal(t, "", extractFormation("Formation: information required by the Director\n"),
		"boilerplate capture is rejected")
	assert.Equal(t, "", extractFormation("no formation"))
}

func TestFieldsOmitsUnmatched(t *testing.T) {
	fields := Fields("an empty page")
	assert.NotContains(t, fields, "api_number")
	assert.NotContains(t, fields, "well_name")
}
