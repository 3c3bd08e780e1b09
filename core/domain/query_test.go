package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	coreerrors "kvk-insights-api/core/errors"
)

func TestSearchQuery_NormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   SearchQuery
		wantErr bool
		field   string
	}{
		{
			name:  "name search",
			query: SearchQuery{Type: SearchByName, Text: "  Acme B.V. "},
		},
		{
			name:    "name search too short",
			query:   SearchQuery{Type: SearchByName, Text: "A"},
			wantErr: true,
			field:   "tekst",
		},
		{
			name:  "registration number with dots and spaces",
			query: SearchQuery{Type: SearchByRegistrationNumber, Text: "1234 56.78"},
		},
		{
			name:    "registration number too short",
			query:   SearchQuery{Type: SearchByRegistrationNumber, Text: "1234567"},
			wantErr: true,
			field:   "tekst",
		},
		{
			name:    "registration number with letters",
			query:   SearchQuery{Type: SearchByRegistrationNumber, Text: "1234567A"},
			wantErr: true,
			field:   "tekst",
		},
		{
			name:  "postal code lower case with space",
			query: SearchQuery{Type: SearchByPostalCode, PostalCode: "1012 ab"},
		},
		{
			name:  "postal code given as text",
			query: SearchQuery{Type: SearchByPostalCode, Text: "1012AB"},
		},
		{
			name:    "postal code malformed",
			query:   SearchQuery{Type: SearchByPostalCode, PostalCode: "ABCD12"},
			wantErr: true,
			field:   "postcode",
		},
		{
			name:  "industry code with dot",
			query: SearchQuery{Type: SearchByIndustryCode, IndustryCode: "62.01"},
		},
		{
			name:    "industry code too long",
			query:   SearchQuery{Type: SearchByIndustryCode, IndustryCode: "620123"},
			wantErr: true,
			field:   "sbiCode",
		},
		{
			name:    "missing type",
			query:   SearchQuery{Text: "Acme"},
			wantErr: true,
			field:   "type",
		},
		{
			name:    "unknown type",
			query:   SearchQuery{Type: "email", Text: "Acme"},
			wantErr: true,
			field:   "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.query
			q.Normalize()
			err := q.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *coreerrors.ValidationError
			if assert.ErrorAs(t, err, &vErr) {
				assert.Equal(t, tt.field, vErr.Field)
			}
		})
	}
}

func TestSearchQuery_NormalizeValues(t *testing.T) {
	q := SearchQuery{Type: SearchByRegistrationNumber, Text: " 12.34.56.78 "}
	q.Normalize()
	assert.Equal(t, "12345678", q.Text)

	q = SearchQuery{Type: SearchByPostalCode, Text: "1012 ab"}
	q.Normalize()
	assert.Equal(t, "1012AB", q.PostalCode)

	q = SearchQuery{Type: SearchByIndustryCode, IndustryCode: "62.01"}
	q.Normalize()
	assert.Equal(t, "6201", q.IndustryCode)
}

func TestSearchQuery_WantsProfile(t *testing.T) {
	assert.True(t, (&SearchQuery{Type: SearchByRegistrationNumber, FullProfile: true}).WantsProfile())
	assert.False(t, (&SearchQuery{Type: SearchByName, FullProfile: true}).WantsProfile())
	assert.False(t, (&SearchQuery{Type: SearchByRegistrationNumber}).WantsProfile())
}

func TestRequestedKeys(t *testing.T) {
	assert.Equal(t,
		[]string{KeyDirectors, KeyRelations, KeyLegalStatus, KeyFinancial},
		AllSections().Keys())
	assert.Equal(t,
		[]string{KeyWebsite, KeySocials, KeyTechStack, KeyNews, KeyReviews, KeyAIAnalysis},
		AllEnrichments().Keys())
	assert.Empty(t, Include{}.Keys())
	assert.Equal(t, []string{KeyNews}, Enrichments{News: true}.Keys())
}
