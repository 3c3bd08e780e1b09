// ABOUTME: Registry-backed company domain models: identity, address, directors and relations
// ABOUTME: These sections come from the business registry and the ownership graph

package domain

import (
	"strings"
	"time"
)

// Address is a structured postal address
type Address struct {
	Street      string       `json:"straat"`
	HouseNumber string       `json:"huisnummer"`
	PostalCode  string       `json:"postcode"`
	City        string       `json:"plaats"`
	Country     string       `json:"land"`
	Coordinates *Coordinates `json:"coordinaten,omitempty"`
}

// Coordinates is a WGS84 geocoordinate
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the address on one line, skipping empty parts
func (a Address) String() string {
	street := strings.TrimSpace(a.Street + " " + a.HouseNumber)
	place := strings.TrimSpace(a.PostalCode + " " + a.City)

	parts := make([]string, 0, 2)
	if street != "" {
		parts = append(parts, street)
	}
	if place != "" {
		parts = append(parts, place)
	}
	return strings.Join(parts, ", ")
}

// SbiCode is a Dutch standard industry classification code
type SbiCode struct {
	Code        string `json:"code"`
	Description string `json:"omschrijving"`
	Primary     bool   `json:"hoofdactiviteit"`
}

// Identity holds the registry's identification data for a company
type Identity struct {
	KvkNumber string `json:"kvkNummer"`
	// TaxID is the RSIN / VAT identifier when the registry exposes it
	TaxID      string     `json:"rsin,omitempty"`
	Name       string     `json:"naam"`
	TradeNames []string   `json:"handelsnamen"`
	LegalForm  string     `json:"rechtsvorm"`
	FoundedOn  *time.Time `json:"oprichtingsdatum,omitempty"`
	Active     bool       `json:"actief"`
	// EmployeeBucket is the registry's size class, e.g. "10-49"
	EmployeeBucket string    `json:"werknemers,omitempty"`
	SbiCodes       []SbiCode `json:"sbiCodes"`
}

// PrimarySbi returns the main activity code, or the first one listed
func (i *Identity) PrimarySbi() string {
	for _, c := range i.SbiCodes {
		if c.Primary {
			return c.Code
		}
	}
	if len(i.SbiCodes) > 0 {
		return i.SbiCodes[0].Code
	}
	return ""
}

// RegistryRecord is the registry's base profile for one registration number
type RegistryRecord struct {
	Identity Identity
	Address  *Address
	Websites []string
}

// Director is one officer of the company
type Director struct {
	Name          string     `json:"naam"`
	Role          string     `json:"functie"`
	Authority     string     `json:"bevoegdheid,omitempty"`
	StartDate     *time.Time `json:"startdatum,omitempty"`
	EndDate       *time.Time `json:"einddatum,omitempty"`
	NaturalPerson bool       `json:"natuurlijkPersoon"`
}

// Relation types used in the ownership graph
const (
	RelationParent     = "moeder"
	RelationSubsidiary = "dochter"
	RelationBranch     = "vestiging"
	RelationRelated    = "gelieerd"
)

// RelatedEntity is one hop in the ownership graph
type RelatedEntity struct {
	KvkNumber    string   `json:"kvkNummer"`
	Name         string   `json:"naam"`
	RelationType string   `json:"relatieType"`
	Ownership    *float64 `json:"eigendomsPercentage,omitempty"`
	// Confidence is 0..1 and reflects how directly the relation was observed
	Confidence float64 `json:"betrouwbaarheid"`
}

// Relations is the shallow ownership graph around a company
type Relations struct {
	Parent       *RelatedEntity  `json:"moeder,omitempty"`
	Subsidiaries []RelatedEntity `json:"dochters"`
	Related      []RelatedEntity `json:"gelieerd"`
}
