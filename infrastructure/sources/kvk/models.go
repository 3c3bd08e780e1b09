// ABOUTME: Wire models for the registry API and their conversion to domain types
// ABOUTME: Registry dates use the compact yyyymmdd form

package kvk

import (
	"strconv"
	"strings"

	"kvk-insights-api/core/domain"
	timeutil "kvk-insights-api/pkg/utils/time"
)

type searchResponse struct {
	Page    int            `json:"pagina"`
	Total   int            `json:"totaal"`
	Results []searchResult `json:"resultaten"`
}

type searchResult struct {
	KvkNumber string        `json:"kvkNummer"`
	Name      string        `json:"naam"`
	Type      string        `json:"type"`
	Active    string        `json:"actief"`
	LegalForm string        `json:"rechtsvorm"`
	SbiCodes  []string      `json:"sbiCodes"`
	Address   searchAddress `json:"adres"`
}

type searchAddress struct {
	Domestic struct {
		Street      string `json:"straatnaam"`
		HouseNumber int    `json:"huisnummer"`
		PostalCode  string `json:"postcode"`
		City        string `json:"plaats"`
	} `json:"binnenlandsAdres"`
}

func (r searchResult) toDomain() domain.SearchResult {
	d := r.Address.Domestic
	addr := domain.Address{
		Street:      d.Street,
		HouseNumber: houseNumber(d.HouseNumber, ""),
		PostalCode:  d.PostalCode,
		City:        d.City,
	}
	return domain.SearchResult{
		KvkNumber: r.KvkNumber,
		Name:      r.Name,
		Address:   addr.String(),
		City:      d.City,
		LegalForm: r.LegalForm,
		Active:    isYes(r.Active, true),
		SbiCodes:  r.SbiCodes,
	}
}

type baseProfileResponse struct {
	KvkNumber        string `json:"kvkNummer"`
	Name             string `json:"naam"`
	RegistrationDate string `json:"formeleRegistratiedatum"`
	Registration     struct {
		Start string `json:"datumAanvang"`
		End   string `json:"datumEinde"`
	} `json:"materieleRegistratie"`
	Employees  *int `json:"totaalWerkzamePersonen"`
	TradeNames []struct {
		Name  string `json:"naam"`
		Order int    `json:"volgorde"`
	} `json:"handelsnamen"`
	SbiActivities []struct {
		Code        string `json:"sbiCode"`
		Description string `json:"sbiOmschrijving"`
		Primary     string `json:"indHoofdactiviteit"`
	} `json:"sbiActiviteiten"`
	Embedded struct {
		MainBranch struct {
			Addresses []profileAddress `json:"adressen"`
			Websites  []string         `json:"websites"`
		} `json:"hoofdvestiging"`
		Owner struct {
			RSIN      string `json:"rsin"`
			LegalForm string `json:"rechtsvorm"`
			Extended  string `json:"uitgebreideRechtsvorm"`
		} `json:"eigenaar"`
	} `json:"_embedded"`
}

type profileAddress struct {
	Type        string `json:"type"`
	Street      string `json:"straatnaam"`
	HouseNumber int    `json:"huisnummer"`
	Addition    string `json:"huisletter"`
	PostalCode  string `json:"postcode"`
	City        string `json:"plaats"`
	Country     string `json:"land"`
	GeoData     *struct {
		Lat float64 `json:"gpsLatitude"`
		Lng float64 `json:"gpsLongitude"`
	} `json:"geoData"`
}

func (r baseProfileResponse) toDomain() *domain.RegistryRecord {
	founded := timeutil.ParseDate(r.Registration.Start)
	if founded == nil {
		founded = timeutil.ParseDate(r.RegistrationDate)
	}

	identity := domain.Identity{
		KvkNumber:  r.KvkNumber,
		TaxID:      r.Embedded.Owner.RSIN,
		Name:       r.Name,
		TradeNames: make([]string, 0, len(r.TradeNames)),
		LegalForm:  r.Embedded.Owner.LegalForm,
		FoundedOn:  founded,
		Active:     timeutil.ParseDate(r.Registration.End) == nil,
		SbiCodes:   make([]domain.SbiCode, 0, len(r.SbiActivities)),
	}
	if identity.LegalForm == "" {
		identity.LegalForm = r.Embedded.Owner.Extended
	}
	if r.Employees != nil {
		identity.EmployeeBucket = employeeBucket(*r.Employees)
	}
	for _, tn := range r.TradeNames {
		identity.TradeNames = append(identity.TradeNames, tn.Name)
	}
	for _, s := range r.SbiActivities {
		identity.SbiCodes = append(identity.SbiCodes, domain.SbiCode{
			Code:        s.Code,
			Description: s.Description,
			Primary:     isYes(s.Primary, false),
		})
	}

	record := &domain.RegistryRecord{Identity: identity}
	if addr := pickAddress(r.Embedded.MainBranch.Addresses); addr != nil {
		record.Address = addr
	}
	for _, w := range r.Embedded.MainBranch.Websites {
		if w = strings.TrimSpace(w); w != "" {
			record.Websites = append(record.Websites, w)
		}
	}
	return record
}

// pickAddress prefers the visiting address over the postal address
func pickAddress(addrs []profileAddress) *domain.Address {
	if len(addrs) == 0 {
		return nil
	}
	chosen := addrs[0]
	for _, a := range addrs {
		if a.Type == "bezoekadres" {
			chosen = a
			break
		}
	}

	out := &domain.Address{
		Street:      chosen.Street,
		HouseNumber: houseNumber(chosen.HouseNumber, chosen.Addition),
		PostalCode:  chosen.PostalCode,
		City:        chosen.City,
		Country:     chosen.Country,
	}
	if out.Country == "" {
		out.Country = "Nederland"
	}
	if chosen.GeoData != nil && (chosen.GeoData.Lat != 0 || chosen.GeoData.Lng != 0) {
		out.Coordinates = &domain.Coordinates{Lat: chosen.GeoData.Lat, Lng: chosen.GeoData.Lng}
	}
	return out
}

type officersResponse struct {
	Officers []struct {
		Name          string `json:"naam"`
		Role          string `json:"functie"`
		Authority     string `json:"bevoegdheid"`
		Start         string `json:"datumAanvang"`
		End           string `json:"datumEinde"`
		NaturalPerson bool   `json:"natuurlijkPersoon"`
	} `json:"functionarissen"`
}

type relationsResponse struct {
	Parent       *relatedEntity  `json:"moeder"`
	Subsidiaries []relatedEntity `json:"dochters"`
	Related      []relatedEntity `json:"gelieerd"`
}

type relatedEntity struct {
	KvkNumber  string   `json:"kvkNummer"`
	Name       string   `json:"naam"`
	Percentage *float64 `json:"percentage"`
	Basis      string   `json:"bron"`
}

// toDomain sets confidence from how the relation was established: a filed
// group relation is certain, a shared director only suggests one
func (r relatedEntity) toDomain(relationType string) domain.RelatedEntity {
	confidence := 1.0
	switch r.Basis {
	case "concernrelatie", "":
	case "gedeelde bestuurder":
		confidence = 0.6
	default:
		confidence = 0.8
	}
	return domain.RelatedEntity{
		KvkNumber:    r.KvkNumber,
		Name:         r.Name,
		RelationType: relationType,
		Ownership:    r.Percentage,
		Confidence:   confidence,
	}
}

func houseNumber(n int, addition string) string {
	if n == 0 {
		return addition
	}
	return strings.TrimSpace(strconv.Itoa(n) + addition)
}

func isYes(v string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "ja", "true", "1":
		return true
	case "nee", "false", "0":
		return false
	default:
		return fallback
	}
}

// employeeBucket maps a headcount onto the registry's size classes
func employeeBucket(n int) string {
	switch {
	case n <= 1:
		return "1"
	case n < 10:
		return "2-9"
	case n < 50:
		return "10-49"
	case n < 250:
		return "50-249"
	default:
		return "250+"
	}
}
