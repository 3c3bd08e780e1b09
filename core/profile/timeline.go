// ABOUTME: Timeline synthesis from founding date, director tenures and legal records
// ABOUTME: Events sort by date, then by a fixed event-type priority, then by title

package profile

import (
	"sort"
	"time"

	"kvk-insights-api/core/domain"
)

const (
	sourceRegistry   = "kvk"
	sourceInsolvency = "insolventieregister"
)

// eventPriority orders same-day events
var eventPriority = map[domain.TimelineEventType]int{
	domain.EventFounding:      0,
	domain.EventDirectorStart: 1,
	domain.EventDirectorEnd:   2,
	domain.EventAnnouncement:  3,
	domain.EventSuspension:    4,
	domain.EventBankruptcy:    5,
	domain.EventDissolution:   6,
}

// BuildTimeline merges the dated facts of p into one sorted list. It never
// returns nil.
func BuildTimeline(p *domain.CompanyProfile) []domain.TimelineEvent {
	events := []domain.TimelineEvent{}
	add := func(date time.Time, typ domain.TimelineEventType, title, description, source, url string) {
		if date.IsZero() {
			return
		}
		events = append(events, domain.TimelineEvent{
			Date:        date,
			Type:        typ,
			Title:       title,
			Description: description,
			Source:      source,
			URL:         url,
		})
	}

	if p.Identity != nil && p.Identity.FoundedOn != nil {
		title := "Oprichting"
		if p.Identity.Name != "" {
			title = "Oprichting " + p.Identity.Name
		}
		add(*p.Identity.FoundedOn, domain.EventFounding, title, p.Identity.LegalForm, sourceRegistry, "")
	}

	for _, d := range p.Directors {
		if d.StartDate != nil {
			add(*d.StartDate, domain.EventDirectorStart, d.Name+" treedt aan", d.Role, sourceRegistry, "")
		}
		if d.EndDate != nil {
			add(*d.EndDate, domain.EventDirectorEnd, d.Name+" treedt af", d.Role, sourceRegistry, "")
		}
	}

	if l := p.LegalStatus; l != nil {
		if l.Suspension != nil {
			add(l.Suspension.Date, domain.EventSuspension, "Surseance van betaling", l.Suspension.Description, sourceInsolvency, l.Suspension.URL)
		}
		if l.Bankruptcy != nil {
			add(l.Bankruptcy.Date, domain.EventBankruptcy, "Faillissement uitgesproken", l.Bankruptcy.Description, sourceInsolvency, l.Bankruptcy.URL)
		}
		if l.Dissolution != nil {
			add(l.Dissolution.Date, domain.EventDissolution, "Ontbinding", l.Dissolution.Description, sourceInsolvency, l.Dissolution.URL)
		}
		for _, a := range l.Announcements {
			add(a.Date, domain.EventAnnouncement, "Publicatie", a.Description, sourceInsolvency, a.URL)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if eventPriority[a.Type] != eventPriority[b.Type] {
			return eventPriority[a.Type] < eventPriority[b.Type]
		}
		return a.Title < b.Title
	})

	return events
}
