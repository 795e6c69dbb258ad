package domain

import "math"

// SummaryCounts are statistics over visible items.
type SummaryCounts struct {
	// Total is the number of visible items.
	Total int `json:"total"`

	// Passed counts items with status pass.
	Passed int `json:"passed"`

	// Issues counts items with status attention, moderate or dangerous.
	Issues int `json:"issues"`

	// Info counts items with status info.
	Info int `json:"info"`

	// Remaining is Total - Passed - Issues - Info.
	Remaining int `json:"remaining"`
}

func (c *SummaryCounts) add(it *ChecklistItem) {
	if it.IsHidden {
		return
	}
	c.Total++
	switch {
	case it.Status == ItemStatusPass:
		c.Passed++
	case it.Status == ItemStatusInfo:
		c.Info++
	case it.Status.IsIssue():
		c.Issues++
	}
}

func (c *SummaryCounts) finish() {
	c.Remaining = c.Total - c.Passed - c.Issues - c.Info
}

// Summary returns counts over the section's visible items.
func (s *ChecklistSection) Summary() SummaryCounts {
	var c SummaryCounts
	for i := range s.Items {
		c.add(&s.Items[i])
	}
	c.finish()
	return c
}

// Summary returns counts over every visible item in the profile.
func (p *InspectionProfile) Summary() SummaryCounts {
	var c SummaryCounts
	for si := range p.Sections {
		for ii := range p.Sections[si].Items {
			c.add(&p.Sections[si].Items[ii])
		}
	}
	c.finish()
	return c
}

// Progress returns the percentage of visible items that have been answered,
// rounded to the nearest integer. It is 0 when there are no visible items.
func (p *InspectionProfile) Progress() int {
	visible, answered := 0, 0
	for si := range p.Sections {
		for ii := range p.Sections[si].Items {
			it := &p.Sections[si].Items[ii]
			if it.IsHidden {
				continue
			}
			visible++
			if it.Status.IsAnswered() {
				answered++
			}
		}
	}
	if visible == 0 {
		return 0
	}
	return int(math.Round(100 * float64(answered) / float64(visible)))
}
