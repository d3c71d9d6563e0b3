package content

import (
	"fmt"
	"strings"
)

// KnowledgeText flattens the knowledge base into prose suitable for a
// language model system instruction.
func (p *Portfolio) KnowledgeText() string {
	k := p.Knowledge
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", p.Owner.Name)
	fmt.Fprintf(&b, "Headline: %s\n", p.Owner.Headline)
	fmt.Fprintf(&b, "Location: %s\n", p.Owner.Location)
	fmt.Fprintf(&b, "Summary: %s\n\n", k.Summary)

	b.WriteString("Skills:\n")
	writeList(&b, "Core", k.Skills.Core)
	writeList(&b, "AI/ML", k.Skills.AI)
	writeList(&b, "Frontend", k.Skills.Frontend)
	writeList(&b, "Backend", k.Skills.Backend)
	writeList(&b, "Tools", k.Skills.Tools)

	b.WriteString("\nExperience:\n")
	for _, e := range k.Experience {
		fmt.Fprintf(&b, "- %s at %s (%s): %s\n", e.Title, e.Company, e.Period, strings.Join(e.Achievements, "; "))
	}

	b.WriteString("\nEducation:\n")
	fmt.Fprintf(&b, "- %s, %s (%s), specialization %s\n",
		k.Education.Degree, k.Education.University, k.Education.Period, k.Education.Specialization)
	for _, t := range p.TimelineByType("education") {
		fmt.Fprintf(&b, "- %s, %s (%s)\n", t.Title, t.Organization, t.Period)
	}

	b.WriteString("\nProjects:\n")
	for _, pr := range p.Projects {
		fmt.Fprintf(&b, "- %s: %s Tech: %s. Impact: %s\n",
			pr.Title, pr.Solution, strings.Join(pr.TechStack, ", "), pr.Impact)
	}
	for _, pr := range k.Projects {
		fmt.Fprintf(&b, "- %s: %s. Tech: %s. Purpose: %s\n",
			pr.Name, pr.Description, strings.Join(pr.Tech, ", "), pr.Purpose)
	}

	b.WriteString("\nCertifications:\n")
	for _, c := range p.Certifications {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", c.Title, c.Issuer, c.Date)
	}

	writeList(&b, "\nLeadership", k.Leadership)
	writeList(&b, "Performance work", k.Performance)
	fmt.Fprintf(&b, "Passion: %s\n\n", k.Passion)

	fmt.Fprintf(&b, "Contact: email %s, LinkedIn %s, GitHub %s", p.Contact.Email, p.Contact.LinkedIn, p.Contact.GitHub)
	if p.Contact.Phone != "" {
		fmt.Fprintf(&b, ", phone %s", p.Contact.Phone)
	}
	b.WriteString("\n")
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}
