package content

import "math"

// CategoryAll selects every entry in the category filters.
const CategoryAll = "all"

func (p *Portfolio) ProjectsByCategory(category string) []Project {
	if category == "" || category == CategoryAll {
		return p.Projects
	}
	var out []Project
	for _, pr := range p.Projects {
		if pr.Category == category {
			out = append(out, pr)
		}
	}
	return out
}

func (p *Portfolio) FeaturedProjects() []Project {
	var out []Project
	for _, pr := range p.Projects {
		if pr.Featured {
			out = append(out, pr)
		}
	}
	return out
}

func (p *Portfolio) Project(id string) (Project, bool) {
	for _, pr := range p.Projects {
		if pr.ID == id {
			return pr, true
		}
	}
	return Project{}, false
}

func (p *Portfolio) SkillsByCategory(category string) []Skill {
	if category == "" || category == CategoryAll {
		return p.Skills
	}
	var out []Skill
	for _, s := range p.Skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func (p *Portfolio) Skill(id string) (Skill, bool) {
	for _, s := range p.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// RelatedSkills resolves a skill's related ids. Ids with no matching skill
// are skipped.
func (p *Portfolio) RelatedSkills(s Skill) []Skill {
	var out []Skill
	for _, id := range s.Related {
		if r, ok := p.Skill(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// CategoryAverage returns the rounded mean level of a skill category, or 0
// when the category is empty.
func (p *Portfolio) CategoryAverage(category string) int {
	skills := p.SkillsByCategory(category)
	if len(skills) == 0 {
		return 0
	}
	sum := 0
	for _, s := range skills {
		sum += s.Level
	}
	return int(math.Round(float64(sum) / float64(len(skills))))
}

// LevelText names a 1-100 proficiency level.
func LevelText(level int) string {
	switch {
	case level >= 90:
		return "Expert"
	case level >= 80:
		return "Advanced"
	case level >= 70:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

func (p *Portfolio) CertificationsByCategory(category string) []Certification {
	if category == "" || category == CategoryAll {
		return p.Certifications
	}
	var out []Certification
	for _, c := range p.Certifications {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

func (p *Portfolio) TimelineByType(kind string) []TimelineEntry {
	var out []TimelineEntry
	for _, t := range p.Timeline {
		if t.Type == kind {
			out = append(out, t)
		}
	}
	return out
}
