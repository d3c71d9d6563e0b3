package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdityaD28/portfolio/internal/content"
)

// branch is one candidate reply. An empty keyword list marks a category's
// generic fallback.
type branch struct {
	keywords   []string
	confidence float64
	text       string
}

type topic struct {
	name     string
	keywords []string
	specific []branch
	fallback branch
}

// KeywordResolver answers from the knowledge base by substring matching.
// Topics are tried in order and the first match wins; inside a topic the
// specific branches are tried before the generic reply.
type KeywordResolver struct {
	topics  []topic
	aliases map[string]string
	dflt    branch
}

var _ Resolver = (*KeywordResolver)(nil)

// NewKeywordResolver precomputes every reply from p.
func NewKeywordResolver(p *content.Portfolio) *KeywordResolver {
	k := p.Knowledge
	name := p.Owner.FirstName
	join := func(s []string) string { return strings.Join(s, ", ") }

	r := &KeywordResolver{aliases: map[string]string{}}

	// Employer names contain words such as "skill" or "technology" that
	// would otherwise route to the skills topic.
	for _, e := range k.Experience {
		r.aliases[strings.ToLower(e.Company)] = " experience "
	}

	skills := topic{
		name:     "skills",
		keywords: []string{"skill", "technolog", "programming", "tech stack", "language", "framework", "frontend", "backend"},
		specific: []branch{
			{
				keywords:   []string{"front", "web"},
				confidence: 0.9,
				text: fmt.Sprintf("%s's front-end skills include %s. He specializes in React.js and modern web technologies, creating responsive and interactive user interfaces.",
					name, join(k.Skills.Frontend)),
			},
			{
				keywords:   []string{"back", "server", "api", "database"},
				confidence: 0.85,
				text: fmt.Sprintf("On the back end %s works with %s, building the APIs and data layers behind his full-stack applications.",
					name, join(k.Skills.Backend)),
			},
			{
				keywords:   []string{"machine learning", "deep learning", "ai", "ml"},
				confidence: 0.95,
				text: fmt.Sprintf("%s has strong AI/ML expertise including %s. He's experienced in deep learning, computer vision, and building intelligent applications.",
					name, join(k.Skills.AI)),
			},
			{
				keywords:   []string{"tool", "git"},
				confidence: 0.85,
				text:       fmt.Sprintf("%s's everyday tools include %s.", name, join(k.Skills.Tools)),
			},
		},
		fallback: branch{
			confidence: 0.9,
			text: fmt.Sprintf("%s's core technical skills include %s. He combines AI/ML expertise with full-stack development to create intelligent web applications.",
				name, join(k.Skills.Core)),
		},
	}

	projects := topic{
		name:     "projects",
		keywords: []string{"project", "work", "built", "build"},
	}
	var projectNames []string
	for _, pr := range p.Projects {
		projects.specific = append(projects.specific, branch{
			keywords:   []string{strings.ToLower(pr.Title)},
			confidence: 0.95,
			text:       fmt.Sprintf("%s: %s %s.", pr.Title, pr.Solution, pr.Impact),
		})
		projectNames = append(projectNames, pr.Title)
	}
	for _, pr := range k.Projects {
		projects.specific = append(projects.specific, branch{
			keywords:   pr.Keywords,
			confidence: 0.95,
			text: fmt.Sprintf("%s is %s. Built with %s, it helps %s.",
				pr.Name, pr.Description, join(pr.Tech), pr.Purpose),
		})
		projectNames = append(projectNames, pr.Name)
	}
	projects.fallback = branch{
		confidence: 0.9,
		text: fmt.Sprintf("%s has worked on several projects including %s. Each one combines AI/ML with practical applications.",
			name, join(dedupe(projectNames))),
	}

	var roles []string
	for _, e := range k.Experience {
		roles = append(roles, fmt.Sprintf("%s at %s (%s), where he %s", e.Title, e.Company, e.Period, join(e.Achievements)))
	}
	experience := topic{
		name:     "experience",
		keywords: []string{"experience", "internship", "intern", "job", "role", "career"},
		fallback: branch{
			confidence: 0.9,
			text:       fmt.Sprintf("%s has worked as %s.", name, strings.Join(roles, "; and as ")),
		},
	}

	education := topic{
		name:     "education",
		keywords: []string{"education", "university", "degree", "study", "college", "student"},
		fallback: branch{
			confidence: 0.9,
			text: fmt.Sprintf("%s is pursuing %s at %s (%s), specializing in %s.",
				name, k.Education.Degree, k.Education.University, k.Education.Period, k.Education.Specialization),
		},
	}

	reach := fmt.Sprintf("Email: %s, LinkedIn: %s, or GitHub: %s", p.Contact.Email, p.Contact.LinkedIn, p.Contact.GitHub)
	if p.Contact.Phone != "" {
		reach += ", Phone: " + p.Contact.Phone
	}
	contact := topic{
		name:     "contact",
		keywords: []string{"contact", "email", "reach", "connect", "hire", "linkedin", "github"},
		fallback: branch{
			confidence: 0.95,
			text:       fmt.Sprintf("You can reach %s at: %s", name, reach),
		},
	}

	certifications := topic{
		name:     "certifications",
		keywords: []string{"certif", "qualified", "course"},
		fallback: branch{
			confidence: 0.9,
			text: fmt.Sprintf("%s has earned certifications in: %s. These certifications demonstrate his commitment to continuous learning.",
				name, join(k.Certifications)),
		},
	}

	leadership := topic{
		name:     "leadership",
		keywords: []string{"lead", "team", "manage", "mentor"},
		fallback: branch{
			confidence: 0.85,
			text:       fmt.Sprintf("As a leader, %s %s.", name, strings.Join(k.Leadership, "; ")),
		},
	}

	performance := topic{
		name:     "performance",
		keywords: []string{"performance", "optimi", "speed", "fast", "efficien"},
		fallback: branch{
			confidence: 0.85,
			text:       fmt.Sprintf("Performance is a recurring theme in %s's work: he %s.", name, strings.Join(k.Performance, "; ")),
		},
	}

	summary := topic{
		name:     "summary",
		keywords: []string{"summary", "about", "who is", "overview", "introduce", "background"},
		fallback: branch{confidence: 0.85, text: k.Summary},
	}

	passion := topic{
		name:     "passion",
		keywords: []string{"passion", "interest", "love", "enjoy", "hobby"},
		fallback: branch{confidence: 0.8, text: k.Passion},
	}

	r.topics = []topic{skills, projects, experience, education, contact, certifications, leadership, performance, passion, summary}
	r.dflt = branch{
		confidence: 0.7,
		text: fmt.Sprintf("I'd be happy to help! I can tell you about %s's skills, projects, experience, education, certifications, leadership, performance work, or how to contact him. What specific area interests you?",
			name),
	}
	return r
}

func (r *KeywordResolver) Name() string { return "keyword" }

// Resolve never fails; unmatched input gets the topic overview.
func (r *KeywordResolver) Resolve(_ context.Context, req Request) (Reply, error) {
	_, b := r.match(req.Text)
	return Reply{Text: b.text, Confidence: b.confidence}, nil
}

// Topic reports which topic an utterance routes to, or "default".
func (r *KeywordResolver) Topic(text string) string {
	t, _ := r.match(text)
	return t
}

func (r *KeywordResolver) match(text string) (string, branch) {
	input := r.normalize(text)
	for _, t := range r.topics {
		if !containsAny(input, t.keywords) {
			continue
		}
		for _, b := range t.specific {
			if containsAny(input, b.keywords) {
				return t.name, b
			}
		}
		return t.name, t.fallback
	}
	return "default", r.dflt
}

func (r *KeywordResolver) normalize(text string) string {
	input := strings.ToLower(text)
	for alias, repl := range r.aliases {
		input = strings.ReplaceAll(input, alias, repl)
	}
	return input
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
