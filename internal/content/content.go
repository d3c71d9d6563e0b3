// Package content holds the static portfolio document: the owner's profile,
// the page sections and the knowledge base the chat assistant answers from.
// A Portfolio is built once at startup and never mutated afterwards.
package content

type Portfolio struct {
	Owner           Owner           `yaml:"owner"`
	Navigation      []NavItem       `yaml:"navigation"`
	Assets          Assets          `yaml:"assets"`
	Contact         Contact         `yaml:"contact"`
	Timeline        []TimelineEntry `yaml:"timeline"`
	SkillCategories []Category      `yaml:"skill_categories"`
	Skills          []Skill         `yaml:"skills"`
	Projects        []Project       `yaml:"projects"`
	Certifications  []Certification `yaml:"certifications"`
	Knowledge       Knowledge       `yaml:"knowledge"`
}

type Owner struct {
	Name      string     `yaml:"name"`
	FirstName string     `yaml:"first_name"`
	Headline  string     `yaml:"headline"`
	Tags      []string   `yaml:"tags"`
	Intro     string     `yaml:"intro"`
	Location  string     `yaml:"location"`
	About     []string   `yaml:"about"`
	Stats     []Metric   `yaml:"stats"`
	Interests []Interest `yaml:"interests"`
	Traits    []string   `yaml:"traits"`
	Quote     string     `yaml:"quote"`
}

type Interest struct {
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

type NavItem struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

// Assets are static downloads served from disk, never generated.
type Assets struct {
	Resume   string `yaml:"resume"`
	Portrait string `yaml:"portrait"`
}

type Contact struct {
	Email    string    `yaml:"email"`
	Phone    string    `yaml:"phone"`
	LinkedIn string    `yaml:"linkedin"`
	GitHub   string    `yaml:"github"`
	Channels []Channel `yaml:"channels"`
}

type Channel struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Href  string `yaml:"href"`
}

type TimelineEntry struct {
	ID           string   `yaml:"id"`
	Type         string   `yaml:"type"` // experience | education
	Title        string   `yaml:"title"`
	Organization string   `yaml:"organization"`
	Location     string   `yaml:"location"`
	Period       string   `yaml:"period"`
	Status       string   `yaml:"status"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Skill struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Level       int      `yaml:"level"` // 1-100
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Related     []string `yaml:"related"`
}

type Metric struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Project struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Tagline      string   `yaml:"tagline"`
	Challenge    string   `yaml:"challenge"`
	Solution     string   `yaml:"solution"`
	TechStack    []string `yaml:"tech_stack"`
	GitHub       string   `yaml:"github"`
	Video        string   `yaml:"video"`
	Category     string   `yaml:"category"` // ai | web | mobile
	Featured     bool     `yaml:"featured"`
	Achievements []string `yaml:"achievements"`
	Metrics      []Metric `yaml:"metrics"`
	Impact       string   `yaml:"impact"`
}

type Certification struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Issuer        string `yaml:"issuer"`
	Date          string `yaml:"date"`
	Description   string `yaml:"description"`
	CredentialURL string `yaml:"credential_url"`
	Category      string `yaml:"category"` // ai | web | programming | other
	Level         string `yaml:"level"`    // beginner | intermediate | advanced
}

// Knowledge is the condensed record the chat assistant quotes from.
type Knowledge struct {
	Skills         SkillSets          `yaml:"skills"`
	Projects       []KnowledgeProject `yaml:"projects"`
	Experience     []Experience       `yaml:"experience"`
	Education      Education          `yaml:"education"`
	Certifications []string           `yaml:"certifications"`
	Leadership     []string           `yaml:"leadership"`
	Performance    []string           `yaml:"performance"`
	Summary        string             `yaml:"summary"`
	Passion        string             `yaml:"passion"`
}

type SkillSets struct {
	Core     []string `yaml:"core"`
	AI       []string `yaml:"ai"`
	Frontend []string `yaml:"frontend"`
	Backend  []string `yaml:"backend"`
	Tools    []string `yaml:"tools"`
}

type KnowledgeProject struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Purpose     string   `yaml:"purpose"`
	Keywords    []string `yaml:"keywords"`
}

type Experience struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Period       string   `yaml:"period"`
	Achievements []string `yaml:"achievements"`
}

type Education struct {
	University     string `yaml:"university"`
	Degree         string `yaml:"degree"`
	Period         string `yaml:"period"`
	Specialization string `yaml:"specialization"`
}
