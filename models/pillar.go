package models

// PillarID identifies one of the four fixed content pillars.
type PillarID string

const (
	PillarProfPaulo   PillarID = "prof-paulo"
	PillarConsultoria PillarID = "consultoria-imobiliaria"
	Pillar4050OuMais  PillarID = "4050oumais"
	PillarAcademiaGas PillarID = "academia-do-gas"
)

// Pillar is a static content-pillar record. Pillars are configuration data,
// never mutated at runtime.
type Pillar struct {
	ID              PillarID `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Icon            string   `json:"icon"`
	AccentColor     string   `json:"accentColor"`
	Link            string   `json:"link"`
}

// Pillars holds the four fixed pillar records of the site.
var Pillars = []Pillar{
	{
		ID:          PillarProfPaulo,
		Title:       "Prof. Paulo",
		Description: "Educação e mentoria acadêmica de alta performance para profissionais modernos.",
		Icon:        "User",
		AccentColor: "#0071e3",
		Link:        "#/pillar/prof-paulo",
	},
	{
		ID:          PillarConsultoria,
		Title:       "Consultor Imobiliário",
		Description: "Estratégias de investimento e curadoria imobiliária com foco em rentabilidade.",
		Icon:        "Home",
		AccentColor: "#ac39ff",
		Link:        "#/pillar/consultoria",
	},
	{
		ID:          Pillar4050OuMais,
		Title:       "4050oumais",
		Description: "Longevidade produtiva e novos horizontes para quem está no auge da experiência.",
		Icon:        "TrendingUp",
		AccentColor: "#ff3030",
		Link:        "#/pillar/4050oumais",
	},
	{
		ID:          PillarAcademiaGas,
		Title:       "Academia do Gás",
		Description: "Treinamento especializado para o setor de energia e GLP.",
		Icon:        "Zap",
		AccentColor: "#f56300",
		Link:        "#/pillar/academia-gas",
	},
}

// PillarByID returns the pillar record for the given id, if it exists.
func PillarByID(id PillarID) (*Pillar, bool) {
	for i := range Pillars {
		if Pillars[i].ID == id {
			return &Pillars[i], true
		}
	}
	return nil, false
}

// IsValidPillarID reports whether id is one of the four fixed pillar identifiers.
func IsValidPillarID(id PillarID) bool {
	_, ok := PillarByID(id)
	return ok
}
