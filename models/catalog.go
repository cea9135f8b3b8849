package models

// Static catalog records (courses, books, downloadable resources). These are
// configuration data with process lifetime; they are not fetched remotely.

// Course is a static course record.
type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Category    string `json:"category"`
}

// Book is a static book record.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	BuyURL      string `json:"buyUrl"`
}

// Resource is a downloadable material offered on the downloads page.
type Resource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"` // Planilhas, E-books, Guias, Checklists
	Type     string `json:"type"`     // PDF, EXCEL, WORD
	Size     string `json:"size"`
	URL      string `json:"url"`
}

var Courses = []Course{
	{
		ID:          "c1",
		Name:        "Master em Investimento Imobiliário",
		Description: "Do primeiro aporte à gestão de portfólio: método completo para investir em imóveis com segurança.",
		ImageURL:    "https://images.unsplash.com/photo-1560518883-ce09059eeffa?auto=format&fit=crop&q=80&w=800",
		Category:    "Consultoria Imobiliária",
	},
	{
		ID:          "c2",
		Name:        "Metodologia Prof. Paulo",
		Description: "Mentoria acadêmica e de carreira para profissionais que querem ensinar e performar melhor.",
		ImageURL:    "https://images.unsplash.com/photo-1501504905252-473c47e087f8?auto=format&fit=crop&q=80&w=800",
		Category:    "Prof. Paulo",
	},
	{
		ID:          "c3",
		Name:        "Segurança no Setor de Gás",
		Description: "Normas, boas práticas e gestão operacional para revendas e distribuidoras de GLP.",
		ImageURL:    "https://images.unsplash.com/photo-1581094288338-2314dddb7ecc?auto=format&fit=crop&q=80&w=800",
		Category:    "Academia do Gás",
	},
}

var Books = []Book{
	{
		ID:          "b1",
		Title:       "Vendas de Alta Performance",
		Description: "Um guia prático sobre processos comerciais e negociação para o mercado imobiliário.",
		ImageURL:    "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?auto=format&fit=crop&q=80&w=800",
		BuyURL:      "https://www.phdonassolo.com/livros",
	},
	{
		ID:          "b2",
		Title:       "Longevidade Produtiva",
		Description: "Como transformar experiência acumulada em novas frentes de trabalho depois dos 40.",
		ImageURL:    "https://images.unsplash.com/photo-1531482615713-2afd69097998?auto=format&fit=crop&q=80&w=800",
		BuyURL:      "https://www.phdonassolo.com/livros",
	},
}

var Resources = []Resource{
	{ID: "r1", Name: "Simulador de Viabilidade Imobiliária", Category: "Planilhas", Type: "EXCEL", Size: "2.4 MB", URL: "#"},
	{ID: "r2", Name: "Guia de Longevidade Ativa 2024", Category: "E-books", Type: "PDF", Size: "15.8 MB", URL: "#"},
	{ID: "r3", Name: "Checklist para Revendedores de Gás", Category: "Checklists", Type: "WORD", Size: "450 KB", URL: "#"},
	{ID: "r4", Name: "Template de Mentoria Profissional", Category: "Guias", Type: "PDF", Size: "1.2 MB", URL: "#"},
}

// CourseByID returns the static course with the given id, if it exists.
func CourseByID(id string) (*Course, bool) {
	for i := range Courses {
		if Courses[i].ID == id {
			return &Courses[i], true
		}
	}
	return nil, false
}
