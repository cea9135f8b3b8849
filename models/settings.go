package models

// SiteSettings holds the editable site configuration fields. The admin
// dashboard persists a full copy under a fixed key in the key-value store;
// anything not yet persisted falls back to DefaultSiteSettings.
type SiteSettings struct {
	Name            string `json:"name"`
	EmailContato    string `json:"email_contato"`
	Whatsapp        string `json:"whatsapp"` // digits only: country code + area + number
	WhatsappDisplay string `json:"whatsapp_display"`
	WhatsappMessage string `json:"whatsapp_message"`

	Hero struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Tag      string `json:"tag"`
	} `json:"hero"`

	Assistant struct {
		Name           string `json:"name"`
		WelcomeMessage string `json:"welcome_message"`
	} `json:"assistant"`

	Sections struct {
		VideosTitle      string `json:"videos_title"`
		VideosSubtitle   string `json:"videos_subtitle"`
		ArticlesTitle    string `json:"articles_title"`
		ArticlesSubtitle string `json:"articles_subtitle"`
	} `json:"sections"`

	Footer struct {
		Description string `json:"description"`
		Copyright   string `json:"copyright"`
	} `json:"footer"`
}

// DefaultSiteSettings returns the built-in site configuration used until the
// admin saves an edited copy.
func DefaultSiteSettings() SiteSettings {
	var s SiteSettings
	s.Name = "PH Donassolo"
	s.EmailContato = "paulo@phdonassolo.com"
	s.Whatsapp = "351910298213"
	s.WhatsappDisplay = "+351 910 298 213"
	s.WhatsappMessage = "Olá Paulo, vim pelo site e gostaria de saber mais sobre seu trabalho."

	s.Hero.Title = "Conhecimento para o que vem a seguir."
	s.Hero.Subtitle = "Hub de conteúdo exclusivo sobre profissionais de vendas, mercado imobiliário e longevidade ativa."
	s.Hero.Tag = "Site Oficial"

	s.Assistant.Name = "Assistente Digital PH"
	s.Assistant.WelcomeMessage = "Olá! Sou o assistente do Prof. Paulo Donassolo. Como posso ajudar você hoje com nossos conteúdos, cursos ou consultorias?"

	s.Sections.VideosTitle = "Aulas Curtas & Insights"
	s.Sections.VideosSubtitle = "Conteúdo visual direto ao ponto para sua evolução."
	s.Sections.ArticlesTitle = "Insights & Pensamento"
	s.Sections.ArticlesSubtitle = "Os últimos artigos divididos por pilares de conhecimento."

	s.Footer.Description = "Hub de conteúdos especializados para profissionais, empreendedores e interessados em buscar a excelência em seus pilares de vida e carreira."
	s.Footer.Copyright = "Copyright © Prof. PH Donassolo. Todos os direitos reservados."
	return s
}
