package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Menu is a four-course iftar menu with per-course calorie estimates.
type Menu struct {
	Soup       string `json:"soup"`
	SoupCal    int    `json:"soupCal"`
	Main       string `json:"main"`
	MainCal    int    `json:"mainCal"`
	Side       string `json:"side"`
	SideCal    int    `json:"sideCal"`
	Dessert    string `json:"dessert"`
	DessertCal int    `json:"dessertCal"`
	TotalCal   int    `json:"totalCal"`
}

// Courses returns the menu's dish names in serving order.
func (m Menu) Courses() []string {
	return []string{m.Soup, m.Main, m.Side, m.Dessert}
}

// Suggestion is a menu built around ingredients the user has on hand,
// with free-form descriptions instead of bare names.
type Suggestion struct {
	Soup    string `json:"soup"`
	Main    string `json:"main"`
	Side    string `json:"side"`
	Dessert string `json:"dessert"`
	Recipe  string `json:"recipe"`
}

const randomMenuSystem = "Sen Türk mutfağı konusunda uzman bir diyetisyen-şefsin. " +
	"Rastgele bir iftar menüsü üret. Her seferinde farklı ve çeşitli, klasik Türk iftar sofrasına uygun olsun. " +
	"Her alan için SADECE yemek ismini yaz, tarif veya açıklama ekleme. " +
	"Ayrıca her kategori için tahmini kalori (kcal, bir porsiyon) ve menünün toplam kalorisini hesapla. " +
	"Yanıtı şu alanlarla tek bir JSON nesnesi olarak ver: " +
	`soup, soupCal, main, mainCal, side, sideCal, dessert, dessertCal, totalCal.`

const suggestMenuSystem = "Sen Türk mutfağı konusunda uzman bir şefsin. " +
	"Şu malzemelere göre iftar için uygun, pratik ve lezzetli bir menü öner. Her alan için Türkçe açıklamalar yaz. " +
	"Yanıtı şu alanlarla tek bir JSON nesnesi olarak ver: soup, main, side, dessert, recipe."

// Suggester produces iftar menus through an LLM client.
type Suggester struct {
	client Client
}

// NewSuggester creates a menu suggester.
func NewSuggester(client Client) *Suggester {
	return &Suggester{client: client}
}

// RandomMenu generates a random iftar menu. Dishes in exclude are ruled
// out so repeated calls keep producing fresh menus.
func (s *Suggester) RandomMenu(ctx context.Context, exclude []string) (Menu, error) {
	system := randomMenuSystem
	if len(exclude) > 0 {
		var b strings.Builder
		b.WriteString(system)
		b.WriteString("\n\nAşağıdaki yemekleri KESİNLİKLE kullanma, hepsinden tamamen farklı yemekler seç:")
		for _, e := range exclude {
			b.WriteString("\n- ")
			b.WriteString(e)
		}
		system = b.String()
	}

	messages := []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: "Rastgele bir iftar menüsü üret. Sadece yemek isimlerini ve kalorileri ver. Daha önce önerdiğin yemeklerden tamamen farklı olsun."},
	}

	var menu Menu
	if err := s.client.ChatJSON(ctx, messages, &menu); err != nil {
		return Menu{}, fmt.Errorf("generating menu: %w", err)
	}
	if err := validateMenu(menu); err != nil {
		return Menu{}, err
	}

	if menu.TotalCal == 0 {
		menu.TotalCal = menu.SoupCal + menu.MainCal + menu.SideCal + menu.DessertCal
	}

	return menu, nil
}

// Suggest builds a menu from a free-form ingredient prompt.
func (s *Suggester) Suggest(ctx context.Context, prompt string) (Suggestion, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Suggestion{}, errors.New("ingredient prompt is empty")
	}

	messages := []Message{
		{Role: "system", Content: suggestMenuSystem},
		{Role: "user", Content: prompt},
	}

	var sug Suggestion
	if err := s.client.ChatJSON(ctx, messages, &sug); err != nil {
		return Suggestion{}, fmt.Errorf("suggesting menu: %w", err)
	}
	if sug.Soup == "" && sug.Main == "" && sug.Side == "" && sug.Dessert == "" {
		return Suggestion{}, errors.New("model returned an empty menu")
	}

	return sug, nil
}

func validateMenu(m Menu) error {
	for _, course := range m.Courses() {
		if strings.TrimSpace(course) == "" {
			return errors.New("model returned an incomplete menu")
		}
	}
	return nil
}
