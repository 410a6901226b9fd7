package ui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vaktiramazan/vakti/internal/llm"
)

// menuExcludeKey stores recently suggested dishes so consecutive menus stay
// varied.
const menuExcludeKey = "menu_exclude"

// menuExcludeLimit caps the exclusion list; beyond it the oldest entries
// rotate out.
const menuExcludeLimit = 24

func (a *App) menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Generate a random iftar menu",
		Long: `Generate a random four-course iftar menu with calorie estimates.

Recently suggested dishes are excluded so repeated runs keep producing
fresh menus. Requires an LLM provider (see the [llm] config section).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			suggester, err := a.suggester()
			if err != nil {
				return err
			}

			exclude := a.loadExcludes()
			menu, err := suggester.RandomMenu(context.Background(), exclude)
			if err != nil {
				return err
			}

			printMenu(menu)
			a.saveExcludes(append(exclude, menu.Courses()...))
			return nil
		},
	}

	cmd.AddCommand(a.menuSuggestCmd())

	return cmd
}

func (a *App) menuSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <ingredients>",
		Short: "Suggest an iftar menu from ingredients on hand",
		Example: `  vakti menu suggest "tavuk, patates, pirinç var"
  vakti menu suggest "mercimek ve bulgur ile hafif bir menü"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			suggester, err := a.suggester()
			if err != nil {
				return err
			}

			prompt := ""
			for i, arg := range args {
				if i > 0 {
					prompt += " "
				}
				prompt += arg
			}

			sug, err := suggester.Suggest(context.Background(), prompt)
			if err != nil {
				return err
			}

			width := termWidth() - 4
			printCourse("Çorba", sug.Soup, width)
			printCourse("Ana yemek", sug.Main, width)
			printCourse("Yan yemek", sug.Side, width)
			printCourse("Tatlı", sug.Dessert, width)
			if sug.Recipe != "" {
				fmt.Println()
				fmt.Println(formatHeader("Notlar"))
				for _, line := range wrap(sug.Recipe, width) {
					fmt.Printf("  %s\n", line)
				}
			}
			return nil
		},
	}
}

func (a *App) suggester() (*llm.Suggester, error) {
	client, err := llm.NewClient(a.cfg.LLM.Provider, a.cfg.LLM.Model, a.cfg.LLM.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return llm.NewSuggester(client), nil
}

func printMenu(m llm.Menu) {
	fmt.Println(formatHeader("İftar menüsü"))
	fmt.Println()
	printDish("Çorba", m.Soup, m.SoupCal)
	printDish("Ana yemek", m.Main, m.MainCal)
	printDish("Yan yemek", m.Side, m.SideCal)
	printDish("Tatlı", m.Dessert, m.DessertCal)
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "Toplam:", formatActive(fmt.Sprintf("~%d kcal", m.TotalCal)))
}

func printDish(course, name string, kcal int) {
	fmt.Printf("  %-12s %s  %s\n", course+":", name, formatMuted(fmt.Sprintf("~%d kcal", kcal)))
}

func printCourse(course, text string, width int) {
	fmt.Println(formatHeader(course))
	for _, line := range wrap(text, width) {
		fmt.Printf("  %s\n", line)
	}
}

// loadExcludes reads the rolling exclusion list. Errors degrade to an empty
// list; a repeated dish beats a failed command.
func (a *App) loadExcludes() []string {
	raw, err := a.store.Get(menuExcludeKey)
	if err != nil || raw == "" {
		return nil
	}

	var exclude []string
	if err := json.Unmarshal([]byte(raw), &exclude); err != nil {
		return nil
	}
	return exclude
}

func (a *App) saveExcludes(exclude []string) {
	if len(exclude) > menuExcludeLimit {
		exclude = exclude[len(exclude)-menuExcludeLimit:]
	}

	raw, err := json.Marshal(exclude)
	if err != nil {
		return
	}
	if err := a.store.Set(menuExcludeKey, string(raw)); err != nil {
		log.Warn().Err(err).Msg("saving menu exclusion list")
	}
}
