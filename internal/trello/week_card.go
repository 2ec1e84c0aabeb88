package trello

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"dinner-daily/internal/menu"
	"dinner-daily/internal/shopping"
	"dinner-daily/internal/week"
)

// CardService is the part of Client that CreateWeekCard needs.
type CardService interface {
	CreateCard(ctx context.Context, card NewCard) (*Card, error)
	CreateChecklist(ctx context.Context, cardID string, checklist NewChecklist) (*Checklist, error)
	CreateCheckItem(ctx context.Context, checklistID string, item NewCheckItem) (*CheckItem, error)
}

// CreateWeekCard adds a card for w to the list, with the week's dinners in
// the description and one checklist per store section.
func CreateWeekCard(ctx context.Context, svc CardService, w week.Week, listID, menuPageURL string) (*Card, error) {
	start, err := w.Menu.StartTime()
	if err != nil {
		return nil, err
	}
	startDate := menu.FormatDate(start)

	card, err := svc.CreateCard(ctx, NewCard{
		Name:   fmt.Sprintf("%s (%s)", w.Menu.Name, startDate),
		Desc:   CardDescription(w.Menu, menuPageURL),
		Pos:    PositionTop,
		ListID: listID,
	})
	if err != nil {
		return nil, err
	}

	for _, section := range shopping.AllStoreSections() {
		checklist, err := svc.CreateChecklist(ctx, card.ID, NewChecklist{
			Name: string(section),
			Pos:  PositionBottom,
		})
		if err != nil {
			return nil, err
		}

		items, _ := w.ShoppingList.Section(section)
		for _, item := range items {
			if _, err := svc.CreateCheckItem(ctx, checklist.ID, NewCheckItem{
				Name:    item.DisplayName(),
				Pos:     PositionBottom,
				Checked: item.IsChecked,
			}); err != nil {
				return nil, err
			}
		}
	}

	return card, nil
}

// CardDescription links the hosted menu page and lists each day's main dish
// with its calories and preparation time. Days without a main are skipped.
func CardDescription(m menu.Menu, menuPageURL string) string {
	var lines []string
	for _, day := range m.DayMenus {
		if day.Main == nil {
			continue
		}
		prep, cook := int(day.Main.PreparationTime), int(day.Main.CookingTime)
		lines = append(lines, fmt.Sprintf(
			"- %s _(%d calories, **%dmin** = %d min prep + %d min cooking)_",
			day.Main.Name, int(day.Calories), int(day.Main.TotalTime()), prep, cook,
		))
	}
	desc := strings.Join(lines, "\n")

	if menuPageURL == "" {
		return desc
	}
	link := menuPageURL
	if start, err := m.StartTime(); err == nil {
		sep := "?"
		if strings.Contains(link, "?") {
			sep = "&"
		}
		link += sep + "start_date=" + url.QueryEscape(menu.FormatDate(start))
	}
	return link + "\n\n" + desc
}
