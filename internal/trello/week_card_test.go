package trello

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"dinner-daily/internal/menu"
	"dinner-daily/internal/shopping"
	"dinner-daily/internal/week"
)

// mockCardService records the calls made by CreateWeekCard.
type mockCardService struct {
	cards      []NewCard
	checklists []NewChecklist
	items      map[string][]NewCheckItem
	failOn     string
}

func (m *mockCardService) CreateCard(ctx context.Context, card NewCard) (*Card, error) {
	m.cards = append(m.cards, card)
	return &Card{ID: "card1", Name: card.Name}, nil
}

func (m *mockCardService) CreateChecklist(ctx context.Context, cardID string, checklist NewChecklist) (*Checklist, error) {
	if checklist.Name == m.failOn {
		return nil, errors.New("boom")
	}
	m.checklists = append(m.checklists, checklist)
	return &Checklist{ID: "cl-" + checklist.Name, IDCard: cardID}, nil
}

func (m *mockCardService) CreateCheckItem(ctx context.Context, checklistID string, item NewCheckItem) (*CheckItem, error) {
	if m.items == nil {
		m.items = make(map[string][]NewCheckItem)
	}
	m.items[checklistID] = append(m.items[checklistID], item)
	return &CheckItem{ID: fmt.Sprintf("ci%d", len(m.items[checklistID])), Name: item.Name}, nil
}

func testWeek() week.Week {
	return week.Week{
		Menu: menu.Menu{
			StartDate: "2024-03-03T00:00:00",
			Name:      "Family Dinners",
			DayMenus: []menu.DayMenu{
				{
					Calories: 612.4,
					Main:     &menu.Dish{Name: "Lemon Chicken", PreparationTime: 15, CookingTime: 30.5},
				},
				{Calories: 300},
				{
					Calories: 540,
					Main:     &menu.Dish{Name: "Beef Chili", PreparationTime: 20, CookingTime: 130},
				},
			},
		},
		ShoppingList: shopping.ShoppingList{
			Produce: []shopping.Item{
				{Name: "Onion", FormattedAmount: "2 medium", IsChecked: true},
				{Name: "Lemon", FormattedAmount: "1"},
			},
			Dairy: []shopping.Item{{Name: "Milk", FormattedAmount: "1 gallon"}},
		},
	}
}

func TestCreateWeekCard(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockCardService{}
		card, err := CreateWeekCard(context.Background(), svc, testWeek(), "list1", "https://menu.example.com/menu/")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if card.ID != "card1" {
			t.Errorf("Expected card 'card1', got '%s'", card.ID)
		}

		if len(svc.cards) != 1 {
			t.Fatalf("Expected 1 card, got %d", len(svc.cards))
		}
		nc := svc.cards[0]
		if nc.Name != "Family Dinners (2024-03-03)" {
			t.Errorf("Expected name 'Family Dinners (2024-03-03)', got '%s'", nc.Name)
		}
		if nc.ListID != "list1" || nc.Pos != PositionTop {
			t.Errorf("Expected list 'list1' at top, got '%s' at '%s'", nc.ListID, nc.Pos)
		}

		if len(svc.checklists) != len(shopping.AllStoreSections()) {
			t.Fatalf("Expected one checklist per section, got %d", len(svc.checklists))
		}
		for i, s := range shopping.AllStoreSections() {
			if svc.checklists[i].Name != string(s) || svc.checklists[i].Pos != PositionBottom {
				t.Errorf("Expected checklist '%s' at bottom, got %+v", s, svc.checklists[i])
			}
		}

		produce := svc.items["cl-produce"]
		if len(produce) != 2 {
			t.Fatalf("Expected 2 produce items, got %d", len(produce))
		}
		if produce[0].Name != "Onion (2 medium)" || !produce[0].Checked {
			t.Errorf("Unexpected first produce item %+v", produce[0])
		}
		if produce[1].Checked {
			t.Error("Expected 'Lemon' to be unchecked")
		}
		if len(svc.items["cl-dairy"]) != 1 {
			t.Errorf("Expected 1 dairy item, got %d", len(svc.items["cl-dairy"]))
		}
		if len(svc.items["cl-seafood"]) != 0 {
			t.Errorf("Expected no seafood items, got %d", len(svc.items["cl-seafood"]))
		}
	})

	t.Run("ChecklistError", func(t *testing.T) {
		svc := &mockCardService{failOn: "staples"}
		if _, err := CreateWeekCard(context.Background(), svc, testWeek(), "list1", ""); err == nil {
			t.Fatal("Expected an error, got nil")
		}
		if len(svc.checklists) != 2 {
			t.Errorf("Expected to stop after 2 checklists, got %d", len(svc.checklists))
		}
	})

	t.Run("BadStartDate", func(t *testing.T) {
		w := testWeek()
		w.Menu.StartDate = "soon"
		if _, err := CreateWeekCard(context.Background(), &mockCardService{}, w, "list1", ""); err == nil {
			t.Fatal("Expected an error, got nil")
		}
	})
}

func TestCardDescription(t *testing.T) {
	w := testWeek()
	desc := CardDescription(w.Menu, "https://menu.example.com/menu/")
	want := strings.Join([]string{
		"https://menu.example.com/menu/?start_date=2024-03-03",
		"",
		"- Lemon Chicken _(612 calories, **45min** = 15 min prep + 30 min cooking)_",
		"- Beef Chili _(540 calories, **150min** = 20 min prep + 130 min cooking)_",
	}, "\n")
	if desc != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, desc)
	}

	t.Run("NoPageURL", func(t *testing.T) {
		desc := CardDescription(w.Menu, "")
		if strings.Contains(desc, "start_date") {
			t.Errorf("Expected no link, got %q", desc)
		}
		if !strings.HasPrefix(desc, "- Lemon Chicken") {
			t.Errorf("Expected the dinners first, got %q", desc)
		}
	})

	t.Run("ExistingQuery", func(t *testing.T) {
		desc := CardDescription(w.Menu, "https://menu.example.com/?view=print")
		if !strings.HasPrefix(desc, "https://menu.example.com/?view=print&start_date=2024-03-03\n") {
			t.Errorf("Unexpected link in %q", desc)
		}
	})
}
