// Package app wires loading, rendering, archiving and publishing together
// for the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"dinner-daily/internal/config"
	"dinner-daily/internal/ghost"
	"dinner-daily/internal/history"
	"dinner-daily/internal/legacy"
	"dinner-daily/internal/loader"
	"dinner-daily/internal/render"
	"dinner-daily/internal/trello"
	"dinner-daily/internal/week"

	"github.com/charmbracelet/log"
)

// ErrNotConfigured is returned when a command needs a collaborator the App
// was built without.
var ErrNotConfigured = errors.New("not configured")

// WeekFetcher downloads a week from the menu API.
type WeekFetcher interface {
	FetchWeek(ctx context.Context, option week.Option) (week.Week, error)
}

// WeekStore archives weeks by start date.
type WeekStore interface {
	Save(ctx context.Context, w week.Week) (string, error)
	Get(ctx context.Context, startDate string) (*week.Week, error)
	List(ctx context.Context) ([]week.Summary, error)
}

// PublicationLog records and lists what was published.
type PublicationLog interface {
	Record(ctx context.Context, p history.Publication) error
	Recent(ctx context.Context, limit int) ([]history.Publication, error)
}

// App holds the application's dependencies. Any of the collaborators may be
// nil; methods that need a missing one return ErrNotConfigured.
type App struct {
	cfg     *config.Config
	logger  *log.Logger
	loader  *loader.Loader
	ghost   ghost.Client
	cards   trello.CardService
	fetcher WeekFetcher
	weeks   WeekStore
	pubs    PublicationLog
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	logger *log.Logger,
	ldr *loader.Loader,
	ghostClient ghost.Client,
	cards trello.CardService,
	fetcher WeekFetcher,
	weeks WeekStore,
	publications PublicationLog,
) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		loader:  ldr,
		ghost:   ghostClient,
		cards:   cards,
		fetcher: fetcher,
		weeks:   weeks,
		pubs:    publications,
	}
}

// RenderOptions selects the output of Render and Export.
type RenderOptions struct {
	Format     render.Format
	Structured bool
}

// Render loads the menu at src and writes it to w.
func (a *App) Render(ctx context.Context, src string, opts RenderOptions, w io.Writer) error {
	source, err := a.load(src)
	if err != nil {
		return err
	}
	doc, err := documentFromSource(source)
	if err != nil {
		return err
	}
	return a.write(doc, opts, w)
}

// Export renders an archived week to w.
func (a *App) Export(ctx context.Context, startDate string, opts RenderOptions, w io.Writer) error {
	wk, err := a.archived(ctx, startDate)
	if err != nil {
		return err
	}
	doc, err := documentFromWeek(*wk)
	if err != nil {
		return err
	}
	return a.write(doc, opts, w)
}

// PublishChecklist creates a Trello card for the week referenced by ref,
// which is an archived start date or a structured week file.
func (a *App) PublishChecklist(ctx context.Context, ref string) (*trello.Card, error) {
	if a.cards == nil {
		return nil, fmt.Errorf("trello client %w", ErrNotConfigured)
	}
	wk, err := a.ResolveWeek(ctx, ref)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Creating checklist", "menu", wk.Menu.Name, "items", wk.ShoppingList.Len())
	card, err := trello.CreateWeekCard(ctx, a.cards, *wk, a.cfg.TrelloListID, a.cfg.MenuPageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist card: %w", err)
	}
	a.logger.Info("Checklist created", "card", card.ID, "url", card.ShortURL)
	a.record(ctx, history.Publication{Target: history.TargetTrello, Menu: card.Name, RemoteID: card.ID, URL: card.ShortURL})
	return card, nil
}

// PublishPost renders the menu at src as HTML and posts it to Ghost. A post
// with the same title is never duplicated; the existing one is returned with
// created set to false.
func (a *App) PublishPost(ctx context.Context, src string, publish bool) (post *ghost.Post, created bool, err error) {
	if a.ghost == nil {
		return nil, false, fmt.Errorf("ghost client %w", ErrNotConfigured)
	}
	source, err := a.load(src)
	if err != nil {
		return nil, false, err
	}
	doc, err := documentFromSource(source)
	if err != nil {
		return nil, false, err
	}

	title := PostTitle(doc.Legacy)
	existing, err := a.ghost.FindPostByTitle(ctx, title)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up post: %w", err)
	}
	if existing != nil {
		a.logger.Warn("Post already exists, skipping", "title", title, "id", existing.ID)
		return existing, false, nil
	}

	html, err := render.NewHTMLRenderer().Render(doc)
	if err != nil {
		return nil, false, fmt.Errorf("failed to render post: %w", err)
	}
	post, err = a.ghost.CreatePost(ctx, title, string(html), publish)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create post: %w", err)
	}
	a.logger.Info("Post created", "title", title, "id", post.ID, "status", post.Status)
	a.record(ctx, history.Publication{Target: history.TargetGhost, Menu: title, RemoteID: post.ID, URL: post.URL})
	return post, true, nil
}

// PostTitle is the blog title for a legacy menu.
func PostTitle(lm legacy.LegacyMenu) string {
	if lm.Date == "" {
		return lm.Title
	}
	return fmt.Sprintf("%s: %s", lm.Title, lm.Date)
}

// Fetch downloads a week from the menu API and archives it when an archive
// is configured.
func (a *App) Fetch(ctx context.Context, option week.Option) (week.Week, error) {
	if a.fetcher == nil {
		return week.Week{}, fmt.Errorf("menu api client %w", ErrNotConfigured)
	}
	a.logger.Info("Fetching week", "week", option)
	wk, err := a.fetcher.FetchWeek(ctx, option)
	if err != nil {
		return week.Week{}, fmt.Errorf("failed to fetch week: %w", err)
	}

	if a.weeks != nil {
		key, err := a.weeks.Save(ctx, wk)
		if err != nil {
			return week.Week{}, fmt.Errorf("failed to archive week: %w", err)
		}
		a.logger.Info("Week archived", "start_date", key, "menu", wk.Menu.Name)
	}
	return wk, nil
}

// Archive stores the menu at src. Legacy menus are archived with an empty
// shopping list.
func (a *App) Archive(ctx context.Context, src string) (string, error) {
	if a.weeks == nil {
		return "", fmt.Errorf("week archive %w", ErrNotConfigured)
	}
	source, err := a.load(src)
	if err != nil {
		return "", err
	}

	var wk week.Week
	if source.Week != nil {
		wk = *source.Week
	} else {
		m, err := legacy.FromLegacy(source.Legacy)
		if err != nil {
			return "", fmt.Errorf("failed to convert legacy menu: %w", err)
		}
		wk = week.Week{Menu: m}
	}

	key, err := a.weeks.Save(ctx, wk)
	if err != nil {
		return "", fmt.Errorf("failed to archive week: %w", err)
	}
	a.logger.Info("Week archived", "start_date", key, "source", src)
	return key, nil
}

// ListWeeks returns the archived weeks, newest first.
func (a *App) ListWeeks(ctx context.Context) ([]week.Summary, error) {
	if a.weeks == nil {
		return nil, fmt.Errorf("week archive %w", ErrNotConfigured)
	}
	return a.weeks.List(ctx)
}

// Publications returns up to limit recorded publications, newest first.
func (a *App) Publications(ctx context.Context, limit int) ([]history.Publication, error) {
	if a.pubs == nil {
		return nil, fmt.Errorf("publication log %w", ErrNotConfigured)
	}
	return a.pubs.Recent(ctx, limit)
}

// record logs a publication. The remote object already exists, so a failure
// here is only warned about.
func (a *App) record(ctx context.Context, p history.Publication) {
	if a.pubs == nil {
		return
	}
	if err := a.pubs.Record(ctx, p); err != nil {
		a.logger.Warn("Failed to record publication", "target", p.Target, "id", p.RemoteID, "err", err)
	}
}

var startDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ResolveWeek finds a structured week by archived start date or by file path.
func (a *App) ResolveWeek(ctx context.Context, ref string) (*week.Week, error) {
	if startDatePattern.MatchString(ref) && a.weeks != nil {
		return a.archived(ctx, ref)
	}
	source, err := a.load(ref)
	if err != nil {
		return nil, err
	}
	if source.Week == nil {
		return nil, fmt.Errorf("%s is a legacy menu: a structured week with a shopping list is required", ref)
	}
	return source.Week, nil
}

func (a *App) archived(ctx context.Context, startDate string) (*week.Week, error) {
	if a.weeks == nil {
		return nil, fmt.Errorf("week archive %w", ErrNotConfigured)
	}
	wk, err := a.weeks.Get(ctx, startDate)
	if err != nil {
		return nil, err
	}
	if wk == nil {
		return nil, fmt.Errorf("no archived week starts on %s", startDate)
	}
	return wk, nil
}

func (a *App) load(src string) (loader.Source, error) {
	if a.loader == nil {
		return loader.Source{}, fmt.Errorf("loader %w", ErrNotConfigured)
	}
	a.logger.Debug("Loading menu", "path", src)
	source, err := a.loader.Load(src)
	if err != nil {
		return loader.Source{}, fmt.Errorf("failed to load %s: %w", src, err)
	}
	return source, nil
}

func (a *App) write(doc render.Document, opts RenderOptions, w io.Writer) error {
	r, err := render.New(opts.Format, opts.Structured)
	if err != nil {
		return err
	}
	out, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", opts.Format, err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Debug("Rendered menu", "format", opts.Format, "bytes", len(out))
	return nil
}

func documentFromSource(src loader.Source) (render.Document, error) {
	if src.Week != nil {
		return render.Document{Legacy: src.Legacy, Menu: src.Week.Menu, ShoppingList: &src.Week.ShoppingList}, nil
	}
	m, err := src.Menu()
	if err != nil {
		return render.Document{}, fmt.Errorf("failed to convert legacy menu: %w", err)
	}
	return render.Document{Legacy: src.Legacy, Menu: m}, nil
}

func documentFromWeek(wk week.Week) (render.Document, error) {
	lm, err := legacy.ToLegacy(wk.Menu)
	if err != nil {
		return render.Document{}, fmt.Errorf("failed to convert week to legacy menu: %w", err)
	}
	doc := render.Document{Legacy: lm, Menu: wk.Menu}
	if wk.ShoppingList.Len() > 0 {
		doc.ShoppingList = &wk.ShoppingList
	}
	return doc, nil
}
