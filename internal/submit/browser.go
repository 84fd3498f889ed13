package submit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/names"
)

// BrowserConfig carries everything the headless submission flow needs. The
// pool site has no API; picks are saved by driving its week form the way a
// member would.
type BrowserConfig struct {
	LoginURL    string
	MakeWeekURL string
	LoginID     string
	Password    string
	LoginKey    string
	Headless    bool
	Timeout     time.Duration
}

// Browser submits a slate through a headless Chrome session.
type Browser struct {
	cfg    BrowserConfig
	logger *slog.Logger
}

func NewBrowser(cfg BrowserConfig, logger *slog.Logger) *Browser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Browser{cfg: cfg, logger: logger}
}

// formRadio is one selectable team on the week form, addressed by the CSS
// selector of its radio button.
type formRadio struct {
	team     string
	selector string
}

// formGame is one pick row on the week form.
type formGame struct {
	radios     []formRadio
	pointsName string
}

// Submit logs in, loads the week form, selects the picked team and point
// value for every row, fills the tie-breaker and saves. The form is read
// back as HTML and matched to the slate by team aliases, the same rule the
// odds matcher uses, so site spellings don't have to equal schedule ones.
func (b *Browser) Submit(ctx context.Context, week int, picks []domain.Pick, tieBreaker *int) error {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := b.login(browserCtx); err != nil {
		return err
	}

	pageHTML, err := b.openWeekForm(browserCtx, week)
	if err != nil {
		return err
	}

	games, tieBreakerSelector, err := parseWeekForm(pageHTML)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return fmt.Errorf("submit: no pick rows found on the week form")
	}

	if err := b.fillPicks(browserCtx, games, picks); err != nil {
		return err
	}

	if tieBreaker != nil {
		if tieBreakerSelector == "" {
			b.logger.Warn("no tie-breaker input found on the week form")
		} else if err := chromedp.Run(browserCtx,
			chromedp.SetValue(tieBreakerSelector, strconv.Itoa(*tieBreaker), chromedp.ByQuery),
		); err != nil {
			return fmt.Errorf("submit: set tie-breaker: %w", err)
		}
	}

	if err := b.save(browserCtx, pageHTML); err != nil {
		return err
	}

	b.logger.Info("slate submitted", slog.Int("week", week), slog.Int("picks", len(picks)))
	return nil
}

func (b *Browser) login(ctx context.Context) error {
	var body string
	err := chromedp.Run(ctx,
		chromedp.Navigate(b.cfg.LoginURL),
		chromedp.WaitVisible(`input[name="user_id"]`, chromedp.ByQuery),
		chromedp.SetValue(`input[name="user_id"]`, b.cfg.LoginID, chromedp.ByQuery),
		chromedp.SetValue(`input[name="p"]`, b.cfg.Password, chromedp.ByQuery),
		chromedp.Submit(`input[name="p"]`, chromedp.ByQuery),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &body, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("submit: login: %w", err)
	}

	lowered := strings.ToLower(body)
	if strings.Contains(lowered, "try again") && strings.Contains(lowered, "user id") {
		return fmt.Errorf("submit: login rejected, check credentials")
	}
	return nil
}

func (b *Browser) openWeekForm(ctx context.Context, week int) (string, error) {
	params := url.Values{}
	params.Set("week", strconv.Itoa(week))
	if b.cfg.LoginID != "" {
		params.Set("i", b.cfg.LoginID)
	}
	if b.cfg.LoginKey != "" {
		params.Set("k", b.cfg.LoginKey)
	}

	var pageHTML string
	err := chromedp.Run(ctx,
		chromedp.Navigate(b.cfg.MakeWeekURL+"?"+params.Encode()),
		chromedp.WaitVisible("table", chromedp.ByQuery),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("submit: open week form: %w", err)
	}
	return pageHTML, nil
}

func (b *Browser) fillPicks(ctx context.Context, games []formGame, picks []domain.Pick) error {
	// Alias -> available (game, radio) pairs. Consumed on use so two picks
	// sharing an alias token can never grab the same row.
	type option struct {
		game  *formGame
		radio formRadio
	}
	lookup := make(map[string][]*option)
	for i := range games {
		game := &games[i]
		for _, radio := range game.radios {
			opt := &option{game: game, radio: radio}
			for alias := range names.LabelAliases(radio.team) {
				lookup[alias] = append(lookup[alias], opt)
			}
		}
	}

	consume := func(team domain.Team) *option {
		aliases := names.TeamAliases(names.TeamSource{
			Location:     team.Location,
			DisplayName:  team.DisplayName,
			Name:         team.Name,
			ShortName:    team.ShortName,
			Abbreviation: team.Abbreviation,
		})
		for _, alias := range aliases {
			options := lookup[alias]
			if len(options) == 0 {
				continue
			}
			opt := options[0]
			lookup[alias] = options[1:]
			return opt
		}
		return nil
	}

	for _, pick := range picks {
		team := pick.SelectedTeam()
		opt := consume(team)
		if opt == nil {
			return fmt.Errorf("submit: no radio button found for %q", team.DisplayName)
		}

		actions := []chromedp.Action{
			chromedp.ScrollIntoView(opt.radio.selector, chromedp.ByQuery),
			chromedp.Click(opt.radio.selector, chromedp.ByQuery),
		}
		if opt.game.pointsName != "" {
			actions = append(actions, chromedp.SetValue(
				fmt.Sprintf(`[name=%q]`, opt.game.pointsName),
				strconv.Itoa(pick.Points),
				chromedp.ByQuery,
			))
		} else {
			b.logger.Debug("no points input on row", slog.String("team", team.DisplayName))
		}

		if err := chromedp.Run(ctx, actions...); err != nil {
			return fmt.Errorf("submit: select %s: %w", team.DisplayName, err)
		}
	}
	return nil
}

// save clicks the form's submit control. The site wraps submission in a
// crap_shoot() confirmation helper; invoking it directly skips the dialog,
// with a plain click as fallback.
func (b *Browser) save(ctx context.Context, pageHTML string) error {
	selector := findSubmitSelector(pageHTML)
	if selector == "" {
		return fmt.Errorf("submit: no submit control found on the week form")
	}

	if err := chromedp.Run(ctx, chromedp.Evaluate(`crap_shoot('no');`, nil)); err != nil {
		b.logger.Debug("confirmation helper unavailable, clicking submit directly")
		if err := chromedp.Run(ctx,
			chromedp.ScrollIntoView(selector, chromedp.ByQuery),
			chromedp.Click(selector, chromedp.ByQuery),
		); err != nil {
			return fmt.Errorf("submit: click submit: %w", err)
		}
	}

	if err := chromedp.Run(ctx, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("submit: waiting for confirmation page: %w", err)
	}
	return nil
}

// parseWeekForm extracts every pick row from the form HTML: the two team
// radio buttons (addressed by name+value so they can be clicked later) and
// the row's points input, plus the tie-breaker input selector if present.
func parseWeekForm(pageHTML string) ([]formGame, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, "", fmt.Errorf("submit: parse week form: %w", err)
	}

	var games []formGame
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		radios := row.Find(`input[type="radio"]`)
		if radios.Length() < 2 {
			return
		}

		var game formGame
		radios.Each(func(_ int, radio *goquery.Selection) {
			name, okName := radio.Attr("name")
			value, okValue := radio.Attr("value")
			if !okName || !okValue {
				return
			}
			team := teamNearRadio(row, radio)
			if team == "" {
				return
			}
			game.radios = append(game.radios, formRadio{
				team:     team,
				selector: fmt.Sprintf(`input[type="radio"][name=%q][value=%q]`, name, value),
			})
		})
		if len(game.radios) < 2 {
			return
		}

		row.Find("input").EachWithBreak(func(_ int, input *goquery.Selection) bool {
			name, _ := input.Attr("name")
			inputType, _ := input.Attr("type")
			if inputType == "radio" || !pointsName.MatchString(name) {
				return true
			}
			game.pointsName = name
			return false
		})

		games = append(games, game)
	})

	tieBreakerSelector := ""
	doc.Find("input").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		name, _ := input.Attr("name")
		inputType, _ := input.Attr("type")
		if inputType == "radio" || name == "" || !tieName.MatchString(name) {
			return true
		}
		tieBreakerSelector = fmt.Sprintf(`input[name=%q]`, name)
		return false
	})

	return games, tieBreakerSelector, nil
}

func findSubmitSelector(pageHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return ""
	}
	for _, sel := range []string{`input[type="submit"]`, `input[type="image"]`, "button"} {
		if doc.Find(sel).Length() > 0 {
			return sel
		}
	}
	return ""
}
