package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/crcresearch/padcheck/internal/pad"
	"github.com/crcresearch/padcheck/internal/padsource"
)

// PadService answers card lookups against the analytics data source. The
// project table and the user list derived from it are fetched once and held
// until ClearCache.
//
// The data source's column layout is not contractually stable, so every
// fetch failure or shape mismatch degrades to "not found" rather than an
// error; callers never see a failure they could act on differently.
type PadService struct {
	source  padsource.DataSource
	baseURL string
	logger  *slog.Logger

	mu          sync.Mutex
	projects    []pad.Record
	projectsSet bool
	users       []string
	usersSet    bool
}

func NewPadService(source padsource.DataSource, baseURL string, logger *slog.Logger) *PadService {
	return &PadService{
		source:  source,
		baseURL: baseURL,
		logger:  logger,
	}
}

// projectUserColumns is the column the user list derives from; unlike card
// rows, project rows have only ever carried one name for it.
var projectUserColumns = []string{"user_name"}

// Projects returns the raw project table, fetching it on first use. A fetch
// failure yields an empty table and is not memoized, so the next call tries
// again.
func (s *PadService) Projects(ctx context.Context) []pad.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectsLocked(ctx)
}

func (s *PadService) projectsLocked(ctx context.Context) []pad.Record {
	if !s.projectsSet {
		records, err := s.source.ListProjects(ctx)
		if err != nil {
			s.logger.Error("failed to fetch projects", "error", err)
			return nil
		}
		s.projects = records
		s.projectsSet = true
	}
	return s.projects
}

// Users returns the sorted, deduplicated usernames from the project table's
// user column; empty when the column is absent.
func (s *PadService) Users(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.usersSet {
		projects := s.projectsLocked(ctx)
		if !s.projectsSet {
			// Fetch failed; derive on a later call instead of
			// memoizing an empty list.
			return nil
		}

		seen := make(map[string]bool)
		var users []string
		for _, p := range projects {
			u := p.String(projectUserColumns, "")
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			users = append(users, u)
		}
		sort.Strings(users)
		s.users = users
		s.usersSet = true
	}
	return s.users
}

// ClearCache evicts the memoized project and user lists; the next access
// re-fetches from the data source.
func (s *PadService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = nil
	s.projectsSet = false
	s.users = nil
	s.usersSet = false
}

// LatestCardByUser returns the most recent card authored by username,
// matched case-insensitively. A non-empty projectName scopes the search to
// that project; otherwise cards from every project are searched, skipping
// projects whose fetch fails.
func (s *PadService) LatestCardByUser(ctx context.Context, username, projectName string) *pad.Card {
	var cards []pad.Record
	if projectName != "" {
		var err error
		cards, err = s.source.ProjectCards(ctx, projectName)
		if err != nil {
			s.logger.Error("failed to fetch project cards", "project", projectName, "error", err)
			return nil
		}
	} else {
		for _, p := range s.Projects(ctx) {
			ref := strconv.FormatInt(pad.ProjectFromRecord(p).ID, 10)
			projectCards, err := s.source.ProjectCards(ctx, ref)
			if err != nil {
				s.logger.Warn("skipping project", "project", ref, "error", err)
				continue
			}
			cards = append(cards, projectCards...)
		}
	}

	if len(cards) == 0 {
		return nil
	}

	userCol := pad.FindColumn(cards, pad.UserColumns)
	if userCol == "" {
		return nil
	}

	var matched []pad.Record
	for _, c := range cards {
		if strings.EqualFold(c.String([]string{userCol}, ""), username) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sortByDateDesc(matched)
	card := pad.CardFromRecord(matched[0], s.baseURL)
	return &card
}

// CardByID fetches a single card directly by identifier.
func (s *PadService) CardByID(ctx context.Context, cardID int) *pad.Card {
	record, err := s.source.CardByID(ctx, cardID)
	if err != nil {
		s.logger.Error("failed to fetch card", "card_id", cardID, "error", err)
		return nil
	}
	if record == nil {
		return nil
	}
	card := pad.CardFromRecord(record, s.baseURL)
	return &card
}

// RecentCardsInProject returns up to limit most recent cards in a project,
// newest first. A non-positive limit means 3.
func (s *PadService) RecentCardsInProject(ctx context.Context, projectName string, limit int) []pad.Card {
	if limit <= 0 {
		limit = 3
	}

	records, err := s.source.ProjectCards(ctx, projectName)
	if err != nil {
		s.logger.Error("failed to fetch recent cards", "project", projectName, "error", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	sortByDateDesc(records)
	if len(records) > limit {
		records = records[:limit]
	}

	cards := make([]pad.Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, pad.CardFromRecord(r, s.baseURL))
	}
	return cards
}

// LatestCardInProject returns the single most recent card in a project.
func (s *PadService) LatestCardInProject(ctx context.Context, projectName string) *pad.Card {
	records, err := s.source.ProjectCards(ctx, projectName)
	if err != nil {
		s.logger.Error("failed to fetch latest card", "project", projectName, "error", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	sortByDateDesc(records)
	card := pad.CardFromRecord(records[0], s.baseURL)
	return &card
}

// sortByDateDesc sorts rows newest-first on the first available creation
// date column. ISO-8601 strings order lexicographically, so a plain string
// compare matches chronological order. Rows keep their input order when no
// date column is present.
func sortByDateDesc(rows []pad.Record) {
	col := pad.FindColumn(rows, pad.DateColumns)
	if col == "" {
		return
	}
	candidates := []string{col}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].String(candidates, "") > rows[j].String(candidates, "")
	})
}
