package services

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/net2mulu/signature-gym/internal/cache"
	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
)

const (
	maxSuggestionDistance = 3
	maxSuggestions        = 3
)

// MembershipList is the cached form of a membership listing
type MembershipList struct {
	Items []*membership.Membership `json:"items"`
}

// MembershipService implements membership.Service
type MembershipService struct {
	repo     membership.Repository
	currency string
	cache    *cache.ViewCache[MembershipList]
	logger   *logger.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(repo membership.Repository, currency string, viewCache *cache.ViewCache[MembershipList], log *logger.Logger) membership.Service {
	return &MembershipService{
		repo:     repo,
		currency: currency,
		cache:    viewCache,
		logger:   log,
	}
}

// EnsureCatalog seeds the purchasable plans
func (s *MembershipService) EnsureCatalog(ctx context.Context) error {
	plans := membership.Seed(s.currency)
	for _, m := range plans {
		if err := s.repo.Upsert(ctx, m); err != nil {
			s.logger.ErrorWithErr(err, "Failed to seed membership")
			return err
		}
	}

	for _, t := range []string{"", membership.TypeGym, membership.TypeStudio, membership.TypeFlex} {
		s.cache.Delete(ctx, listKey(membership.Filter{Type: t, ActiveOnly: true}))
	}

	s.logger.With("count", len(plans)).Info("Membership catalog seeded")
	return nil
}

// List returns memberships matching the filter
func (s *MembershipService) List(ctx context.Context, filter membership.Filter) ([]*membership.Membership, error) {
	if filter.Type != "" && !membership.IsValidType(filter.Type) {
		return nil, errors.BadRequest("Unknown membership type: " + filter.Type)
	}

	list, err := s.cache.GetOrLoad(ctx, listKey(filter), func(ctx context.Context) (*MembershipList, error) {
		items, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &MembershipList{Items: items}, nil
	})
	if err != nil {
		return nil, err
	}
	if list.Items == nil {
		return []*membership.Membership{}, nil
	}
	return list.Items, nil
}

// Get returns one membership; unknown IDs carry suggestions in the error details
func (s *MembershipService) Get(ctx context.Context, id string) (*membership.Membership, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return m, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	ids, lerr := s.repo.ListIDs(ctx)
	if lerr != nil {
		s.logger.WithError(lerr).Warn("Failed to load membership ids for suggestions")
		return nil, err
	}

	if suggestions := suggest(id, ids); len(suggestions) > 0 {
		return nil, errors.NotFound("Membership").WithDetails(map[string]interface{}{
			"suggestions": suggestions,
		})
	}
	return nil, err
}

func listKey(filter membership.Filter) string {
	t := filter.Type
	if t == "" {
		t = "all"
	}
	if filter.ActiveOnly {
		return t + ":active"
	}
	return t
}

// suggest returns up to maxSuggestions known ids close to id
func suggest(id string, known []string) []string {
	type candidate struct {
		id   string
		dist int
	}

	needle := strings.ToLower(strings.TrimSpace(id))
	var out []candidate
	for _, k := range known {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(k))
		if d <= maxSuggestionDistance {
			out = append(out, candidate{k, d})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].dist != out[j].dist {
			return out[i].dist < out[j].dist
		}
		return out[i].id < out[j].id
	})

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	ids := make([]string, len(out))
	for i, c := range out {
		ids[i] = c.id
	}
	return ids
}
