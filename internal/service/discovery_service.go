package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/repository"
	"github.com/dannyallport-cain/we-date/pkg/geo"

	"gorm.io/gorm"
)

// Candidate is one scored entry of a discovery result.
type Candidate struct {
	User            models.User `json:"user"`
	Age             int         `json:"age"`
	DistanceMiles   *float64    `json:"distance_miles"`
	DistanceLabel   string      `json:"distance_label,omitempty"`
	SharedInterests int         `json:"shared_interests"`
	Completeness    int         `json:"completeness"`
	ActivityScore   int         `json:"activity_score"`
	MatchScore      int         `json:"match_score"`
	IsBoosted       bool        `json:"is_boosted"`
}

// DiscoveryService selects, scores and orders the candidate batch for a
// viewer. It holds no state across requests; the batch is an ephemeral
// working set.
type DiscoveryService struct {
	users     *repository.UserRepository
	discovery *repository.DiscoveryRepository
	boosts    *repository.BoostRepository
	cfg       *config.EngineConfig
}

func NewDiscoveryService(
	users *repository.UserRepository,
	discovery *repository.DiscoveryRepository,
	boosts *repository.BoostRepository,
	cfg *config.EngineConfig,
) *DiscoveryService {
	return &DiscoveryService{users: users, discovery: discovery, boosts: boosts, cfg: cfg}
}

// Discover returns the ranked candidate list for viewerID. When expand is
// set the viewer's distance ceiling is doubled ("expand my search").
func (s *DiscoveryService) Discover(ctx context.Context, viewerID uint, expand bool) ([]Candidate, error) {
	viewer, err := s.users.GetProfile(ctx, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("viewer not found")
		}
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	batch, err := s.discovery.Candidates(ctx, repository.CandidateQuery{
		ViewerID: viewerID,
		ShowMe:   viewer.ShowMe,
		// Birth-date window anchored on today: ages are derived, and the
		// day-level boundary this produces is accepted behavior.
		MinBirthDate: today.AddDate(-(viewer.AgeMax + 1), 0, 0),
		MaxBirthDate: today.AddDate(-viewer.AgeMin, 0, 0),
		ActiveSince:  now.AddDate(0, 0, -s.cfg.RecencyWindowDays),
		Limit:        s.cfg.CandidateBatchSize,
	})
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return []Candidate{}, nil
	}

	ids := make([]uint, len(batch))
	for i := range batch {
		ids[i] = batch[i].ID
	}
	boosted, err := s.boosts.ActiveUserIDs(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(batch))
	for i := range batch {
		candidates = append(candidates, s.score(viewer, &batch[i], boosted[batch[i].ID], now))
	}

	sortCandidates(candidates)

	candidates = s.applyDistanceCeiling(viewer, candidates, expand)
	if len(candidates) > s.cfg.ResultSize {
		candidates = candidates[:s.cfg.ResultSize]
	}
	return candidates, nil
}

// score computes every per-candidate factor and the composite match score.
func (s *DiscoveryService) score(viewer, c *models.User, boosted bool, now time.Time) Candidate {
	cand := Candidate{
		User:          *c,
		Age:           c.Age(now),
		Completeness:  c.Completeness(),
		ActivityScore: activityScore(c.LastActive, now),
		IsBoosted:     boosted,
	}
	cand.DistanceMiles = distanceBetween(viewer, c)
	if cand.DistanceMiles != nil {
		cand.DistanceLabel = geo.FormatDistance(*cand.DistanceMiles)
	}
	cand.SharedInterests = sharedInterests(viewer.Interests, c.Interests)

	score := 0
	if c.IsVerified {
		score += 20
	}
	score += cand.Completeness / 5
	// shared interests are deliberately uncapped
	score += cand.SharedInterests * 6
	score += cand.ActivityScore / 5

	if cand.DistanceMiles != nil && viewer.MaxDistance > 0 {
		max := float64(viewer.MaxDistance)
		switch {
		case *cand.DistanceMiles > max:
			score -= 10
		case *cand.DistanceMiles > max/2:
			score -= 5
		}
	}
	cand.MatchScore = score
	return cand
}

// distanceBetween returns the rounded mile distance, or nil when either
// side lacks coordinates or the pair is malformed. A bad coordinate nulls
// the distance instead of failing the batch.
func distanceBetween(a, b *models.User) *float64 {
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return nil
	}
	d, err := geo.Distance(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
	if err != nil {
		return nil
	}
	return &d
}

// activityScore decays linearly: 100 at "active now", zero after ~33 days.
func activityScore(lastActive, now time.Time) int {
	days := int(now.Sub(lastActive).Hours() / 24)
	if days < 0 {
		days = 0
	}
	score := 100 - 3*days
	if score < 0 {
		return 0
	}
	return score
}

func sharedInterests(a, b []models.Interest) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, in := range a {
		set[strings.ToLower(in.Name)] = true
	}
	shared := 0
	for _, in := range b {
		if set[strings.ToLower(in.Name)] {
			shared++
		}
	}
	return shared
}

// sortCandidates applies the total ordering: active boost first
// (unconditional override), then score, verified, distance (known before
// unknown), and last activity as the final tiebreak.
func sortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.IsBoosted != b.IsBoosted {
			return a.IsBoosted
		}
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.User.IsVerified != b.User.IsVerified {
			return a.User.IsVerified
		}
		ad, bd := a.DistanceMiles, b.DistanceMiles
		if (ad != nil) != (bd != nil) {
			return ad != nil
		}
		if ad != nil && bd != nil && *ad != *bd {
			return *ad < *bd
		}
		return a.User.LastActive.After(b.User.LastActive)
	})
}

// applyDistanceCeiling drops candidates whose known distance exceeds the
// viewer's ceiling (doubled under expand). Unknown distances always pass.
func (s *DiscoveryService) applyDistanceCeiling(viewer *models.User, cands []Candidate, expand bool) []Candidate {
	if viewer.MaxDistance <= 0 || !viewer.HasCoordinates() {
		return cands
	}
	ceiling := float64(viewer.MaxDistance)
	if expand {
		ceiling *= 2
	}
	out := cands[:0]
	for _, c := range cands {
		if c.DistanceMiles != nil && *c.DistanceMiles > ceiling {
			continue
		}
		out = append(out, c)
	}
	return out
}
