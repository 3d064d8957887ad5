package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dannyallport-cain/we-date/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverScoringComposite(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN")
	setInterests(t, db, viewer, "hiking", "cooking", "yoga")

	cand := seedUser(t, db, "cand@x.com", 28, "MAN", verified())
	setInterests(t, db, cand, "hiking", "cooking", "cinema")

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	c := out[0]
	assert.Equal(t, 28, c.Age)
	assert.Equal(t, 2, c.SharedInterests)
	assert.Equal(t, 100, c.ActivityScore)
	require.NotNil(t, c.DistanceMiles)
	assert.Equal(t, 0.0, *c.DistanceMiles)

	// photo 10 + interests 3x3 = 19 completeness
	assert.Equal(t, 19, c.Completeness)
	// verified 20 + completeness 19/5 + shared 2*6 + activity 100/5
	assert.Equal(t, 20+3+12+20, c.MatchScore)
}

func TestDiscoverActivityDecay(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN")
	seedUser(t, db, "recent@x.com", 28, "MAN", lastActive(10))

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 70, out[0].ActivityScore)
}

func TestDiscoverBoostOverridesScore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN")
	strong := seedUser(t, db, "strong@x.com", 28, "MAN", verified())
	boosted := seedUser(t, db, "boosted@x.com", 29, "MAN", lastActive(20))

	now := time.Now()
	require.NoError(t, db.Create(&models.Boost{
		UserID:    boosted.ID,
		StartedAt: now.Add(-5 * time.Minute),
		ExpiresAt: now.Add(25 * time.Minute),
		IsActive:  true,
	}).Error)

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, boosted.ID, out[0].User.ID, "an active boost outranks any score")
	assert.True(t, out[0].IsBoosted)
	assert.Greater(t, out[1].MatchScore, out[0].MatchScore)
	_ = strong
}

func TestDiscoverExpiredBoostIgnored(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN")
	stale := seedUser(t, db, "stale@x.com", 29, "MAN", lastActive(15))
	fresh := seedUser(t, db, "fresh@x.com", 28, "MAN", verified())

	now := time.Now()
	require.NoError(t, db.Create(&models.Boost{
		UserID:    stale.ID,
		StartedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-90 * time.Minute),
		IsActive:  true,
	}).Error)

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, fresh.ID, out[0].User.ID)
	assert.False(t, out[0].IsBoosted)
	assert.False(t, out[1].IsBoosted)
}

func TestDiscoverTieBreaks(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN")

	// identical scores, one verified: verified sorts higher but also
	// earns +20, so give the unverified one an offsetting boost-free edge
	// via shared interests is messy. Instead pit equal-score users on
	// distance: nearer first, known distance before unknown.
	near := seedUser(t, db, "near@x.com", 28, "MAN", at(51.52, -0.12))
	far := seedUser(t, db, "far@x.com", 28, "MAN", at(51.90, -0.12))
	unknown := seedUser(t, db, "unknown@x.com", 28, "MAN")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", unknown.ID).
		Updates(map[string]interface{}{"latitude": nil, "longitude": nil}).Error)

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, near.ID, out[0].User.ID)
	assert.Equal(t, far.ID, out[1].User.ID)
	assert.Equal(t, unknown.ID, out[2].User.ID, "unknown distance sorts after known")
}

func TestDiscoverDistanceCeiling(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	// ~60 miles north of the viewer
	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN", maxDistance(50))
	outside := seedUser(t, db, "outside@x.com", 28, "MAN", at(52.38, -0.1278))
	inside := seedUser(t, db, "inside@x.com", 29, "MAN")

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, inside.ID, out[0].User.ID)

	// expanding doubles the ceiling to 100, letting the 60-mile user in
	out, err = svc.Discover(ctx, viewer.ID, true)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	_ = outside
}

func TestDiscoverUnknownDistancePassesCeiling(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN", maxDistance(10))
	unknown := seedUser(t, db, "unknown@x.com", 28, "MAN")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", unknown.ID).
		Updates(map[string]interface{}{"latitude": nil, "longitude": nil}).Error)

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 1, "candidates without coordinates are never distance-filtered")
}

func TestDiscoverTruncatesToResultSize(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cfg := engineConfig()
	cfg.ResultSize = 3
	svc := newDiscoveryService(db, cfg)

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN")
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"} {
		seedUser(t, db, email, 28, "MAN")
	}

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

// A boosted nearby candidate with shared interests outranks a stronger
// profile outside the viewer's radius, and the ceiling then drops the
// out-of-range one entirely unless the search is expanded.
func TestDiscoverBoostAndCeilingScenario(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN", premium(), maxDistance(10))
	setInterests(t, db, viewer, "hiking", "cooking", "yoga")

	// ~15 miles out, nothing in common
	farC := seedUser(t, db, "c@x.com", 28, "MAN", at(51.7245, -0.1278))

	// ~5 miles out, 3 shared interests, boosted
	nearD := seedUser(t, db, "d@x.com", 29, "MAN", at(51.5798, -0.1278))
	setInterests(t, db, nearD, "hiking", "cooking", "yoga")
	now := time.Now()
	require.NoError(t, db.Create(&models.Boost{
		UserID:    nearD.ID,
		StartedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
		IsActive:  true,
	}).Error)

	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	require.Len(t, out, 1, "the 15-mile candidate falls to the 10-mile ceiling")
	assert.Equal(t, nearD.ID, out[0].User.ID)
	assert.True(t, out[0].IsBoosted)
	assert.Equal(t, 3, out[0].SharedInterests)

	out, err = svc.Discover(ctx, viewer.ID, true)
	require.NoError(t, err)
	require.Len(t, out, 2, "expanding doubles the ceiling to 20 miles")
	assert.Equal(t, nearD.ID, out[0].User.ID)
	assert.Equal(t, farC.ID, out[1].User.ID)
}

func TestDiscoverEmptyPool(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newDiscoveryService(db, engineConfig())

	viewer := seedUser(t, db, "viewer@x.com", 30, "WOMAN")
	out, err := svc.Discover(ctx, viewer.ID, false)
	require.NoError(t, err)
	assert.Empty(t, out)
}
