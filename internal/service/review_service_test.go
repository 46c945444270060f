package service

import (
	"context"
	"sync"
	"testing"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureFeed struct {
	mu     sync.Mutex
	events []models.ReviewDoc
}

func (c *captureFeed) PublishReview(rev models.ReviewDoc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, rev)
}

func newTestReviewService(ids ...int) (*ReviewService, *RatingService, *fakeShowStore, *captureFeed) {
	ratings, shows, _ := newTestRatingService(ids...)
	feed := &captureFeed{}
	svc := NewReviewService(newFakeReviewStore(), ratings.showsSvc, ratings, feed)
	return svc, ratings, shows, feed
}

func TestAddReviewCreatesAndCascades(t *testing.T) {
	svc, ratings, shows, feed := newTestReviewService(1)
	ctx := context.Background()

	rev, err := svc.Add(ctx, "u1", 1, "muy buena", 4)
	require.NoError(t, err)
	assert.False(t, rev.ID.IsZero())
	assert.Equal(t, 4.0, rev.Rating)

	agg, err := ratings.GetAverage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, agg.Average)
	assert.Equal(t, 1, agg.Count)

	stored, err := shows.GetByTMDBID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ReviewCount)

	require.Len(t, feed.events, 1)
	assert.Equal(t, rev.ID, feed.events[0].ID)
}

// Segunda reseña del mismo usuario para el mismo show → conflict; hay que
// ir por Edit.
func TestAddReviewDuplicateConflicts(t *testing.T) {
	svc, ratings, _, _ := newTestReviewService(1)
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", 1, "great", 4)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "u1", 1, "again", 3)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// tras editar, el rating del show queda en 3.0
	_, err = svc.Edit(ctx, first.ID.Hex(), "u1", "again", 3)
	require.NoError(t, err)

	agg, err := ratings.GetAverage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, agg.Average)
	assert.Equal(t, 1, agg.Count)
}

func TestEditReviewValidations(t *testing.T) {
	svc, _, _, _ := newTestReviewService(1)
	ctx := context.Background()

	rev, err := svc.Add(ctx, "u1", 1, "ok", 2)
	require.NoError(t, err)

	_, err = svc.Edit(ctx, rev.ID.Hex(), "u2", "hack", 1)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	_, err = svc.Edit(ctx, "no-es-un-oid", "u1", "x", 1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Edit(ctx, rev.ID.Hex(), "u1", "x", 9)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

// Escenario del agregado: ratings {A:5, B:3} → promedio 4.0; borrar la
// reseña de A deja promedio 3.0, count 1 y reviewCount decrementado.
func TestDeleteReviewRemovesRating(t *testing.T) {
	svc, ratings, shows, _ := newTestReviewService(1)
	ctx := context.Background()

	revA, err := svc.Add(ctx, "A", 1, "excelente", 5)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "B", 1, "bien", 3)
	require.NoError(t, err)

	agg, err := ratings.GetAverage(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 4.0, agg.Average)
	require.Equal(t, 2, agg.Count)

	require.NoError(t, svc.Delete(ctx, revA.ID.Hex(), "A"))

	agg, err = ratings.GetAverage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, agg.Average)
	assert.Equal(t, 1, agg.Count)

	stored, err := shows.GetByTMDBID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ReviewCount)

	list, err := svc.ForShow(ctx, 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].UserID)
}

func TestDeleteReviewOnlyAuthor(t *testing.T) {
	svc, _, _, _ := newTestReviewService(1)
	ctx := context.Background()

	rev, err := svc.Add(ctx, "u1", 1, "ok", 2)
	require.NoError(t, err)

	err = svc.Delete(ctx, rev.ID.Hex(), "u2")
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}

// Toggle: cantidad par de llamadas vuelve al estado original, impar deja el
// like puesto.
func TestLikeReviewToggle(t *testing.T) {
	svc, _, _, _ := newTestReviewService(1)
	ctx := context.Background()

	rev, err := svc.Add(ctx, "autor", 1, "ok", 3)
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		state, err := svc.Like(ctx, rev.ID.Hex(), "fan")
		require.NoError(t, err)

		if i%2 == 1 {
			assert.True(t, state.LikedByCaller, "llamada %d", i)
			assert.Equal(t, 1, state.LikeCount, "llamada %d", i)
		} else {
			assert.False(t, state.LikedByCaller, "llamada %d", i)
			assert.Equal(t, 0, state.LikeCount, "llamada %d", i)
		}
	}
}

func TestLikeReviewNotFound(t *testing.T) {
	svc, _, _, _ := newTestReviewService(1)

	_, err := svc.Like(context.Background(), "ffffffffffffffffffffffff", "fan")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReviewsOrderedByCreatedAtDesc(t *testing.T) {
	svc, _, _, _ := newTestReviewService(1, 2, 3)
	ctx := context.Background()

	for _, showID := range []int{1, 2, 3} {
		_, err := svc.Add(ctx, "u1", showID, "reseña", 3)
		require.NoError(t, err)
	}

	list, err := svc.ByUser(ctx, "u1", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt))
	}
}

func TestAddReviewEmptyContent(t *testing.T) {
	svc, _, _, _ := newTestReviewService(1)

	_, err := svc.Add(context.Background(), "u1", 1, "   ", 3)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
