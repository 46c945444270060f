package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/metadata"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fakes en memoria de los stores. Reproducen la semántica que importa:
// escrituras condicionales por versión, índices únicos y clonado de
// documentos (lo que sale del fake no comparte memoria con lo guardado).

// ================== SHOWS ==================

type fakeShowStore struct {
	mu   sync.Mutex
	byID map[int]*models.ShowDoc

	// forceConflicts hace fallar los próximos N UpdateAggregate, para
	// ejercitar el presupuesto de reintentos.
	forceConflicts int
	updateCalls    int
}

func newFakeShowStore() *fakeShowStore {
	return &fakeShowStore{byID: map[int]*models.ShowDoc{}}
}

func cloneShow(s *models.ShowDoc) *models.ShowDoc {
	c := *s
	c.Ratings = make(map[string]float64, len(s.Ratings))
	for k, v := range s.Ratings {
		c.Ratings[k] = v
	}
	return &c
}

func (f *fakeShowStore) GetByTMDBID(_ context.Context, tmdbID int) (*models.ShowDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[tmdbID]
	if !ok {
		return nil, nil
	}
	return cloneShow(s), nil
}

func (f *fakeShowStore) Insert(_ context.Context, s *models.ShowDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[s.TMDBID]; ok {
		return apperr.Conflict("show %d ya existe", s.TMDBID)
	}
	s.ID = primitive.NewObjectID()
	f.byID[s.TMDBID] = cloneShow(s)
	return nil
}

func (f *fakeShowStore) UpdateAggregate(_ context.Context, s *models.ShowDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	if f.forceConflicts > 0 {
		f.forceConflicts--
		return apperr.Conflict("show %d: escritura concurrente", s.TMDBID)
	}

	cur, ok := f.byID[s.TMDBID]
	if !ok || cur.Version != s.Version {
		return apperr.Conflict("show %d: escritura concurrente", s.TMDBID)
	}

	next := cloneShow(s)
	next.Version = cur.Version + 1
	f.byID[s.TMDBID] = next
	return nil
}

// ================== METADATA ==================

type fakeMetadata struct {
	mu       sync.Mutex
	shows    map[int]metadata.ShowDetail
	trending []metadata.ShowDetail
	calls    int
}

func newFakeMetadata(ids ...int) *fakeMetadata {
	f := &fakeMetadata{shows: map[int]metadata.ShowDetail{}}
	for _, id := range ids {
		f.shows[id] = metadata.ShowDetail{ID: id, Name: fmt.Sprintf("Show %d", id)}
	}
	return f
}

func (f *fakeMetadata) GetShow(_ context.Context, tmdbID int) (*metadata.ShowDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	d, ok := f.shows[tmdbID]
	if !ok {
		return nil, apperr.NotFound("tmdb: show %d no existe", tmdbID)
	}
	return &d, nil
}

func (f *fakeMetadata) TrendingTV(_ context.Context) ([]metadata.ShowDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.trending, nil
}

// ================== REVIEWS ==================

type fakeReviewStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.ReviewDoc
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{byID: map[primitive.ObjectID]*models.ReviewDoc{}}
}

func cloneReview(r *models.ReviewDoc) *models.ReviewDoc {
	c := *r
	c.LikedBy = append([]string(nil), r.LikedBy...)
	return &c
}

func (f *fakeReviewStore) Insert(_ context.Context, rev *models.ReviewDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.ShowID == rev.ShowID && existing.UserID == rev.UserID {
			return apperr.Conflict("ya existe una reseña de este usuario para el show %d", rev.ShowID)
		}
	}
	rev.ID = primitive.NewObjectID()
	f.byID[rev.ID] = cloneReview(rev)
	return nil
}

func (f *fakeReviewStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ReviewDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneReview(r), nil
}

func (f *fakeReviewStore) FindByShowUser(_ context.Context, showID int, userID string) (*models.ReviewDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.ShowID == showID && r.UserID == userID {
			return cloneReview(r), nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) Update(_ context.Context, rev *models.ReviewDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[rev.ID]; !ok {
		return nil
	}
	f.byID[rev.ID] = cloneReview(rev)
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeReviewStore) Like(_ context.Context, id primitive.ObjectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok || r.LikedByUser(userID) {
		return false, nil
	}
	r.LikedBy = append(r.LikedBy, userID)
	r.LikeCount++
	return true, nil
}

func (f *fakeReviewStore) Unlike(_ context.Context, id primitive.ObjectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok || !r.LikedByUser(userID) {
		return false, nil
	}
	kept := r.LikedBy[:0]
	for _, u := range r.LikedBy {
		if u != userID {
			kept = append(kept, u)
		}
	}
	r.LikedBy = kept
	r.LikeCount--
	return true, nil
}

func (f *fakeReviewStore) FindByShow(_ context.Context, showID, limit, offset int) ([]models.ReviewDoc, error) {
	return f.findWhere(func(r *models.ReviewDoc) bool { return r.ShowID == showID }, limit, offset)
}

func (f *fakeReviewStore) FindByUser(_ context.Context, userID string, limit, offset int) ([]models.ReviewDoc, error) {
	return f.findWhere(func(r *models.ReviewDoc) bool { return r.UserID == userID }, limit, offset)
}

func (f *fakeReviewStore) findWhere(pred func(*models.ReviewDoc) bool, limit, offset int) ([]models.ReviewDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.ReviewDoc
	for _, r := range f.byID {
		if pred(r) {
			out = append(out, *cloneReview(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ================== WATCHLIST / VISTOS ==================

type userShowKey struct {
	userID string
	showID int
}

type fakeWatchlistStore struct {
	mu      sync.Mutex
	entries map[userShowKey]models.WatchlistEntry
}

func newFakeWatchlistStore() *fakeWatchlistStore {
	return &fakeWatchlistStore{entries: map[userShowKey]models.WatchlistEntry{}}
}

func (f *fakeWatchlistStore) Upsert(_ context.Context, userID string, showID int) (*models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := userShowKey{userID, showID}
	if e, ok := f.entries[k]; ok {
		return &e, nil
	}
	e := models.WatchlistEntry{UserID: userID, ShowID: showID, AddedAt: time.Now().UTC()}
	f.entries[k] = e
	return &e, nil
}

func (f *fakeWatchlistStore) Get(_ context.Context, userID string, showID int) (*models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[userShowKey{userID, showID}]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeWatchlistStore) Remove(_ context.Context, userID string, showID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, userShowKey{userID, showID})
	return nil
}

func (f *fakeWatchlistStore) FindByUser(_ context.Context, userID string) ([]models.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WatchlistEntry
	for k, e := range f.entries {
		if k.userID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	return out, nil
}

type fakeWatchedStore struct {
	mu      sync.Mutex
	entries map[userShowKey]models.WatchedEntry
}

func newFakeWatchedStore() *fakeWatchedStore {
	return &fakeWatchedStore{entries: map[userShowKey]models.WatchedEntry{}}
}

func (f *fakeWatchedStore) Upsert(_ context.Context, userID string, showID int, rating *int, clear bool) (*models.WatchedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := userShowKey{userID, showID}

	e, ok := f.entries[k]
	if !ok {
		e = models.WatchedEntry{UserID: userID, ShowID: showID}
	}
	e.WatchedAt = time.Now().UTC()
	if rating != nil {
		v := *rating
		e.Rating = &v
	} else if clear {
		e.Rating = nil
	}
	f.entries[k] = e
	return &e, nil
}

func (f *fakeWatchedStore) Get(_ context.Context, userID string, showID int) (*models.WatchedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[userShowKey{userID, showID}]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeWatchedStore) Remove(_ context.Context, userID string, showID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, userShowKey{userID, showID})
	return nil
}

func (f *fakeWatchedStore) FindByUser(_ context.Context, userID string) ([]models.WatchedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WatchedEntry
	for k, e := range f.entries {
		if k.userID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WatchedAt.After(out[j].WatchedAt) })
	return out, nil
}

// ================== LISTAS ==================

type fakeListStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.ShowListDoc
}

func newFakeListStore() *fakeListStore {
	return &fakeListStore{byID: map[primitive.ObjectID]*models.ShowListDoc{}}
}

func cloneList(l *models.ShowListDoc) *models.ShowListDoc {
	c := *l
	c.ShowIDs = append([]int(nil), l.ShowIDs...)
	return &c
}

func (f *fakeListStore) Insert(_ context.Context, l *models.ShowListDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = primitive.NewObjectID()
	f.byID[l.ID] = cloneList(l)
	return nil
}

func (f *fakeListStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ShowListDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneList(l), nil
}

func (f *fakeListStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeListStore) AddShow(_ context.Context, id primitive.ObjectID, showID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byID[id]
	if !ok {
		return nil
	}
	if !l.Contains(showID) {
		l.ShowIDs = append(l.ShowIDs, showID)
	}
	return nil
}

func (f *fakeListStore) RemoveShow(_ context.Context, id primitive.ObjectID, showID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byID[id]
	if !ok {
		return nil
	}
	kept := l.ShowIDs[:0]
	for _, s := range l.ShowIDs {
		if s != showID {
			kept = append(kept, s)
		}
	}
	l.ShowIDs = kept
	return nil
}

func (f *fakeListStore) SetPrivacy(_ context.Context, id primitive.ObjectID, isPrivate bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.byID[id]; ok {
		l.IsPrivate = isPrivate
	}
	return nil
}

func (f *fakeListStore) FindByOwner(_ context.Context, ownerID string, includePrivate bool) ([]models.ShowListDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ShowListDoc
	for _, l := range f.byID {
		if l.OwnerID != ownerID {
			continue
		}
		if l.IsPrivate && !includePrivate {
			continue
		}
		out = append(out, *cloneList(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ================== USERS ==================

type fakeUserStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.UserDoc
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[primitive.ObjectID]*models.UserDoc{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.UserDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	u, ok := f.byID[oid]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.UserDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return apperr.Conflict("email ya registrado")
		}
	}
	u.ID = primitive.NewObjectID()
	c := *u
	f.byID[u.ID] = &c
	return nil
}

// ================== helpers de armado ==================

func newTestRatingService(ids ...int) (*RatingService, *fakeShowStore, *fakeMetadata) {
	shows := newFakeShowStore()
	tmdb := newFakeMetadata(ids...)
	showSvc := NewShowService(shows, tmdb, nil)
	svc := NewRatingService(shows, showSvc)
	svc.sleepFunc = func(time.Duration) {} // sin backoff real en tests
	return svc, shows, tmdb
}
