package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/repository"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
)

type fakeDiaryRepo struct {
	nextID  int64
	items   map[int64]*schema.DiaryEntry
	creates int
	updates int
	err     error

	// raceOnCreate simulates a concurrent writer winning the first insert
	raceOnCreate bool
}

func newFakeDiaryRepo(entries ...schema.DiaryEntry) *fakeDiaryRepo {
	r := &fakeDiaryRepo{items: make(map[int64]*schema.DiaryEntry)}
	for _, e := range entries {
		r.insert(e)
	}
	return r
}

func (r *fakeDiaryRepo) insert(e schema.DiaryEntry) *schema.DiaryEntry {
	r.nextID++
	e.ID = r.nextID
	copy := e
	r.items[e.ID] = &copy
	return &copy
}

func (r *fakeDiaryRepo) FindByUserAndDate(ctx context.Context, userID int64, date string) (*schema.DiaryEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, e := range r.items {
		if e.UserID == userID && e.Date == date {
			copy := *e
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeDiaryRepo) GetByID(ctx context.Context, id int64) (*schema.DiaryEntry, error) {
	if e, ok := r.items[id]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeDiaryRepo) Create(ctx context.Context, entry *schema.DiaryEntry) error {
	if r.err != nil {
		return r.err
	}
	if r.raceOnCreate {
		r.raceOnCreate = false
		winner := *entry
		winner.TimeOnline = 1
		r.insert(winner)
		return repository.ErrDuplicate
	}
	for _, e := range r.items {
		if e.UserID == entry.UserID && e.Date == entry.Date {
			return repository.ErrDuplicate
		}
	}
	r.creates++
	stored := r.insert(*entry)
	entry.ID = stored.ID
	return nil
}

func (r *fakeDiaryRepo) UpdateContent(ctx context.Context, entry *schema.DiaryEntry) error {
	if r.err != nil {
		return r.err
	}
	r.updates++
	copy := *entry
	r.items[entry.ID] = &copy
	return nil
}

func (r *fakeDiaryRepo) Update(ctx context.Context, entry *schema.DiaryEntry) error {
	if r.err != nil {
		return r.err
	}
	for id, e := range r.items {
		if id != entry.ID && e.UserID == entry.UserID && e.Date == entry.Date {
			return repository.ErrDuplicate
		}
	}
	r.updates++
	copy := *entry
	r.items[entry.ID] = &copy
	return nil
}

func (r *fakeDiaryRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, e := range r.items {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeDiaryRepo) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]schema.DiaryEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []schema.DiaryEntry
	for _, e := range r.items {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeDiaryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type fakeGoalRepo struct {
	nextID int64
	items  map[int64]*schema.Goal
	saves  int
}

func newFakeGoalRepo(goals ...schema.Goal) *fakeGoalRepo {
	r := &fakeGoalRepo{items: make(map[int64]*schema.Goal)}
	for _, g := range goals {
		g := g
		_ = r.Create(context.Background(), &g)
	}
	return r
}

func (r *fakeGoalRepo) GetByID(ctx context.Context, id int64) (*schema.Goal, error) {
	if g, ok := r.items[id]; ok {
		copy := *g
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeGoalRepo) Create(ctx context.Context, goal *schema.Goal) error {
	r.nextID++
	goal.ID = r.nextID
	copy := *goal
	r.items[goal.ID] = &copy
	return nil
}

func (r *fakeGoalRepo) SaveProgress(ctx context.Context, goal *schema.Goal) error {
	r.saves++
	copy := *goal
	r.items[goal.ID] = &copy
	return nil
}

func (r *fakeGoalRepo) ListByUser(ctx context.Context, userID int64) ([]schema.Goal, error) {
	var out []schema.Goal
	for _, g := range r.items {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) CountCompletedByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for _, g := range r.items {
		if g.UserID == userID && g.IsCompleted {
			n++
		}
	}
	return n, nil
}

type fakeCatalog struct {
	items []schema.Achievement
	err   error
}

func (c fakeCatalog) ListAll(ctx context.Context) ([]schema.Achievement, error) {
	return c.items, c.err
}

type ledgerKey struct{ user, achievement int64 }

type fakeLedger struct {
	rows      map[ledgerKey]schema.UnlockedAchievement
	grantErr  error
	existsErr error

	// grantedElsewhere makes Grant report a duplicate for these ids
	grantedElsewhere map[int64]bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: make(map[ledgerKey]schema.UnlockedAchievement)}
}

func (l *fakeLedger) Exists(ctx context.Context, userID, achievementID int64) (bool, error) {
	if l.existsErr != nil {
		return false, l.existsErr
	}
	_, ok := l.rows[ledgerKey{userID, achievementID}]
	return ok, nil
}

func (l *fakeLedger) Grant(ctx context.Context, userID, achievementID int64, at time.Time) (*schema.UnlockedAchievement, error) {
	if l.grantErr != nil {
		return nil, l.grantErr
	}
	k := ledgerKey{userID, achievementID}
	if _, ok := l.rows[k]; ok || l.grantedElsewhere[achievementID] {
		return nil, repository.ErrDuplicate
	}
	row := schema.UnlockedAchievement{ID: int64(len(l.rows) + 1), UserID: userID, AchievementID: achievementID, UnlockedAt: at}
	l.rows[k] = row
	return &row, nil
}

func (l *fakeLedger) ListByUser(ctx context.Context, userID int64) ([]schema.UnlockedAchievement, error) {
	var out []schema.UnlockedAchievement
	for k, row := range l.rows {
		if k.user == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeEvaluator struct {
	calls  []int64
	result []schema.Achievement
}

func (e *fakeEvaluator) Evaluate(ctx context.Context, userID int64) []schema.Achievement {
	e.calls = append(e.calls, userID)
	if e.result == nil {
		return []schema.Achievement{}
	}
	return e.result
}

type fakePublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *fakePublisher) Publish(evt eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func achievement(id int64, typ string, value int) schema.Achievement {
	return schema.Achievement{ID: id, Name: typ, Requirement: schema.Requirement{Type: typ, Value: value}}
}
