package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jmanzanog/quote-session/internal/domain"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the latest value of every field delivered for one request.
type Snapshot struct {
	RequestID domain.RequestID   `json:"request_id"`
	Strings   map[string]string  `json:"strings,omitempty"`
	Doubles   map[string]float64 `json:"doubles,omitempty"`
	Sizes     map[string]int64   `json:"sizes,omitempty"`
	Custom    []string           `json:"custom,omitempty"`
	Forex     *domain.ForexTick  `json:"forex,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (s *Snapshot) clone() Snapshot {
	c := *s
	c.Strings = maps.Clone(s.Strings)
	c.Doubles = maps.Clone(s.Doubles)
	c.Sizes = maps.Clone(s.Sizes)
	c.Custom = slices.Clone(s.Custom)
	if s.Forex != nil {
		tick := *s.Forex
		c.Forex = &tick
	}
	return c
}

// Series holds rows streamed by a historical or intraday request until
// they are taken.
type Series struct {
	Historical []domain.HistoricalBar `json:"historical,omitempty"`
	Intraday   []domain.IntradayBar   `json:"intraday,omitempty"`
}

// QuoteStore is a Receiver that keeps the latest delivered values in memory.
type QuoteStore struct {
	mu        sync.RWMutex
	snapshots map[domain.RequestID]*Snapshot
	series    map[domain.RequestID]*Series
	now       func() time.Time
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		snapshots: make(map[domain.RequestID]*Snapshot),
		series:    make(map[domain.RequestID]*Series),
		now:       time.Now,
	}
}

// update must not be called with r.mu held.
func (r *QuoteStore) update(id domain.RequestID, fn func(s *Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.snapshots[id]
	if !exists {
		s = &Snapshot{RequestID: id}
		r.snapshots[id] = s
	}
	fn(s)
	s.UpdatedAt = r.now().UTC()
}

func (r *QuoteStore) OnString(id domain.RequestID, field domain.Field, value string) {
	r.update(id, func(s *Snapshot) {
		if s.Strings == nil {
			s.Strings = make(map[string]string)
		}
		s.Strings[field.String()] = value
	})
}

func (r *QuoteStore) OnDouble(id domain.RequestID, field domain.Field, value float64) {
	r.update(id, func(s *Snapshot) {
		if s.Doubles == nil {
			s.Doubles = make(map[string]float64)
		}
		s.Doubles[field.String()] = value
	})
}

func (r *QuoteStore) OnSize(id domain.RequestID, field domain.Field, value int64) {
	r.update(id, func(s *Snapshot) {
		if s.Sizes == nil {
			s.Sizes = make(map[string]int64)
		}
		s.Sizes[field.String()] = value
	})
}

func (r *QuoteStore) OnCustom(id domain.RequestID, lines []string) {
	r.update(id, func(s *Snapshot) {
		s.Custom = slices.Clone(lines)
	})
}

func (r *QuoteStore) OnForex(id domain.RequestID, tick domain.ForexTick) {
	r.update(id, func(s *Snapshot) {
		s.Forex = &tick
	})
}

func (r *QuoteStore) OnHistorical(id domain.RequestID, bar domain.HistoricalBar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seriesFor(id).Historical = append(r.seriesFor(id).Historical, bar)
}

func (r *QuoteStore) OnIntraday(id domain.RequestID, bar domain.IntradayBar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seriesFor(id).Intraday = append(r.seriesFor(id).Intraday, bar)
}

// seriesFor must be called with r.mu held.
func (r *QuoteStore) seriesFor(id domain.RequestID) *Series {
	s, exists := r.series[id]
	if !exists {
		s = &Series{}
		r.series[id] = s
	}
	return s
}

// FindByID returns a copy of the latest snapshot for id.
func (r *QuoteStore) FindByID(ctx context.Context, id domain.RequestID) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.snapshots[id]
	if !exists {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return s.clone(), nil
}

// FindAll returns copies of every snapshot ordered by request id.
func (r *QuoteStore) FindAll(ctx context.Context) ([]Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]Snapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		snapshots = append(snapshots, s.clone())
	}
	slices.SortFunc(snapshots, func(a, b Snapshot) int { return int(a.RequestID) - int(b.RequestID) })
	return snapshots, nil
}

func (r *QuoteStore) Delete(ctx context.Context, id domain.RequestID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[id]; !exists {
		return ErrSnapshotNotFound
	}

	delete(r.snapshots, id)
	return nil
}

// TakeSeries returns and forgets the rows collected for id.
func (r *QuoteStore) TakeSeries(id domain.RequestID) Series {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.series[id]
	if !exists {
		return Series{}
	}
	delete(r.series, id)
	return *s
}

var _ domain.Receiver = (*QuoteStore)(nil)
