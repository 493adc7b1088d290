package production_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para probar los casos de uso sin PostgreSQL. El fakeTxRunner
// reproduce las dos garantías que el motor le pide a la transacción real:
// exclusión mutua (un mutex en lugar del SELECT FOR UPDATE) y atomicidad
// (snapshot del estado, restaurado si la función devuelve error).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu       sync.Mutex
	articles map[string]*entity.Article
	ledgers  map[string]map[entity.Floor]*entity.FloorLedger
	events   map[string][]*entity.AuditEvent
	orders   map[string]*entity.ProductionOrder
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		articles: make(map[string]*entity.Article),
		ledgers:  make(map[string]map[entity.Floor]*entity.FloorLedger),
		events:   make(map[string][]*entity.AuditEvent),
		orders:   make(map[string]*entity.ProductionOrder),
	}
}

func copyArticle(a *entity.Article) *entity.Article {
	cp := *a
	return &cp
}

func copyLedger(l *entity.FloorLedger) *entity.FloorLedger {
	cp := *l
	return &cp
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, a := range s.articles {
		snap.articles[id] = copyArticle(a)
	}
	for id, byFloor := range s.ledgers {
		m := make(map[entity.Floor]*entity.FloorLedger, len(byFloor))
		for f, l := range byFloor {
			m[f] = copyLedger(l)
		}
		snap.ledgers[id] = m
	}
	for id, evs := range s.events {
		snap.events[id] = append([]*entity.AuditEvent(nil), evs...)
	}
	for id, o := range s.orders {
		cp := *o
		snap.orders[id] = &cp
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.articles = snap.articles
	s.ledgers = snap.ledgers
	s.events = snap.events
	s.orders = snap.orders
}

// ── repositorios ──────────────────────────────────────────────────────────────

type fakeArticleRepo struct{ s *fakeStore }

func (r *fakeArticleRepo) Create(a *entity.Article) error {
	r.s.articles[a.ID] = copyArticle(a)
	return nil
}

func (r *fakeArticleRepo) GetByID(id string) (*entity.Article, error) {
	a, ok := r.s.articles[id]
	if !ok {
		return nil, nil
	}
	return copyArticle(a), nil
}

func (r *fakeArticleRepo) GetForUpdate(id string) (*entity.Article, error) {
	return r.GetByID(id)
}

func (r *fakeArticleRepo) Update(a *entity.Article) error {
	r.s.articles[a.ID] = copyArticle(a)
	return nil
}

func (r *fakeArticleRepo) ListByOrder(orderID string) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.s.articles {
		if a.OrderID == orderID {
			out = append(out, copyArticle(a))
		}
	}
	return out, nil
}

type fakeLedgerRepo struct{ s *fakeStore }

func (r *fakeLedgerRepo) Get(articleID string, floor entity.Floor) (*entity.FloorLedger, error) {
	if byFloor, ok := r.s.ledgers[articleID]; ok {
		if l, ok := byFloor[floor]; ok {
			return copyLedger(l), nil
		}
	}
	// Igual que el repositorio real: sin fila todavía, libro en cero.
	return &entity.FloorLedger{ArticleID: articleID, Floor: floor}, nil
}

func (r *fakeLedgerRepo) GetAll(articleID string) (map[entity.Floor]*entity.FloorLedger, error) {
	out := make(map[entity.Floor]*entity.FloorLedger)
	for f, l := range r.s.ledgers[articleID] {
		out[f] = copyLedger(l)
	}
	return out, nil
}

func (r *fakeLedgerRepo) Upsert(l *entity.FloorLedger) error {
	byFloor, ok := r.s.ledgers[l.ArticleID]
	if !ok {
		byFloor = make(map[entity.Floor]*entity.FloorLedger)
		r.s.ledgers[l.ArticleID] = byFloor
	}
	byFloor[l.Floor] = copyLedger(l)
	return nil
}

type fakeAuditRepo struct{ s *fakeStore }

func (r *fakeAuditRepo) Append(ev *entity.AuditEvent) error {
	cp := *ev
	r.s.events[ev.ArticleID] = append(r.s.events[ev.ArticleID], &cp)
	return nil
}

func (r *fakeAuditRepo) ListByArticle(articleID string) ([]*entity.AuditEvent, error) {
	out := append([]*entity.AuditEvent(nil), r.s.events[articleID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(o *entity.ProductionOrder) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	if o, ok := r.s.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.s.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

// ── tx runner, sink y reloj ───────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	articleRepo repository.ArticleRepository,
	ledgerRepo repository.FloorLedgerRepository,
	auditRepo repository.AuditEventRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	err := fn(&fakeArticleRepo{r.s}, &fakeLedgerRepo{r.s}, &fakeAuditRepo{r.s}, &fakeOrderRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

type recordingSink struct {
	mu     sync.Mutex
	events []*entity.AuditEvent
}

func (s *recordingSink) Emit(ev *entity.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// ── semilla ───────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

// seedArticle crea una orden con un artículo listo para operar: tejido recibió
// lo planificado, el resto de libros en cero y el evento de creación con
// consecutivo 1 en la bitácora.
func seedArticle(s *fakeStore, plannedQty int64, routing entity.RoutingAttribute) *entity.Article {
	orderID := uuid.New().String()
	s.orders[orderID] = &entity.ProductionOrder{
		ID:        orderID,
		Code:      "OP-2026-0001",
		Status:    entity.StatusPending,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}

	article := &entity.Article{
		ID:            uuid.New().String(),
		OrderID:       orderID,
		Style:         "REF-883",
		Size:          "M",
		Color:         "negro",
		PlannedQty:    plannedQty,
		Routing:       routing,
		Status:        entity.StatusPending,
		FrontierFloor: entity.FloorKnitting,
		AuditSeq:      1,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
	s.articles[article.ID] = article

	byFloor := entity.NewFloorLedgers(article.ID, plannedQty, testNow)
	s.ledgers[article.ID] = byFloor

	s.events[article.ID] = []*entity.AuditEvent{{
		ID:        uuid.New().String(),
		ArticleID: article.ID,
		Seq:       1,
		Floor:     entity.FloorKnitting,
		Action:    entity.ActionArticleCreated,
		CreatedAt: testNow,
	}}
	return article
}
