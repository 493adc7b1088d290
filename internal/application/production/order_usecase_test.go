package production_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appprod "github.com/jhoicas/Textil-api/internal/application/production"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

func newOrderUC(s *fakeStore) (*appprod.OrderUseCase, *recordingSink) {
	sink := &recordingSink{}
	uc := appprod.NewOrderUseCase(&fakeTxRunner{s}, &fakeOrderRepo{s}, &fakeArticleRepo{s}, sink).
		WithClock(fixedClock{testNow})
	return uc, sink
}

func TestCreateOrder_InicializaLibrosYBitacora(t *testing.T) {
	s := newFakeStore()
	uc, sink := newOrderUC(s)

	resp, err := uc.CreateOrder(context.Background(), testActor, dto.CreateOrderRequest{
		Code:     "OP-2026-0042",
		Customer: "Tejidos del Norte",
		Articles: []dto.CreateArticleRequest{
			{Style: "REF-883", Size: "M", Color: "negro", PlannedQuantity: 300, Routing: entity.RoutingAuto},
			{Style: "REF-901", Size: "L", Color: "azul", PlannedQuantity: 150, Routing: entity.RoutingRosso},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Articles, 2)
	assert.Equal(t, entity.StatusPending, resp.Status)

	for _, a := range resp.Articles {
		byFloor := s.ledgers[a.ID]
		require.Len(t, byFloor, len(entity.AllFloors), "cada artículo arranca con todos sus libros")
		assert.Equal(t, a.PlannedQty, byFloor[entity.FloorKnitting].Received,
			"tejido recibe la cantidad planificada")

		events := s.events[a.ID]
		require.Len(t, events, 1)
		assert.Equal(t, entity.ActionArticleCreated, events[0].Action)
		assert.Equal(t, int64(1), events[0].Seq, "la bitácora inicia en consecutivo 1")
	}
	assert.Len(t, sink.events, 2, "un evento de creación por artículo, notificado post-commit")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	s := newFakeStore()
	uc, _ := newOrderUC(s)
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, testActor, dto.CreateOrderRequest{Code: "OP-1"})
	assert.ErrorIs(t, err, domain.ErrValidation, "sin artículos no hay orden")

	_, err = uc.CreateOrder(ctx, testActor, dto.CreateOrderRequest{
		Code:     "OP-1",
		Articles: []dto.CreateArticleRequest{{Style: "REF-1", PlannedQuantity: 0, Routing: entity.RoutingAuto}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "cantidad planificada debe ser positiva")

	_, err = uc.CreateOrder(ctx, testActor, dto.CreateOrderRequest{
		Code:     "OP-1",
		Articles: []dto.CreateArticleRequest{{Style: "REF-1", PlannedQuantity: 10, Routing: "LASER"}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "atributo de ruteo desconocido")
}

func TestHoldResume_CicloDePausa(t *testing.T) {
	s := newFakeStore()
	article := seedArticle(s, 100, entity.RoutingAuto)
	orderUC, _ := newOrderUC(s)
	tracking, _ := newTracking(s)
	ctx := context.Background()
	change := dto.StatusChangeRequest{FloorSupervisorID: testSupervisor}

	// Con trabajo registrado, reanudar vuelve a in-progress.
	_, err := tracking.CompleteWork(ctx, article.ID, testActor, dto.CompleteWorkRequest{
		Floor: entity.FloorKnitting, AdditionalQuantity: 10, FloorSupervisorID: testSupervisor,
	})
	require.NoError(t, err)

	require.NoError(t, orderUC.HoldArticle(ctx, article.ID, testActor, change))
	assert.Equal(t, entity.StatusOnHold, s.articles[article.ID].Status)
	assert.Equal(t, entity.StatusOnHold, s.orders[article.OrderID].Status,
		"un artículo en pausa pone la orden en pausa")

	// En pausa las mutaciones del motor se rechazan.
	_, err = tracking.CompleteWork(ctx, article.ID, testActor, dto.CompleteWorkRequest{
		Floor: entity.FloorKnitting, AdditionalQuantity: 5, FloorSupervisorID: testSupervisor,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, orderUC.ResumeArticle(ctx, article.ID, testActor, change))
	assert.Equal(t, entity.StatusInProgress, s.articles[article.ID].Status,
		"ya había trabajo registrado: reanuda a in-progress")

	err = orderUC.ResumeArticle(ctx, article.ID, testActor, change)
	assert.ErrorIs(t, err, domain.ErrValidation, "solo se reanudan artículos en pausa")
}

func TestResume_SinTrabajoVuelveAPendiente(t *testing.T) {
	s := newFakeStore()
	article := seedArticle(s, 100, entity.RoutingAuto)
	orderUC, _ := newOrderUC(s)
	ctx := context.Background()
	change := dto.StatusChangeRequest{FloorSupervisorID: testSupervisor}

	require.NoError(t, orderUC.HoldArticle(ctx, article.ID, testActor, change))
	require.NoError(t, orderUC.ResumeArticle(ctx, article.ID, testActor, change))

	assert.Equal(t, entity.StatusPending, s.articles[article.ID].Status)
}

func TestCancelArticle_NoCancelaCompletados(t *testing.T) {
	s := newFakeStore()
	article := seedArticle(s, 100, entity.RoutingAuto)
	orderUC, _ := newOrderUC(s)
	ctx := context.Background()
	change := dto.StatusChangeRequest{FloorSupervisorID: testSupervisor}

	s.articles[article.ID].Status = entity.StatusCompleted
	err := orderUC.CancelArticle(ctx, article.ID, testActor, change)
	assert.ErrorIs(t, err, domain.ErrValidation,
		"los artículos con cantidades no se borran: un completado no se cancela")

	s.articles[article.ID].Status = entity.StatusInProgress
	require.NoError(t, orderUC.CancelArticle(ctx, article.ID, testActor, change))
	assert.Equal(t, entity.StatusCancelled, s.articles[article.ID].Status)
	assert.Equal(t, entity.StatusCancelled, s.orders[article.OrderID].Status,
		"todos los artículos cancelados cancelan la orden")

	err = orderUC.CancelArticle(ctx, article.ID, testActor, change)
	assert.ErrorIs(t, err, domain.ErrValidation, "cancelar dos veces no tiene sentido")
}

func TestGetOrder_DerivaEstadoDeArticulos(t *testing.T) {
	s := newFakeStore()
	article := seedArticle(s, 100, entity.RoutingAuto)
	orderUC, _ := newOrderUC(s)
	tracking, _ := newTracking(s)

	_, err := tracking.CompleteWork(context.Background(), article.ID, testActor, dto.CompleteWorkRequest{
		Floor: entity.FloorKnitting, AdditionalQuantity: 10, FloorSupervisorID: testSupervisor,
	})
	require.NoError(t, err)

	order, err := orderUC.GetOrder(article.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, order.Status)
	require.Len(t, order.Articles, 1)
	assert.Equal(t, article.ID, order.Articles[0].ID)
}

func TestGetOrder_NoEncontrada(t *testing.T) {
	s := newFakeStore()
	orderUC, _ := newOrderUC(s)

	_, err := orderUC.GetOrder("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
