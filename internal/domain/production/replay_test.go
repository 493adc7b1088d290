package production_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/production"
)

// ──────────────────────────────────────────────────────────────────────────────
// La bitácora es fuente de verdad: reproducir la secuencia completa de eventos
// de un artículo debe reconstruir exactamente el estado de sus libros de piso.
// El orden lo da el consecutivo por artículo, nunca el reloj.
// ──────────────────────────────────────────────────────────────────────────────

func replayEvent(seq int64, floor entity.Floor, action string, qty int64) *entity.AuditEvent {
	return &entity.AuditEvent{
		ArticleID:     "art-1",
		Seq:           seq,
		Floor:         floor,
		Action:        action,
		QuantityDelta: qty,
		CreatedAt:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestReplay_ReconstruyeCicloCompleto(t *testing.T) {
	checking := entity.FloorChecking
	events := []*entity.AuditEvent{
		replayEvent(1, entity.FloorKnitting, entity.ActionArticleCreated, 0),
		replayEvent(2, entity.FloorKnitting, entity.ActionWorkCompleted, 60),
		replayEvent(3, entity.FloorKnitting, entity.ActionWorkCompleted, 45), // sobreproducción: 105 > 100
		replayEvent(4, entity.FloorKnitting, entity.ActionKnittingDefectsSet, 3),
	}
	transfer := replayEvent(5, entity.FloorKnitting, entity.ActionTransferred, 100)
	transfer.ToFloor = &checking
	events = append(events, transfer)

	inspect := replayEvent(6, checking, entity.ActionQualityInspected, 80)
	inspect.M1Delta, inspect.M2Delta, inspect.M3Delta, inspect.M4Delta = 60, 12, 5, 3
	events = append(events, inspect)

	repair := replayEvent(7, checking, entity.ActionRepairShifted, 0)
	repair.M2Delta, repair.M1Delta, repair.M4Delta = -12, 10, 2
	events = append(events, repair)

	ledgers, err := production.Replay(100, events)
	require.NoError(t, err)

	knitting := ledgers[entity.FloorKnitting]
	assert.Equal(t, int64(100), knitting.Received)
	assert.Equal(t, int64(105), knitting.Completed)
	assert.Equal(t, int64(3), knitting.Grades.M4MajorDefectQty)
	assert.Equal(t, int64(100), knitting.TransferredOut)

	chk := ledgers[checking]
	assert.Equal(t, int64(100), chk.Received, "lo transferido llega como recibido del destino")
	assert.Equal(t, int64(80), chk.Completed)
	assert.Equal(t, int64(70), chk.Grades.M1GoodQty, "60 de inspección + 10 reparados")
	assert.Equal(t, int64(0), chk.Grades.M2ReviewQty, "la reparación vació el saldo M2")
	assert.Equal(t, int64(5), chk.Grades.M3MinorDefectQty)
	assert.Equal(t, int64(5), chk.Grades.M4MajorDefectQty)

	require.NoError(t, chk.Validate(), "el estado reconstruido respeta los invariantes")
}

func TestReplay_OrdenaPorConsecutivo(t *testing.T) {
	// Eventos entregados en desorden: el replay debe ordenarlos por Seq.
	events := []*entity.AuditEvent{
		replayEvent(3, entity.FloorKnitting, entity.ActionWorkCompleted, 20),
		replayEvent(1, entity.FloorKnitting, entity.ActionArticleCreated, 0),
		replayEvent(2, entity.FloorKnitting, entity.ActionWorkCompleted, 30),
	}

	ledgers, err := production.Replay(100, events)
	require.NoError(t, err)
	assert.Equal(t, int64(50), ledgers[entity.FloorKnitting].Completed)
}

func TestReplay_ErrorSiNoIniciaConCreacion(t *testing.T) {
	events := []*entity.AuditEvent{
		replayEvent(1, entity.FloorKnitting, entity.ActionWorkCompleted, 10),
	}

	_, err := production.Replay(100, events)
	assert.Error(t, err, "sin ARTICLE_CREATED no hay estado inicial que reconstruir")
}

func TestReplay_ErrorSiTransferenciaSinDestino(t *testing.T) {
	events := []*entity.AuditEvent{
		replayEvent(1, entity.FloorKnitting, entity.ActionArticleCreated, 0),
		replayEvent(2, entity.FloorKnitting, entity.ActionWorkCompleted, 10),
		replayEvent(3, entity.FloorKnitting, entity.ActionTransferred, 10), // ToFloor nil
	}

	_, err := production.Replay(100, events)
	assert.Error(t, err)
}
