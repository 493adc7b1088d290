package production

import (
	"fmt"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/production"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// StatusUseCase lecturas del motor: estado de libros, avance y bitácora.
// No toma locks: son consultas fuera de la ruta de mutación.
type StatusUseCase struct {
	articleRepo repository.ArticleRepository
	ledgerRepo  repository.FloorLedgerRepository
	auditRepo   repository.AuditEventRepository
}

// NewStatusUseCase construye el caso de uso de lectura.
func NewStatusUseCase(
	articleRepo repository.ArticleRepository,
	ledgerRepo repository.FloorLedgerRepository,
	auditRepo repository.AuditEventRepository,
) *StatusUseCase {
	return &StatusUseCase{articleRepo: articleRepo, ledgerRepo: ledgerRepo, auditRepo: auditRepo}
}

func (uc *StatusUseCase) getArticle(articleID string) (*entity.Article, error) {
	article, err := uc.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, articleID)
	}
	return article, nil
}

// GetFloorStatus devuelve el libro de un piso con las dos cantidades
// "restantes" por separado: remaining_to_process y available_to_transfer.
func (uc *StatusUseCase) GetFloorStatus(articleID string, floor entity.Floor) (*dto.FloorStatusDTO, error) {
	article, err := uc.getArticle(articleID)
	if err != nil {
		return nil, err
	}
	if !production.InRoute(article.Routing, floor) {
		return nil, fmt.Errorf("%w: %s no pertenece a la ruta %s", domain.ErrInvalidTransition, floor, article.Routing)
	}
	ledger, err := uc.ledgerRepo.Get(articleID, floor)
	if err != nil {
		return nil, err
	}
	out := dto.NewFloorStatusDTO(ledger)
	return &out, nil
}

// GetAllFloorStatuses devuelve los libros de todos los pisos de la ruta, en orden de ruta.
func (uc *StatusUseCase) GetAllFloorStatuses(articleID string) ([]dto.FloorStatusDTO, error) {
	article, err := uc.getArticle(articleID)
	if err != nil {
		return nil, err
	}
	ledgers, err := uc.ledgerRepo.GetAll(articleID)
	if err != nil {
		return nil, err
	}
	route := production.RouteFor(article.Routing)
	out := make([]dto.FloorStatusDTO, 0, len(route))
	for _, f := range route {
		if l, ok := ledgers[f]; ok {
			out = append(out, dto.NewFloorStatusDTO(l))
		}
	}
	return out, nil
}

// Progress devuelve el avance materializado del artículo.
func (uc *StatusUseCase) Progress(articleID string) (*dto.ArticleProgressDTO, error) {
	article, err := uc.getArticle(articleID)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleProgressDTO{
		ArticleID:     article.ID,
		Status:        article.Status,
		FrontierFloor: article.FrontierFloor,
		ProgressPct:   article.ProgressPct,
		OverprodRatio: article.OverprodRatio,
	}, nil
}

// ListEvents devuelve la bitácora del artículo ordenada por consecutivo.
func (uc *StatusUseCase) ListEvents(articleID string) ([]dto.AuditEventDTO, error) {
	if _, err := uc.getArticle(articleID); err != nil {
		return nil, err
	}
	events, err := uc.auditRepo.ListByArticle(articleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.NewAuditEventDTO(ev))
	}
	return out, nil
}
