package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/historial-almacen/internal/domain"
	"github.com/tu-usuario/historial-almacen/internal/domain/entity"
	domhistory "github.com/tu-usuario/historial-almacen/internal/domain/history"
	"github.com/tu-usuario/historial-almacen/pkg/logger"
)

// Snapshot conjunto completo e inmutable de eventos reconciliados, junto con
// el índice de maestros construido del mismo snapshot de fuentes. Los
// consumidores ven siempre o el snapshot anterior completo o el nuevo
// completo, nunca una mezcla a medio construir.
type Snapshot struct {
	ID          string
	Events      []entity.MovementEvent
	Index       *MasterIndex
	RefreshedAt time.Time
}

// ReconcileUseCase orquesta el ciclo: fan-out de las fuentes, join
// todo-o-nada, reconciliación y publicación atómica del snapshot.
//
// Un refresh nuevo reemplaza a uno anterior, no se mezcla con él: cada refresh
// toma un número de generación monótono al arrancar y solo publica si ninguna
// generación posterior publicó antes. Sin el guard, un fetch lento y obsoleto
// podía pisar un resultado más nuevo.
type ReconcileUseCase struct {
	source SourceProvider
	homeID string
	log    *logger.Logger

	mu           sync.RWMutex
	snap         *Snapshot
	nextGen      uint64 // próxima generación a repartir
	publishedGen uint64 // generación del snapshot vigente
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(source SourceProvider, homeID string, log *logger.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{source: source, homeID: homeID, log: log}
}

// Current devuelve el snapshot vigente, o nil si aún no hubo refresh exitoso.
func (uc *ReconcileUseCase) Current() *Snapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snap
}

// begin reparte el número de generación de un refresh que arranca.
func (uc *ReconcileUseCase) begin() uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.nextGen++
	return uc.nextGen
}

// publish instala el snapshot si la generación sigue siendo la más nueva
// publicada. Devuelve false si un refresh posterior ya publicó.
func (uc *ReconcileUseCase) publish(gen uint64, snap *Snapshot) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if gen <= uc.publishedGen {
		return false
	}
	uc.publishedGen = gen
	uc.snap = snap
	return true
}

// Refresh reconstruye el conjunto completo de eventos desde las fuentes.
// Las cuatro lecturas corren en paralelo y deben resolver todas antes de
// reconciliar; cualquier fallo de fuente aborta el refresh completo y conserva
// el snapshot anterior (ErrSourceUnavailable). Un refresh reemplazado por uno
// más nuevo devuelve ErrRefreshSuperseded sin tocar el snapshot vigente.
func (uc *ReconcileUseCase) Refresh(ctx context.Context) (*Snapshot, error) {
	gen := uc.begin()
	started := time.Now()

	var (
		locRaw, shipRaw, statusRaw []domhistory.RawRow
		masters                    entity.MasterRecords
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locRaw, err = uc.source.FetchLocationRows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		shipRaw, err = uc.source.FetchShipRows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		statusRaw, err = uc.source.FetchStatusRows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		masters, err = uc.source.FetchMasterRecords(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	idx := BuildIndex(masters)
	events := Materialize(locRaw, shipRaw, statusRaw, idx, uc.homeID)

	snap := &Snapshot{
		ID:          uuid.New().String(),
		Events:      events,
		Index:       idx,
		RefreshedAt: time.Now(),
	}
	if !uc.publish(gen, snap) {
		return nil, domain.ErrRefreshSuperseded
	}

	uc.log.Info().
		Str("snapshot_id", snap.ID).
		Int("eventos", len(events)).
		Int("filas_location", len(locRaw)).
		Int("filas_ship", len(shipRaw)).
		Int("filas_status", len(statusRaw)).
		Dur("duracion", time.Since(started)).
		Msg("historial reconciliado")
	return snap, nil
}
