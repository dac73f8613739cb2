package scanner

// leaders.go — identificación de leaders y sus posiciones por mercado.

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/weatherbot/internal/domain"
	"github.com/alejandrodnm/weatherbot/internal/ports"
)

// positionLeaders limita cuántos traders top se consultan por posiciones.
// Cada consulta es una llamada a Data-API; cinco bastan para el consenso.
const positionLeaders = 5

// LeaderResolver localiza los traders más activos de un mercado y las
// posiciones que mantienen en él.
type LeaderResolver struct {
	activity   ports.ActivityProvider
	positions  ports.PositionProvider
	topTraders int
	log        *slog.Logger
}

// NewLeaderResolver crea un resolver. topTraders acota el ranking de
// actividad; las posiciones solo se consultan para los primeros cinco.
func NewLeaderResolver(activity ports.ActivityProvider, positions ports.PositionProvider, topTraders int, log *slog.Logger) *LeaderResolver {
	return &LeaderResolver{
		activity:   activity,
		positions:  positions,
		topTraders: topTraders,
		log:        log,
	}
}

// TopTraders devuelve los traders más activos del mercado, por volumen desc.
// Un fallo de la API devuelve lista vacía: el mercado se salta este ciclo.
func (r *LeaderResolver) TopTraders(ctx context.Context, conditionID string) []domain.TraderRank {
	fills, err := r.activity.FetchActivity(ctx, conditionID)
	if err != nil {
		r.log.Warn("actividad no disponible", "market", conditionID, "error", err)
		return nil
	}
	return domain.RankTraders(fills, r.topTraders)
}

// LeaderPositions devuelve las posiciones que los primeros traders del
// ranking mantienen en el mercado dado. Un trader cuya consulta falla se
// omite sin abortar el resto.
func (r *LeaderResolver) LeaderPositions(ctx context.Context, conditionID string, ranked []domain.TraderRank) []domain.LeaderPosition {
	var out []domain.LeaderPosition

	limit := positionLeaders
	if len(ranked) < limit {
		limit = len(ranked)
	}

	for _, trader := range ranked[:limit] {
		positions, err := r.positions.FetchPositions(ctx, trader.Address)
		if err != nil {
			r.log.Warn("posiciones no disponibles",
				"trader", trader.Address, "error", err)
			continue
		}
		for _, pos := range positions {
			if pos.ConditionID != conditionID {
				continue
			}
			if pos.Size <= 0 {
				continue
			}
			out = append(out, domain.LeaderPosition{
				Address: trader.Address,
				Outcome: pos.Outcome,
				Size:    pos.Size,
				PnL:     trader.PnL,
			})
		}
	}

	return out
}

// Consensus calcula el outcome de consenso para un mercado a partir de las
// posiciones de sus leaders. ok=false si ningún leader tiene posición.
func (r *LeaderResolver) Consensus(ctx context.Context, conditionID string) (domain.Consensus, bool) {
	ranked := r.TopTraders(ctx, conditionID)
	if len(ranked) == 0 {
		return domain.Consensus{}, false
	}

	positions := r.LeaderPositions(ctx, conditionID, ranked)
	if len(positions) == 0 {
		return domain.Consensus{}, false
	}

	return domain.BuildConsensus(positions)
}
