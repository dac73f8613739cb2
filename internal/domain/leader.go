package domain

import "sort"

// Fill es una ejecución reciente reportada por la Data API para un mercado.
type Fill struct {
	Address  string
	USDCSize float64
	Side     string // "BUY" | "SELL"
}

// Position es una posición abierta de un usuario según la Data API.
type Position struct {
	ConditionID string
	Outcome     string
	TokenID     string
	Size        float64
	CurValue    float64
	Redeemable  bool
}

// TraderRank es la actividad agregada de una dirección en un mercado.
// PnL acumula solo el notional de ventas — es un proxy de profit, no P&L
// realizado real; se mantiene porque es la señal que usa la estrategia.
type TraderRank struct {
	Address string
	Buys    float64
	Sells   float64
	PnL     float64
}

// Volume devuelve el notional total (compras + ventas) de la dirección.
func (t TraderRank) Volume() float64 {
	return t.Buys + t.Sells
}

// RankTraders agrega fills por dirección y devuelve las top direcciones
// ordenadas por volumen descendente. Direcciones vacías se descartan.
// Empates de volumen se rompen por orden lexicográfico de dirección, para
// que el ranking sea determinista.
func RankTraders(fills []Fill, top int) []TraderRank {
	byAddr := make(map[string]*TraderRank)
	for _, f := range fills {
		if f.Address == "" {
			continue
		}
		tr, ok := byAddr[f.Address]
		if !ok {
			tr = &TraderRank{Address: f.Address}
			byAddr[f.Address] = tr
		}
		switch f.Side {
		case "BUY":
			tr.Buys += f.USDCSize
		case "SELL":
			tr.Sells += f.USDCSize
			tr.PnL += f.USDCSize
		}
	}

	ranked := make([]TraderRank, 0, len(byAddr))
	for _, tr := range byAddr {
		ranked = append(ranked, *tr)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Volume() != ranked[j].Volume() {
			return ranked[i].Volume() > ranked[j].Volume()
		}
		return ranked[i].Address < ranked[j].Address
	})

	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

// LeaderPosition es la posición de un top trader en el mercado analizado.
type LeaderPosition struct {
	Address string
	Outcome string
	Size    float64
	PnL     float64
}

// Consensus es el resultado del voto ponderado por tamaño entre leaders.
type Consensus struct {
	Outcome   string
	Traders   int
	TotalSize float64
	Leader    LeaderPosition // la posición individual más grande del grupo ganador
}

// outcomeVote es el agregado por outcome durante el conteo.
type outcomeVote struct {
	count     int
	totalSize float64
	best      LeaderPosition
}

// BuildConsensus agrupa posiciones por outcome y elige el de mayor tamaño
// total — una ballena pesa más que muchos traders pequeños. Los empates se
// rompen por orden lexicográfico del label, y dentro del grupo ganador el
// leader representativo es la posición más grande (empates por dirección).
// ok=false si no hay posiciones.
func BuildConsensus(positions []LeaderPosition) (Consensus, bool) {
	if len(positions) == 0 {
		return Consensus{}, false
	}

	votes := make(map[string]*outcomeVote)
	var labels []string
	for _, p := range positions {
		v, seen := votes[p.Outcome]
		if !seen {
			v = &outcomeVote{}
			votes[p.Outcome] = v
			labels = append(labels, p.Outcome)
		}
		v.count++
		v.totalSize += p.Size
		if v.count == 1 || biggerPosition(p, v.best) {
			v.best = p
		}
	}

	sort.Strings(labels)
	winner := labels[0]
	for _, label := range labels[1:] {
		if votes[label].totalSize > votes[winner].totalSize {
			winner = label
		}
	}

	v := votes[winner]
	return Consensus{
		Outcome:   winner,
		Traders:   v.count,
		TotalSize: v.totalSize,
		Leader:    v.best,
	}, true
}

// biggerPosition devuelve true si a debe reemplazar a b como best leader.
func biggerPosition(a, b LeaderPosition) bool {
	if a.Size != b.Size {
		return a.Size > b.Size
	}
	return a.Address < b.Address
}
