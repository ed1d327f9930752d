package scoring

import (
	"sort"

	"AShareSentinel/internal/model"
)

const (
	mainstreamSectors = 3
	followOnSectors   = 10
)

// RankSectors grades every sector in the snapshot by its average percent
// change. The top three are mainstream money flow, the next seven ride the
// follow-on wave, everything else is isolated. Quotes without a sector name
// grade as isolated.
func RankSectors(snap *model.Snapshot) map[string]model.SectorHeat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, q := range snap.Quotes {
		if q.Sector == "" {
			continue
		}
		sums[q.Sector] += q.ChangePct
		counts[q.Sector]++
	}

	type sectorAvg struct {
		name string
		avg  float64
	}
	ranked := make([]sectorAvg, 0, len(sums))
	for name, sum := range sums {
		ranked = append(ranked, sectorAvg{name, sum / float64(counts[name])})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].avg != ranked[j].avg {
			return ranked[i].avg > ranked[j].avg
		}
		return ranked[i].name < ranked[j].name
	})

	heat := make(map[string]model.SectorHeat, len(ranked))
	for i, s := range ranked {
		switch {
		case i < mainstreamSectors:
			heat[s.name] = model.HeatMainstream
		case i < followOnSectors:
			heat[s.name] = model.HeatFollowOn
		default:
			heat[s.name] = model.HeatIsolated
		}
	}
	return heat
}

// HeatOf looks up a sector's grade, defaulting to isolated for unknown or
// empty sectors.
func HeatOf(heat map[string]model.SectorHeat, sector string) model.SectorHeat {
	if h, ok := heat[sector]; ok {
		return h
	}
	return model.HeatIsolated
}
