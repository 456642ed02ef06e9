package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
)

// sectorAllocations summarizes the shortlist per sector, heaviest
// sector first, ties broken by name for deterministic output.
func sectorAllocations(shortlist []contracts.RankedOpportunity) []contracts.SectorAllocation {
	if len(shortlist) == 0 {
		return nil
	}

	bySector := make(map[string]*contracts.SectorAllocation)
	for _, opp := range shortlist {
		a, ok := bySector[opp.Sector]
		if !ok {
			a = &contracts.SectorAllocation{Sector: opp.Sector}
			bySector[opp.Sector] = a
		}
		a.Count++
		a.WeightPct += opp.PositionPct
	}

	out := make([]contracts.SectorAllocation, 0, len(bySector))
	for _, a := range bySector {
		a.WeightPct = math.Round(a.WeightPct*100) / 100
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeightPct != out[j].WeightPct {
			return out[i].WeightPct > out[j].WeightPct
		}
		return out[i].Sector < out[j].Sector
	})

	return out
}

// diversificationWarnings flags sectors whose slot share exceeds the
// configured cap. The refill pass can exceed the cap when the
// candidate pool is too concentrated to fill the shortlist otherwise;
// the warning makes that visible instead of silent.
func diversificationWarnings(allocations []contracts.SectorAllocation, shortlisted int, capPct float64) []string {
	if shortlisted == 0 {
		return nil
	}

	var warnings []string
	for _, a := range allocations {
		share := float64(a.Count) / float64(shortlisted)
		if share > capPct {
			warnings = append(warnings, fmt.Sprintf(
				"sector %q exceeds maximum share (%.1f%% > %.1f%%)",
				a.Sector, share*100, capPct*100))
		}
	}
	return warnings
}
