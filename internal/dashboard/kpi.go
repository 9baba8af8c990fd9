package dashboard

import (
	"fmt"
)

func computeKPIs(s Snapshot) KPIs {
	k := KPIs{
		TopRegion:    NoValue,
		TopPerformer: NoValue,
	}

	if len(s.Total) > 0 {
		k.TotalRevenue = s.Total[0].TotalSales
	}

	// при равенстве побеждает первый регион
	best := -1
	for i, r := range s.Regions {
		if best < 0 || r.TotalSales > s.Regions[best].TotalSales {
			best = i
		}
	}
	if best >= 0 {
		k.TopRegion = regionLabel(s.Regions[best].RegionName)
	}

	if len(s.Top) > 0 {
		var sum float64
		for _, r := range s.Top {
			sum += r.TotalRevenue
		}
		k.AverageTopRevenue = sum / float64(len(s.Top))

		if name := s.Top[0].FullName; name != nil && *name != "" {
			k.TopPerformer = *name
		}
		k.TopPerformerRevenue = s.Top[0].TotalRevenue
	}
	return k
}

// regionLabel возвращает название региона или "-", если его нет.
// Ключ региона вместо названия не подставляется.
func regionLabel(name any) string {
	if name == nil {
		return NoValue
	}
	if s := fmt.Sprint(name); s != "" {
		return s
	}
	return NoValue
}
