package graph

import "strings"

// PlatformCategory is the infrastructure tier a data platform belongs to.
// Categories drive both the ring-ordering of platforms (neighborhood
// grouping on the layout ring) and color fallbacks for platforms without an
// explicit color-map entry.
type PlatformCategory string

// Platform categories in rank order.
const (
	CategoryWarehouse PlatformCategory = "warehouse"
	CategoryLake      PlatformCategory = "lake"
	CategoryStream    PlatformCategory = "stream"
	CategoryBigData   PlatformCategory = "bigdata"
	CategoryMesh      PlatformCategory = "mesh"
	CategoryOther     PlatformCategory = "other"
)

// categoryRanks fixes the sort order used by the ring allocator:
// warehouse < lake < stream < big-data < mesh < other.
var categoryRanks = map[PlatformCategory]int{
	CategoryWarehouse: 0,
	CategoryLake:      1,
	CategoryStream:    2,
	CategoryBigData:   3,
	CategoryMesh:      4,
	CategoryOther:     5,
}

// Rank returns the category's position in the fixed ordering.
func (c PlatformCategory) Rank() int {
	if r, ok := categoryRanks[c]; ok {
		return r
	}
	return categoryRanks[CategoryOther]
}

// CategoryOf classifies a platform by substring matching on its lower-cased
// name. Lakehouse names classify as lake; anything unrecognized is other.
func CategoryOf(name string) PlatformCategory {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "warehouse") || strings.Contains(n, "dwh"):
		return CategoryWarehouse
	case strings.Contains(n, "lake"):
		return CategoryLake
	case strings.Contains(n, "stream") || strings.Contains(n, "kafka") || strings.Contains(n, "kinesis"):
		return CategoryStream
	case strings.Contains(n, "big data") || strings.Contains(n, "big-data") || strings.Contains(n, "bigdata") || strings.Contains(n, "hadoop"):
		return CategoryBigData
	case strings.Contains(n, "mesh"):
		return CategoryMesh
	default:
		return CategoryOther
	}
}
