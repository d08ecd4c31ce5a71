// Package accessories derives the mounting hardware (frames, boxes) and
// system accessories a configuration needs.
package accessories

// BucketSize is the largest frame/box capacity the catalog ships
const BucketSize = 4

// capacityTable maps a panel's module count to the frame/box capacities it is built from
var capacityTable = map[int][]int{
	1: {1},
	2: {2},
	3: {3},
	4: {4},
	5: {2, 3},
	6: {3, 3},
	7: {3, 4},
	8: {4, 4},
}

// Capacities returns the frame/box capacities used for a panel holding
// moduleCount modules. Counts above 8 are split greedily into buckets of 4
// plus the remainder, and overflow is true.
func Capacities(moduleCount int) (capacities []int, overflow bool) {
	if moduleCount <= 0 {
		return nil, false
	}
	if c, ok := capacityTable[moduleCount]; ok {
		return append([]int(nil), c...), false
	}

	remaining := moduleCount
	for remaining > 0 {
		if remaining >= BucketSize {
			capacities = append(capacities, BucketSize)
			remaining -= BucketSize
			continue
		}
		capacities = append(capacities, remaining)
		remaining = 0
	}
	return capacities, true
}
