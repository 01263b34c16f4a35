package golurk

import "cmp"

// speedSort orders list with compare (negative means a goes first) and shuffles every run of
// ties with the battle PRNG. It is a selection sort: each pass pulls the group of items that
// sort first to the front, then shuffles that group if it holds more than one item.
// The PRNG is only consulted for genuine ties.
func speedSort[T any](prng *PRNG, list []T, compare func(a, b T) int) {
	if len(list) < 2 {
		return
	}

	sorted := 0
	for sorted+1 < len(list) {
		nextIndexes := []int{sorted}
		for i := sorted + 1; i < len(list); i++ {
			delta := compare(list[nextIndexes[0]], list[i])
			if delta < 0 {
				continue
			}
			if delta > 0 {
				nextIndexes = nextIndexes[:0]
			}
			nextIndexes = append(nextIndexes, i)
		}

		// nextIndexes is ascending, so earlier swaps never disturb a later index
		for i, index := range nextIndexes {
			if index != sorted+i {
				list[sorted+i], list[index] = list[index], list[sorted+i]
			}
		}
		if len(nextIndexes) > 1 {
			Shuffle(prng, list, sorted, sorted+len(nextIndexes))
		}
		sorted += len(nextIndexes)
	}
}

// unordered handlers (order 0) run after every ordered one
func orderKey(order int) int {
	if order == 0 {
		return 1 << 32
	}
	return order
}

// compareOrder compares the shared leading keys: order ascending, priority descending, speed descending.
func compareOrder(orderA, priorityA, speedA, orderB, priorityB, speedB int) int {
	return cmp.Or(
		cmp.Compare(orderKey(orderA), orderKey(orderB)),
		cmp.Compare(priorityB, priorityA),
		cmp.Compare(speedB, speedA),
	)
}
