package backtest

import "golang.org/x/exp/constraints"

func sum[S []E, E constraints.Integer | constraints.Float](s S) E {
	var sum E
	for _, e := range s {
		sum += e
	}
	return sum
}

func count[S []E, E constraints.Integer | constraints.Float](s S, pred func(x E) bool) int {
	var count int
	for _, e := range s {
		if pred(e) {
			count++
		}
	}
	return count
}

func mean[S []E, E constraints.Integer | constraints.Float](s S) E {
	if len(s) == 0 {
		return 0
	}
	return sum(s) / E(len(s))
}
