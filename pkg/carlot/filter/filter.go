// Package filter narrows a fetched car list by the storefront query.
package filter

import (
	"context"
	"sort"
	"strings"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// Apply returns the cars matching q in their original order. The input slice
// is never modified. Each predicate runs as its own pipeline stage; a stage
// whose predicate is disabled is skipped entirely. Every stage forwards in
// arrival order, so the output keeps the fetch order.
//
// If ctx ends before the pass completes, Apply returns ctx.Err() and no cars.
func Apply(ctx context.Context, cars []dal.Car, q Query) ([]dal.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	generator := func(ctx context.Context, size int) <-chan int {
		intStream := make(chan int)
		go func() {
			defer close(intStream)
			for i := 0; i < size; i++ {
				select {
				case <-ctx.Done():
					return
				case intStream <- i:
				}
			}
		}()
		return intStream
	}

	stage := func(ctx context.Context, intStream <-chan int, skip bool, match func(dal.Car) bool) <-chan int {
		if skip {
			return intStream
		}
		matches := make(chan int)
		go func() {
			defer close(matches)
			for i := range intStream {
				if !match(cars[i]) {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case matches <- i:
				}
			}
		}()
		return matches
	}

	needle := strings.ToLower(q.Search)
	ceiling := q.ceiling()

	pipeline := stage(ctx,
		stage(ctx,
			stage(ctx,
				stage(ctx, generator(ctx, len(cars)),
					needle == "", func(c dal.Car) bool { return matchSearch(c, needle) }),
				q.isAll(q.Brand), func(c dal.Car) bool { return matchBrand(c, q.Brand) }),
			q.isAll(q.Price), func(c dal.Car) bool { return matchPrice(c, ceiling) }),
		q.isAll(q.Body), func(c dal.Car) bool { return matchBody(c, q.Body) })

	filtered := make([]dal.Car, 0, len(cars))
	for i := range pipeline {
		filtered = append(filtered, cars[i])
	}
	// A stage that saw ctx end closes early; the partial result is discarded.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filtered, nil
}

// BrandOptions returns the distinct brands in cars, sorted ascending. The
// All sentinel is not included.
func BrandOptions(cars []dal.Car) []string {
	seen := make(map[string]struct{}, len(cars))
	brands := make([]string, 0, len(cars))
	for _, car := range cars {
		if _, ok := seen[car.Brand]; ok {
			continue
		}
		seen[car.Brand] = struct{}{}
		brands = append(brands, car.Brand)
	}
	sort.Strings(brands)
	return brands
}
