package deepdist_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/deepdist"
)

// Example_roughDistance measures two lists that differ in one element.
func Example_roughDistance() {
	t1 := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	t2 := []int{0, 2, 2, 3, 4, 5, 6, 7, 8, 9}

	s, err := deepdist.New(t1, t2)
	if err != nil {
		log.Fatal(err)
	}

	d, err := s.RoughDistance(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f\n", d)
	// Output: 0.05
}

// Example_numeric shows that durations are compared in seconds.
func Example_numeric() {
	s, err := deepdist.New(time.Second, 3*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	d, err := s.RoughDistance(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f\n", d)
	// Output: 0.50
}

// Example_comparator precomputes pair distances with a custom comparator.
func Example_comparator() {
	sameLength := deepdist.ComparatorFunc(func(added, removed any) deepdist.Verdict {
		a, ok1 := added.(string)
		r, ok2 := removed.(string)
		if !ok1 || !ok2 {
			return deepdist.Declined
		}
		if len(a) == len(r) {
			return deepdist.Close
		}
		return deepdist.NotClose
	})

	s, err := deepdist.New(nil, nil, deepdist.WithComparator(sameLength))
	if err != nil {
		log.Fatal(err)
	}

	t1, removed, err := s.BuildHashTable([]any{"abc", 42})
	if err != nil {
		log.Fatal(err)
	}
	t2, added, err := s.BuildHashTable([]any{"xyz"})
	if err != nil {
		log.Fatal(err)
	}

	table := s.PrecalculateByComparator(context.Background(), added, removed, t1, t2)
	fmt.Println(len(table.Distances), table.Declined.GetCardinality())
	// Output: 1 1
}
