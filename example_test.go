package kmeansviz_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/kmeansviz"
	"github.com/hupe1980/kmeansviz/model"
)

func Example() {
	points := []model.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 10}, {X: 10, Y: 11}}

	eng := kmeansviz.New()
	if err := eng.Load(points, []int{0, 2}); err != nil {
		panic(err)
	}

	res, err := eng.Run(context.Background())
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Iteration, res.Centroids, res.Assignments)
	// Output: 2 [(0, 0.5) (10, 10.5)] [0 0 1 1]
}

func ExampleEngine_Step() {
	points := []model.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 10}, {X: 10, Y: 11}}

	eng := kmeansviz.New()
	if err := eng.Load(points, []int{0, 2}); err != nil {
		panic(err)
	}

	for range 5 {
		res, err := eng.Step()
		if err != nil {
			panic(err)
		}
		fmt.Println(res.Phase, res.Point, res.Cluster, res.Distances)
	}
	// Output:
	// assigning 0 0 [0 200]
	// assigning 1 0 [1 181]
	// assigning 2 1 [200 0]
	// assigning 3 1 [221 1]
	// updating -1 -1 []
}
