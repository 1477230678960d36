package service

import (
	"context"
	"fmt"
	"math/rand"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

const generatedAlgo = "Wilson"

// SeedConfig describes a batch of generated mazes.
type SeedConfig struct {
	Count        int     // Mazes to generate
	Width        int     // Room columns per maze
	Height       int     // Room rows per maze
	LearningRate float64 // Q-learning rate stored with each maze
	Discount     float64 // Q-learning discount stored with each maze
	Rand         *rand.Rand
}

// SeedQueue generates c.Count Wilson mazes and pushes them onto q. It returns the number pushed.
func SeedQueue(ctx context.Context, q i.MazeQueue, c SeedConfig) (int, error) {
	if c.Rand == nil {
		return 0, fmt.Errorf("seeding requires a random source")
	}

	for n := 0; n < c.Count; n++ {
		m, err := maze.Generate(c.Width, c.Height, c.Rand)
		if err != nil {
			return n, err
		}

		pending, err := dmn.NewPendingMaze(dmn.PendingMazeConfig{
			Name:         fmt.Sprintf("wilson_%dx%d_%d", c.Width, c.Height, n),
			Algo:         generatedAlgo,
			Grid:         m.Cells(),
			LearningRate: c.LearningRate,
			Discount:     c.Discount,
		})
		if err != nil {
			return n, err
		}

		if err := q.Push(ctx, pending); err != nil {
			return n, err
		}
	}
	return c.Count, nil
}
