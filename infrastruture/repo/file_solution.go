package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/google/uuid"
)

const solutionFileName = "data.json"

// FileSolutionRepo stores each solution as dir/<id>/data.json and keeps every record indexed in
// memory.
type FileSolutionRepo struct {
	dir   string
	index map[uuid.UUID]*dmn.Solution
	sync.RWMutex
}

// NewFileSolutionRepo opens dir, creating it if needed, and loads the solutions already stored
// there. Subdirectories without a readable data.json are skipped.
func NewFileSolutionRepo(dir string) (*FileSolutionRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	r := &FileSolutionRepo{
		dir:   dir,
		index: make(map[uuid.UUID]*dmn.Solution, len(entries)),
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		solution, err := readSolution(filepath.Join(dir, e.Name(), solutionFileName))
		if err != nil {
			continue
		}
		r.index[solution.ID] = solution
	}
	return r, nil
}

// Save writes the solution to disk, replacing any record with the same ID.
func (r *FileSolutionRepo) Save(solution *dmn.Solution) error {
	payload, err := json.MarshalIndent(solution, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding solution: %w", err)
	}

	r.Lock()
	defer r.Unlock()

	solutionDir := filepath.Join(r.dir, solution.ID.String())
	if err := os.MkdirAll(solutionDir, 0o755); err != nil {
		return fmt.Errorf("creating solution directory: %w", err)
	}

	// write then rename so readers never see a partial file
	path := filepath.Join(solutionDir, solutionFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("writing solution: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing solution: %w", err)
	}

	stored := *solution
	r.index[solution.ID] = &stored
	return nil
}

// ByID returns the solution with id, or ErrSolutionNotFound.
func (r *FileSolutionRepo) ByID(id uuid.UUID) (*dmn.Solution, error) {
	r.RLock()
	defer r.RUnlock()

	solution, ok := r.index[id]
	if !ok {
		return nil, ErrSolutionNotFound
	}
	out := *solution
	return &out, nil
}

// List returns the solutions matching the query filters, sorted ascending by the query key.
func (r *FileSolutionRepo) List(query dmn.ListQuery) ([]*dmn.Solution, error) {
	query, err := query.Normalize()
	if err != nil {
		return nil, err
	}

	r.RLock()
	all := make([]*dmn.Solution, 0, len(r.index))
	for _, s := range r.index {
		out := *s
		all = append(all, &out)
	}
	r.RUnlock()

	return query.Apply(all), nil
}

func readSolution(path string) (*dmn.Solution, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var solution dmn.Solution
	if err := json.Unmarshal(payload, &solution); err != nil {
		return nil, err
	}
	if solution.ID == uuid.Nil {
		return nil, errors.New("solution without id")
	}
	return &solution, nil
}
