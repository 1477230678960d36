package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/sortedstorage"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSolver struct {
	mock.Mock
}

func (m *MockSolver) Solve(p *dmn.PendingMaze) (*dmn.Solution, error) {
	args := m.Called(p)
	solution, _ := args.Get(0).(*dmn.Solution)
	return solution, args.Error(1)
}

type MockSolutionRepo struct {
	mock.Mock
}

func (m *MockSolutionRepo) Save(solution *dmn.Solution) error {
	args := m.Called(solution)
	return args.Error(0)
}

func (m *MockSolutionRepo) ByID(id uuid.UUID) (*dmn.Solution, error) {
	args := m.Called(id)
	solution, _ := args.Get(0).(*dmn.Solution)
	return solution, args.Error(1)
}

func (m *MockSolutionRepo) List(query dmn.ListQuery) ([]*dmn.Solution, error) {
	args := m.Called(query)
	solutions, _ := args.Get(0).([]*dmn.Solution)
	return solutions, args.Error(1)
}

func newTestQueue(t *testing.T) *MazeQueue {
	t.Helper()
	q, err := NewMazeQueue(sortedstorage.NewMemorySortedQueue(), &recordingLogger{}, nil)
	require.NoError(t, err)
	return q
}

func TestNewWorker(t *testing.T) {
	_, err := NewWorker(&WorkerConfig{})
	assert.Error(t, err)

	w, err := NewWorker(&WorkerConfig{
		Queue:  newTestQueue(t),
		Solver: new(MockSolver),
		Repo:   new(MockSolutionRepo),
		Logger: &recordingLogger{},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultPollInterval, w.pollInterval)
}

func TestProcessNext(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty queue", func(t *testing.T) {
		solver := new(MockSolver)
		w, err := NewWorker(&WorkerConfig{
			Queue:  newTestQueue(t),
			Solver: solver,
			Repo:   new(MockSolutionRepo),
			Logger: &recordingLogger{},
		})
		require.NoError(t, err)

		assert.False(t, w.ProcessNext(ctx))
		solver.AssertNotCalled(t, "Solve", mock.Anything)
	})

	t.Run("Undecodable member does not stall the queue", func(t *testing.T) {
		store := sortedstorage.NewMemorySortedQueue()
		q, err := NewMazeQueue(store, &recordingLogger{}, nil)
		require.NoError(t, err)
		require.NoError(t, store.Enqueue(ctx, defaultQueueKey, 0, "not json"))
		require.NoError(t, q.Push(ctx, pendingMaze(t, "behind", [][]int{{2, 3}})))

		solver := new(MockSolver)
		solver.On("Solve", mock.Anything).Return(&dmn.Solution{Status: dmn.StatusSolved}, nil)
		repo := new(MockSolutionRepo)
		repo.On("Save", mock.Anything).Return(nil)
		logger := &recordingLogger{}

		w, err := NewWorker(&WorkerConfig{Queue: q, Solver: solver, Repo: repo, Logger: logger})
		require.NoError(t, err)

		before := testutil.ToFloat64(mazesProcessed.WithLabelValues(outcomeDecodeError))
		assert.True(t, w.ProcessNext(ctx))
		assert.Len(t, logger.errors, 1)
		assert.Equal(t, before+1, testutil.ToFloat64(mazesProcessed.WithLabelValues(outcomeDecodeError)))
		solver.AssertNotCalled(t, "Solve", mock.Anything)

		assert.True(t, w.ProcessNext(ctx))
		solver.AssertNumberOfCalls(t, "Solve", 1)
		assert.Equal(t, int64(0), q.Len(ctx))
	})

	t.Run("Solve and save", func(t *testing.T) {
		q := newTestQueue(t)
		p := pendingMaze(t, "queued", [][]int{{2, 3}})
		require.NoError(t, q.Push(ctx, p))

		solution := &dmn.Solution{ID: p.ID, Name: p.Name, Status: dmn.StatusSolved}
		solver := new(MockSolver)
		solver.On("Solve", mock.MatchedBy(func(got *dmn.PendingMaze) bool { return got.ID == p.ID })).Return(solution, nil)
		repo := new(MockSolutionRepo)
		repo.On("Save", solution).Return(nil)

		w, err := NewWorker(&WorkerConfig{Queue: q, Solver: solver, Repo: repo, Logger: &recordingLogger{}})
		require.NoError(t, err)

		before := testutil.ToFloat64(mazesProcessed.WithLabelValues(dmn.StatusSolved))
		assert.True(t, w.ProcessNext(ctx))
		assert.Equal(t, int64(0), q.Len(ctx))
		assert.Equal(t, before+1, testutil.ToFloat64(mazesProcessed.WithLabelValues(dmn.StatusSolved)))
		solver.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("Solve failure drops the maze", func(t *testing.T) {
		q := newTestQueue(t)
		require.NoError(t, q.Push(ctx, pendingMaze(t, "bad", [][]int{{2, 2}})))

		solver := new(MockSolver)
		solver.On("Solve", mock.Anything).Return(nil, errors.New("invalid maze"))
		repo := new(MockSolutionRepo)
		logger := &recordingLogger{}

		w, err := NewWorker(&WorkerConfig{Queue: q, Solver: solver, Repo: repo, Logger: logger})
		require.NoError(t, err)

		assert.True(t, w.ProcessNext(ctx))
		assert.Equal(t, int64(0), q.Len(ctx))
		assert.Len(t, logger.errors, 1)
		repo.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("Save failure is logged", func(t *testing.T) {
		q := newTestQueue(t)
		require.NoError(t, q.Push(ctx, pendingMaze(t, "unsaved", [][]int{{2, 3}})))

		solver := new(MockSolver)
		solver.On("Solve", mock.Anything).Return(&dmn.Solution{}, nil)
		repo := new(MockSolutionRepo)
		repo.On("Save", mock.Anything).Return(errors.New("disk full"))
		logger := &recordingLogger{}

		w, err := NewWorker(&WorkerConfig{Queue: q, Solver: solver, Repo: repo, Logger: logger})
		require.NoError(t, err)

		before := testutil.ToFloat64(mazesProcessed.WithLabelValues(outcomeSaveError))
		assert.True(t, w.ProcessNext(ctx))
		assert.Len(t, logger.errors, 1)
		assert.Equal(t, before+1, testutil.ToFloat64(mazesProcessed.WithLabelValues(outcomeSaveError)))
	})
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := newTestQueue(t)
	for _, name := range []string{"one", "two"} {
		require.NoError(t, q.Push(ctx, pendingMaze(t, name, [][]int{{2, 3}})))
	}

	solver := new(MockSolver)
	solver.On("Solve", mock.Anything).Return(&dmn.Solution{Status: dmn.StatusSolved}, nil)

	saved := make(chan struct{}, 2)
	repo := new(MockSolutionRepo)
	repo.On("Save", mock.Anything).Return(nil).Run(func(mock.Arguments) { saved <- struct{}{} })

	w, err := NewWorker(&WorkerConfig{
		Queue:        q,
		Solver:       solver,
		Repo:         repo,
		Logger:       &recordingLogger{},
		PollInterval: time.Millisecond,
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-saved:
		case <-time.After(5 * time.Second):
			t.Fatal("worker did not drain the queue")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	solver.AssertNumberOfCalls(t, "Solve", 2)
}
