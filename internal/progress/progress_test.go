package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterAdvances(t *testing.T) {
	var c Counter
	require.Zero(t, c.Count())
	c.Advance()
	c.Advance()
	require.Equal(t, 2, c.Count())
}

func TestBoardTracksTasksAndOverall(t *testing.T) {
	b := NewBoard()
	a := b.Task("a", 3)
	c := b.Task("c", 2)
	require.Equal(t, 5, b.Overall().Total())

	b.Advance("a")
	b.Advance("a")
	b.Advance("c")

	require.Equal(t, 2, a.Count())
	require.Equal(t, 1, c.Count())
	require.Equal(t, 3, b.Overall().Count())
}

func TestBoardTaskIdempotent(t *testing.T) {
	b := NewBoard()
	first := b.Task("x", 4)
	second := b.Task("x", 4)
	require.Same(t, first, second)
	require.Equal(t, 4, b.Overall().Total())
}

func TestBoardAdvanceFunc(t *testing.T) {
	b := NewBoard()
	task := b.Task("run", 2)
	advance := b.AdvanceFunc("run")
	advance()
	advance()
	require.Equal(t, 2, task.Count())
	require.Equal(t, 2, b.Overall().Count())
}

func TestBoardNotifiesListeners(t *testing.T) {
	b := NewBoard()
	b.Task("a", 1)

	var got []string
	b.OnAdvance(func(task string) { got = append(got, task) })
	b.Advance("a")
	b.Advance("a")
	require.Equal(t, []string{"a", "a"}, got)
}

func TestBoardConcurrentAdvances(t *testing.T) {
	b := NewBoard()
	const tasks, steps = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < tasks; i++ {
		name := string(rune('a' + i))
		b.Task(name, steps)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < steps; j++ {
				b.Advance(name)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, tasks*steps, b.Overall().Count())
	for i := 0; i < tasks; i++ {
		require.Equal(t, steps, b.Task(string(rune('a'+i)), steps).Count())
	}
}
