package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func TestDrawState_Transitions(t *testing.T) {
	s := IdleState()
	assert.False(t, s.Drawing())

	s = s.Down(Pt(10, 20))
	require.True(t, s.Drawing())
	assert.Equal(t, Pt(10, 20), *s.Start)
	assert.Equal(t, Pt(10, 20), *s.Current)

	moved := s.Move(Pt(30, 40))
	assert.Equal(t, Pt(30, 40), *moved.Current)
	assert.Equal(t, Pt(10, 20), *moved.Start)
	assert.Equal(t, Pt(10, 20), *s.Current, "Move must not modify the receiver")
}

func TestDrawState_MoveWhileIdleIsNoop(t *testing.T) {
	s := IdleState().Move(Pt(5, 5))
	assert.Equal(t, IdleState(), s)
}

func TestDrawState_SecondDownIgnored(t *testing.T) {
	s := IdleState().Down(Pt(1, 1)).Move(Pt(50, 1)).Down(Pt(99, 99))
	assert.Equal(t, Pt(1, 1), *s.Start)
	assert.Equal(t, Pt(50, 1), *s.Current)
}

func TestDrawState_UpCommitThreshold(t *testing.T) {
	c := Committer{MinDistance: 5, NewID: fixedIDs("a1"), Label: DefaultAnnotationLabel}

	tests := []struct {
		name       string
		start, end Point
		wantCommit bool
	}{
		{"click", Pt(100, 100), Pt(100, 100), false},
		{"distance 4", Pt(100, 100), Pt(104, 100), false},
		{"exactly 5 is not enough", Pt(100, 100), Pt(103, 104), false},
		{"just over 5", Pt(100, 100), Pt(105.01, 100), true},
		{"distance 10", Pt(100, 100), Pt(110, 100), true},
		{"diagonal", Pt(0, 0), Pt(30, 40), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ann := IdleState().Down(tt.start).Move(tt.end).Up(c)

			assert.Equal(t, IdleState(), next)
			if !tt.wantCommit {
				assert.Nil(t, ann)
				return
			}
			require.NotNil(t, ann)
			assert.Equal(t, "a1", ann.ID)
			assert.Equal(t, AnnotationLine, ann.Type)
			assert.Equal(t, DefaultAnnotationLabel, ann.Label)
			assert.Equal(t, tt.start, ann.Start())
			assert.Equal(t, tt.end, ann.End())
		})
	}
}

func TestDrawState_UpWhileIdle(t *testing.T) {
	next, ann := IdleState().Up(DefaultCommitter())
	assert.Nil(t, ann)
	assert.Equal(t, IdleState(), next)
}

func TestDrawState_Cancel(t *testing.T) {
	s := IdleState().Down(Pt(0, 0)).Move(Pt(100, 100)).Cancel()
	assert.Equal(t, IdleState(), s)
}

func TestDefaultCommitter_UniqueIDs(t *testing.T) {
	c := DefaultCommitter()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		_, ann := IdleState().Down(Pt(0, 0)).Move(Pt(50, 50)).Up(c)
		require.NotNil(t, ann)
		require.NotEmpty(t, ann.ID)
		require.False(t, seen[ann.ID], "duplicate id %s", ann.ID)
		seen[ann.ID] = true
	}
}

func TestAnnotation_Labels(t *testing.T) {
	a := Annotation{ID: "x", Type: AnnotationLine, X1: 100, Y1: 100, X2: 110, Y2: 100, Label: "Measurement"}

	assert.Equal(t, 10.0, a.Length())
	assert.Equal(t, "10.0px", a.DistanceLabel())
	assert.Equal(t, "Measurement: 10.0px", a.DisplayLabel())
}
