package differ

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLines(from, to int) []string {
	lines := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		lines = append(lines, fmt.Sprintf("line %d\n", i))
	}
	return lines
}

func TestNewHunkSegmenter_RejectsNegativeContext(t *testing.T) {
	segmenter, err := NewHunkSegmenter(-1)

	require.Error(t, err)
	assert.Nil(t, segmenter)
}

func TestSegment_NoChanges(t *testing.T) {
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	assert.Empty(t, segmenter.Segment(nil))
	assert.Empty(t, segmenter.Segment([]LineRun{
		{Kind: RunUnchanged, Lines: numberedLines(1, 10)},
	}))
}

func TestSegment_SingleLineReplacement(t *testing.T) {
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunUnchanged, Lines: []string{"a\n"}},
		{Kind: RunRemoved, Lines: []string{"b\n"}},
		{Kind: RunAdded, Lines: []string{"x\n"}},
		{Kind: RunUnchanged, Lines: []string{"c\n"}},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 1)
	assert.False(t, hunks[0].GapBefore)
	require.Len(t, hunks[0].Runs, 4)
	assert.Equal(t, LineRun{Kind: RunUnchanged, Lines: []string{"a\n"}}, hunks[0].Runs[0])
	assert.Equal(t, LineRun{Kind: RunRemoved, Lines: []string{"b\n"}}, hunks[0].Runs[1])
	assert.Equal(t, LineRun{Kind: RunAdded, Lines: []string{"x\n"}}, hunks[0].Runs[2])
	assert.Equal(t, LineRun{Kind: RunUnchanged, Lines: []string{"c\n"}}, hunks[0].Runs[3])
}

func TestSegment_ChangeInMiddleOfLargeFile(t *testing.T) {
	// Single changed line at line 50 of 100. The hunk spans lines 47-53,
	// not the whole file.
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunUnchanged, Lines: numberedLines(1, 49)},
		{Kind: RunRemoved, Lines: []string{"line 50\n"}},
		{Kind: RunAdded, Lines: []string{"line fifty\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(51, 100)},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Runs, 4)
	assert.Equal(t, numberedLines(47, 49), hunks[0].Runs[0].Lines)
	assert.Equal(t, numberedLines(51, 53), hunks[0].Runs[3].Lines)
}

func TestSegment_DistantChangesSplitWithGap(t *testing.T) {
	// Changes at lines 10 and 90 of 100: the 79-line unchanged gap far
	// exceeds 2x3, so two hunks with the second marked.
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunUnchanged, Lines: numberedLines(1, 9)},
		{Kind: RunRemoved, Lines: []string{"line 10\n"}},
		{Kind: RunAdded, Lines: []string{"line ten\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(11, 89)},
		{Kind: RunRemoved, Lines: []string{"line 90\n"}},
		{Kind: RunAdded, Lines: []string{"line ninety\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(91, 100)},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 2)
	assert.False(t, hunks[0].GapBefore)
	assert.True(t, hunks[1].GapBefore)

	first, second := hunks[0], hunks[1]
	assert.Equal(t, numberedLines(7, 9), first.Runs[0].Lines)
	assert.Equal(t, numberedLines(11, 13), first.Runs[len(first.Runs)-1].Lines)
	assert.Equal(t, numberedLines(87, 89), second.Runs[0].Lines)
	assert.Equal(t, numberedLines(91, 93), second.Runs[len(second.Runs)-1].Lines)
}

func TestSegment_GapAtThresholdMerges(t *testing.T) {
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	gap := numberedLines(1, 6) // exactly 2x3 lines
	script := []LineRun{
		{Kind: RunAdded, Lines: []string{"first\n"}},
		{Kind: RunUnchanged, Lines: gap},
		{Kind: RunAdded, Lines: []string{"second\n"}},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Runs, 3)
	assert.Equal(t, gap, hunks[0].Runs[1].Lines)
}

func TestSegment_GapJustOverThresholdSplits(t *testing.T) {
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunAdded, Lines: []string{"first\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(1, 7)},
		{Kind: RunAdded, Lines: []string{"second\n"}},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 2)
	assert.Equal(t, numberedLines(1, 3), hunks[0].Runs[len(hunks[0].Runs)-1].Lines)
	assert.True(t, hunks[1].GapBefore)
	assert.Equal(t, numberedLines(5, 7), hunks[1].Runs[0].Lines)
}

func TestSegment_ChangedRunAtSequenceStart(t *testing.T) {
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunAdded, Lines: []string{"new\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(1, 2)},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 1)
	assert.Equal(t, RunAdded, hunks[0].Runs[0].Kind)
	assert.Equal(t, numberedLines(1, 2), hunks[0].Runs[1].Lines)
}

func TestSegment_FinalUnchangedRunTruncated(t *testing.T) {
	segmenter, err := NewHunkSegmenter(2)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunRemoved, Lines: []string{"gone\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(1, 20)},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Runs, 2)
	assert.Equal(t, numberedLines(1, 2), hunks[0].Runs[1].Lines)
}

func TestSegment_ZeroContextSplitsOnAnyUnchangedRun(t *testing.T) {
	segmenter, err := NewHunkSegmenter(0)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunAdded, Lines: []string{"first\n"}},
		{Kind: RunUnchanged, Lines: []string{"between\n"}},
		{Kind: RunAdded, Lines: []string{"second\n"}},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 2)
	for _, hunk := range hunks {
		for _, run := range hunk.Runs {
			assert.NotEqual(t, RunUnchanged, run.Kind)
		}
	}
	assert.True(t, hunks[1].GapBefore)
}

func TestSegment_ZeroContextBackToBackChangesMerge(t *testing.T) {
	segmenter, err := NewHunkSegmenter(0)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunRemoved, Lines: []string{"old\n"}},
		{Kind: RunAdded, Lines: []string{"new\n"}},
	}

	hunks := segmenter.Segment(script)

	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Runs, 2)
}

func TestSegment_ContextBound(t *testing.T) {
	// Interior unchanged runs never exceed 2x context, boundary runs never
	// exceed context.
	const contextSize = 3
	segmenter, err := NewHunkSegmenter(contextSize)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunUnchanged, Lines: numberedLines(1, 30)},
		{Kind: RunAdded, Lines: []string{"a\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(31, 35)},
		{Kind: RunRemoved, Lines: []string{"b\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(36, 70)},
		{Kind: RunAdded, Lines: []string{"c\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(71, 99)},
	}

	hunks := segmenter.Segment(script)
	require.NotEmpty(t, hunks)

	for _, hunk := range hunks {
		require.NotEmpty(t, hunk.Runs)
		for i, run := range hunk.Runs {
			if run.Kind != RunUnchanged {
				continue
			}
			if i == 0 || i == len(hunk.Runs)-1 {
				assert.LessOrEqual(t, len(run.Lines), contextSize)
			} else {
				assert.LessOrEqual(t, len(run.Lines), 2*contextSize)
			}
		}
	}
}

func TestSegment_IsPureFunction(t *testing.T) {
	segmenter, err := NewHunkSegmenter(3)
	require.NoError(t, err)

	script := []LineRun{
		{Kind: RunUnchanged, Lines: numberedLines(1, 10)},
		{Kind: RunAdded, Lines: []string{"x\n"}},
		{Kind: RunUnchanged, Lines: numberedLines(11, 40)},
		{Kind: RunRemoved, Lines: []string{"line 20\n"}},
	}

	first := segmenter.Segment(script)
	second := segmenter.Segment(script)

	assert.Equal(t, first, second)
}

func TestDiffFile_EndToEnd(t *testing.T) {
	hunks, err := DiffFile("a\nb\nc\n", "a\nx\nc\n", 3)

	require.NoError(t, err)
	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Runs, 4)
	assert.Equal(t, []string{"b\n"}, hunks[0].Runs[1].Lines)
	assert.Equal(t, []string{"x\n"}, hunks[0].Runs[2].Lines)
}

func TestDiffFile_IdenticalInputYieldsNoHunks(t *testing.T) {
	for _, s := range []string{"", "a\n", "a\nb\nc", strings.Repeat("same\n", 500)} {
		hunks, err := DiffFile(s, s, 3)

		require.NoError(t, err)
		assert.Empty(t, hunks, "input %q", s)
	}
}

func TestDiffFile_NegativeContextRejected(t *testing.T) {
	hunks, err := DiffFile("a\n", "b\n", -2)

	require.Error(t, err)
	assert.Nil(t, hunks)
}
