package answers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseQuestion(t *testing.T) {
	q := Default.ParseQuestion([]QuestionElement{
		{Type: ElementAtomic, RelativeURL: "/img/1.png"},
		{Type: ElementText, Text: "Solve the equation"},
		{Type: "content/video", RelativeURL: "/ignored.mp4"},
		{Type: ElementFile, File: &File{RelativeURL: "/files/task.pdf"}},
	})

	require.Equal(t, "Solve the equation", q.Text)
	require.Equal(t, []string{"/img/1.png", "/files/task.pdf"}, q.Files)
}

func TestParseQuestionLastTextWins(t *testing.T) {
	q := Default.ParseQuestion([]QuestionElement{
		{Type: ElementText, Text: "first"},
		{Type: ElementText, Text: "second"},
	})
	require.Equal(t, "second", q.Text)
}

func TestParseQuestionEmpty(t *testing.T) {
	q := Default.ParseQuestion(nil)
	require.Equal(t, Question{}, q)
}

func TestResolveTextNoMath(t *testing.T) {
	text, err := Default.ParseOption([]Option{
		{ID: "1", Text: "пере­мен­ная x"},
	}, "1")
	require.NoError(t, err)
	require.Equal(t, "переменная x", text)
}

func TestResolveTextSpliceOffsets(t *testing.T) {
	// positions are counted against the original unspliced text: the
	// second fragment's position 2 means "after b in ab", no matter
	// how much the first splice grew the string
	base := "ab"
	text := Default.ResolveText(base, []Fragment{
		{Type: ElementMath, Content: `\alpha`, Position: 1},
		{Type: ElementMath, Content: `\beta`, Position: 2},
	})
	require.Equal(t, "a α b β ", text)

	// each inserted fragment is wrapped with one leading and one
	// trailing space, and the total length grows by exactly the
	// inserted lengths
	inserted := len([]rune(" α ")) + len([]rune(" β "))
	require.Len(t, []rune(text), len([]rune(base))+inserted)
}

func TestResolveTextOutOfRangePosition(t *testing.T) {
	text := Default.ResolveText("x", []Fragment{
		{Type: ElementMath, Content: `\pi`, Position: 50},
	})
	require.Equal(t, "x π ", text)
}

func TestParseOptionTrimsSplicedEdges(t *testing.T) {
	text, err := Default.ParseOption([]Option{
		{
			ID:   "1",
			Text: "x=",
			Content: []Fragment{
				{Type: ElementMath, Content: `\pi`, Position: 2},
			},
		},
	}, "1")
	require.NoError(t, err)
	require.Equal(t, "x= π", text)
}

func TestParseOptionAttachments(t *testing.T) {
	options := []Option{
		{
			ID:   "42",
			Text: "see attachment",
			Content: []Fragment{
				{Type: ElementFile, File: &File{RelativeURL: "/files/a.png"}},
				{Type: ElementFile, File: &File{RelativeURL: "/files/b.png"}},
				{Type: ElementAtomic, RelativeURL: "/atomic/c.png"},
			},
		},
	}

	text, err := Default.ParseOption(options, "42")
	require.NoError(t, err)
	require.Equal(
		t,
		"see attachment "+
			DefaultExamBaseURL+"/files/a.png "+
			DefaultExamBaseURL+"/files/b.png "+
			"/atomic/c.png",
		text,
	)
	require.NotContains(t, text, "  ")
}

func TestParseOptionNoDoubledSeparators(t *testing.T) {
	cases := []Option{
		{ID: "1", Text: "text only"},
		{ID: "1", Text: "one file", Content: []Fragment{
			{Type: ElementFile, File: &File{RelativeURL: "/f.png"}},
		}},
		{ID: "1", Text: "one atomic", Content: []Fragment{
			{Type: ElementAtomic, RelativeURL: "/a.png"},
		}},
		{ID: "1", Text: "", Content: []Fragment{
			{Type: ElementAtomic, RelativeURL: "/a.png"},
		}},
	}

	for _, opt := range cases {
		text, err := Default.ParseOption([]Option{opt}, "1")
		require.NoError(t, err)
		require.NotContains(t, text, "  ")
		require.Equal(t, strings.TrimSpace(text), text)
	}
}

func TestParseOptionMissingId(t *testing.T) {
	_, err := Default.ParseOption([]Option{{ID: "1", Text: "a"}}, "2")
	require.ErrorIs(t, err, ErrOptionNotFound)
}

func TestParseAnswerNumber(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type:        KindNumber,
		RightAnswer: RightAnswer{Number: 42.5},
	})
	require.NoError(t, err)
	require.Equal(t, Result{Type: TypeNumber, Number: 42.5}, result)
}

func TestParseAnswerSingle(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindSingle,
		Options: []Option{
			{ID: "1", Text: "wrong"},
			{ID: "2", Text: "right"},
		},
		RightAnswer: RightAnswer{ID: "2"},
	})
	require.NoError(t, err)
	require.Equal(t, Result{Type: TypeText, Text: "right"}, result)
}

func TestParseAnswerMatch(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindMatch,
		Options: []Option{
			{ID: "k1", Text: "Left"},
			{ID: "a1", Text: "Right1"},
			{ID: "a2", Text: "Right2"},
		},
		RightAnswer: RightAnswer{
			Match: map[string][]ID{"k1": {"a1", "a2"}},
		},
	})
	require.NoError(t, err)
	diff := cmp.Diff(Result{
		Type: TypeMap,
		Map:  map[string][]string{"Left": {"Right1", "Right2"}},
	}, result)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestParseAnswerMultiplePreservesOrder(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindMultiple,
		Options: []Option{
			{ID: "1", Text: "a"},
			{ID: "2", Text: "b"},
			{ID: "3", Text: "c"},
		},
		RightAnswer: RightAnswer{IDs: []ID{"3", "1"}},
	})
	require.NoError(t, err)
	require.Equal(t, Result{Type: TypeTexts, Texts: []string{"c", "a"}}, result)
}

func TestParseAnswerFree(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindFree,
		// payload contents must not leak into a free result
		RightAnswer: RightAnswer{Number: 7, String: "graded by a human"},
	})
	require.NoError(t, err)
	require.Equal(t, Result{Type: TypeFree}, result)
}

func TestParseAnswerGroups(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindGroups,
		Options: []Option{
			{ID: "g1", Text: "Mammals"},
			{ID: "m1", Text: "Cat"},
			{ID: "m2", Text: "Dog"},
		},
		RightAnswer: RightAnswer{
			Groups: []Group{{GroupID: "g1", OptionIDs: []ID{"m1", "m2"}}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, Result{
		Type: TypeMap,
		Map:  map[string][]string{"Mammals": {"Cat", "Dog"}},
	}, result)
}

func TestParseAnswerString(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type:        KindString,
		RightAnswer: RightAnswer{String: "verbatim"},
	})
	require.NoError(t, err)
	require.Equal(t, Result{Type: TypeText, Text: "verbatim"}, result)
}

func TestParseAnswerTable(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindTable,
		Options: []Option{
			{
				ID: "1",
				Content: []Fragment{
					{Type: "content/table", Table: &Table{
						Cells: map[string][]string{"c1": {"pre"}},
					}},
				},
			},
		},
		RightAnswer: RightAnswer{
			Cells: map[string][]string{
				"c1": {"v1"},
				"c2": {"v2", "v3"},
			},
		},
	})
	require.NoError(t, err)
	diff := cmp.Diff(Result{
		Type: TypeMap,
		Map: map[string][]string{
			// pre-existing table values come before the right answer's
			"c1": {"pre", "v1"},
			// no nested cell for c2: only the right answer's values
			"c2": {"v2", "v3"},
		},
	}, result)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestParseAnswerTableWithoutOptions(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindTable,
		RightAnswer: RightAnswer{
			Cells: map[string][]string{"c1": {"v1"}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, Result{
		Type: TypeMap,
		Map:  map[string][]string{"c1": {"v1"}},
	}, result)
}

func TestParseAnswerOrder(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindOrder,
		Options: []Option{
			{ID: "1", Text: "first"},
			{ID: "2", Text: "second"},
		},
		RightAnswer: RightAnswer{IDsOrder: []ID{"2", "1"}},
	})
	require.NoError(t, err)
	require.Equal(t, Result{Type: TypeTexts, Texts: []string{"second", "first"}}, result)
}

func TestParseAnswerInlineSingle(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{
		Type: KindInlineSingle,
		// the answer-wide option set must not be consulted
		Options: []Option{{ID: "x", Text: "global"}},
		TextPosition: []PositionOptions{
			{PositionID: "p1", Options: []Option{{ID: "x", Text: "local one"}}},
			{PositionID: "p2", Options: []Option{{ID: "y", Text: "local two"}}},
		},
		RightAnswer: RightAnswer{
			TextPositionAnswer: []PositionChoice{
				{PositionID: "p1", ID: "x"},
				{PositionID: "p2", ID: "y"},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, Result{Type: TypeTexts, Texts: []string{"local one", "local two"}}, result)
}

func TestParseAnswerInlineSingleMissingPosition(t *testing.T) {
	_, err := Default.ParseAnswer(Answer{
		Type: KindInlineSingle,
		RightAnswer: RightAnswer{
			TextPositionAnswer: []PositionChoice{{PositionID: "p9", ID: "x"}},
		},
	})
	require.ErrorIs(t, err, ErrPositionNotFound)
}

func TestParseAnswerUnknownKind(t *testing.T) {
	result, err := Default.ParseAnswer(Answer{Type: "answer/telepathy"})
	require.NoError(t, err)
	require.Equal(t, Result{}, result)
	require.Empty(t, result.Type)
}

func TestParseAnswerMissingOptionFaults(t *testing.T) {
	for _, kind := range []string{KindSingle, KindMultiple, KindOrder} {
		answer := Answer{
			Type:    kind,
			Options: []Option{{ID: "1", Text: "a"}},
			RightAnswer: RightAnswer{
				ID:       "missing",
				IDs:      []ID{"missing"},
				IDsOrder: []ID{"missing"},
			},
		}
		_, err := Default.ParseAnswer(answer)
		require.ErrorIs(t, err, ErrOptionNotFound, kind)
	}
}

func TestAnswerDecodeNumericIds(t *testing.T) {
	raw := `{
		"type": "answer/multiple",
		"options": [
			{"id": 101, "text": "a", "content": []},
			{"id": 102, "text": "b", "content": []}
		],
		"right_answer": {"ids": [102, 101]}
	}`
	var answer Answer
	require.NoError(t, json.Unmarshal([]byte(raw), &answer))

	result, err := Default.ParseAnswer(answer)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, result.Texts)
}
