// Package answers normalizes the test player's question and answer
// payloads into a small unified shape: a question becomes plain text
// plus attachment urls, an answer becomes a tagged Result.
package answers

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"dnevnik-sdk/lib/textutil"
)

// base origin prepended to file attachments referenced by options
const DefaultExamBaseURL = "https://uchebnik.mos.ru/webtests/exam"

var (
	ErrOptionNotFound   = errors.New("option id not found in option set")
	ErrPositionNotFound = errors.New("position id not found in answer positions")
)

// Parser carries the bits of normalization that are deployment
// configuration rather than payload data.
type Parser struct {
	// origin for file-attachment urls; rotation of the content host
	// must not require a rebuild
	ExamBaseURL string
}

var Default = Parser{ExamBaseURL: DefaultExamBaseURL}

// ParseQuestion folds the ordered element list into its normalized
// form. Unknown element kinds are logged and skipped; this never
// fails. If several text elements appear, the last one wins.
func (p Parser) ParseQuestion(elements []QuestionElement) Question {
	result := Question{}
	for _, el := range elements {
		switch el.Type {
		case ElementText:
			result.Text = p.ResolveText(el.Text, el.Content)
		case ElementAtomic:
			result.Files = append(result.Files, el.RelativeURL)
		case ElementFile:
			if el.File != nil {
				result.Files = append(result.Files, el.File.RelativeURL)
			}
		default:
			slog.Debug("unrecognized question element kind", "kind", el.Type)
		}
	}
	return result
}

// ParseAnswer dispatches on the answer kind and resolves the right
// answer against the option set. A reference to an option id absent
// from the set fails the whole call with ErrOptionNotFound, except on
// the table path, which degrades to whatever it could recover. An
// unrecognized kind is logged and yields the zero Result.
func (p Parser) ParseAnswer(answer Answer) (Result, error) {
	idx := indexOptions(answer.Options)

	switch answer.Type {
	case KindNumber:
		return Result{Type: TypeNumber, Number: answer.RightAnswer.Number}, nil

	case KindSingle:
		text, err := p.resolveOption(idx, answer.RightAnswer.ID)
		if err != nil {
			return Result{}, err
		}
		return Result{Type: TypeText, Text: text}, nil

	case KindMatch:
		m := make(map[string][]string, len(answer.RightAnswer.Match))
		for key, ids := range answer.RightAnswer.Match {
			resolvedKey, err := p.resolveOption(idx, ID(key))
			if err != nil {
				return Result{}, err
			}
			values := make([]string, 0, len(ids))
			for _, id := range ids {
				v, err := p.resolveOption(idx, id)
				if err != nil {
					return Result{}, err
				}
				values = append(values, v)
			}
			m[resolvedKey] = values
		}
		return Result{Type: TypeMap, Map: m}, nil

	case KindMultiple:
		texts, err := p.resolveOptions(idx, answer.RightAnswer.IDs)
		if err != nil {
			return Result{}, err
		}
		return Result{Type: TypeTexts, Texts: texts}, nil

	case KindFree:
		return Result{Type: TypeFree}, nil

	case KindGroups:
		m := make(map[string][]string, len(answer.RightAnswer.Groups))
		for _, group := range answer.RightAnswer.Groups {
			key, err := p.resolveOption(idx, group.GroupID)
			if err != nil {
				return Result{}, err
			}
			values, err := p.resolveOptions(idx, group.OptionIDs)
			if err != nil {
				return Result{}, err
			}
			m[key] = values
		}
		return Result{Type: TypeMap, Map: m}, nil

	case KindString:
		return Result{Type: TypeText, Text: answer.RightAnswer.String}, nil

	case KindTable:
		return p.parseTableAnswer(answer), nil

	case KindOrder:
		texts, err := p.resolveOptions(idx, answer.RightAnswer.IDsOrder)
		if err != nil {
			return Result{}, err
		}
		return Result{Type: TypeTexts, Texts: texts}, nil

	case KindInlineSingle:
		texts := make([]string, 0, len(answer.RightAnswer.TextPositionAnswer))
		for _, choice := range answer.RightAnswer.TextPositionAnswer {
			position, ok := findPosition(answer.TextPosition, choice.PositionID)
			if !ok {
				return Result{}, fmt.Errorf("%w: %q", ErrPositionNotFound, choice.PositionID)
			}
			// resolved against that position's own option set, not
			// the answer-wide one
			text, err := p.resolveOption(indexOptions(position.Options), choice.ID)
			if err != nil {
				return Result{}, err
			}
			texts = append(texts, text)
		}
		return Result{Type: TypeTexts, Texts: texts}, nil

	default:
		slog.Debug("unrecognized answer kind", "kind", answer.Type)
		return Result{}, nil
	}
}

// ParseOption resolves a single option to its display string: the
// option's resolved text, then its host-prefixed file attachments,
// then its raw atomic attachments, space separated.
func (p Parser) ParseOption(options []Option, id ID) (string, error) {
	return p.resolveOption(indexOptions(options), id)
}

func indexOptions(options []Option) map[ID]*Option {
	idx := make(map[ID]*Option, len(options))
	for i := range options {
		opt := &options[i]
		if _, exists := idx[opt.ID]; exists {
			// first match wins, as the upstream lookup did
			continue
		}
		idx[opt.ID] = opt
	}
	return idx
}

func (p Parser) resolveOption(idx map[ID]*Option, id ID) (string, error) {
	opt, ok := idx[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrOptionNotFound, id)
	}

	var files []string
	var atomics []string
	for _, frag := range opt.Content {
		switch frag.Type {
		case ElementFile:
			if frag.File != nil {
				files = append(files, p.ExamBaseURL+frag.File.RelativeURL)
			}
		case ElementAtomic:
			atomics = append(atomics, frag.RelativeURL)
		}
	}

	return textutil.JoinNonEmpty(
		strings.TrimSpace(p.ResolveText(opt.Text, opt.Content)),
		strings.Join(files, " "),
		strings.Join(atomics, " "),
	), nil
}

func (p Parser) resolveOptions(idx map[ID]*Option, ids []ID) ([]string, error) {
	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		t, err := p.resolveOption(idx, id)
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, nil
}

// ResolveText splices rendered math fragments into the base text,
// each wrapped with one leading and one trailing space. Fragment
// positions were authored against the original unspliced text, so
// splices run in position order with a cumulative offset that grows
// by each inserted length.
func (p Parser) ResolveText(text string, content []Fragment) string {
	var math []Fragment
	for _, frag := range content {
		if frag.Type == ElementMath {
			math = append(math, frag)
		}
	}
	sort.SliceStable(math, func(i, j int) bool {
		return math[i].Position < math[j].Position
	})

	runes := []rune(text)
	offset := 0
	for _, frag := range math {
		inserted := []rune(" " + LatexToUnicode(frag.Content) + " ")
		runes = insertRunes(runes, frag.Position+offset, inserted)
		offset += len(inserted)
	}

	return textutil.StripSoftHyphens(string(runes))
}

func insertRunes(dst []rune, at int, ins []rune) []rune {
	if at < 0 {
		at = 0
	}
	if at > len(dst) {
		at = len(dst)
	}
	out := make([]rune, 0, len(dst)+len(ins))
	out = append(out, dst[:at]...)
	out = append(out, ins...)
	out = append(out, dst[at:]...)
	return out
}

// parseTableAnswer merges any values already present in the first
// option's nested table with the right answer's values per cell.
// Structural oddities (no options, no nested table, missing cell) are
// logged and degrade to whatever was recoverable; the overall call
// still returns a map.
func (p Parser) parseTableAnswer(answer Answer) Result {
	var table *Table
	if len(answer.Options) > 0 && len(answer.Options[0].Content) > 0 {
		table = answer.Options[0].Content[0].Table
	}
	if table == nil {
		slog.Debug("table answer without a nested option table", "options", len(answer.Options))
	}

	m := make(map[string][]string, len(answer.RightAnswer.Cells))
	for cellID, rightValues := range answer.RightAnswer.Cells {
		var values []string
		if table != nil {
			values = append(values, table.Cells[cellID]...)
		}
		values = append(values, rightValues...)
		m[cellID] = values
	}
	return Result{Type: TypeMap, Map: m}
}

func findPosition(positions []PositionOptions, id ID) (PositionOptions, bool) {
	for _, pos := range positions {
		if pos.PositionID == id {
			return pos, true
		}
	}
	return PositionOptions{}, false
}
