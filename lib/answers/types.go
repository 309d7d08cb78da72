package answers

import (
	"bytes"
	"encoding/json"
)

// question element / fragment kinds as the test-delivery api sends them
const (
	ElementText   = "content/text"
	ElementAtomic = "content/atomic"
	ElementFile   = "content/file"
	ElementMath   = "content/math"
)

// answer kinds
const (
	KindNumber       = "answer/number"
	KindSingle       = "answer/single"
	KindMatch        = "answer/match"
	KindMultiple     = "answer/multiple"
	KindFree         = "answer/free"
	KindGroups       = "answer/groups"
	KindString       = "answer/string"
	KindTable        = "answer/table"
	KindOrder        = "answer/order"
	KindInlineSingle = "answer/inline/choice/single"
)

// ID is an option identifier. The api is not consistent about whether
// ids arrive as json strings or numbers (match keys are always object
// keys, option ids are sometimes numeric), so both decode into the
// same string form and compare equal.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	*id = ID(data)
	return nil
}

type File struct {
	RelativeURL string `json:"relative_url"`
}

// Fragment is one structured piece of an option's or question's rich
// text. Which fields are set depends on Type.
type Fragment struct {
	Type string `json:"type"`
	// latex source, only for content/math
	Content string `json:"content"`
	// character offset into the base text where rendered math is
	// inlined, counted against the original unspliced text
	Position    int    `json:"position"`
	RelativeURL string `json:"relative_url"`
	File        *File  `json:"file"`
	Table       *Table `json:"table"`
}

type Table struct {
	Cells map[string][]string `json:"cells"`
}

type Option struct {
	ID      ID         `json:"id"`
	Text    string     `json:"text"`
	Content []Fragment `json:"content"`
}

type QuestionElement struct {
	Type        string     `json:"type"`
	Text        string     `json:"text"`
	Content     []Fragment `json:"content"`
	RelativeURL string     `json:"relative_url"`
	File        *File      `json:"file"`
}

// Question is the normalized form of a question element sequence.
type Question struct {
	Text  string   `json:"text"`
	Files []string `json:"files"`
}

type Group struct {
	GroupID   ID   `json:"group_id"`
	OptionIDs []ID `json:"options_ids"`
}

type PositionOptions struct {
	PositionID ID       `json:"position_id"`
	Options    []Option `json:"options"`
}

type PositionChoice struct {
	PositionID ID `json:"position_id"`
	ID         ID `json:"id"`
}

// RightAnswer is the correct-answer payload; its populated fields
// depend on the answer kind.
type RightAnswer struct {
	Number             float64             `json:"number"`
	ID                 ID                  `json:"id"`
	String             string              `json:"string"`
	Match              map[string][]ID     `json:"match"`
	IDs                []ID                `json:"ids"`
	IDsOrder           []ID                `json:"ids_order"`
	Groups             []Group             `json:"groups"`
	Cells              map[string][]string `json:"cells"`
	TextPositionAnswer []PositionChoice    `json:"text_position_answer"`
}

type Answer struct {
	Type         string            `json:"type"`
	Options      []Option          `json:"options"`
	RightAnswer  RightAnswer       `json:"right_answer"`
	TextPosition []PositionOptions `json:"text_position"`
}

type ResultType string

const (
	TypeNumber ResultType = "number"
	TypeText   ResultType = "text"
	TypeTexts  ResultType = "texts"
	TypeMap    ResultType = "map"
	TypeFree   ResultType = "free"
)

// Result is the normalized answer. Type discriminates which payload
// field is populated; an unrecognized answer kind yields the zero
// Result with no Type set.
type Result struct {
	Type   ResultType          `json:"type,omitempty"`
	Number float64             `json:"number,omitempty"`
	Text   string              `json:"text,omitempty"`
	Texts  []string            `json:"texts,omitempty"`
	Map    map[string][]string `json:"map,omitempty"`
}
