package dnevnik

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dnevnik-sdk/lib/answers"
)

// ContextHomework is the usual generation context for diary quizzes.
const ContextHomework = "homework"

// QuizAnswer pairs a normalized question with its normalized answer
// key.
type QuizAnswer struct {
	Question            string         `json:"question"`
	QuestionAttachments []string       `json:"question_attachments"`
	Answer              answers.Result `json:"answer"`
}

type testTask struct {
	TestTask struct {
		QuestionElements []answers.QuestionElement `json:"question_elements"`
		Answer           answers.Answer            `json:"answer"`
	} `json:"test_task"`
}

type testPlayerResponse struct {
	TrainingTasks []testTask `json:"training_tasks"`
}

// GetQuizAnswers pulls the answer key for a generated test variant
// through the exam service's guest session. Variants the guest cannot
// see come back as an empty list rather than an error.
func (c *Client) GetQuizAnswers(ctx context.Context, variant int64, contextType string) ([]QuizAnswer, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetQuizAnswers")
	defer span.End()

	if contextType == "" {
		contextType = ContextHomework
	}

	cookie := fmt.Sprintf(
		"auth_token=%s; profile_id=%s; udacl=resh; profile_type=demo; user_id=%s;",
		c.guest.Token, c.guest.ProfileID, c.guest.ProfileID,
	)

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Cookie", cookie).
		SetBody(map[string]any{
			"test_type":               "training_test",
			"generation_context_type": contextType,
			"generation_by_id":        variant,
		}).
		Post(c.exam + "/exam/rest/secure/testplayer/group")
	if err != nil {
		return nil, recordFailure(span, err, "failed to generate test")
	}
	if res.StatusCode() != 200 {
		slog.Debug("guest session rejected for test variant",
			"variant", variant, "status", res.StatusCode())
		return []QuizAnswer{}, nil
	}

	var response testPlayerResponse
	err = json.Unmarshal(res.Body(), &response)
	if err != nil {
		return nil, recordFailure(span, err, "failed to decode test")
	}

	parser := answers.Parser{ExamBaseURL: c.exam + "/webtests/exam"}

	quiz := []QuizAnswer{}
	for _, task := range response.TrainingTasks {
		question := parser.ParseQuestion(task.TestTask.QuestionElements)
		answer, err := parser.ParseAnswer(task.TestTask.Answer)
		if err != nil {
			return nil, recordFailure(span, err, "failed to normalize answer")
		}
		quiz = append(quiz, QuizAnswer{
			Question:            question.Text,
			QuestionAttachments: question.Files,
			Answer:              answer,
		})
	}
	return quiz, nil
}
