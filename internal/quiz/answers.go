package quiz

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/mitchellh/mapstructure"

	"wine-trip-planner/internal/models"
)

var (
	// ErrUnknownQuestion is returned when an answer targets a question that does not exist
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrUnknownOption is returned when a selected value is not an option of the question
	ErrUnknownOption = errors.New("unknown option")
)

// Decode converts the loose wire form (question id -> string or list of strings)
// into typed answers. A bare string given for a multi-select becomes a one-element list.
// Keys that are not question ids are ignored.
func Decode(raw map[string]interface{}) (models.QuizAnswers, error) {
	var answers models.QuizAnswers
	if len(raw) == 0 {
		return answers, nil
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &answers,
		Metadata:         &md,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return answers, fmt.Errorf("failed to create answer decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return models.QuizAnswers{}, fmt.Errorf("failed to decode answers: %w", err)
	}

	if len(md.Unused) > 0 {
		log.Printf("[QUIZ] Ignoring unknown answer keys: %v", md.Unused)
	}

	return answers, nil
}

// Encode returns the wire form of the answers, omitting unanswered questions
func Encode(answers models.QuizAnswers) map[string]interface{} {
	raw := make(map[string]interface{})
	if answers.Experience != "" {
		raw[QuestionExperience] = answers.Experience
	}
	if len(answers.WineTypes) > 0 {
		raw[QuestionWineTypes] = answers.WineTypes
	}
	if answers.Duration != "" {
		raw[QuestionDuration] = answers.Duration
	}
	if answers.TravelStyle != "" {
		raw[QuestionTravelStyle] = answers.TravelStyle
	}
	if len(answers.Regions) > 0 {
		raw[QuestionRegions] = answers.Regions
	}
	if len(answers.Activities) > 0 {
		raw[QuestionActivities] = answers.Activities
	}
	return raw
}

// Select applies one click on an option: single-choice questions take the value,
// multi-choice questions toggle it in or out of the selection.
func Select(answers models.QuizAnswers, questionID, value string) (models.QuizAnswers, error) {
	q, ok := Lookup(questionID)
	if !ok {
		return answers, fmt.Errorf("%s: %w", questionID, ErrUnknownQuestion)
	}
	if !q.HasOption(value) {
		return answers, fmt.Errorf("%s=%s: %w", questionID, value, ErrUnknownOption)
	}

	out := answers.Clone()
	switch questionID {
	case QuestionExperience:
		out.Experience = value
	case QuestionDuration:
		out.Duration = value
	case QuestionTravelStyle:
		out.TravelStyle = value
	case QuestionWineTypes:
		out.WineTypes = toggle(out.WineTypes, value)
	case QuestionRegions:
		out.Regions = toggle(out.Regions, value)
	case QuestionActivities:
		out.Activities = toggle(out.Activities, value)
	}
	return out, nil
}

func toggle(selected []string, value string) []string {
	if i := slices.Index(selected, value); i >= 0 {
		return slices.Delete(selected, i, i+1)
	}
	return append(selected, value)
}

// Answered counts the questions that have a non-empty answer
func Answered(answers models.QuizAnswers) int {
	return len(Encode(answers))
}
