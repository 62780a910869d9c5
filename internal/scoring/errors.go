package scoring

import "fmt"

// Error kinds reported to callers
const (
	KindUnknownQuestion = "unknown_question"
	KindOutOfRange      = "out_of_range_answer"
	KindDuplicateAnswer = "duplicate_answer"
	KindInvalidScale    = "invalid_scale"
)

// UnknownQuestionError is returned when an answer references a question
// that is not in the catalog
type UnknownQuestionError struct {
	QuestionID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("unknown question id %q", e.QuestionID)
}

func (e *UnknownQuestionError) Kind() string { return KindUnknownQuestion }

// Question returns the offending question id
func (e *UnknownQuestionError) Question() string { return e.QuestionID }

// OutOfRangeAnswerError is returned when a raw value falls outside its question's scale
type OutOfRangeAnswerError struct {
	QuestionID string
	Value      float64
	Min, Max   int
}

func (e *OutOfRangeAnswerError) Error() string {
	return fmt.Sprintf("answer %v for question %q is outside [%d,%d]", e.Value, e.QuestionID, e.Min, e.Max)
}

func (e *OutOfRangeAnswerError) Kind() string { return KindOutOfRange }

// Question returns the offending question id
func (e *OutOfRangeAnswerError) Question() string { return e.QuestionID }

// DuplicateAnswerError is returned when the same question is answered twice
type DuplicateAnswerError struct {
	QuestionID string
}

func (e *DuplicateAnswerError) Error() string {
	return fmt.Sprintf("question %q answered more than once", e.QuestionID)
}

func (e *DuplicateAnswerError) Kind() string { return KindDuplicateAnswer }

// Question returns the offending question id
func (e *DuplicateAnswerError) Question() string { return e.QuestionID }

// InvalidScaleError is returned when a question's scale cannot be normalized
type InvalidScaleError struct {
	QuestionID string
	Min, Max   int
}

func (e *InvalidScaleError) Error() string {
	return fmt.Sprintf("question %q has invalid scale [%d,%d]", e.QuestionID, e.Min, e.Max)
}

func (e *InvalidScaleError) Kind() string { return KindInvalidScale }

// Question returns the offending question id
func (e *InvalidScaleError) Question() string { return e.QuestionID }
