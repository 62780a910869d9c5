package model

// Answer is a participant's raw response to one question.
// A nil Value means the question was left unanswered.
type Answer struct {
	QuestionID string   `json:"questionId" bson:"questionId" validate:"required"`
	Value      *float64 `json:"value" bson:"value"`
}

// Answered reports whether the answer carries a raw value
func (a Answer) Answered() bool {
	return a.Value != nil
}

// AnswerOf builds an answered Answer
func AnswerOf(questionID string, value float64) Answer {
	return Answer{QuestionID: questionID, Value: &value}
}

// Draft is the in-progress answer set of a respondent session
type Draft struct {
	SessionID string   `json:"sessionId"`
	Answers   []Answer `json:"answers"`
	Step      int      `json:"step"`
}
