package quiz

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

// Response is a single answered question within a submission. Immutable once
// submitted; Confidence is 0 until supplied by the student or inferred.
type Response struct {
	ID               string `json:"id"`
	Topic            string `json:"topic"`
	StudentAnswer    string `json:"student_answer"`
	CorrectAnswer    string `json:"correct_answer"`
	IsCorrect        bool   `json:"is_correct"`
	Confidence       int    `json:"confidence,omitempty"`
	Explanation      string `json:"explanation"`
	TimeSpentSeconds int    `json:"time_spent_seconds,omitempty"`
}

// HasConfidence reports whether a usable confidence score is present.
func (r Response) HasConfidence() bool {
	return r.Confidence >= 1 && r.Confidence <= 5
}

// Submission is one completed diagnostic quiz, consumed exactly once by the
// analysis pipeline.
type Submission struct {
	Subject          string     `json:"subject"`
	TotalQuestions   int        `json:"total_questions"`
	TimeTakenMinutes float64    `json:"time_taken"`
	Responses        []Response `json:"responses"`
}

// Validate checks the submission shape before it enters the pipeline.
func (s *Submission) Validate() error {
	if s.TotalQuestions <= 0 {
		return errors.New("total_questions must be positive")
	}
	if s.TimeTakenMinutes <= 0 {
		return errors.New("time_taken must be positive")
	}
	if len(s.Responses) == 0 {
		return errors.New("at least one response is required")
	}
	return nil
}

// Normalize trims free-text fields and defaults the subject. Called before
// fingerprinting so that cosmetically different submissions share a cache key.
func (s *Submission) Normalize() {
	if strings.TrimSpace(s.Subject) == "" {
		s.Subject = "Mathematics"
	}
	s.Subject = strings.TrimSpace(s.Subject)
	for i := range s.Responses {
		r := &s.Responses[i]
		r.Topic = strings.TrimSpace(r.Topic)
		r.StudentAnswer = strings.TrimSpace(r.StudentAnswer)
		r.CorrectAnswer = strings.TrimSpace(r.CorrectAnswer)
		r.Explanation = strings.TrimSpace(r.Explanation)
	}
}

// Fingerprint returns a stable content hash of the submission. Struct field
// order makes json.Marshal deterministic, so identical submissions always
// hash identically.
func (s *Submission) Fingerprint() string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshal of a plain struct cannot fail; keep the signature simple.
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// CorrectCount returns the number of correct responses.
func (s *Submission) CorrectCount() int {
	n := 0
	for _, r := range s.Responses {
		if r.IsCorrect {
			n++
		}
	}
	return n
}

// Accuracy returns the overall accuracy percentage in [0,100].
func (s *Submission) Accuracy() float64 {
	if len(s.Responses) == 0 {
		return 0
	}
	return float64(s.CorrectCount()) / float64(len(s.Responses)) * 100.0
}
