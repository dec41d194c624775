package repo

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/taxonomy"
)

// SeedTopics builds the five canonical topic rows for a subject from the
// taxonomy seed tables.
func SeedTopics(subject string) []Topic {
	topics := make([]Topic, 0, len(taxonomy.Order))
	for _, c := range taxonomy.Order {
		prereqs, _ := json.Marshal(taxonomy.Prerequisites(c))
		topics = append(topics, Topic{
			ID:            uuid.NewString(),
			Name:          string(c),
			Subject:       subject,
			JambWeight:    taxonomy.Weight(c),
			Prerequisites: datatypes.JSON(prereqs),
		})
	}
	return topics
}

// SeedQuestions is a small starter bank so a fresh store can serve a
// diagnostic quiz immediately.
func SeedQuestions() []Question {
	entries := []struct {
		topic      string
		text       string
		options    []string
		answer     string
		difficulty string
	}{
		{
			topic:      "Fractions",
			text:       "Simplify 3/4 + 1/6.",
			options:    []string{"11/12", "4/10", "5/6", "7/12"},
			answer:     "11/12",
			difficulty: "easy",
		},
		{
			topic:      "Number bases",
			text:       "Convert 101101 from base 2 to base 10.",
			options:    []string{"45", "43", "37", "53"},
			answer:     "45",
			difficulty: "easy",
		},
		{
			topic:      "Indices",
			text:       "Evaluate (2^3)^2 / 2^4.",
			options:    []string{"4", "8", "2", "16"},
			answer:     "4",
			difficulty: "medium",
		},
		{
			topic:      "Quadratic equations",
			text:       "Find the roots of x^2 - 5x + 6 = 0.",
			options:    []string{"2 and 3", "-2 and -3", "1 and 6", "-1 and 6"},
			answer:     "2 and 3",
			difficulty: "easy",
		},
		{
			topic:      "Simultaneous equations",
			text:       "Solve x + y = 7 and x - y = 3.",
			options:    []string{"x=5, y=2", "x=4, y=3", "x=6, y=1", "x=3, y=4"},
			answer:     "x=5, y=2",
			difficulty: "easy",
		},
		{
			topic:      "Arithmetic progressions",
			text:       "The 4th term of an AP is 11 and the common difference is 3. What is the first term?",
			options:    []string{"2", "3", "5", "8"},
			answer:     "2",
			difficulty: "medium",
		},
		{
			topic:      "Trigonometrical ratios",
			text:       "If sin x = 3/5 and x is acute, find cos x.",
			options:    []string{"4/5", "3/4", "5/4", "5/3"},
			answer:     "4/5",
			difficulty: "medium",
		},
		{
			topic:      "Circles",
			text:       "The angle subtended at the centre of a circle is twice the angle at the circumference. An arc subtends 70 degrees at the circumference; find the angle at the centre.",
			options:    []string{"140", "35", "70", "110"},
			answer:     "140",
			difficulty: "easy",
		},
		{
			topic:      "Bearings",
			text:       "A ship sails due north then turns to a bearing of 090. Through what angle did it turn?",
			options:    []string{"90", "180", "270", "45"},
			answer:     "90",
			difficulty: "easy",
		},
		{
			topic:      "Differentiation",
			text:       "Differentiate y = 3x^2 + 2x with respect to x.",
			options:    []string{"6x + 2", "3x + 2", "6x", "x + 2"},
			answer:     "6x + 2",
			difficulty: "easy",
		},
		{
			topic:      "Integration",
			text:       "Evaluate the integral of 2x dx.",
			options:    []string{"x^2 + C", "2x^2 + C", "x + C", "x^2/2 + C"},
			answer:     "x^2 + C",
			difficulty: "easy",
		},
		{
			topic:      "Mean",
			text:       "Find the mean of 4, 7, 9, 12, 8.",
			options:    []string{"8", "7", "9", "10"},
			answer:     "8",
			difficulty: "easy",
		},
		{
			topic:      "Probability",
			text:       "A fair die is rolled once. What is the probability of an even number?",
			options:    []string{"1/2", "1/3", "1/6", "2/3"},
			answer:     "1/2",
			difficulty: "easy",
		},
		{
			topic:      "Permutation",
			text:       "In how many ways can 3 people be arranged in a row?",
			options:    []string{"6", "3", "9", "12"},
			answer:     "6",
			difficulty: "easy",
		},
		{
			topic:      "Percentages",
			text:       "A price rises from 200 to 250. What is the percentage increase?",
			options:    []string{"25%", "20%", "50%", "30%"},
			answer:     "25%",
			difficulty: "easy",
		},
	}

	questions := make([]Question, 0, len(entries))
	for _, e := range entries {
		opts, _ := json.Marshal(e.options)
		questions = append(questions, Question{
			ID:         uuid.NewString(),
			Topic:      e.topic,
			Text:       e.text,
			Options:    datatypes.JSON(opts),
			Answer:     e.answer,
			Difficulty: e.difficulty,
		})
	}
	return questions
}
