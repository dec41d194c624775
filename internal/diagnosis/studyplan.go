package diagnosis

import (
	"fmt"
	"strings"
)

// Study-plan generation is deterministic: the schedule is derived entirely
// from the weak-topic list, so identical inputs always produce identical
// plans (and therefore identical cache entries).

const defaultPlanWeeks = 6

// GenerateStudyPlan builds a weekly schedule that works through weakTopics in
// order, front-loading study hours and closing with a full exam simulation.
func GenerateStudyPlan(weakTopics []string, weeks int) StudyPlan {
	if weeks <= 0 {
		weeks = defaultPlanWeeks
	}

	schedule := make([]WeekPlan, 0, weeks)
	for week := 1; week <= weeks; week++ {
		var focus, reviewTarget string
		switch {
		case week <= len(weakTopics):
			topic := weakTopics[week-1]
			focus = fmt.Sprintf("%s: Core Concepts & Practice", topic)
			reviewTarget = topic
		case week == weeks:
			focus = "Full Exam Simulation & Review"
			reviewTarget = "all topics"
		default:
			focus = "Review & Advanced Topics"
			reviewTarget = "all topics"
		}

		hours := 6
		if week <= 3 {
			hours = 8
		}

		checkpoint := "Review notes"
		if week%2 == 0 {
			checkpoint = "Take mini-quiz"
		}

		schedule = append(schedule, WeekPlan{
			Week:       week,
			Focus:      focus,
			StudyHours: hours,
			KeyActivities: []string{
				fmt.Sprintf("Review %s", reviewTarget),
				"Complete practice problems",
				checkpoint,
			},
		})
	}

	return StudyPlan{WeeklySchedule: schedule}
}

// AdjustPlan rebuilds a plan after progress: weeks dedicated to completed
// topics are freed and newly surfaced weak topics take their place, keeping
// the original length.
func AdjustPlan(plan StudyPlan, completedTopics, newWeakTopics []string) StudyPlan {
	completed := make(map[string]bool, len(completedTopics))
	for _, t := range completedTopics {
		completed[normalizeTopic(t)] = true
	}

	var remaining []string
	seen := make(map[string]bool)
	for _, wp := range plan.WeeklySchedule {
		topic := focusTopic(wp.Focus)
		if topic == "" {
			continue
		}
		key := normalizeTopic(topic)
		if completed[key] || seen[key] {
			continue
		}
		seen[key] = true
		remaining = append(remaining, topic)
	}
	for _, t := range newWeakTopics {
		key := normalizeTopic(t)
		if completed[key] || seen[key] {
			continue
		}
		seen[key] = true
		remaining = append(remaining, t)
	}

	weeks := len(plan.WeeklySchedule)
	if weeks == 0 {
		weeks = defaultPlanWeeks
	}
	return GenerateStudyPlan(remaining, weeks)
}

// focusTopic extracts the topic name from a week focus like
// "Algebra: Core Concepts & Practice". Returns "" for generic review weeks.
func focusTopic(focus string) string {
	i := strings.Index(focus, ":")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(focus[:i])
}

func normalizeTopic(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
