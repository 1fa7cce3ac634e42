package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fittrack/internal/domain"
)

// ErrMalformedResponse is returned when the assistant reply lacks the
// fenced JSON block or the parsed plan misses a required field.
var ErrMalformedResponse = errors.New("malformed assistant response")

// GeneratedPlan is the JSON schema the assistant is asked to produce.
type GeneratedPlan struct {
	WeeklyWorkoutSchedule map[string][]string `json:"weeklyWorkoutSchedule"`
	ExerciseDescriptions  map[string]string   `json:"exerciseDescriptions"`
	SafetyAdvice          []string            `json:"safetyAdvice"`
	ProgressSuggestions   []string            `json:"progressTrackingSuggestions"`
}

// PlanRequest carries the per-generation knobs the user picks on top
// of their stored profile.
type PlanRequest struct {
	Duration             int    `json:"duration"` // minutes
	IncludeWarmup        bool   `json:"includeWarmup"`
	IncludeCooldown      bool   `json:"includeCooldown"`
	FocusArea            string `json:"focusArea"`
	RecentChanges        string `json:"recentChanges"`
	SpecificRequirements string `json:"specificRequirements"`
}

var fencedJSON = regexp.MustCompile("```json\\s*\\n([\\s\\S]*?)\\n\\s*```")

// BuildPlanPrompt renders the plan generation prompt from the user's
// profile and the request knobs.
func BuildPlanPrompt(profile *domain.UserProfile, req PlanRequest) string {
	var b strings.Builder
	b.WriteString("Create a personalized workout plan based on the following information:\n\n")

	b.WriteString("Health and Safety Considerations:\n")
	fmt.Fprintf(&b, "- Medical Conditions: %s\n", listOrNone(profile.MedicalConditions))
	fmt.Fprintf(&b, "- Injuries or Limitations: %s\n", orDefault(profile.Injuries, "None"))
	fmt.Fprintf(&b, "- Recent Changes: %s\n\n", orDefault(req.RecentChanges, "None"))

	fmt.Fprintf(&b, "Current Fitness Level: %s\n\n", orDefault(profile.FitnessLevel, "Not specified"))

	b.WriteString("Exercise Preferences:\n")
	fmt.Fprintf(&b, "- Likes: %s\n", listOrNone(profile.ExercisePreferences))
	fmt.Fprintf(&b, "- Dislikes: %s\n\n", orDefault(profile.ExerciseDislikes, "None specified"))

	b.WriteString("Fitness Goals:\n")
	fmt.Fprintf(&b, "- Short-term: %s\n", orDefault(profile.ShortTermGoal, "Not specified"))
	fmt.Fprintf(&b, "- Long-term: %s\n\n", orDefault(profile.LongTermGoal, "Not specified"))

	b.WriteString("Additional Information:\n")
	fmt.Fprintf(&b, "- Workout Duration: %d minutes\n", req.Duration)
	fmt.Fprintf(&b, "- Include Warm-up: %s\n", yesNo(req.IncludeWarmup))
	fmt.Fprintf(&b, "- Include Cool-down: %s\n", yesNo(req.IncludeCooldown))
	fmt.Fprintf(&b, "- Focus Area: %s\n", orDefault(req.FocusArea, "Not specified"))
	fmt.Fprintf(&b, "- Specific Requirements: %s\n\n", orDefault(req.SpecificRequirements, "None"))

	b.WriteString(`Please provide a personalized workout plan following the ACSM guidelines. The response should be in valid JSON format inside a fenced ` + "```json" + ` block with the following structure:
{
  "weeklyWorkoutSchedule": {
    "Monday": ["Exercise 1", "Exercise 2"],
    "Tuesday": ["Exercise 1", "Exercise 2"]
  },
  "exerciseDescriptions": {
    "Exercise 1": "Description",
    "Exercise 2": "Description"
  },
  "safetyAdvice": ["Advice 1", "Advice 2"],
  "progressTrackingSuggestions": ["Suggestion 1", "Suggestion 2"]
}`)

	return b.String()
}

// ExtractPlan pulls the fenced JSON block out of the assistant's
// free-form reply and validates the required top-level fields.
func ExtractPlan(raw string) (*GeneratedPlan, error) {
	match := fencedJSON.FindStringSubmatch(raw)
	if match == nil {
		return nil, fmt.Errorf("%w: no fenced JSON block in reply", ErrMalformedResponse)
	}

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(match[1]), &plan); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}

	switch {
	case plan.WeeklyWorkoutSchedule == nil:
		return nil, fmt.Errorf("%w: missing weeklyWorkoutSchedule", ErrMalformedResponse)
	case plan.ExerciseDescriptions == nil:
		return nil, fmt.Errorf("%w: missing exerciseDescriptions", ErrMalformedResponse)
	case plan.SafetyAdvice == nil:
		return nil, fmt.Errorf("%w: missing safetyAdvice", ErrMalformedResponse)
	case plan.ProgressSuggestions == nil:
		return nil, fmt.Errorf("%w: missing progressTrackingSuggestions", ErrMalformedResponse)
	}

	return &plan, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
