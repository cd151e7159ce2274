package prompt

// defaultTemplate is the built-in plan request. Fields are substituted verbatim.
const defaultTemplate = `You are an expert personal trainer. Create a detailed workout plan based on the following information:

Fitness Level: {{.FitnessLevel}}
Goal: {{.Goal}}
Days per Week: {{.DaysPerWeek}}
Equipment: {{.Equipment}}
Body Weight Only: {{.BodyWeightOnly}}
Duration per Session: {{.Duration}} minutes
Additional Information: {{.AdditionalInfo}}

Please create a workout plan that includes:
1. A brief introduction explaining the plan's focus and how it aligns with the user's goals.
2. A day-by-day breakdown of exercises, including sets, reps, and rest periods.
3. Proper form cues for key exercises.
4. Progression suggestions for the coming weeks.
5. Tips for warm-up and cool-down routines.
6. Any dietary advice that complements the workout plan.

Ensure the plan is appropriately challenging for the specified fitness level and uses available equipment effectively.
If body weight only is specified, focus exclusively on calisthenics and bodyweight exercises.
`

// GetDefault returns the built-in prompt template source.
func GetDefault() string {
	return defaultTemplate
}
