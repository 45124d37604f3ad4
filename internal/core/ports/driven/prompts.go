package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSymptomValidate asks the model whether free text plausibly
	// describes medical symptoms. The template expects a %s placeholder
	// for the symptom text and must elicit a single-word yes/no reply.
	PromptSymptomValidate = "symptom_validate"

	// PromptExplain asks the model for a point-form explanation of the
	// symptoms plus home remedies. The template expects a %s placeholder
	// for the symptom text.
	PromptExplain = "explain"
)
