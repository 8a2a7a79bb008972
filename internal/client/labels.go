// ABOUTME: Display labels for prompt option values
// ABOUTME: Mirrors the backend's task type, output format, and category choices

package client

// Option pairs a backend value with its human-readable label
type Option struct {
	Value string
	Label string
}

// TaskTypeOptions lists the selectable task types
var TaskTypeOptions = []Option{
	{"create_content", "Create Content"},
	{"create_code", "Create Code"},
	{"research", "Research"},
	{"deep_research", "Deep Research / Analysis"},
	{"plan_organize", "Plan & Organize"},
	{"ideate", "Ideate / Brainstorm"},
	{"summarize", "Summarize / Review"},
	{"explain", "Explain / Teach"},
	{"optimize", "Optimize / Improve"},
}

// OutputFormatOptions lists the selectable output formats
var OutputFormatOptions = []Option{
	{"text", "Text"},
	{"code", "Code"},
	{"chart_graph", "Chart / Graph"},
	{"checklist_table", "Checklist / Table"},
	{"template_framework", "Template / Framework"},
	{"image_visual", "Image / Visual"},
	{"slide_report", "Slide / Report"},
}

// CategoryOptions lists the predefined categories. The categories
// endpoint may return more; these are the guaranteed baseline.
var CategoryOptions = []Option{
	{"marketing", "Marketing"},
	{"sales", "Sales"},
	{"engineering", "Engineering"},
	{"design", "Design"},
	{"product_management", "Product Management"},
	{"hr", "Human Resources (HR)"},
	{"finance", "Finance"},
	{"support", "Customer Support"},
	{"content_comms", "Content & Communications"},
	{"learning", "Learning & Development"},
}

// StatusLabels maps prompt statuses to display labels
var StatusLabels = map[string]string{
	StatusPending:         "Pending",
	StatusApproved:        "Approved",
	StatusRejected:        "Rejected",
	StatusPendingDeletion: "Pending Deletion",
}

func labelFrom(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// TaskTypeLabel returns the display label for a task type value
func TaskTypeLabel(value string) string { return labelFrom(TaskTypeOptions, value) }

// OutputFormatLabel returns the display label for an output format value
func OutputFormatLabel(value string) string { return labelFrom(OutputFormatOptions, value) }

// CategoryLabel returns the display label for a category value
func CategoryLabel(value string) string { return labelFrom(CategoryOptions, value) }

// StatusLabel returns the display label for a prompt status
func StatusLabel(value string) string {
	if label, ok := StatusLabels[value]; ok {
		return label
	}
	return value
}
