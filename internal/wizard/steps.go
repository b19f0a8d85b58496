package wizard

// Kind selects the format rule applied to a step input on top of the
// required check.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindPhone
	KindSkills
)

func (k Kind) String() string {
	switch k {
	case KindEmail:
		return "email"
	case KindPhone:
		return "phone"
	case KindSkills:
		return "skills"
	default:
		return "text"
	}
}

// Field names used by the CV form. They double as the JSON keys of the
// generation request.
const (
	FieldFullName   = "fullName"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldSummary    = "summary"
	FieldSkills     = "skills"
	FieldExperience = "experience"
	FieldEducation  = "education"
)

// Step is one page of the wizard. A step with an empty Field holds no input
// and is always valid.
type Step struct {
	Name     string
	Label    string
	Field    string
	Kind     Kind
	Required bool
}

// Fields maps a field name to the value currently entered for it.
type Fields map[string]string

// Clone returns an independent copy of f.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// DefaultSteps returns the seven CV steps in display order.
func DefaultSteps() []Step {
	return []Step{
		{Name: "identity", Label: "Full name", Field: FieldFullName, Kind: KindText, Required: true},
		{Name: "email", Label: "Email", Field: FieldEmail, Kind: KindEmail, Required: true},
		{Name: "phone", Label: "Phone", Field: FieldPhone, Kind: KindPhone, Required: true},
		{Name: "summary", Label: "Professional summary", Field: FieldSummary, Kind: KindText, Required: true},
		{Name: "skills", Label: "Skills (comma separated)", Field: FieldSkills, Kind: KindSkills, Required: true},
		{Name: "experience", Label: "Work experience", Field: FieldExperience, Kind: KindText, Required: true},
		{Name: "education", Label: "Education", Field: FieldEducation, Kind: KindText, Required: true},
	}
}

// ProfileFieldNames lists the fields serialized into a generation request.
func ProfileFieldNames() []string {
	return []string{
		FieldFullName,
		FieldEmail,
		FieldPhone,
		FieldSummary,
		FieldSkills,
		FieldExperience,
		FieldEducation,
	}
}
