package types

// RawResume is the tolerant request shape. Field aliases and nested legacy
// objects are resolved by the normalizer, never here.
type RawResume struct {
	Name      FlexString `json:"name"`
	JobTitle  FlexString `json:"jobTitle"`
	Title     FlexString `json:"title"`
	Email     FlexString `json:"email"`
	Phone     FlexString `json:"phone"`
	Address   FlexString `json:"address"`
	Location  FlexString `json:"location"`
	LinkedIn  FlexString `json:"linkedin"`
	Portfolio FlexString `json:"portfolio"`
	Website   FlexString `json:"website"`
	Photo     FlexString `json:"photo"`
	Summary   FlexString `json:"summary"`

	Experience     []RawExperience `json:"experience"`
	Education      []RawEducation  `json:"education"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Languages      []Language      `json:"languages"`
	Achievements   []Achievement   `json:"achievements"`
	CustomSections []CustomSection `json:"customSections"`

	// Profile is the legacy nested layout whose fields are lifted onto the root.
	Profile *RawResume `json:"profile,omitempty"`
	// Personal is the one-pager editor's contact block.
	Personal *RawPersonal `json:"personal,omitempty"`
}

// RawPersonal is the contact block used by the one-pager editor.
type RawPersonal struct {
	Name      FlexString `json:"name"`
	JobTitle  FlexString `json:"jobTitle"`
	Email     FlexString `json:"email"`
	Phone     FlexString `json:"phone"`
	Location  FlexString `json:"location"`
	Address   FlexString `json:"address"`
	LinkedIn  FlexString `json:"linkedin"`
	Portfolio FlexString `json:"portfolio"`
	Photo     FlexString `json:"photo"`
}

// RawExperience accepts the legacy field names for title and employer.
type RawExperience struct {
	JobTitle     FlexString   `json:"jobTitle"`
	Title        FlexString   `json:"title"`
	Position     FlexString   `json:"position"`
	Role         FlexString   `json:"role"`
	Company      FlexString   `json:"company"`
	Organization FlexString   `json:"organization"`
	Employer     FlexString   `json:"employer"`
	Location     FlexString   `json:"location"`
	StartDate    FlexString   `json:"startDate"`
	EndDate      FlexString   `json:"endDate"`
	Description  FlexString   `json:"description"`
	BulletPoints []FlexString `json:"bulletPoints"`
}

// RawEducation accepts numeric GPA and percentage values.
type RawEducation struct {
	Institution  FlexString `json:"institution"`
	School       FlexString `json:"school"`
	Degree       FlexString `json:"degree"`
	Field        FlexString `json:"field"`
	FieldOfStudy FlexString `json:"fieldOfStudy"`
	StartDate    FlexString `json:"startDate"`
	EndDate      FlexString `json:"endDate"`
	GPA          FlexString `json:"gpa"`
	Percentage   FlexString `json:"percentage"`
	Description  FlexString `json:"description"`
}
