package dashboard

// Section identifies one of the dashboard screens.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionHistory   Section = "history"
	SectionProfile   Section = "profile"
	SectionUpload    Section = "upload"
)

// ParseSection maps the section query parameter to a Section. Absent
// or unrecognized values land on the dashboard, never an error.
func ParseSection(raw string) Section {
	switch Section(raw) {
	case SectionHistory:
		return SectionHistory
	case SectionProfile:
		return SectionProfile
	case SectionUpload:
		return SectionUpload
	default:
		return SectionDashboard
	}
}
