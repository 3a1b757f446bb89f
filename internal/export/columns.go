package export

import (
	"github.com/gigaversity/gigaadmin/internal/admin"
	"github.com/gigaversity/gigaadmin/internal/assessment"
	"github.com/gigaversity/gigaadmin/internal/curriculum"
	"github.com/gigaversity/gigaadmin/internal/institution"
	"github.com/gigaversity/gigaadmin/internal/student"
)

// Column sets of the list screens.
var (
	InstitutionColumns = []Column[institution.Institution]{
		{"ID", func(i institution.Institution) any { return i.ID }},
		{"Name", func(i institution.Institution) any { return i.Name }},
		{"Code", func(i institution.Institution) any { return i.Code }},
		{"City", func(i institution.Institution) any { return i.City }},
		{"State", func(i institution.Institution) any { return i.State }},
		{"Contact Email", func(i institution.Institution) any { return i.ContactEmail }},
		{"Contact Phone", func(i institution.Institution) any { return i.ContactPhone }},
		{"Website", func(i institution.Institution) any { return i.Website }},
		{"Established", func(i institution.Institution) any { return i.EstablishedYear }},
		{"Active", func(i institution.Institution) any { return yesNo(i.IsActive) }},
	}

	AdminColumns = []Column[admin.Admin]{
		{"ID", func(a admin.Admin) any { return a.ID }},
		{"Username", func(a admin.Admin) any { return a.Username }},
		{"Email", func(a admin.Admin) any { return a.Email }},
		{"Type", func(a admin.Admin) any { return a.Type() }},
		{"Department", func(a admin.Admin) any { return a.Department }},
		{"Institution", func(a admin.Admin) any { return a.Institution.String() }},
		{"Active", func(a admin.Admin) any { return yesNo(a.IsActive) }},
		{"Permissions", func(a admin.Admin) any { return joined(a.Permissions) }},
	}

	StudentColumns = []Column[student.Student]{
		{"ID", func(s student.Student) any { return s.ID }},
		{"Username", func(s student.Student) any { return s.Username }},
		{"Email", func(s student.Student) any { return s.Email }},
		{"Institution", func(s student.Student) any { return s.Institution.String() }},
		{"Department", func(s student.Student) any { return s.Department }},
		{"Active", func(s student.Student) any { return yesNo(s.IsActive) }},
		{"Profile Completed", func(s student.Student) any { return yesNo(s.ProfileCompleted) }},
		{"Can Update Profile", func(s student.Student) any { return yesNo(s.CanUpdateProfile) }},
	}

	CurriculumColumns = []Column[curriculum.Curriculum]{
		{"ID", func(c curriculum.Curriculum) any { return c.ID }},
		{"Role", func(c curriculum.Curriculum) any { return c.Role }},
		{"Title", func(c curriculum.Curriculum) any { return c.Title }},
		{"Institution", func(c curriculum.Curriculum) any { return c.InstitutionName }},
		{"Modules", func(c curriculum.Curriculum) any { return len(c.Content.Modules) }},
		{"Projects", func(c curriculum.Curriculum) any { return joined(c.Content.RecommendedProjects) }},
		{"File URL", func(c curriculum.Curriculum) any { return c.FileURL }},
	}

	AssessmentColumns = []Column[assessment.Assessment]{
		{"ID", func(a assessment.Assessment) any { return a.ID }},
		{"Role", func(a assessment.Assessment) any { return a.Role }},
		{"Title", func(a assessment.Assessment) any { return a.Title }},
		{"Institution", func(a assessment.Assessment) any { return a.InstitutionName }},
		{"Questions", func(a assessment.Assessment) any { return len(a.Questions) }},
		{"Total Marks", func(a assessment.Assessment) any { return a.TotalMarks }},
		{"Duration (min)", func(a assessment.Assessment) any { return a.DurationMinutes }},
	}
)
