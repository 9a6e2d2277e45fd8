package render

import (
	"fmt"
	"strings"

	"github.com/resumebuilder/server/internal/model"
)

// Markdown serializes a resume as Markdown with the same section-omission
// rules as HTML.
func Markdown(r model.Resume, p model.ProfileView) string {
	var b strings.Builder
	name := p.Name
	if name == "" {
		name = "Your Name"
	}
	fmt.Fprintf(&b, "# %s\n", name)
	fmt.Fprintf(&b, "\n**Email:** %s  ", p.Email)
	fmt.Fprintf(&b, "**Phone:** %s\n", p.Phone)

	if skills := r.SkillList(); len(skills) > 0 {
		b.WriteString("\n## Skills\n")
		for _, s := range skills {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(r.Experiences) > 0 {
		b.WriteString("\n## Work Experience\n")
		for _, e := range r.Experiences {
			fmt.Fprintf(&b, "- **%s**", e.Role())
			if e.Company != "" {
				fmt.Fprintf(&b, " at %s", e.Company)
			}
			if e.StartDate != "" || e.EndDate != "" {
				fmt.Fprintf(&b, " (%s-%s)", e.StartDate, e.EndDate)
			}
			if e.Description != "" {
				fmt.Fprintf(&b, ": %s", e.Description)
			}
			if len(e.Achievements) > 0 {
				fmt.Fprintf(&b, "\n  - %s", strings.Join(e.Achievements, "; "))
			}
			b.WriteByte('\n')
		}
	}
	if len(r.Education) > 0 {
		b.WriteString("\n## Education\n")
		for _, e := range r.Education {
			fmt.Fprintf(&b, "- **%s**: %s", e.SchoolName(), e.Degree)
			if e.Field != "" {
				fmt.Fprintf(&b, " in %s", e.Field)
			}
			if e.StartDate != "" || e.EndDate != "" {
				fmt.Fprintf(&b, " (%s-%s)", e.StartDate, e.EndDate)
			}
			b.WriteByte('\n')
		}
	}
	if len(r.Projects) > 0 {
		b.WriteString("\n## Projects\n")
		for _, pr := range r.Projects {
			fmt.Fprintf(&b, "- **%s**: %s", pr.Title, pr.Description)
			if pr.Technologies != "" {
				fmt.Fprintf(&b, "\n  - Technologies: %s", pr.Technologies)
			}
			if len(pr.Highlights) > 0 {
				fmt.Fprintf(&b, "\n  - Highlights: %s", strings.Join(pr.Highlights, "; "))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Text serializes a resume as plain text with the same section-omission rules.
func Text(r model.Resume, p model.ProfileView) string {
	var b strings.Builder
	name := p.Name
	if name == "" {
		name = "Your Name"
	}
	b.WriteString(name + "\n")
	var contact []string
	for _, c := range []string{p.Email, p.Phone, p.City, p.State} {
		if c != "" {
			contact = append(contact, c)
		}
	}
	if len(contact) > 0 {
		b.WriteString(strings.Join(contact, " | ") + "\n")
	}

	section := func(title string) {
		b.WriteString("\n" + strings.ToUpper(title) + "\n")
	}

	if skills := r.SkillList(); len(skills) > 0 {
		section("Skills")
		b.WriteString(strings.Join(skills, ", ") + "\n")
	}
	if len(r.Experiences) > 0 {
		section("Work Experience")
		for _, e := range r.Experiences {
			line := e.Role()
			if e.Company != "" {
				line += ", " + e.Company
			}
			if e.StartDate != "" || e.EndDate != "" {
				line += fmt.Sprintf(" (%s-%s)", e.StartDate, e.EndDate)
			}
			b.WriteString(line + "\n")
			if e.Description != "" {
				b.WriteString("  " + e.Description + "\n")
			}
			for _, a := range e.Achievements {
				b.WriteString("  * " + a + "\n")
			}
		}
	}
	if len(r.Education) > 0 {
		section("Education")
		for _, e := range r.Education {
			line := e.Degree
			if e.Field != "" {
				line += " in " + e.Field
			}
			line += ", " + e.SchoolName()
			if e.StartDate != "" || e.EndDate != "" {
				line += fmt.Sprintf(" (%s-%s)", e.StartDate, e.EndDate)
			}
			b.WriteString(line + "\n")
			if e.GPA != "" {
				b.WriteString("  GPA: " + e.GPA + "\n")
			}
		}
	}
	if len(r.Projects) > 0 {
		section("Projects")
		for _, pr := range r.Projects {
			b.WriteString(pr.Title + "\n")
			if pr.Description != "" {
				b.WriteString("  " + pr.Description + "\n")
			}
			if pr.Technologies != "" {
				b.WriteString("  " + pr.Technologies + "\n")
			}
			for _, h := range pr.Highlights {
				b.WriteString("  * " + h + "\n")
			}
		}
	}
	return b.String()
}
