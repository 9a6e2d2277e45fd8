// Package model defines domain entities used by services and repositories.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/resumebuilder/server/internal/errs"
)

// Profile holds the free-text contact fields attached to an account.
type Profile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	City  string `json:"city"`
	State string `json:"state"`
}

// ProfileUpdate carries a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	City  *string `json:"city"`
	State *string `json:"state"`
}

// Apply merges non-nil fields over p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.State != nil {
		p.State = *u.State
	}
}

// ProfileView is the profile as returned over the wire: profile fields plus email.
type ProfileView struct {
	Profile
	Email string `json:"email"`
}

// Account represents a registered user. The password hash never leaves the server.
type Account struct {
	ID        uuid.UUID
	Email     string // lowercased and trimmed, unique
	PwdHash   []byte // bcrypt
	Profile   Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View returns the wire representation of the account's profile.
func (a *Account) View() ProfileView {
	return ProfileView{Profile: a.Profile, Email: a.Email}
}

// Payload is a building-block or resume body stored in the data column.
type Payload interface {
	Validate() error
}

// Project is a reusable project entry in the master list.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies string   `json:"technologies,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
}

// Validate checks required fields on create.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description is required", errs.ErrInvalidInput)
	}
	return nil
}

// Education is a reusable education entry. Older clients wrote the
// institution under "school"; both spellings are stored and read.
type Education struct {
	Institution  string   `json:"institution"`
	School       string   `json:"school,omitempty"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// SchoolName returns the institution, falling back to the legacy school field.
func (e Education) SchoolName() string {
	if e.Institution != "" {
		return e.Institution
	}
	return e.School
}

// Validate checks required fields on create.
func (e Education) Validate() error {
	if strings.TrimSpace(e.SchoolName()) == "" {
		return fmt.Errorf("%w: institution is required", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(e.Degree) == "" {
		return fmt.Errorf("%w: degree is required", errs.ErrInvalidInput)
	}
	return nil
}

// Experience is a reusable work-experience entry. Older clients wrote the
// position under "title"; both spellings are stored and read.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Title        string   `json:"title,omitempty"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Role returns the position, falling back to the legacy title field.
func (e Experience) Role() string {
	if e.Position != "" {
		return e.Position
	}
	return e.Title
}

// Validate checks required fields on create.
func (e Experience) Validate() error {
	if strings.TrimSpace(e.Company) == "" {
		return fmt.Errorf("%w: company is required", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(e.Role()) == "" {
		return fmt.Errorf("%w: position is required", errs.ErrInvalidInput)
	}
	return nil
}

// Resume is a named collection of point-in-time snapshots of building blocks.
// The embedded slices are full copies taken at assembly time, never references:
// later changes to the source records do not show up here.
type Resume struct {
	Title       string       `json:"title"`
	JobPosting  string       `json:"jobPosting,omitempty"`
	Skills      string       `json:"skills,omitempty"`
	Projects    []Project    `json:"projects"`
	Education   []Education  `json:"education"`
	Experiences []Experience `json:"experiences"`
}

// SkillList splits the free-text skills field on commas, trimming blanks.
func (r Resume) SkillList() []string {
	if strings.TrimSpace(r.Skills) == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(r.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks required fields on create.
func (r Resume) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	return nil
}

// Record wraps an owned payload with storage metadata. OwnerID is set once at
// creation and never changes.
type Record[T Payload] struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Data      T
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarshalJSON flattens the payload fields and the record metadata into a
// single object, the shape clients have always seen.
func (r Record[T]) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(r.Data)
	if err != nil {
		return nil, err
	}
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	meta := map[string]any{
		"id":        r.ID,
		"ownerId":   r.OwnerID,
		"createdAt": r.CreatedAt,
		"updatedAt": r.UpdatedAt,
	}
	for k, v := range meta {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m[k] = raw
	}
	return json.Marshal(m)
}
