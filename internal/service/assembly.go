package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gofrs/uuid/v5"

	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/repository"
)

// Selection names the building blocks to copy into a new resume.
type Selection struct {
	Title         string
	JobPosting    string
	Skills        string
	ProjectIDs    []uuid.UUID
	EducationIDs  []uuid.UUID
	ExperienceIDs []uuid.UUID
}

// Assembly builds resumes by copying the caller's live building blocks.
// The copies are point-in-time snapshots: editing or deleting a source block
// afterwards leaves already-assembled resumes untouched.
type Assembly struct {
	projects    repository.OwnedRepository[model.Project]
	education   repository.OwnedRepository[model.Education]
	experiences repository.OwnedRepository[model.Experience]
	resumes     repository.OwnedRepository[model.Resume]
}

// NewAssembly constructs the assembly service.
func NewAssembly(
	projects repository.OwnedRepository[model.Project],
	education repository.OwnedRepository[model.Education],
	experiences repository.OwnedRepository[model.Experience],
	resumes repository.OwnedRepository[model.Resume],
) *Assembly {
	return &Assembly{projects: projects, education: education, experiences: experiences, resumes: resumes}
}

// Assemble copies the selected blocks into a new resume and persists it.
// Lookups are scoped to the owner, so ids that are foreign or nonexistent are
// simply absent from the listing and get skipped.
func (s *Assembly) Assemble(ctx context.Context, ownerID uuid.UUID, sel Selection) (model.Record[model.Resume], error) {
	if ownerID == uuid.Nil {
		return model.Record[model.Resume]{}, errors.New("validation: empty ownerID")
	}
	draft := model.Resume{
		Title:       sel.Title,
		JobPosting:  sel.JobPosting,
		Skills:      sel.Skills,
		Projects:    []model.Project{},
		Education:   []model.Education{},
		Experiences: []model.Experience{},
	}
	if err := draft.Validate(); err != nil {
		return model.Record[model.Resume]{}, err
	}

	if len(sel.ProjectIDs) > 0 {
		recs, err := s.projects.List(ctx, ownerID)
		if err != nil {
			return model.Record[model.Resume]{}, fmt.Errorf("assemble projects: %w", err)
		}
		for _, id := range sel.ProjectIDs {
			if p, ok := find(recs, id); ok {
				p.Highlights = slices.Clone(p.Highlights)
				draft.Projects = append(draft.Projects, p)
			}
		}
	}
	if len(sel.EducationIDs) > 0 {
		recs, err := s.education.List(ctx, ownerID)
		if err != nil {
			return model.Record[model.Resume]{}, fmt.Errorf("assemble education: %w", err)
		}
		for _, id := range sel.EducationIDs {
			if e, ok := find(recs, id); ok {
				e.Achievements = slices.Clone(e.Achievements)
				draft.Education = append(draft.Education, e)
			}
		}
	}
	if len(sel.ExperienceIDs) > 0 {
		recs, err := s.experiences.List(ctx, ownerID)
		if err != nil {
			return model.Record[model.Resume]{}, fmt.Errorf("assemble experiences: %w", err)
		}
		for _, id := range sel.ExperienceIDs {
			if e, ok := find(recs, id); ok {
				e.Achievements = slices.Clone(e.Achievements)
				draft.Experiences = append(draft.Experiences, e)
			}
		}
	}

	return s.resumes.Create(ctx, ownerID, draft)
}

// find returns a copy of the record payload with the given id.
func find[T model.Payload](recs []model.Record[T], id uuid.UUID) (T, bool) {
	for i := range recs {
		if recs[i].ID == id {
			return recs[i].Data, true
		}
	}
	var zero T
	return zero, false
}
