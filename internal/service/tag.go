package service

import (
	"context"
	"errors"

	"github.com/daybook/daybook-go/internal/form"
	"github.com/daybook/daybook-go/internal/model"
	"github.com/daybook/daybook-go/internal/repository"
	"github.com/daybook/daybook-go/internal/slug"
)

var ErrTagNotFound = errors.New("tag not found")

// TagService handles tag business logic.
type TagService struct {
	repo     *repository.TagRepository
	journals *repository.JournalRepository
}

// NewTagService creates a new TagService.
func NewTagService(repo *repository.TagRepository, journals *repository.JournalRepository) *TagService {
	return &TagService{repo: repo, journals: journals}
}

func tagFields() []form.Field {
	return []form.Field{
		{Name: "title", Validators: []form.Validator{form.Required()}},
	}
}

// Create validates the submission and stores a new tag with its slug derived
// from the title. Tags are immutable once created.
func (s *TagService) Create(ctx context.Context, req model.TagRequest) (model.TagResponse, error) {
	values := form.Values{"title": req.Title}
	if errs := form.Run(ctx, values, tagFields()); len(errs) > 0 {
		return model.TagResponse{}, validationFailed(errs)
	}

	tag := &model.Tag{
		Title: req.Title,
		Slug:  slug.Make(req.Title),
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return model.TagResponse{}, fieldError("title", "a tag with that title already exists")
		}
		return model.TagResponse{}, err
	}

	return model.TagResponse{ID: tag.ID, Title: tag.Title, Slug: tag.Slug}, nil
}

// List returns all tags ordered by title.
func (s *TagService) List(ctx context.Context) ([]model.TagResponse, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.TagResponse, len(tags))
	for i, t := range tags {
		result[i] = model.TagResponse{ID: t.ID, Title: t.Title, Slug: t.Slug}
	}
	return result, nil
}

// Journals returns the tag identified by tagSlug together with the journal
// entries filed under it. An unknown tag slug returns ErrTagNotFound.
func (s *TagService) Journals(ctx context.Context, tagSlug string) (model.TagJournalsResponse, error) {
	tag, err := s.repo.GetBySlug(ctx, tagSlug)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return model.TagJournalsResponse{}, ErrTagNotFound
		}
		return model.TagJournalsResponse{}, err
	}

	journals, err := s.journals.ListByTag(ctx, tagSlug)
	if err != nil {
		return model.TagJournalsResponse{}, err
	}

	return model.TagJournalsResponse{
		Tag:      model.TagResponse{ID: tag.ID, Title: tag.Title, Slug: tag.Slug},
		Journals: journalsToResponse(journals),
	}, nil
}
