package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/daybook/daybook-go/internal/form"
	"github.com/daybook/daybook-go/internal/model"
	"github.com/daybook/daybook-go/internal/repository"
	"github.com/daybook/daybook-go/internal/slug"
)

var ErrJournalNotFound = errors.New("journal entry not found")

const dateLayout = "2006-01-02"

// JournalService handles journal entry business logic.
type JournalService struct {
	repo *repository.JournalRepository
}

// NewJournalService creates a new JournalService.
func NewJournalService(repo *repository.JournalRepository) *JournalService {
	return &JournalService{repo: repo}
}

func journalFields() []form.Field {
	return []form.Field{
		{Name: "title", Validators: []form.Validator{form.Required()}},
		{Name: "date", Validators: []form.Validator{form.Required(), form.ISODate()}},
		{Name: "time_spent", Validators: []form.Validator{form.Required(), form.PositiveInt()}},
		{Name: "learned", Validators: []form.Validator{form.Required()}},
		{Name: "resources", Validators: []form.Validator{form.Required()}},
	}
}

func journalValues(req model.JournalRequest) form.Values {
	timeSpent := ""
	if req.TimeSpent != 0 {
		timeSpent = strconv.Itoa(req.TimeSpent)
	}
	return form.Values{
		"title":      req.Title,
		"date":       req.Date,
		"time_spent": timeSpent,
		"learned":    req.Learned,
		"resources":  req.Resources,
	}
}

// Create validates the submission and stores a new journal entry for the
// user, with its slug derived from the title and its tag associations
// written in the same transaction.
func (s *JournalService) Create(ctx context.Context, userID int64, req model.JournalRequest) (model.JournalResponse, error) {
	if errs := form.Run(ctx, journalValues(req), journalFields()); len(errs) > 0 {
		return model.JournalResponse{}, validationFailed(errs)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return model.JournalResponse{}, fieldError("date", "must be a valid date in YYYY-MM-DD form")
	}

	journal := &model.Journal{
		UserID:    userID,
		Title:     req.Title,
		Slug:      slug.Make(req.Title),
		Date:      date,
		TimeSpent: req.TimeSpent,
		Learned:   req.Learned,
		Resources: req.Resources,
	}

	if err := s.repo.Create(ctx, journal, req.Tags); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return model.JournalResponse{}, fieldError("title", "an entry with that title already exists")
		}
		return model.JournalResponse{}, err
	}

	return s.Get(ctx, journal.Slug)
}

// Update validates the submission and rewrites the entry identified by
// slugKey, recomputing the slug from the new title and replacing the tag
// associations. Only the owning user's entry is updated; anyone else sees
// ErrJournalNotFound.
func (s *JournalService) Update(ctx context.Context, userID int64, slugKey string, req model.JournalRequest) (model.JournalResponse, error) {
	if errs := form.Run(ctx, journalValues(req), journalFields()); len(errs) > 0 {
		return model.JournalResponse{}, validationFailed(errs)
	}

	existing, err := s.GetOwned(ctx, userID, slugKey)
	if err != nil {
		return model.JournalResponse{}, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return model.JournalResponse{}, fieldError("date", "must be a valid date in YYYY-MM-DD form")
	}

	journal := &model.Journal{
		ID:        existing.ID,
		UserID:    userID,
		Title:     req.Title,
		Slug:      slug.Make(req.Title),
		Date:      date,
		TimeSpent: req.TimeSpent,
		Learned:   req.Learned,
		Resources: req.Resources,
	}

	if err := s.repo.Update(ctx, userID, journal, req.Tags); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateSlug):
			return model.JournalResponse{}, fieldError("title", "an entry with that title already exists")
		case errors.Is(err, repository.ErrJournalNotFound):
			return model.JournalResponse{}, ErrJournalNotFound
		}
		return model.JournalResponse{}, err
	}

	return s.Get(ctx, journal.Slug)
}

// Delete removes the user's entry with the given slug. An absent slug (or
// one owned by another user) is a no-op that still succeeds.
func (s *JournalService) Delete(ctx context.Context, userID int64, slugKey string) error {
	return s.repo.DeleteBySlug(ctx, userID, slugKey)
}

// Get retrieves one journal entry by slug.
func (s *JournalService) Get(ctx context.Context, slugKey string) (model.JournalResponse, error) {
	journal, err := s.repo.GetBySlug(ctx, slugKey)
	if err != nil {
		if errors.Is(err, repository.ErrJournalNotFound) {
			return model.JournalResponse{}, ErrJournalNotFound
		}
		return model.JournalResponse{}, err
	}

	return journalToResponse(journal), nil
}

// GetOwned retrieves one journal entry by slug if it belongs to userID.
// Non-owned entries are indistinguishable from absent ones.
func (s *JournalService) GetOwned(ctx context.Context, userID int64, slugKey string) (model.JournalResponse, error) {
	journal, err := s.repo.GetBySlug(ctx, slugKey)
	if err != nil {
		if errors.Is(err, repository.ErrJournalNotFound) {
			return model.JournalResponse{}, ErrJournalNotFound
		}
		return model.JournalResponse{}, err
	}
	if journal.UserID != userID {
		return model.JournalResponse{}, ErrJournalNotFound
	}

	return journalToResponse(journal), nil
}

// List returns all journal entries, newest entry date first.
func (s *JournalService) List(ctx context.Context) ([]model.JournalResponse, error) {
	journals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return journalsToResponse(journals), nil
}

// ListByTag returns the journal entries filed under the given tag slug.
func (s *JournalService) ListByTag(ctx context.Context, tagSlug string) ([]model.JournalResponse, error) {
	journals, err := s.repo.ListByTag(ctx, tagSlug)
	if err != nil {
		return nil, err
	}

	return journalsToResponse(journals), nil
}

func journalToResponse(j *model.Journal) model.JournalResponse {
	tags := make([]model.TagResponse, len(j.Tags))
	for i, t := range j.Tags {
		tags[i] = model.TagResponse{ID: t.ID, Title: t.Title, Slug: t.Slug}
	}
	return model.JournalResponse{
		ID:        j.ID,
		Title:     j.Title,
		Slug:      j.Slug,
		Date:      j.Date.Format(dateLayout),
		TimeSpent: j.TimeSpent,
		Learned:   j.Learned,
		Resources: j.Resources,
		CreatedAt: j.CreatedAt,
		Tags:      tags,
	}
}

func journalsToResponse(journals []model.Journal) []model.JournalResponse {
	result := make([]model.JournalResponse, len(journals))
	for i := range journals {
		result[i] = journalToResponse(&journals[i])
	}
	return result
}
