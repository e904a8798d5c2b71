package service

import (
	"context"

	"verdic-backend/llm"
	"verdic-backend/models"
	"verdic-backend/repository"

	"github.com/google/uuid"
)

type fakeCompleter struct {
	reply        string
	err          error
	calls        int
	lastMessages []llm.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.calls++
	f.lastMessages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeCaseStore struct {
	cases []*models.Case
	err   error

	listCalls   int
	lastExclude *uuid.UUID

	created  []*models.Case
	updated  []*models.Case
	deleted  []uuid.UUID
	counts   map[models.CaseStatus]int
	byID     map[uuid.UUID]*models.Case
	getErr   error
}

func (f *fakeCaseStore) ListVisibleTo(ctx context.Context, callerID uuid.UUID, role models.AppRole, excludeID *uuid.UUID) ([]*models.Case, error) {
	f.listCalls++
	f.lastExclude = excludeID
	if f.err != nil {
		return nil, f.err
	}
	return f.cases, nil
}

func (f *fakeCaseStore) Create(ctx context.Context, c *models.Case) error {
	if f.err != nil {
		return f.err
	}
	c.ID = uuid.New()
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCaseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.cases {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrCaseNotFound
}

func (f *fakeCaseStore) Update(ctx context.Context, c *models.Case) error {
	f.updated = append(f.updated, c)
	return f.err
}

func (f *fakeCaseStore) UpdatePriority(ctx context.Context, id uuid.UUID, priority models.CasePriority) error {
	return f.err
}

func (f *fakeCaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeCaseStore) ListBacklog(ctx context.Context, callerID uuid.UUID, role models.AppRole, filters repository.BacklogFilters) ([]*models.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cases, nil
}

func (f *fakeCaseStore) CountByStatus(ctx context.Context, callerID uuid.UUID, role models.AppRole) (map[models.CaseStatus]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

func strPtr(s string) *string {
	return &s
}
