package service

import (
	"context"
	"sync"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/events"
	"github.com/spec-kit/dreamhome-service/internal/repository"
	"github.com/spec-kit/dreamhome-service/internal/staffcache"
)

type fakeStaffRepo struct {
	mu        sync.Mutex
	rows      map[string]domain.Staff
	createErr error
	updateErr error
	loadErr   error
	creates   int
	updates   int

	// When set, LoadCacheEntries reports on loaded after reading rows and
	// then waits on gate before returning them.
	loaded chan struct{}
	gate   chan struct{}
}

func newFakeStaffRepo(rows ...domain.Staff) *fakeStaffRepo {
	r := &fakeStaffRepo{rows: make(map[string]domain.Staff)}
	for _, s := range rows {
		r.rows[s.StaffNo] = s
	}
	return r
}

func (r *fakeStaffRepo) List(context.Context) ([]domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Staff, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *domain.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.rows[staff.StaffNo]; ok {
		return &repository.StoreError{Kind: repository.ErrDuplicate, Constraint: "dh_staff_pkey"}
	}
	r.rows[staff.StaffNo] = *staff
	return nil
}

func (r *fakeStaffRepo) UpdateDetails(_ context.Context, update domain.StaffUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	s, ok := r.rows[update.StaffNo]
	if !ok {
		return &repository.StoreError{Kind: repository.ErrNotFound}
	}
	if update.Position != nil {
		s.Position = *update.Position
	}
	if update.Salary != nil {
		s.Salary = *update.Salary
	}
	if update.Telephone != nil {
		s.Telephone = *update.Telephone
	}
	if update.Email != nil {
		s.Email = *update.Email
	}
	r.rows[update.StaffNo] = s
	return nil
}

func (r *fakeStaffRepo) LoadCacheEntries(context.Context) ([]staffcache.Record, error) {
	r.mu.Lock()
	if r.loadErr != nil {
		r.mu.Unlock()
		return nil, r.loadErr
	}
	out := make([]staffcache.Record, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, staffcache.Record{
			StaffNo: s.StaffNo,
			Entry:   staffcache.Entry{Salary: s.Salary, Telephone: s.Telephone, Email: s.Email},
		})
	}
	loaded, gate := r.loaded, r.gate
	r.mu.Unlock()

	if gate != nil {
		loaded <- struct{}{}
		<-gate
	}
	return out, nil
}

type fakeBranchRepo struct {
	rows      map[string]domain.Branch
	existsErr error
	creates   int
}

func newFakeBranchRepo(ids ...string) *fakeBranchRepo {
	r := &fakeBranchRepo{rows: make(map[string]domain.Branch)}
	for _, id := range ids {
		r.rows[id] = domain.Branch{BranchNo: id, Street: "163 Main St", City: "Glasgow", PostCode: "G11 9QX"}
	}
	return r
}

func (r *fakeBranchRepo) List(context.Context) ([]domain.Branch, error) {
	out := make([]domain.Branch, 0, len(r.rows))
	for _, b := range r.rows {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, branchNo string) (*domain.Branch, error) {
	b, ok := r.rows[branchNo]
	if !ok {
		return nil, &repository.StoreError{Kind: repository.ErrNotFound}
	}
	return &b, nil
}

func (r *fakeBranchRepo) Exists(_ context.Context, branchNo string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.rows[branchNo]
	return ok, nil
}

func (r *fakeBranchRepo) Create(_ context.Context, branch *domain.Branch) error {
	r.creates++
	r.rows[branch.BranchNo] = *branch
	return nil
}

func (r *fakeBranchRepo) Update(_ context.Context, update domain.BranchUpdate) (*domain.Branch, error) {
	b, ok := r.rows[update.BranchNo]
	if !ok {
		return nil, &repository.StoreError{Kind: repository.ErrNotFound}
	}
	if update.Street != "" {
		b.Street = update.Street
	}
	if update.City != "" {
		b.City = update.City
	}
	if update.PostCode != "" {
		b.PostCode = update.PostCode
	}
	r.rows[update.BranchNo] = b
	return &b, nil
}

type fakeClientRepo struct {
	rows      map[string]domain.Client
	createErr error
	updates   int
}

func newFakeClientRepo(ids ...string) *fakeClientRepo {
	r := &fakeClientRepo{rows: make(map[string]domain.Client)}
	for _, id := range ids {
		r.rows[id] = domain.Client{ClientNo: id}
	}
	return r
}

func (r *fakeClientRepo) List(context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, clientNo string) (*domain.Client, error) {
	c, ok := r.rows[clientNo]
	if !ok {
		return nil, &repository.StoreError{Kind: repository.ErrNotFound}
	}
	return &c, nil
}

func (r *fakeClientRepo) Exists(_ context.Context, clientNo string) (bool, error) {
	_, ok := r.rows[clientNo]
	return ok, nil
}

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[client.ClientNo] = *client
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, update domain.ClientUpdate) error {
	r.updates++
	c, ok := r.rows[update.ClientNo]
	if !ok {
		return &repository.StoreError{Kind: repository.ErrNotFound}
	}
	if update.Email != nil {
		c.Email = update.Email
	}
	if update.Telephone != nil {
		c.Telephone = update.Telephone
	}
	r.rows[update.ClientNo] = c
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}
