package people

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cleverferret/cleverferret/pkg/errcodes"
	"github.com/cleverferret/cleverferret/pkg/models"
	"github.com/cleverferret/cleverferret/pkg/naming"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrievePersonOptions struct {
	ID        *int
	Name      *string
	LibraryID *int
}

type ListPeopleOptions struct {
	Limit     *int
	Offset    *int
	LibraryID *int

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreatePerson(ctx context.Context, person *models.Person) error {
	now := time.Now()
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = person.CreatedAt

	// Generate a sort name if the caller didn't provide one.
	if person.SortName == "" {
		person.SortName = naming.CleanAuthorName(person.Name).SortName
	}

	_, err := svc.db.
		NewInsert().
		Model(person).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrievePerson(ctx context.Context, opts RetrievePersonOptions) (*models.Person, error) {
	person := &models.Person{}

	q := svc.db.
		NewSelect().
		Model(person)

	if opts.ID != nil {
		q = q.Where("p.id = ?", *opts.ID)
	}
	if opts.Name != nil && opts.LibraryID != nil {
		// Exact display-name match; deduplication during import depends on it.
		q = q.Where("p.name = ? AND p.library_id = ?", *opts.Name, *opts.LibraryID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Person")
		}
		return nil, errors.WithStack(err)
	}

	return person, nil
}

// FindOrCreatePerson returns the existing person with the given display name
// in the library, or creates one with the given sort name.
func (svc *Service) FindOrCreatePerson(ctx context.Context, name, sortName string, libraryID int) (*models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("person name cannot be empty")
	}

	person, err := svc.RetrievePerson(ctx, RetrievePersonOptions{
		Name:      &name,
		LibraryID: &libraryID,
	})
	if err == nil {
		return person, nil
	}
	if !errors.Is(err, errcodes.NotFound("Person")) {
		return nil, err
	}

	person = &models.Person{
		LibraryID: libraryID,
		Name:      name,
		SortName:  sortName,
	}
	err = svc.CreatePerson(ctx, person)
	if err != nil {
		return nil, err
	}
	return person, nil
}

func (svc *Service) ListPeople(ctx context.Context, opts ListPeopleOptions) ([]*models.Person, error) {
	p, _, err := svc.listPeopleWithTotal(ctx, opts)
	return p, errors.WithStack(err)
}

func (svc *Service) ListPeopleWithTotal(ctx context.Context, opts ListPeopleOptions) ([]*models.Person, int, error) {
	opts.includeTotal = true
	return svc.listPeopleWithTotal(ctx, opts)
}

func (svc *Service) listPeopleWithTotal(ctx context.Context, opts ListPeopleOptions) ([]*models.Person, int, error) {
	people := []*models.Person{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&people).
		Order("p.sort_name ASC")

	if opts.LibraryID != nil {
		q = q.Where("p.library_id = ?", *opts.LibraryID)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return people, total, nil
}
