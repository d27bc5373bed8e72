package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/persistence"
)

// ClientRepository manages client persistence.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, clientNo string) (*domain.Client, error)
	Exists(ctx context.Context, clientNo string) (bool, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, update domain.ClientUpdate) error
}

type clientRepository struct {
	exec *persistence.Executor
}

// NewClientRepository builds the repository.
func NewClientRepository(exec *persistence.Executor) ClientRepository {
	return &clientRepository{exec: exec}
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	const query = `
        SELECT clientno, fname, lname, telno, street, city, email, preftype, maxrent
        FROM dh_client
        ORDER BY clientno`
	clients, err := persistence.Collect(ctx, r.exec, persistence.Statement{SQL: query}, persistence.Options{}, scanClient)
	if err != nil {
		return nil, classify(err)
	}
	return clients, nil
}

func (r *clientRepository) GetByID(ctx context.Context, clientNo string) (*domain.Client, error) {
	const query = `
        SELECT clientno, fname, lname, telno, street, city, email, preftype, maxrent
        FROM dh_client
        WHERE clientno = @clientno`
	clients, err := persistence.Collect(ctx, r.exec, persistence.Statement{
		SQL:  query,
		Args: pgx.NamedArgs{"clientno": clientNo},
	}, persistence.Options{}, scanClient)
	if err != nil {
		return nil, classify(err)
	}
	if len(clients) == 0 {
		return nil, notFound("client " + clientNo)
	}
	return &clients[0], nil
}

func (r *clientRepository) Exists(ctx context.Context, clientNo string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM dh_client WHERE clientno = @clientno)`
	found, err := persistence.Collect(ctx, r.exec, persistence.Statement{
		SQL:  query,
		Args: pgx.NamedArgs{"clientno": clientNo},
	}, persistence.Options{}, pgx.RowTo[bool])
	if err != nil {
		return false, classify(err)
	}
	return len(found) == 1 && found[0], nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO dh_client (clientno, fname, lname, telno, street, city, email, preftype, maxrent)
        VALUES (@clientno, @fname, @lname, @telno, @street, @city, @email, @preftype, @maxrent)`
	_, err := r.exec.Execute(ctx, persistence.Statement{
		SQL: query,
		Args: pgx.NamedArgs{
			"clientno": client.ClientNo,
			"fname":    client.FirstName,
			"lname":    client.LastName,
			"telno":    client.Telephone,
			"street":   client.Street,
			"city":     client.City,
			"email":    client.Email,
			"preftype": client.PrefType,
			"maxrent":  client.MaxRent,
		},
	}, persistence.Options{})
	return classify(err)
}

func (r *clientRepository) Update(ctx context.Context, update domain.ClientUpdate) error {
	const query = `
        UPDATE dh_client
        SET telno    = COALESCE(@telno, telno),
            email    = COALESCE(@email, email),
            preftype = COALESCE(@preftype, preftype),
            maxrent  = COALESCE(@maxrent, maxrent)
        WHERE clientno = @clientno`
	res, err := r.exec.Execute(ctx, persistence.Statement{
		SQL: query,
		Args: pgx.NamedArgs{
			"clientno": update.ClientNo,
			"telno":    update.Telephone,
			"email":    update.Email,
			"preftype": update.PrefType,
			"maxrent":  update.MaxRent,
		},
	}, persistence.Options{})
	if err != nil {
		return classify(err)
	}
	if res.RowsAffected == 0 {
		return notFound("client " + update.ClientNo)
	}
	return nil
}

func scanClient(row pgx.CollectableRow) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ClientNo, &c.FirstName, &c.LastName, &c.Telephone, &c.Street, &c.City, &c.Email, &c.PrefType, &c.MaxRent)
	return c, err
}
