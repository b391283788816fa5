package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Repo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, New(mock)
}

func userRows(users ...domain.User) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"telegram_id", "name", "active", "notified", "created_at", "updated_at"})
	for _, u := range users {
		rows.AddRow(u.TelegramID, u.Name, u.Active, u.Notified, u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func TestRepo_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		check   func(t *testing.T, got *domain.User)
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM users WHERE telegram_id = \$1`).
					WithArgs(int64(42)).
					WillReturnRows(userRows(domain.User{
						TelegramID: 42, Name: "mario", Active: true,
						CreatedAt: now, UpdatedAt: now,
					}))
			},
			check: func(t *testing.T, got *domain.User) {
				if got.TelegramID != 42 {
					t.Errorf("TelegramID = %d, want 42", got.TelegramID)
				}
				if got.Name != "mario" {
					t.Errorf("Name = %q, want %q", got.Name, "mario")
				}
				if !got.Active || got.Notified {
					t.Errorf("flags = (%v, %v), want (true, false)", got.Active, got.Notified)
				}
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM users`).
					WithArgs(int64(42)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			tt.setup(mock)

			got, err := repo.GetByID(context.Background(), 42)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetByID() error = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("GetByID() unexpected error: %v", err)
				}
				tt.check(t, got)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRepo_Create(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "inserted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users \(telegram_id,name,active,notified\)`).
					WithArgs(int64(42), "mario", false, false).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "duplicate telegram id",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(int64(42), "mario", false, false).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			tt.setup(mock)

			err := repo.Create(context.Background(), &domain.User{TelegramID: 42, Name: "mario"})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRepo_Approve(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "approved resets notified",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET active = \$1, notified = \$2, updated_at = now\(\) WHERE telegram_id = \$3`).
					WithArgs(true, false, int64(42)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "missing user",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs(true, false, int64(42)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			tt.setup(mock)

			err := repo.Approve(context.Background(), 42)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Approve() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Approve() unexpected error: %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRepo_MarkNotified(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectExec(`UPDATE users SET notified = \$1, updated_at = now\(\) WHERE telegram_id = \$2`).
		WithArgs(true, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.MarkNotified(context.Background(), 7); err != nil {
		t.Fatalf("MarkNotified() unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_ListPending(t *testing.T) {
	now := time.Now()
	mock, repo := newMock(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE active = \$1 ORDER BY created_at ASC`).
		WithArgs(false).
		WillReturnRows(userRows(
			domain.User{TelegramID: 1, Name: "anna", CreatedAt: now, UpdatedAt: now},
			domain.User{TelegramID: 2, Name: "bruno", CreatedAt: now, UpdatedAt: now},
		))

	got, err := repo.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPending() returned %d users, want 2", len(got))
	}
	if got[0].TelegramID != 1 || got[1].TelegramID != 2 {
		t.Errorf("ListPending() order = [%d %d], want [1 2]", got[0].TelegramID, got[1].TelegramID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_ListUnnotified(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		setup func(mock pgxmock.PgxPoolIface)
		want  int
	}{
		{
			name: "candidates",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM users WHERE active = \$1 AND notified = \$2`).
					WithArgs(true, false).
					WillReturnRows(userRows(
						domain.User{TelegramID: 5, Name: "carla", Active: true, CreatedAt: now, UpdatedAt: now},
					))
			},
			want: 1,
		},
		{
			name: "empty",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM users`).
					WithArgs(true, false).
					WillReturnRows(userRows())
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			tt.setup(mock)

			got, err := repo.ListUnnotified(context.Background())
			if err != nil {
				t.Fatalf("ListUnnotified() unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("ListUnnotified() returned %d users, want %d", len(got), tt.want)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}
