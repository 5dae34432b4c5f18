package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/model"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(f *entity.Session) *model.Session {
	return &model.Session{
		UUID:          f.UUID,
		ClientID:      f.ClientID,
		ClientName:    f.ClientName,
		AdapterID:     f.AdapterID,
		PathFormat:    string(f.PathFormat),
		LinesStartAt1: f.LinesStartAt1,
		Launch:        f.Launch,
		State:         string(f.State),
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(f *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:          f.UUID,
		ClientID:      f.ClientID,
		ClientName:    f.ClientName,
		AdapterID:     f.AdapterID,
		PathFormat:    entity.PathFormat(f.PathFormat),
		LinesStartAt1: f.LinesStartAt1,
		Launch:        f.Launch,
		State:         entity.SessionState(f.State),
	}, nil
}

// UUIDToSession initializes a new Session entity with the assigned uuid and protocol defaults.
func UUIDToSession(u uuid.UUID) *entity.Session {
	return &entity.Session{
		UUID:          u,
		PathFormat:    entity.PathFormatPath,
		LinesStartAt1: true,
	}
}

// ContextToSessionUUID extracts the UUID from a context
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}
