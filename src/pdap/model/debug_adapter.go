package model

import (
	"github.com/gofrs/uuid"
	"github.com/uber/perl-dap/src/pdap/entity"
)

// Session is the repository layer model for an individual debug session.
type Session struct {
	UUID          uuid.UUID
	ClientID      string
	ClientName    string
	AdapterID     string
	PathFormat    string
	LinesStartAt1 bool
	Launch        *entity.LaunchConfig
	State         string
}
