package factory

import (
	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// Request is a factory for the common part of a DAP request with the given sequence number and command.
func Request(seq int, command string) dap.Request {
	return dap.Request{
		ProtocolMessage: dap.ProtocolMessage{Seq: seq, Type: "request"},
		Command:         command,
	}
}
