package handler

import (
	"fmt"
	"os"
	"strconv"

	"github.com/uber/perl-dap/src/pdap/internal/serverinfofile"
	"go.uber.org/config"
)

const (
	_errInvalidEntry = "type error or missing field for key %q"

	_infoKeyPid  = "pid"
	_infoKeyPerl = "perl-executable"

	_configKeyPerl = "engine.perlExecutable"
)

// Output process info for IDE tooling: the daemon's pid and the default perl it debugs with.
// The DAP listen address is added independently once the listener is open.
func outputProcessInfo(cfg config.Provider, infofile serverinfofile.ServerInfoFile) error {
	if err := infofile.UpdateField(_infoKeyPid, strconv.Itoa(os.Getpid())); err != nil {
		return fmt.Errorf("outputting pid to info file: %w", err)
	}

	var perl string
	if err := cfg.Get(_configKeyPerl).Populate(&perl); err != nil {
		return fmt.Errorf(_errInvalidEntry, _configKeyPerl)
	}
	if perl == "" {
		return nil
	}
	if err := infofile.UpdateField(_infoKeyPerl, perl); err != nil {
		return fmt.Errorf("outputting %q to info file: %w", _infoKeyPerl, err)
	}
	return nil
}
