package logfilewriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/uber/perl-dap/src/pdap/internal/fs"
	"github.com/uber/perl-dap/src/pdap/internal/serverinfofile"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_fmtTraceKey     = "trace:%s"
	_defaultTraceDir = "pdap-trace"
)

// Params define the dependencies for SetupTraceWriter.
type Params struct {
	FS             fs.PdapFS
	Lifecycle      fx.Lifecycle
	ServerInfoFile serverinfofile.ServerInfoFile
}

// SetupTraceWriter creates a writer for the engine transcript of one session, stored in a temporary
// file under dir (a directory in the user's temp dir when empty).
// The file path is published in the server info file so the IDE can tail it. Close removes the file
// and its server info entry; anything still open is closed when the application stops.
func SetupTraceWriter(p Params, dir string, name string) (io.WriteCloser, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), _defaultTraceDir)
	}
	if err := p.FS.MkdirAll(dir); err != nil {
		return nil, err
	}

	traceFile, err := p.FS.TempFile(dir, name+"-*.log")
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(_fmtTraceKey, name)
	if err := p.ServerInfoFile.UpdateField(key, traceFile.Name()); err != nil {
		return nil, multierr.Append(err, multierr.Append(traceFile.Close(), p.FS.Remove(traceFile.Name())))
	}

	// Write via a logger for formatting, timestamp, and performance/buffering.
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(traceFile),
		zap.InfoLevel,
	)

	w := &traceWriter{
		logger: zap.New(core).Sugar(),
		close: func() error {
			return multierr.Combine(
				traceFile.Close(),
				p.FS.Remove(traceFile.Name()),
				p.ServerInfoFile.RemoveField(key),
			)
		},
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return w.Close()
		},
	})

	return w, nil
}

type traceWriter struct {
	logger *zap.SugaredLogger
	close  func() error

	once     sync.Once
	closeErr error
}

// Write logs each non-empty line of p as one transcript entry.
func (w *traceWriter) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(string(p), "\n") {
		if len(line) > 0 {
			w.logger.Info(line)
		}
	}

	return len(p), nil
}

// Close is idempotent.
func (w *traceWriter) Close() error {
	w.once.Do(func() {
		w.logger.Sync()
		w.closeErr = w.close()
	})
	return w.closeErr
}
