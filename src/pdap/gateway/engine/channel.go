package engine

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"go.uber.org/zap"
)

const (
	_readChunkSize = 4096
	_linesBuffer   = 64
)

// CSI sequences, OSC sequences terminated by BEL or ST, and two-byte escapes.
var _ansiPattern = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b[@-Z\\-_]`)

// Channel is the line transport to the engine process.
// Output is decoded into clean lines; the prompt is delivered as soon as it is seen even
// though the engine never terminates it with a newline.
type Channel struct {
	w          io.Writer
	wmu        sync.Mutex
	transcript io.Writer
	tmu        sync.Mutex
	logger     *zap.SugaredLogger

	lines chan string
	err   error
}

// ChannelOption customizes a Channel.
type ChannelOption func(*Channel)

// WithTranscript copies every line in both directions to w, prefixed with "> " for commands
// and "< " for engine output.
func WithTranscript(w io.Writer) ChannelOption {
	return func(c *Channel) {
		c.transcript = w
	}
}

// WithLogger sets the logger that reports transcript failures.
func WithLogger(logger *zap.SugaredLogger) ChannelOption {
	return func(c *Channel) {
		c.logger = logger
	}
}

// NewChannel starts reading engine output from r. Commands are written to w.
func NewChannel(r io.Reader, w io.Writer, opts ...ChannelOption) *Channel {
	c := &Channel{
		w:      w,
		lines:  make(chan string, _linesBuffer),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.readLoop(r)
	return c
}

// Send writes one command line.
func (c *Channel) Send(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.trace("> ", line)
	_, err := io.WriteString(c.w, line+"\n")
	return err
}

// Lines delivers decoded engine output. It is closed once the output ends.
func (c *Channel) Lines() <-chan string {
	return c.lines
}

// Err reports why the output ended, or nil on a clean end of file. Valid once Lines is closed.
func (c *Channel) Err() error {
	return c.err
}

func (c *Channel) readLoop(r io.Reader) {
	defer close(c.lines)

	var pending []byte
	buf := make([]byte, _readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = c.split(append(pending, buf[:n]...))
		}
		if err != nil {
			if len(pending) > 0 {
				c.emit(string(pending))
			}
			if err != io.EOF {
				c.err = err
			}
			return
		}
	}
}

// split emits every complete line and returns the unterminated remainder.
func (c *Channel) split(pending []byte) []byte {
	for {
		i := bytes.IndexByte(pending, '\n')
		if i < 0 {
			break
		}
		c.emit(string(pending[:i]))
		pending = pending[i+1:]
	}

	if len(pending) > 0 && replproto.IsPrompt(clean(string(pending))) {
		c.emit(string(pending))
		return nil
	}
	// Copy so the buffer does not keep growing behind the remainder.
	return append([]byte(nil), pending...)
}

func (c *Channel) emit(raw string) {
	line := clean(raw)
	c.trace("< ", line)
	c.lines <- line
}

// trace copies a line to the transcript, which is turned off after its first write failure.
func (c *Channel) trace(prefix, line string) {
	c.tmu.Lock()
	defer c.tmu.Unlock()
	if c.transcript == nil {
		return
	}
	if _, err := io.WriteString(c.transcript, prefix+line+"\n"); err != nil {
		c.logger.Warnw("engine transcript disabled after write failure", "error", err)
		c.transcript = nil
	}
}

func clean(raw string) string {
	return _ansiPattern.ReplaceAllString(strings.ReplaceAll(raw, "\r", ""), "")
}
