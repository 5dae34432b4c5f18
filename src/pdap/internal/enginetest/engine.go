// Package enginetest provides a scripted stand-in for the Perl debugger that speaks the
// engine text protocol over in-memory pipes.
package enginetest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/uber/perl-dap/src/pdap/internal/executor"
)

// FakePid is the process id reported by every Engine.
const FakePid = 4242

// DefaultBanner is printed at startup before the first prompt.
const DefaultBanner = "\nLoading DB routines from perl5db.pl version 1.60\nEditor support available.\n\nEnter h or 'h h' for help, or 'man perldebug' for more help.\n\nmain::(t.pl:1):\tmy $x = 1;\n"

// Reply is the engine's answer to one command.
type Reply struct {
	// Output is written before the prompt.
	Output string
	// Exit ends the process after Output, without a prompt.
	Exit bool
}

// Handler answers one command line. It runs on the engine goroutine.
type Handler func(cmd string) Reply

// Text is a Handler result that prints output followed by a prompt.
func Text(lines ...string) Reply {
	if len(lines) == 0 {
		return Reply{}
	}
	return Reply{Output: strings.Join(lines, "\n") + "\n"}
}

// Engine implements executor.Process.
type Engine struct {
	handler Handler

	stdinR  *io.PipeReader
	stdinW  *io.PipeWriter
	stdoutR *io.PipeReader
	stdoutW *io.PipeWriter

	mu       sync.Mutex
	commands []string
	prompt   int
	killed   bool

	exitOnce sync.Once
	done     chan struct{}
}

var _ executor.Process = (*Engine)(nil)

// New starts an engine that prints banner and a prompt, then answers every command with handler.
func New(banner string, handler Handler) *Engine {
	e := &Engine{
		handler: handler,
		done:    make(chan struct{}),
	}
	e.stdinR, e.stdinW = io.Pipe()
	e.stdoutR, e.stdoutW = io.Pipe()

	go e.serve(banner)
	return e
}

// Prompt formats the n-th prompt the way perl5db prints it.
func Prompt(n int) string {
	return fmt.Sprintf("  DB<%d> ", n)
}

func (e *Engine) serve(banner string) {
	defer e.exit()

	if !e.write(banner + e.nextPrompt()) {
		return
	}

	r := bufio.NewReader(e.stdinR)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")

		e.mu.Lock()
		e.commands = append(e.commands, cmd)
		e.mu.Unlock()

		reply := e.handler(cmd)
		if reply.Exit {
			e.write(reply.Output)
			return
		}
		if !e.write(reply.Output + e.nextPrompt()) {
			return
		}
	}
}

func (e *Engine) nextPrompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prompt++
	return Prompt(e.prompt)
}

func (e *Engine) write(s string) bool {
	if s == "" {
		return true
	}
	_, err := io.WriteString(e.stdoutW, s)
	return err == nil
}

func (e *Engine) exit() {
	e.exitOnce.Do(func() {
		e.stdoutW.Close()
		e.stdinR.Close()
		close(e.done)
	})
}

// Emit writes unsolicited output, as a running program would.
func (e *Engine) Emit(s string) {
	e.write(s)
}

// Exit ends the process as if the program had quit.
func (e *Engine) Exit() {
	e.exit()
}

// Commands returns every command received so far, in order.
func (e *Engine) Commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.commands...)
}

// Killed reports whether Kill was called.
func (e *Engine) Killed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.killed
}

// Stdin implements executor.Process.
func (e *Engine) Stdin() io.WriteCloser { return e.stdinW }

// Stdout implements executor.Process.
func (e *Engine) Stdout() io.ReadCloser { return e.stdoutR }

// Pid implements executor.Process.
func (e *Engine) Pid() int { return FakePid }

// Wait implements executor.Process.
func (e *Engine) Wait() error {
	<-e.done
	return nil
}

// Kill implements executor.Process.
func (e *Engine) Kill() error {
	e.mu.Lock()
	e.killed = true
	e.mu.Unlock()
	e.exit()
	return nil
}
