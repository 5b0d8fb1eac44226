package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Lines written by the pomotray-hotkey helper on its stdout.
const (
	AgentReady       = "ready"
	AgentKeydown     = "down"
	AgentErrorPrefix = "error "
)

const (
	agentStartTimeout = 5 * time.Second
	agentStopTimeout  = 2 * time.Second
)

// agentRegistration is a hotkey held by a helper process. Closing the
// helper's stdin asks it to unregister and exit.
type agentRegistration struct {
	command  *exec.Cmd
	stdin    io.Closer
	stderr   bytes.Buffer
	keydown  chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

func startAgent(command *exec.Cmd) (*agentRegistration, error) {
	agent := &agentRegistration{
		command: command,
		keydown: make(chan struct{}, 1),
		exited:  make(chan struct{}),
	}
	stdin, err := command.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: helper stdin: %v", ErrHotkeyUnavailable, err)
	}
	stdout, err := command.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: helper stdout: %v", ErrHotkeyUnavailable, err)
	}
	command.Stderr = &agent.stderr
	if err := command.Start(); err != nil {
		return nil, fmt.Errorf("%w: start helper: %v", ErrHotkeyUnavailable, err)
	}
	agent.stdin = stdin

	ready := make(chan error, 1)
	go agent.read(stdout, ready)

	select {
	case err := <-ready:
		if err != nil {
			agent.Unregister()
			return nil, err
		}
		return agent, nil
	case <-time.After(agentStartTimeout):
		agent.Unregister()
		return nil, fmt.Errorf("%w: helper did not report ready", ErrHotkeyUnavailable)
	}
}

func (agent *agentRegistration) read(stdout io.Reader, ready chan<- error) {
	defer close(agent.keydown)

	started := false
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case started && line == AgentKeydown:
			select {
			case agent.keydown <- struct{}{}:
			default:
			}
		case !started && line == AgentReady:
			started = true
			ready <- nil
		case !started && strings.HasPrefix(line, AgentErrorPrefix):
			started = true
			ready <- fmt.Errorf("%w: %s", ErrHotkeyUnavailable, strings.TrimPrefix(line, AgentErrorPrefix))
		}
	}

	waitErr := agent.command.Wait()
	close(agent.exited)
	if !started {
		detail := strings.TrimSpace(agent.stderr.String())
		ready <- fmt.Errorf("%w: helper exited: %v %s", ErrHotkeyUnavailable, waitErr, lastLine(detail))
	}
}

func (agent *agentRegistration) Keydown() <-chan struct{} {
	return agent.keydown
}

func (agent *agentRegistration) Unregister() error {
	var err error
	agent.stopOnce.Do(func() {
		agent.stdin.Close()
		select {
		case <-agent.exited:
		case <-time.After(agentStopTimeout):
			err = agent.command.Process.Kill()
			<-agent.exited
		}
	})
	return err
}

func lastLine(text string) string {
	if index := strings.LastIndexByte(text, '\n'); index >= 0 {
		return text[index+1:]
	}
	return text
}
