package monitor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/state"
)

// containerLister is the slice of the Docker API the source needs.
type containerLister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
}

// DockerSource watches containers on a Docker Engine. Each container
// is one task; stopped containers stay visible so their exit status
// shows on the dashboard until the daemon prunes them.
type DockerSource struct {
	name string
	api  containerLister
}

// NewDockerSource connects to the daemon named by the environment
// (DOCKER_HOST et al), negotiating the API version.
func NewDockerSource(name string) (*DockerSource, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"could not build the docker client",
			"check DOCKER_HOST and that the daemon socket is readable")
	}
	return &DockerSource{name: name, api: cli}, nil
}

func (s *DockerSource) Name() string            { return s.name }
func (s *DockerSource) Kind() state.BackendKind { return state.KindDocker }

func (s *DockerSource) Poll(ctx context.Context) (*Report, error) {
	containers, err := s.api.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource, "docker container list failed", "")
	}

	report := &Report{Backend: BackendState{Health: state.HealthHealthy}}
	for _, c := range containers {
		report.Tasks = append(report.Tasks, containerTask(c))
	}
	return report, nil
}

// exitCodeRe pulls the code out of a status line like
// "Exited (137) 2 minutes ago".
var exitCodeRe = regexp.MustCompile(`^Exited \((\d+)\)`)

func containerTask(c types.Container) TaskState {
	t := TaskState{
		ID:   shortContainerID(c.ID),
		Name: containerName(c),
	}
	switch c.State {
	case "running", "restarting", "paused":
		t.Status = state.StatusRunning
	case "removing":
		t.Status = state.StatusCancelled
	case "exited":
		if code := exitCode(c.Status); code != 0 {
			t.Status = state.StatusFailed
			t.Err = fmt.Sprintf("exit code %d", code)
		} else {
			t.Status = state.StatusCompleted
			t.Progress = 1
		}
	case "dead":
		t.Status = state.StatusFailed
		t.Err = "container marked dead by the daemon"
	default: // "created" and anything a newer daemon invents
		t.Status = state.StatusQueued
	}
	return t
}

func shortContainerID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func containerName(c types.Container) string {
	if len(c.Names) > 0 {
		return strings.TrimPrefix(c.Names[0], "/")
	}
	return shortContainerID(c.ID)
}

func exitCode(status string) int {
	m := exitCodeRe.FindStringSubmatch(status)
	if m == nil {
		return 0
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return code
}
