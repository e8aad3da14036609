package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type projectService interface {
	CreateProject(ctx context.Context, input dashboard.CreateProjectInput) (dashboard.Project, error)
	UpdateProject(ctx context.Context, id string, input dashboard.UpdateProjectInput) (dashboard.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// CreateProjectInput carries the create-project dialog. Result, when set,
// receives the created project.
type CreateProjectInput struct {
	dashboard.CreateProjectInput
	Actor
	Result *dashboard.Project `json:"-"`
}

// CreateProjectCommand wraps Service.CreateProject.
type CreateProjectCommand struct {
	service   projectService
	telemetry Telemetry
}

func NewCreateProjectCommand(service projectService, telemetry Telemetry) *CreateProjectCommand {
	return &CreateProjectCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateProjectInput] = (*CreateProjectCommand)(nil)

func (c *CreateProjectCommand) Execute(ctx context.Context, msg CreateProjectInput) error {
	if c.service == nil {
		return errors.New("create project command requires service")
	}
	project, err := c.service.CreateProject(msg.apply(ctx), msg.CreateProjectInput)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = project
	}
	c.telemetry.Record(ctx, "l10n.command.project.create", map[string]any{"project_id": project.ID})
	return nil
}

// UpdateProjectInput patches the project with ID.
type UpdateProjectInput struct {
	ID string `json:"id"`
	dashboard.UpdateProjectInput
	Actor
}

// UpdateProjectCommand wraps Service.UpdateProject.
type UpdateProjectCommand struct {
	service   projectService
	telemetry Telemetry
}

func NewUpdateProjectCommand(service projectService, telemetry Telemetry) *UpdateProjectCommand {
	return &UpdateProjectCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateProjectInput] = (*UpdateProjectCommand)(nil)

func (c *UpdateProjectCommand) Execute(ctx context.Context, msg UpdateProjectInput) error {
	if c.service == nil {
		return errors.New("update project command requires service")
	}
	if msg.ID == "" {
		return errors.New("update project command requires project id")
	}
	if _, err := c.service.UpdateProject(msg.apply(ctx), msg.ID, msg.UpdateProjectInput); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.project.update", map[string]any{"project_id": msg.ID})
	return nil
}

// DeleteProjectInput identifies the project to delete.
type DeleteProjectInput struct {
	ID string `json:"id"`
	Actor
}

// DeleteProjectCommand wraps Service.DeleteProject.
type DeleteProjectCommand struct {
	service   projectService
	telemetry Telemetry
}

func NewDeleteProjectCommand(service projectService, telemetry Telemetry) *DeleteProjectCommand {
	return &DeleteProjectCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteProjectInput] = (*DeleteProjectCommand)(nil)

func (c *DeleteProjectCommand) Execute(ctx context.Context, msg DeleteProjectInput) error {
	if c.service == nil {
		return errors.New("delete project command requires service")
	}
	if msg.ID == "" {
		return errors.New("delete project command requires project id")
	}
	if err := c.service.DeleteProject(msg.apply(ctx), msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.project.delete", map[string]any{"project_id": msg.ID})
	return nil
}

type selectionService interface {
	SelectProject(ctx context.Context, id string) error
}

// SelectProjectInput switches the selected project. An empty id clears it.
type SelectProjectInput struct {
	ProjectID string `json:"projectId"`
}

// SelectProjectCommand persists the operator's project selection.
type SelectProjectCommand struct {
	service   selectionService
	telemetry Telemetry
}

func NewSelectProjectCommand(service selectionService, telemetry Telemetry) *SelectProjectCommand {
	return &SelectProjectCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectProjectInput] = (*SelectProjectCommand)(nil)

func (c *SelectProjectCommand) Execute(ctx context.Context, msg SelectProjectInput) error {
	if c.service == nil {
		return errors.New("select project command requires service")
	}
	if err := c.service.SelectProject(ctx, msg.ProjectID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "l10n.command.project.select", map[string]any{"project_id": msg.ProjectID})
	return nil
}
