// Package cli exposes the application services as a cobra command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"circles-core/internal/application/service"
)

// Deps are the collaborators commands run against
type Deps struct {
	Storage string
	Users   *service.UserService
	Circles *service.CircleService

	// Ping checks the storage backend
	Ping func(ctx context.Context) error

	// Migrate applies pending schema migrations. Nil when the backend has no schema.
	Migrate func(ctx context.Context) ([]string, error)
}

// Builder wires Deps for a storage backend. The returned func releases them.
type Builder func(ctx context.Context, storage string) (*Deps, func(), error)

type app struct {
	build   Builder
	storage string
	output  string

	deps    *Deps
	release func()
	out     *printer
}

// NewRootCommand builds the circles command tree. defaultStorage seeds the
// --storage flag. The returned func releases whatever the executed command
// built and is safe to call when nothing was built.
func NewRootCommand(build Builder, defaultStorage string) (*cobra.Command, func()) {
	a := &app{build: build}

	root := &cobra.Command{
		Use:           "circles",
		Short:         "Manage users and the circles they belong to",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}

			p, err := newPrinter(cmd.OutOrStdout(), a.output)
			if err != nil {
				return err
			}
			a.out = p

			deps, release, err := a.build(cmd.Context(), a.storage)
			if err != nil {
				return fmt.Errorf("failed to initialise %s storage: %w", a.storage, err)
			}
			a.deps, a.release = deps, release
			return nil
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVarP(&a.output, "output", "o", FormatText, "Output format: text|json|yaml")
	root.PersistentFlags().StringVar(&a.storage, "storage", defaultStorage, "Storage backend: postgres|memory (env STORAGE_BACKEND)")

	root.AddCommand(
		newMigrateCommand(a),
		newHealthCommand(a),
		newUserCommand(a),
		newCircleCommand(a),
	)
	return root, a.close
}

func (a *app) close() {
	if a.release != nil {
		a.release()
		a.release = nil
	}
}

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := &MigrateResult{Storage: a.deps.Storage, Applied: []string{}}
			if a.deps.Migrate != nil {
				applied, err := a.deps.Migrate(cmd.Context())
				if err != nil {
					return err
				}
				res.Applied = append(res.Applied, applied...)
			}
			return a.out.Print(res)
		},
	}
}

func newHealthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the storage backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.deps.Ping != nil {
				if err := a.deps.Ping(cmd.Context()); err != nil {
					return fmt.Errorf("storage unhealthy: %w", err)
				}
			}
			return a.out.Print(&HealthResult{Status: "healthy", Storage: a.deps.Storage})
		},
	}
}
