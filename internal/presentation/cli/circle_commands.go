package cli

import (
	"github.com/spf13/cobra"

	"circles-core/internal/application/dto"
)

func newCircleCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circle",
		Short: "Create circles and manage membership",
	}
	cmd.AddCommand(
		newCircleCreateCommand(a),
		newCircleJoinCommand(a),
		newCircleGetCommand(a),
	)
	return cmd
}

func newCircleCreateCommand(a *app) *cobra.Command {
	var req dto.CreateCircleCommand
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a circle owned by an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.deps.Circles.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.out.Print(data)
		},
	}
	cmd.Flags().StringVar(&req.OwnerID, "owner", "", "Owner user ID")
	cmd.Flags().StringVar(&req.Name, "name", "", "Circle name (3-20 characters)")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCircleJoinCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "join CIRCLE_ID USER_ID",
		Short: "Add a user to a circle if it has room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.deps.Circles.Join(cmd.Context(), dto.JoinCircleCommand{CircleID: args[0], UserID: args[1]})
			if err != nil {
				return err
			}
			return a.out.Print(data)
		},
	}
}

func newCircleGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get CIRCLE_ID",
		Short: "Show a circle with its member count and capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.deps.Circles.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.out.Print(data)
		},
	}
}
