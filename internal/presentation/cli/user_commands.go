package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"circles-core/internal/application/dto"
)

func newUserCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register and manage users",
	}
	cmd.AddCommand(
		newUserRegisterCommand(a),
		newUserGetCommand(a),
		newUserUpdateCommand(a),
		newUserPremiumCommand(a),
		newUserDeleteCommand(a),
	)
	return cmd
}

func newUserRegisterCommand(a *app) *cobra.Command {
	var req dto.RegisterUserCommand
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.deps.Users.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.out.Print(data)
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "User name (3-20 characters)")
	cmd.Flags().StringVar(&req.MailAddress, "mail", "", "Mail address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("mail")
	return cmd
}

func newUserGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.deps.Users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.out.Print(data)
		},
	}
}

func newUserUpdateCommand(a *app) *cobra.Command {
	var name, mail string
	cmd := &cobra.Command{
		Use:   "update USER_ID",
		Short: "Change a user's name or mail address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("mail") {
				return fmt.Errorf("at least one of --name or --mail is required")
			}

			req := dto.UpdateUserCommand{ID: args[0]}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("mail") {
				req.MailAddress = &mail
			}

			data, err := a.deps.Users.Update(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.out.Print(data)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New user name")
	cmd.Flags().StringVar(&mail, "mail", "", "New mail address")
	return cmd
}

func newUserPremiumCommand(a *app) *cobra.Command {
	var enabled bool
	cmd := &cobra.Command{
		Use:   "premium USER_ID",
		Short: "Grant or revoke premium status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.deps.Users.ChangePremium(cmd.Context(), dto.ChangePremiumCommand{ID: args[0], Premium: enabled})
			if err != nil {
				return err
			}
			return a.out.Print(data)
		},
	}
	cmd.Flags().BoolVar(&enabled, "enabled", true, "Premium status to set")
	return cmd
}

func newUserDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user and leave every circle it joined",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.deps.Users.Delete(cmd.Context(), dto.DeleteUserCommand{ID: args[0]}); err != nil {
				return err
			}
			return a.out.Print(&DeletedResult{ID: args[0], Deleted: true})
		},
	}
}
