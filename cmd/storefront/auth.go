package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in with the demo rule (any email, 6+ character password)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := deps.auth.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(errStyle.Render("login failed: ") + "email required and password must be at least 6 characters")
			return nil
		}
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <email> <password> <name>",
	Short: "Create a demo account",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := deps.auth.Signup(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(errStyle.Render("signup failed: ") + "email, name and a 6+ character password are required")
			return nil
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		return deps.auth.Logout(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, ok := deps.auth.CurrentUser()
		if !ok {
			fmt.Println(dimStyle.Render("not logged in"))
			return nil
		}
		fmt.Printf("%s <%s>\n", titleStyle.Render(user.Name), user.Email)
		return nil
	},
}
