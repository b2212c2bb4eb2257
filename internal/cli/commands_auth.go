package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/service/output"
)

func newAuthCommand(deps Dependencies) *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, register, and inspect the stored session.",
	}
	auth.AddCommand(newAuthLoginCommand(deps))
	auth.AddCommand(newAuthRegisterCommand(deps))
	auth.AddCommand(newAuthLogoutCommand(deps))
	auth.AddCommand(newAuthStatusCommand(deps))
	return auth
}

func newAuthLoginCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password and store the session.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			login := env.app.NewLogin()
			login.SetEmail(email)
			login.SetPassword(password)
			user, ok := login.Submit(env.ctx())
			if !ok {
				return env.fail(codeAuthRequired, login.State().Error)
			}
			return env.emit(map[string]any{"user": user, "authenticated": true}, func() string {
				return "Signed in as " + userLabel(user) + "."
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email. [required]")
	cmd.Flags().StringVar(&password, "password", "", "Account password. [required]")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newAuthRegisterCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var name, surname, email, password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			form := env.app.NewRegister()
			form.SetName(name)
			form.SetSurname(surname)
			form.SetEmail(email)
			form.SetPassword(password)
			form.SetPasswordConfirm(confirm)
			user, ok := form.Submit(env.ctx())
			if !ok {
				return env.fail(codeValidation, form.State().Error)
			}
			return env.emit(map[string]any{"user": user, "authenticated": true}, func() string {
				return "Registered and signed in as " + userLabel(user) + "."
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "First name. [required]")
	cmd.Flags().StringVar(&surname, "surname", "", "Last name. [required]")
	cmd.Flags().StringVar(&email, "email", "", "Account email. [required]")
	cmd.Flags().StringVar(&password, "password", "", "Password, at least 6 characters. [required]")
	cmd.Flags().StringVar(&confirm, "password-confirm", "", "Repeat the password. [required]")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newAuthLogoutCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			// The session is cleared even when the server call fails.
			if res := env.app.UseCases.Logout.Execute(env.ctx()); res.IsFailure() {
				env.warn("server logout failed: " + res.Err().Message)
			}
			return env.emit(map[string]any{"authenticated": false}, func() string {
				return "Signed out."
			})
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newAuthStatusCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored session and the signed-in user.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			sess := env.app.Session
			tokens := sess.Tokens()
			data := map[string]any{
				"authenticated":     !tokens.Empty(),
				"user_id":           tokens.UserID,
				"has_refresh_token": tokens.RefreshToken != "",
			}
			var expires string
			if at, ok := sess.ExpiresAt(); ok {
				expires = at.UTC().Format(time.RFC3339)
				data["expires_at"] = expires
			}
			var user *domain.User
			if !tokens.Empty() {
				me, appErr := env.app.UseCases.GetMe.Execute(env.ctx()).Unpack()
				if appErr != nil {
					env.warn("user lookup failed: " + appErr.Message)
				} else {
					user = &me
					data["user"] = me
				}
			}
			return env.emit(data, func() string {
				if tokens.Empty() {
					return "Not signed in."
				}
				fields := []output.Field{
					{Label: "User ID", Value: tokens.UserID},
					{Label: "Expires", Value: expires},
					{Label: "Refresh token", Value: boolToYesNo(tokens.RefreshToken != "")},
				}
				if user != nil {
					fields = append(fields,
						output.Field{Label: "Name", Value: user.Name},
						output.Field{Label: "Email", Value: user.Email},
					)
				}
				return output.RenderFields("Signed in", fields)
			})
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func userLabel(user domain.User) string {
	name := strings.TrimSpace(user.Name)
	if name == "" {
		return user.Email
	}
	if user.Email == "" {
		return name
	}
	return name + " <" + user.Email + ">"
}
