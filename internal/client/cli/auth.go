package cli

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/tcgexchange/internal/client/client"
	"github.com/dmitrijs2005/tcgexchange/internal/common"
)

// argOrPrompt returns args[i] when present, otherwise asks for it.
func (c *CLI) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return GetSimpleText(c.in, prompt, c.out)
}

func (c *CLI) signInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signin [email]",
		Short: "Sign in and load your account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := c.argOrPrompt(args, 0, "Enter email")
			if err != nil {
				return err
			}
			password, err := GetPassword(c.out, "Enter password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			profile, err := c.app.Auth.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "Signed in as %s\n", bold(profile.DisplayName()))
			if c.app.Store.IsAccountIncomplete() {
				fmt.Fprintln(c.out, yellow("Your account is incomplete: add cards with 'want' and 'give'."))
			}
			if n := c.app.Cache.UnreadCount(); n > 0 {
				fmt.Fprintf(c.out, "%s %d unread discussion(s)\n", unreadMark(), n)
			}
			return nil
		},
		PostRunE: c.flushSync,
	}
}

func (c *CLI) signUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup [email] [friendId]",
		Short: "Create an account with your current card lists",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := c.argOrPrompt(args, 0, "Enter email")
			if err != nil {
				return err
			}
			friendID, err := c.argOrPrompt(args, 1, "Enter your in-game friend id")
			if err != nil {
				return err
			}

			password, err := GetPassword(c.out, "Choose password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)
			again, err := GetPassword(c.out, "Repeat password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(again)
			if !bytes.Equal(password, again) {
				return errors.New("passwords do not match")
			}

			if err := c.app.Auth.SignUp(cmd.Context(), email, password, friendID); err != nil {
				return err
			}
			fmt.Fprintln(c.out, green("Account created, you are signed in."))
			return nil
		},
	}
}

func (c *CLI) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session and the local card lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// pending edits go out before the session is dropped
			c.app.Sync.Flush()
			if err := c.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out")
			return nil
		},
	}
}

func (c *CLI) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session, the profile and the account status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.out, "client id:  %s\n", faint(c.app.Session.ClientID()))
			if !c.app.Session.IsLoggedIn() {
				fmt.Fprintln(c.out, "Not signed in")
			} else {
				profile, _ := c.app.Session.Profile()
				creds := c.app.Session.Credentials()
				fmt.Fprintf(c.out, "email:      %s\n", creds.Email)
				fmt.Fprintf(c.out, "friend id:  %s\n", profile.FriendID)
				if profile.Pseudo != "" {
					fmt.Fprintf(c.out, "pseudo:     %s\n", profile.Pseudo)
				}
				if profile.Language != "" {
					fmt.Fprintf(c.out, "language:   %s\n", profile.Language)
				}
			}

			st := c.app.Store
			fmt.Fprintf(c.out, "wanted set: %s\n", check(st.IsWantedStepComplete()))
			fmt.Fprintf(c.out, "giving set: %s\n", check(st.IsGivingStepComplete()))
			fmt.Fprintf(c.out, "complete:   %s\n", check(!st.IsAccountIncomplete()))
			return nil
		},
	}
}

func (c *CLI) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the account from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := c.app.Auth.FetchUser(cmd.Context())
			if err != nil {
				if !c.app.Session.IsLoggedIn() && !errors.Is(err, common.ErrNotLoggedIn) {
					fmt.Fprintln(c.out, yellow("Session rejected, you have been logged out."))
				}
				return err
			}
			fmt.Fprintf(c.out, "Account of %s reloaded\n", bold(profile.DisplayName()))
			return nil
		},
		PostRunE: c.flushSync,
	}
}

func (c *CLI) forgotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot <email> <friendId>",
		Short: "Receive a sign-in link by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := c.app.Auth.ForgotPassword(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "request sent"
			}
			fmt.Fprintln(c.out, msg)
			return nil
		},
	}
}

// Reason is the message shown for err.
func Reason(err error) string {
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		return "you are not signed in, run 'signin' first"
	case errors.Is(err, client.ErrUnavailable):
		return "server unreachable, try again later"
	}
	return client.Reason(err)
}
