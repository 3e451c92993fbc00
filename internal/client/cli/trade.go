package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
)

func (c *CLI) proposalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proposals",
		Short: "List the trades the server matched for you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proposals, err := c.app.Trade.Proposals(cmd.Context())
			if err != nil {
				return err
			}
			if len(proposals) == 0 {
				fmt.Fprintln(c.out, "No proposals right now")
				return nil
			}
			for _, p := range proposals {
				name := p.Pseudo
				if name == "" {
					name = p.FriendID
				}
				fmt.Fprintf(c.out, "%s %s  you get %s, you give %s\n",
					bold(name), faint(p.FriendID), green(p.CardWanted), yellow(p.CardToGive))
			}
			return nil
		},
	}
}

func (c *CLI) discussionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discussions",
		Short: "List your conversations, unread ones marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.app.Trade.RefreshDiscussions(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(c.out, "No discussions yet")
				return nil
			}
			for _, d := range items {
				mark := " "
				if !d.Read {
					mark = unreadMark()
				}
				fmt.Fprintf(c.out, "%s %s %s  %s %s\n",
					mark, bold(d.Pseudo), faint(d.FriendID), d.LastMessage, faint(d.LastMessageDate))
			}
			return nil
		},
	}
}

func (c *CLI) messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <friendId>",
		Short: "Show the conversation with a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := c.app.Trade.Messages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(messages) == 0 {
				fmt.Fprintln(c.out, "No messages")
				return nil
			}
			for _, m := range messages {
				state := ""
				if m.Read == nil && m.To != args[0] {
					state = " " + unreadMark()
				}
				fmt.Fprintf(c.out, "%s %s: %s%s\n", faint(m.Sent), bold(m.From), m.Message, state)
			}
			return nil
		},
	}
}

func (c *CLI) sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <friendId> <text...>",
		Short: "Send a message to a player",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Trade.SendMessage(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Message sent")
			return nil
		},
	}
}

func (c *CLI) profileCmd() *cobra.Command {
	var pseudo, icon, language string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change your pseudo, icon or language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("pseudo") && !flags.Changed("icon") && !flags.Changed("language") {
				return fmt.Errorf("nothing to change, use --pseudo, --icon or --language")
			}

			err := c.app.Trade.SetProfile(cmd.Context(), func(p *models.Profile) {
				if flags.Changed("pseudo") {
					p.Pseudo = pseudo
				}
				if flags.Changed("icon") {
					p.Icon = icon
				}
				if flags.Changed("language") {
					p.Language = language
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Profile updated")
			return nil
		},
		PostRunE: c.flushSync,
	}
	cmd.Flags().StringVar(&pseudo, "pseudo", "", "display name")
	cmd.Flags().StringVar(&icon, "icon", "", "avatar icon")
	cmd.Flags().StringVar(&language, "language", "", "preferred language")
	return cmd
}
