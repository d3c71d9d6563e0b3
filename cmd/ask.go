package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AdityaD28/portfolio/internal/chat"
	"github.com/AdityaD28/portfolio/internal/config"
	"github.com/AdityaD28/portfolio/internal/content"
	"github.com/AdityaD28/portfolio/internal/logger"
)

var askResolver string

var (
	youStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the chat assistant a single question",
	Long: `Ask the chat assistant a question from the terminal.

The configured resolver answers, exactly as it would in the site's chat
widget. Failures are answered with the fallback reply.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		zlog.Logger = logger.Console(cmd.ErrOrStderr(), "portfolio")

		cfg, err := config.New()
		if err != nil {
			return err
		}
		if askResolver != "" {
			cfg.Resolver = askResolver
		}
		p, err := content.Load(cfg.ContentPath)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		resolver, err := newResolver(cfg, p)
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		w := chat.NewWidget(resolver, p)
		reply, err := w.Send(context.Background(), question)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", youStyle.Render("You:"), question)
		fmt.Fprintf(out, "%s %s\n", assistantStyle.Render("Assistant:"), reply.Text)
		fmt.Fprintln(out, metaStyle.Render("answered by "+resolver.Name()))
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askResolver, "resolver", "", "Override the configured resolver (keyword or remote)")
}
